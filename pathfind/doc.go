// Package pathfind decodes the host's road network: nodes, the links between
// them, and the streamed regions that own both.
//
// The network is split into a fixed grid of regions. A region is streamed in
// and out by the host; while it is out its node array pointer is null and
// every query against it reports "not available". Nodes are addressed
// externally by a packed handle, (nodeID << 16) + areaID + 1, where a zero low
// half is reserved for "no node".
//
// # Node record
//
// Field offsets come from layout.PathNode. The packed flag bytes are:
//
//	Flags0  0x08 off-road            0x10 on player's road
//	        0x20 no big vehicles     0x80 water (boat) node
//	Flags1  0x01 GPS disallowed      0x04 junction
//	        bits 3-7 special function (traffic light, give way)
//	Flags2  0x01 switched off        0x02 tunnel or interior
//	        0x04 leads to dead end   bits 3-7 link count
//	Flags3  bits 0-3 density         0x40 highway
//
// Positions are stored as int16 fixed point: X and Y in quarter units, Z in
// 1/32 units.
//
// # Link record
//
//	Flags   0x01 GPS both ways  0x02 shortcut  0x04 not for navigation
//	        0x08 block if no lanes
//	Lanes   bits 2-4 lanes from the target, bits 5-7 lanes to the target
package pathfind
