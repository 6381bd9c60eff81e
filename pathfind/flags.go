package pathfind

import "strings"

// Node flag bits. These were recovered from the host binary and must be kept
// exactly as they are, including the precedence rules in decodeProperties.
const (
	flag0OffRoad       = 0x08
	flag0OnPlayersRoad = 0x10
	flag0NoBigVehicles = 0x20
	flag0Water         = 0x80

	flag1DontAllowGps   = 0x01
	flag1Junction       = 0x04
	flag1SpecialShift   = 3
	flag1SpecialMask    = 0x1F
	specialTrafficLight = 0x01
	specialGiveWay      = 0x02

	flag2SwitchedOff      = 0x01
	flag2TunnelOrInterior = 0x02
	flag2LeadsToDeadEnd   = 0x04
	flag2LinkCountShift   = 3

	flag3DensityMask = 0x0F
	flag3Highway     = 0x40
)

// Properties is the semantic flag set of a node.
type Properties uint32

const (
	OffRoad Properties = 1 << iota
	OnPlayersRoad
	NoBigVehicles
	SwitchedOff
	TunnelOrInterior
	LeadsToDeadEnd
	Highway
	Junction
	TrafficLight
	GiveWay
	Boat
	DontAllowGps
)

var propertyNames = []struct {
	p    Properties
	name string
}{
	{OffRoad, "OffRoad"},
	{OnPlayersRoad, "OnPlayersRoad"},
	{NoBigVehicles, "NoBigVehicles"},
	{SwitchedOff, "SwitchedOff"},
	{TunnelOrInterior, "TunnelOrInterior"},
	{LeadsToDeadEnd, "LeadsToDeadEnd"},
	{Highway, "Highway"},
	{Junction, "Junction"},
	{TrafficLight, "TrafficLight"},
	{GiveWay, "GiveWay"},
	{Boat, "Boat"},
	{DontAllowGps, "DontAllowGps"},
}

// Has reports whether every flag in f is set.
func (p Properties) Has(f Properties) bool { return p&f == f }

func (p Properties) String() string {
	if p == 0 {
		return "None"
	}
	var sb strings.Builder
	for _, pn := range propertyNames {
		if p&pn.p == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(pn.name)
	}
	return sb.String()
}

// decodeProperties maps the four packed flag bytes of a node to Properties.
//
// Boat is tested before Highway and wins: a water node never reports Highway
// even when the highway bit is set. TrafficLight and GiveWay compare the same
// 5-bit special-function field against different values, so at most one of
// them is ever reported.
func decodeProperties(f0, f1, f2, f3 uint8) Properties {
	var p Properties
	if f0&flag0OffRoad != 0 {
		p |= OffRoad
	}
	if f0&flag0OnPlayersRoad != 0 {
		p |= OnPlayersRoad
	}
	if f0&flag0NoBigVehicles != 0 {
		p |= NoBigVehicles
	}
	if f2&flag2SwitchedOff != 0 {
		p |= SwitchedOff
	}
	if f2&flag2TunnelOrInterior != 0 {
		p |= TunnelOrInterior
	}
	if f2&flag2LeadsToDeadEnd != 0 {
		p |= LeadsToDeadEnd
	}
	if f0&flag0Water != 0 {
		p |= Boat
	} else if f3&flag3Highway != 0 {
		p |= Highway
	}
	if f1&flag1Junction != 0 {
		p |= Junction
	}
	switch (f1 >> flag1SpecialShift) & flag1SpecialMask {
	case specialTrafficLight:
		p |= TrafficLight
	case specialGiveWay:
		p |= GiveWay
	}
	if f1&flag1DontAllowGps != 0 {
		p |= DontAllowGps
	}
	return p
}

// Link flag bits.
const (
	linkLanesBackShift = 2
	linkLanesFwdShift  = 5
	linkLanesMask      = 0x07
)

// LinkFlags is the generic flag byte of a link.
type LinkFlags uint8

const (
	LinkGpsBothWays          LinkFlags = 0x01
	LinkShortcut             LinkFlags = 0x02
	LinkDontUseForNavigation LinkFlags = 0x04
	LinkBlockIfNoLanes       LinkFlags = 0x08
)

// Has reports whether every flag in f is set.
func (l LinkFlags) Has(f LinkFlags) bool { return l&f == f }
