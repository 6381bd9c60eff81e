package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/layoutkit/pathfind"
)

var nodeLinks bool

func init() {
	cmd := newNodeCmd()
	cmd.Flags().BoolVarP(&nodeLinks, "links", "l", false, "Also list the node's links")
	rootCmd.AddCommand(cmd)
}

func newNodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "node <store-addr> <handle|area:node>",
		Short: "Decode a road-network node",
		Long: `The node command resolves a node through the path store at the given
address and prints its position, flags and street. The node is named either by
its packed handle (decimal or 0x hex) or as area:node.

Example:
  layoutctl node 0x7ff6a41b0000 0x002a0008 --snapshot dump.bin --snapshot-base 0x7ff6a0000000
  layoutctl node 0x7ff6a41b0000 7:42 --links --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNode(args)
		},
	}
}

// parseNodeRef accepts "area:node" or a packed handle.
func parseNodeRef(s string) (int32, error) {
	if area, node, ok := strings.Cut(s, ":"); ok {
		a, err := strconv.ParseUint(area, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("invalid area %q: %w", area, err)
		}
		n, err := strconv.ParseUint(node, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("invalid node %q: %w", node, err)
		}
		return pathfind.MakeHandle(uint16(a), uint16(n)), nil
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil || v < -1<<31 || v > 1<<32-1 {
		return 0, fmt.Errorf("invalid node handle %q", s)
	}
	return int32(uint32(v)), nil
}

type linkInfo struct {
	Target   string `json:"target"`
	Forward  int    `json:"lanes_forward"`
	Backward int    `json:"lanes_backward"`
	Length   uint8  `json:"length"`
	Flags    uint8  `json:"flags"`
}

type nodeInfo struct {
	Handle      int32      `json:"handle"`
	Area        uint16     `json:"area"`
	Node        uint16     `json:"node"`
	Address     string     `json:"address"`
	X           float32    `json:"x"`
	Y           float32    `json:"y"`
	Z           float32    `json:"z"`
	Properties  string     `json:"properties"`
	Density     uint8      `json:"density"`
	SwitchedOff bool       `json:"switched_off"`
	LinkCount   uint8      `json:"link_count"`
	Street      string     `json:"street,omitempty"`
	Links       []linkInfo `json:"links,omitempty"`
}

func runNode(args []string) error {
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	h, err := parseNodeRef(args[1])
	if err != nil {
		return err
	}
	src, t, err := session()
	if err != nil {
		return err
	}
	defer src.Close()

	store, err := pathfind.OpenStore(src, addr, &t.Path, t.Limits)
	if err != nil {
		return fmt.Errorf("failed to open path store: %w", err)
	}
	n, ok := store.NodeFromHandle(h)
	if !ok {
		area, node, _ := pathfind.DecodeHandle(h)
		return fmt.Errorf("node %d:%d is not loaded", area, node)
	}

	pos := n.Position()
	info := nodeInfo{
		Handle:      n.Handle(),
		Area:        n.AreaID(),
		Node:        n.NodeID(),
		Address:     n.Addr().String(),
		X:           pos.X,
		Y:           pos.Y,
		Z:           pos.Z,
		Properties:  n.Properties().String(),
		Density:     n.Density(),
		SwitchedOff: n.IsSwitchedOff(),
		LinkCount:   n.LinkCount(),
	}
	if name, ok := store.StreetName(n.StreetNameHash()); ok {
		info.Street = name
	}
	if nodeLinks {
		for l := range n.Links() {
			fwd, back := l.LaneCounts()
			info.Links = append(info.Links, linkInfo{
				Target:   fmt.Sprintf("%d:%d", l.AreaID(), l.NodeID()),
				Forward:  fwd,
				Backward: back,
				Length:   l.Length(),
				Flags:    uint8(l.Flags()),
			})
		}
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("Node %d:%d (handle 0x%08x) at %s\n", info.Area, info.Node, uint32(info.Handle), info.Address)
	printInfo("  Position:   %.2f, %.2f, %.2f\n", info.X, info.Y, info.Z)
	printInfo("  Properties: %s\n", info.Properties)
	printInfo("  Density:    %d\n", info.Density)
	printInfo("  Links:      %d\n", info.LinkCount)
	if info.Street != "" {
		printInfo("  Street:     %s\n", info.Street)
	}
	for _, l := range info.Links {
		printInfo("    -> %-10s lanes %d/%d  length %d  flags 0x%02x\n", l.Target, l.Forward, l.Backward, l.Length, l.Flags)
	}
	return nil
}
