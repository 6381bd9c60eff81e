package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/layoutkit/skeleton"
)

var bonesTree bool

func init() {
	cmd := newBonesCmd()
	cmd.Flags().BoolVarP(&bonesTree, "tree", "t", false, "Print the bone hierarchy as a tree")
	rootCmd.AddCommand(cmd)
}

func newBonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bones <skeleton-addr>",
		Short: "List the bones of a skeleton",
		Long: `The bones command decodes the skeleton data at the given address and lists
every bone with its id, parent, next sibling and name.

Example:
  layoutctl bones 0x7ff6a52c8840 --pid 4242 --game-version 1.0.2944
  layoutctl bones 0x7ff6a52c8840 --tree`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBones(args)
		},
	}
}

func runBones(args []string) error {
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	src, t, err := session()
	if err != nil {
		return err
	}
	defer src.Close()

	s, err := skeleton.Open(src, addr, &t.Skeleton, t.Limits)
	if err != nil {
		return fmt.Errorf("failed to open skeleton: %w", err)
	}

	var bones []skeleton.Bone
	for b := range s.Bones() {
		bones = append(bones, b)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"skeleton": addr.String(),
			"bones":    bones,
			"count":    len(bones),
		})
	}

	if bonesTree {
		printTree(s, -1, 0)
	} else {
		for _, b := range bones {
			printInfo("  %4d  id %-6d parent %-4d sibling %-4d %s\n", b.Index, b.ID, b.Parent, b.Sibling, boneLabel(b))
		}
	}
	printInfo("\nTotal: %d bones\n", len(bones))
	return nil
}

func boneLabel(b skeleton.Bone) string {
	if b.Name == "" {
		return fmt.Sprintf("<bone %d>", b.ID)
	}
	return b.Name
}

// printTree prints the children of index, depth-first. Depth is bounded by
// the bone count so a corrupt parent cycle cannot recurse forever.
func printTree(s *skeleton.Skeleton, index, depth int) {
	if depth > s.BoneCount() {
		return
	}
	for c := range s.Children(index) {
		b, ok := s.Bone(c)
		if !ok {
			continue
		}
		printInfo("%s%s (id %d)\n", strings.Repeat("  ", depth), boneLabel(b), b.ID)
		printTree(s, c, depth+1)
	}
}
