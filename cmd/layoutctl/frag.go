package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/layoutkit/fragment"
)

func init() {
	rootCmd.AddCommand(newFragCmd())
}

func newFragCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frag <inst-addr>",
		Short: "Resolve the physics LOD of a fragment instance",
		Long: `The frag command walks a fragment instance to its selected physics LOD and
lists the LOD's breakable children with their masses.

Example:
  layoutctl frag 0x7ff6a61f0a10 --pid 4242 --game-version 1.0.3095 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrag(args)
		},
	}
}

type fragChild struct {
	Index    int     `json:"index"`
	Bone     int     `json:"bone"`
	Group    int     `json:"group"`
	Pristine float32 `json:"pristine_mass"`
	Damaged  float32 `json:"damaged_mass"`
}

type fragInfo struct {
	Instance    string      `json:"instance"`
	Selector    int32       `json:"selector"`
	Slot        int         `json:"slot"`
	LOD         string      `json:"lod"`
	DamageRatio float32     `json:"damage_ratio"`
	Children    []fragChild `json:"children"`
}

func runFrag(args []string) error {
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	src, t, err := session()
	if err != nil {
		return err
	}
	defer src.Close()

	inst := fragment.NewInst(src, addr, &t.Fragment)
	lod, ok := inst.ResolveLOD()
	if !ok {
		return fmt.Errorf("fragment %s has no resolvable LOD", addr)
	}

	info := fragInfo{
		Instance:    addr.String(),
		Selector:    inst.Selector(),
		Slot:        fragment.SelectSlot(inst.Selector()),
		LOD:         lod.Addr().String(),
		DamageRatio: inst.DamageRatio(),
	}
	for i, c := range lod.Children() {
		info.Children = append(info.Children, fragChild{
			Index:    i,
			Bone:     c.BoneIndex(),
			Group:    c.Group(),
			Pristine: c.PristineMass(),
			Damaged:  c.DamagedMass(),
		})
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("Fragment %s\n", info.Instance)
	printInfo("  Selector:     %d (slot %d)\n", info.Selector, info.Slot)
	printInfo("  LOD:          %s\n", info.LOD)
	printInfo("  Damage ratio: %.3f\n", info.DamageRatio)
	printInfo("  Children:     %d of %d\n", len(info.Children), lod.ChildCount())
	for _, c := range info.Children {
		printInfo("    %3d  bone %-4d group %-3d mass %.2f -> %.2f\n", c.Index, c.Bone, c.Group, c.Pristine, c.Damaged)
	}
	return nil
}
