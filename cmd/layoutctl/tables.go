package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newTablesCmd())
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List known offset tables",
		Long: `The tables command lists the built-in offset tables and any loaded from
--layout-file, in precedence order (later entries win). With --game-version
the table that version selects is marked.

Example:
  layoutctl tables
  layoutctl tables --game-version 1.0.3095
  layoutctl tables --layout-file calib.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables()
		},
	}
}

type tableInfo struct {
	Name     string `json:"name"`
	Versions string `json:"versions"`
	Selected bool   `json:"selected,omitempty"`
}

func runTables() error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	var selected string
	if gameVersion != "" {
		t, err := reg.Lookup(gameVersion)
		if err != nil {
			return err
		}
		selected = t.Name
	}

	var infos []tableInfo
	for _, t := range reg.Tables() {
		infos = append(infos, tableInfo{Name: t.Name, Versions: t.Versions, Selected: t.Name == selected})
	}

	if jsonOut {
		return printJSON(map[string]any{
			"tables": infos,
			"count":  len(infos),
		})
	}

	for _, ti := range infos {
		mark := " "
		if ti.Selected {
			mark = "*"
		}
		printInfo("%s %-12s %s\n", mark, ti.Name, ti.Versions)
	}
	printInfo("\nTotal: %d tables\n", len(infos))
	return nil
}
