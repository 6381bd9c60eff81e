package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/joshuapare/layoutkit/internal/logger"
)

var (
	// Global flags
	verbose      bool
	quiet        bool
	jsonOut      bool
	pid          int
	processName  string
	snapshotPath string
	snapshotBase string
	gameVersion  string
	layoutFile   string
)

// envConfig supplies defaults for global flags the user did not set.
type envConfig struct {
	PID          int    `env:"LAYOUTCTL_PID"`
	Process      string `env:"LAYOUTCTL_PROCESS"`
	Snapshot     string `env:"LAYOUTCTL_SNAPSHOT"`
	SnapshotBase string `env:"LAYOUTCTL_SNAPSHOT_BASE"`
	GameVersion  string `env:"LAYOUTCTL_GAME_VERSION"`
	LayoutFile   string `env:"LAYOUTCTL_LAYOUT_FILE"`
	LogDir       string `env:"LAYOUTCTL_LOG_DIR"`
}

var rootCmd = &cobra.Command{
	Use:   "layoutctl",
	Short: "Inspect host data structures in a live process or memory snapshot",
	Long: `layoutctl decodes a host program's slot pools, road network, skeletons
and fragment LOD chains using the calibrated offset table for the host's
version. Memory comes from a live process (--pid or --process) or a raw dump
mapped at the address it was captured from (--snapshot, --snapshot-base).

Every global flag can also be set through a LAYOUTCTL_* environment variable,
e.g. LAYOUTCTL_GAME_VERSION=1.0.3095.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging to stderr")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	pf.BoolVar(&jsonOut, "json", false, "Output in JSON format")
	pf.IntVar(&pid, "pid", 0, "Attach to the process with this id")
	pf.StringVar(&processName, "process", "", "Attach to the first process with this executable name")
	pf.StringVar(&snapshotPath, "snapshot", "", "Read memory from a raw dump file")
	pf.StringVar(&snapshotBase, "snapshot-base", "", "Address the dump's first byte was captured from (hex)")
	pf.StringVar(&gameVersion, "game-version", "", "Host version used to select the offset table")
	pf.StringVar(&layoutFile, "layout-file", "", "Extra offset table YAML, takes precedence over built-ins")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup fills unset flags from the environment and configures logging.
func setup(cmd *cobra.Command, _ []string) error {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	applyEnv(cmd, cfg)

	opts := logger.Options{Enabled: verbose, Level: slog.LevelDebug, Text: true, Writer: os.Stderr}
	if cfg.LogDir != "" {
		opts = logger.Options{Enabled: true, LogDir: cfg.LogDir, Level: slog.LevelDebug}
	}
	if err := logger.Init(opts); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logger.Debug("command", "name", cmd.CommandPath())
	return nil
}

func applyEnv(cmd *cobra.Command, cfg envConfig) {
	flags := cmd.Flags()
	if !flags.Changed("pid") && cfg.PID != 0 {
		pid = cfg.PID
	}
	if !flags.Changed("process") && cfg.Process != "" {
		processName = cfg.Process
	}
	if !flags.Changed("snapshot") && cfg.Snapshot != "" {
		snapshotPath = cfg.Snapshot
	}
	if !flags.Changed("snapshot-base") && cfg.SnapshotBase != "" {
		snapshotBase = cfg.SnapshotBase
	}
	if !flags.Changed("game-version") && cfg.GameVersion != "" {
		gameVersion = cfg.GameVersion
	}
	if !flags.Changed("layout-file") && cfg.LayoutFile != "" {
		layoutFile = cfg.LayoutFile
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
