package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/joshuapare/layoutkit/internal/logger"
	"github.com/joshuapare/layoutkit/layout"
	"github.com/joshuapare/layoutkit/mem"
)

var errNoSource = errors.New("no memory source: set --snapshot, --pid or --process")

// source is an open memory source plus what is needed to release it.
type source struct {
	mem.Memory
	desc  string
	close func() error
}

func (s *source) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// openSource opens the memory source selected by the global flags. A
// snapshot wins over a pid, and a pid wins over a process name.
func openSource() (*source, error) {
	switch {
	case snapshotPath != "":
		base, err := parseAddr(snapshotBase)
		if err != nil {
			return nil, fmt.Errorf("--snapshot-base: %w", err)
		}
		snap, err := mem.OpenSnapshot(snapshotPath, base)
		if err != nil {
			return nil, err
		}
		desc := fmt.Sprintf("snapshot %s (%s at %s)", snapshotPath, humanize.IBytes(uint64(snap.Len())), base)
		return &source{Memory: snap, desc: desc, close: snap.Close}, nil

	case pid > 0:
		return attach(pid)

	case processName != "":
		id, err := findProcess(processName)
		if err != nil {
			return nil, err
		}
		return attach(id)
	}
	return nil, errNoSource
}

func attach(id int) (*source, error) {
	p, err := mem.OpenProcess(id)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("process %d", id)
	if proc, err := process.NewProcess(int32(id)); err == nil {
		if name, err := proc.Name(); err == nil {
			desc = fmt.Sprintf("process %s (pid %d)", name, id)
		}
		if created, err := proc.CreateTime(); err == nil {
			desc += ", started " + humanize.Time(time.UnixMilli(created))
		}
	}
	logger.Info("attached", "pid", id)
	return &source{Memory: p, desc: desc, close: p.Close}, nil
}

// findProcess returns the pid of the first running process whose executable
// name matches name, ignoring case.
func findProcess(name string) (int, error) {
	procs, err := process.Processes()
	if err != nil {
		return 0, fmt.Errorf("list processes: %w", err)
	}
	for _, p := range procs {
		n, err := p.Name()
		if err != nil {
			continue
		}
		if strings.EqualFold(n, name) {
			return int(p.Pid), nil
		}
	}
	return 0, fmt.Errorf("no running process named %q", name)
}

// loadRegistry returns the built-in offset tables plus --layout-file.
func loadRegistry() (*layout.Registry, error) {
	reg, err := layout.Default()
	if err != nil {
		return nil, err
	}
	if layoutFile != "" {
		if err := reg.LoadFile(layoutFile); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// loadTable selects the offset table for --game-version.
func loadTable() (*layout.Table, error) {
	if gameVersion == "" {
		return nil, errors.New("--game-version is required to select an offset table")
	}
	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	t, err := reg.Lookup(gameVersion)
	if err != nil {
		return nil, err
	}
	printVerbose("Offset table: %s (%s)\n", t.Name, t.Versions)
	return t, nil
}

// session opens both the memory source and the offset table.
func session() (*source, *layout.Table, error) {
	t, err := loadTable()
	if err != nil {
		return nil, nil, err
	}
	src, err := openSource()
	if err != nil {
		return nil, nil, err
	}
	printVerbose("Reading %s\n", src.desc)
	return src, t, nil
}

// parseAddr parses a hex address, with or without a 0x prefix.
func parseAddr(s string) (mem.Addr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("address is empty")
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if v == 0 {
		return 0, fmt.Errorf("invalid address %q: null", s)
	}
	return mem.Addr(v), nil
}
