package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/layoutkit/internal/testutil"
)

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	pid = 0
	processName = ""
	snapshotPath = ""
	snapshotBase = ""
	gameVersion = ""
	layoutFile = ""
	poolBitmap = false
	poolLimit = 20
	nodeLinks = false
	bonesTree = false
}

// useSnapshot dumps h to a file and points the global flags at it.
func useSnapshot(t *testing.T, h *testutil.Host) {
	t.Helper()
	resetFlags()
	path := filepath.Join(t.TempDir(), "host.bin")
	require.NoError(t, os.WriteFile(path, h.Bytes(), 0o644))
	snapshotPath = path
	snapshotBase = testutil.HostBase.String()
	gameVersion = testutil.DefaultVersion
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String(), fnErr
}

// decodeJSON unmarshals output into v and fails the test on invalid JSON.
func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(output), v), "output: %s", output)
}
