package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// setupStore points the CLI at a fresh sqlite file for the test.
func setupStore(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "board.db"))
	t.Setenv("PALETTE_FILE", "")
	t.Setenv("GRID_ROWS", "")
	t.Setenv("GRID_COLUMNS", "")
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("boardctl %v failed: %v", args, err)
	}
	return buf.String()
}

// expectError runs each argument list and fails unless the command errors.
func expectError(t *testing.T, cases ...[]string) {
	t.Helper()
	for _, args := range cases {
		root := newRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(args)
		if err := root.Execute(); err == nil {
			t.Errorf("boardctl %v: expected an error", args)
		}
	}
}

// newWorkspace creates and selects a workspace, returning its id.
func newWorkspace(t *testing.T) string {
	t.Helper()
	id := strings.TrimSpace(run(t, "new"))
	if id == "" {
		t.Fatal("expected a workspace id")
	}
	return id
}
