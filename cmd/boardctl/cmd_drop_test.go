package main

import (
	"strings"
	"testing"
)

func TestRunDrop(t *testing.T) {
	setupStore(t)
	newWorkspace(t)

	out := run(t, "drop", "fleur", "--at", "2,5")
	if !strings.Contains(out, "row 2, column 5") {
		t.Errorf("unexpected drop output: %s", out)
	}

	out = run(t, "show")
	if !strings.Contains(out, "fleur") {
		t.Errorf("dropped tile should be persisted: %s", out)
	}
}

func TestRunDrop_errors(t *testing.T) {
	setupStore(t)

	expectError(t,
		[]string{"drop", "fleur"},
		[]string{"drop", "fleur", "--at", "9,9"},
		[]string{"drop", "fleur", "--at", "x"},
		[]string{"drop", "fleur", "--at", "1,1", "--cell", "1"},
	)
}
