package main

import (
	"strings"
	"testing"
)

func TestRunClear(t *testing.T) {
	setupStore(t)
	newWorkspace(t)
	run(t, "place", "cercle")

	out := run(t, "clear", "--at", "1,1")
	if !strings.Contains(out, "cleared cell") {
		t.Errorf("unexpected clear output: %s", out)
	}

	out = run(t, "show")
	if strings.Contains(out, "cercle") {
		t.Errorf("cleared tile still rendered: %s", out)
	}
}

func TestRunClear_unknownCell(t *testing.T) {
	setupStore(t)

	expectError(t, []string{"clear", "--cell", "99999"})
}
