package main

import (
	"strings"
	"testing"
)

func TestRunSelect_acceptsFragment(t *testing.T) {
	setupStore(t)

	first := newWorkspace(t)
	run(t, "place", "cercle")
	newWorkspace(t)

	out := run(t, "select", "#"+first)
	if !strings.Contains(out, first) || !strings.Contains(out, "cercle") {
		t.Errorf("select should load the stored board: %s", out)
	}
}
