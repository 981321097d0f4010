package main

import (
	"strings"
	"testing"
)

func TestRunShow(t *testing.T) {
	setupStore(t)
	id := newWorkspace(t)
	run(t, "place", "cercle")

	out := run(t, "show")
	for _, want := range []string{id, "cercle", "mode: designer"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q: %s", want, out)
		}
	}
}

func TestRunShow_viewMode(t *testing.T) {
	setupStore(t)
	newWorkspace(t)

	out := run(t, "--view", "show")
	if !strings.Contains(out, "mode: view") {
		t.Errorf("--view should render in view mode: %s", out)
	}
}
