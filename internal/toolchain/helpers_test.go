package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner records commands and answers them from respond.
type fakeRunner struct {
	calls   []Command
	respond func(Command) (*Output, error)
}

func (f *fakeRunner) Run(_ context.Context, c Command) (*Output, error) {
	f.calls = append(f.calls, c)
	if f.respond == nil {
		return &Output{}, nil
	}
	return f.respond(c)
}

// writeExecutable drops an executable stub named name into dir.
func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestContext(t *testing.T, runner Runner, pathDirs ...string) *ExecContext {
	t.Helper()
	return &ExecContext{
		Path:   strings.Join(pathDirs, string(os.PathListSeparator)),
		Home:   t.TempDir(),
		Env:    []string{"PATH=/should/be/replaced", "LANG=C"},
		Runner: runner,
	}
}
