package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/canton-labs/create-canton-app/internal/toolchain"
)

type stubRunner struct {
	out  *toolchain.Output
	err  error
	args [][]string
}

func (s *stubRunner) Run(_ context.Context, c toolchain.Command) (*toolchain.Output, error) {
	s.args = append(s.args, c.Args)
	return s.out, s.err
}

func newDynamicCatalog(t *testing.T, out *toolchain.Output) (*Catalog, *stubRunner) {
	t.Helper()
	bin := t.TempDir()
	if err := os.WriteFile(filepath.Join(bin, "dpm"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	runner := &stubRunner{out: out}
	return &Catalog{Exec: &toolchain.ExecContext{Path: bin, Runner: runner}}, runner
}

func TestListStatic(t *testing.T) {
	c := &Catalog{}
	entries := c.List(context.Background(), Static, toolchain.Toolchain{})

	var ids []string
	for _, e := range entries {
		if e.Source != Static {
			t.Errorf("entry %q has source %v, want static", e.ID, e.Source)
		}
		ids = append(ids, e.ID)
	}
	want := []string{"token", "escrow", "empty"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestStaticEntriesIsACopy(t *testing.T) {
	entries := StaticEntries()
	entries[0].ID = "mutated"
	if e, ok := LookupStatic("token"); !ok || e.ID != "token" {
		t.Error("mutating the returned slice must not change the bundled list")
	}
}

func TestListDynamic(t *testing.T) {
	c, runner := newDynamicCatalog(t, &toolchain.Output{
		Stdout: "The following templates are available:\nalpha\n",
	})

	entries := c.List(context.Background(), Dynamic, toolchain.ForKind(toolchain.Successor))
	if len(entries) != 1 || entries[0] != DynamicEntry("alpha") {
		t.Fatalf("entries = %+v, want [alpha]", entries)
	}
	if got := runner.args[0]; len(got) != 2 || got[0] != "new" || got[1] != "--list" {
		t.Errorf("listing args = %v, want [new --list]", got)
	}
}

func TestListDynamic_NonZeroExitIsEmpty(t *testing.T) {
	c, _ := newDynamicCatalog(t, &toolchain.Output{
		ExitCode: 1,
		Stdout:   "The following templates are available:\nalpha\n",
	})

	if entries := c.List(context.Background(), Dynamic, toolchain.ForKind(toolchain.Successor)); len(entries) != 0 {
		t.Errorf("entries = %+v, want empty", entries)
	}
}

func TestListDynamic_MissingToolchainIsEmpty(t *testing.T) {
	c := &Catalog{Exec: &toolchain.ExecContext{Path: t.TempDir(), Runner: &stubRunner{}}}
	if entries := c.List(context.Background(), Dynamic, toolchain.ForKind(toolchain.Successor)); len(entries) != 0 {
		t.Errorf("entries = %+v, want empty", entries)
	}
}
