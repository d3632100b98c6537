package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.txt")
	if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, 0600); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

func TestMakeExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}
	path := filepath.Join(t.TempDir(), "compile.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if IsExecutable(path) {
		t.Fatal("plain file reported executable before MakeExecutable")
	}

	if err := MakeExecutable(path); err != nil {
		t.Fatalf("MakeExecutable: %v", err)
	}
	if !IsExecutable(path) {
		t.Error("IsExecutable = false after MakeExecutable")
	}
}

func TestIsExecutableRejectsDirsAndMissing(t *testing.T) {
	tmp := t.TempDir()
	if IsExecutable(tmp) {
		t.Error("directory reported executable")
	}
	if IsExecutable(filepath.Join(tmp, "missing")) {
		t.Error("missing file reported executable")
	}
}

func TestCommandCandidates(t *testing.T) {
	got := CommandCandidates("dpm")
	if runtime.GOOS == "windows" {
		if len(got) != 3 || got[0] != "dpm.exe" {
			t.Errorf("CommandCandidates(dpm) = %v", got)
		}
		return
	}
	if len(got) != 1 || got[0] != "dpm" {
		t.Errorf("CommandCandidates(dpm) = %v, want [dpm]", got)
	}
}
