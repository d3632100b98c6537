//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME; installers put toolchains below it
	ConfigDir  string // CANTON_HOME
	BinDir     string // first entry on PATH, ahead of the system dirs
	ProjectDir string // working directory new projects are created in
}

// setupTestEnv creates isolated temp directories and points HOME, PATH and
// CANTON_HOME at them. PATH keeps /bin and /usr/bin for the shell utilities
// the fake toolchain needs. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ConfigDir:  t.TempDir(),
		BinDir:     t.TempDir(),
		ProjectDir: t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("CANTON_HOME", env.ConfigDir)
	t.Setenv("PATH", strings.Join([]string{env.BinDir, "/bin", "/usr/bin"}, string(os.PathListSeparator)))

	return env
}

// fakeDPM is a shell stand-in for dpm covering the subcommands the CLI uses.
const fakeDPM = `#!/bin/sh
case "$1" in
version)
  echo "dpm 3.4.9 (build e2e)"
  ;;
new)
  if [ "$2" = "--list" ]; then
    echo "The following templates are available:"
    echo "  quickstart"
    echo "  multi-package"
    echo ""
    echo "The list may be incomplete."
    exit 0
  fi
  if [ "$2" = "--template" ]; then
    if [ -e "$4" ]; then
      echo "$4 already exists" >&2
      exit 1
    fi
    mkdir -p "$4/daml" || exit 1
    echo "name: $4" > "$4/daml.yaml"
    echo "module Main where" > "$4/daml/Main.daml"
    exit 0
  fi
  ;;
build)
  echo "Created .daml/dist/project-1.0.0.dar"
  ;;
test)
  echo "Test Summary: ok"
  ;;
*)
  echo "unknown command $1" >&2
  exit 2
  ;;
esac
`

// installFakeDPM writes fakeDPM into dir as an executable named dpm.
func installFakeDPM(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "dpm"), fakeDPM)
	if err := os.Chmod(filepath.Join(dir, "dpm"), 0755); err != nil {
		t.Fatal(err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
