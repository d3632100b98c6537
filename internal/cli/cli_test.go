package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/canton-labs/create-canton-app/internal/config"
	"github.com/canton-labs/create-canton-app/internal/toolchain"
)

// resetFlags restores every flag in the tree to its default so commands can
// be executed repeatedly within one test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// isolate points HOME, PATH and the config directory at temp dirs and moves
// into a fresh working directory.
func isolate(t *testing.T, pathDirs ...string) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CANTON_HOME", t.TempDir())
	t.Setenv("PATH", strings.Join(pathDirs, string(os.PathListSeparator)))
	cwd := t.TempDir()
	t.Chdir(cwd)
	return cwd
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeStub(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestVersionShort(t *testing.T) {
	isolate(t)
	buildVersion = "1.2.3"
	t.Cleanup(func() { buildVersion = "" })

	out, err := executeCommand(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("output = %q, want 1.2.3", out)
	}
}

func TestCreateNonInteractive(t *testing.T) {
	cwd := isolate(t)

	out, err := executeCommand(t, "demo", "--yes", "-t", "empty")
	if err != nil {
		t.Fatalf("create: %v\n%s", err, out)
	}
	for _, rel := range []string{"scripts/compile.sh", "scripts/test.sh", "daml.yaml", ".gitignore", "README.md"} {
		if _, err := os.Stat(filepath.Join(cwd, "demo", filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s missing: %v", rel, err)
		}
	}
	for _, want := range []string{"Skipping Digital Asset Package Manager (dpm) installation", "Project created successfully!", "cd demo"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// A second run must refuse to touch the existing project.
	_, err = executeCommand(t, "demo", "--yes", "-t", "empty")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("second create err = %v, want already exists", err)
	}
}

func TestCreateNoTestsFlag(t *testing.T) {
	cwd := isolate(t)

	if out, err := executeCommand(t, "lean", "--yes", "--template=token", "--no-tests"); err != nil {
		t.Fatalf("create: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(cwd, "lean", "scripts", "test.sh")); !os.IsNotExist(err) {
		t.Errorf("test.sh written despite --no-tests, err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(cwd, "lean", "daml", "Token.daml")); err != nil {
		t.Errorf("token template not copied: %v", err)
	}
}

func TestCompileWithoutToolchain(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "compile")
	if !errors.Is(err, toolchain.ErrToolchainMissing) {
		t.Fatalf("err = %v, want ErrToolchainMissing", err)
	}
	if !strings.Contains(out, "not found!") || !strings.Contains(out, "get.digitalasset.com") {
		t.Errorf("output lacks install guidance:\n%s", out)
	}
}

func TestTestCommandReportsResults(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "dpm", `case "$1" in
version) echo "dpm 3.4.9" ;;
test) echo "3 tests passed" ;;
esac
`)
	isolate(t, bin)

	out, err := executeCommand(t, "test")
	if err != nil {
		t.Fatalf("test: %v\n%s", err, out)
	}
	if !strings.Contains(out, "All tests passed!") || !strings.Contains(out, "3 tests passed") {
		t.Errorf("output = %q", out)
	}
}

func TestCompileWithPinnedToolchain(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "daml", `case "$1" in
version) echo "2.10.0" ;;
build) echo "built with daml" ;;
esac
`)
	isolate(t, bin)

	if _, err := executeCommand(t, "compile"); !errors.Is(err, toolchain.ErrToolchainMissing) {
		t.Fatalf("compile without --toolchain: err = %v, want ErrToolchainMissing", err)
	}
	out, err := executeCommand(t, "compile", "--toolchain", "daml")
	if err != nil {
		t.Fatalf("compile --toolchain daml: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Contracts compiled successfully!") {
		t.Errorf("output = %q", out)
	}

	_, err = executeCommand(t, "compile", "--toolchain", "npm")
	if err == nil || !strings.Contains(err.Error(), `unknown toolchain "npm"`) {
		t.Errorf("err = %v, want unknown toolchain", err)
	}
}

func TestCompileFailureExitsWithError(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "dpm", `case "$1" in
version) echo "dpm 3.4.9" ;;
build) echo "type error in Main.daml" >&2; exit 1 ;;
esac
`)
	isolate(t, bin)

	out, err := executeCommand(t, "compile")
	var exitErr *toolchain.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want *toolchain.ExitError", err)
	}
	if !strings.Contains(out, "Compilation failed!") || !strings.Contains(out, "type error in Main.daml") {
		t.Errorf("output = %q", out)
	}
}

func TestTemplatesJSONWithoutToolchain(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "templates", "--json")
	if err != nil {
		t.Fatalf("templates: %v", err)
	}

	var list []templateJSON
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("output is not a JSON document: %v\n%s", err, out)
	}
	var ids []string
	for _, e := range list {
		if e.Source != "static" {
			t.Errorf("template %s source = %q, want static", e.ID, e.Source)
		}
		ids = append(ids, e.ID)
	}
	if want := []string{"token", "escrow", "empty"}; !slices.Equal(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestBannerShownForPlainTemplates(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "templates")
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	if !strings.Contains(out, "Bundled templates") {
		t.Errorf("output missing listing:\n%s", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "Bundled templates") {
		t.Errorf("banner missing before listing:\n%s", out)
	}
}

func TestConfigSetGet(t *testing.T) {
	isolate(t)

	if _, err := executeCommand(t, "config", "set", config.KeySDKVersion, "3.3.0"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	viper.Reset()
	out, err := executeCommand(t, "config", "get", config.KeySDKVersion)
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "3.3.0" {
		t.Errorf("config get = %q, want 3.3.0", out)
	}

	if _, err := executeCommand(t, "config", "set", "nope", "x"); err == nil {
		t.Error("config set accepted an unknown key")
	}
}

func TestDoctorWithoutToolchain(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "doctor")
	if !errors.Is(err, errDoctorFailed) {
		t.Fatalf("err = %v, want errDoctorFailed", err)
	}
	if !strings.Contains(out, "dpm: not found") || !strings.Contains(out, "java: not found") {
		t.Errorf("output = %q", out)
	}
}
