//go:build integration

package integration_test

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/canton-labs/create-canton-app/internal/catalog"
	"github.com/canton-labs/create-canton-app/internal/config"
	"github.com/canton-labs/create-canton-app/internal/create"
	"github.com/canton-labs/create-canton-app/internal/prompt"
	"github.com/canton-labs/create-canton-app/internal/scaffold"
	"github.com/canton-labs/create-canton-app/internal/toolchain"
	"github.com/canton-labs/create-canton-app/internal/ui"
)

func newOrchestrator(t *testing.T, env *testEnv, answers ...string) *create.Orchestrator {
	t.Helper()
	ec := toolchain.NewExecContext()
	p := ui.Discard()
	script := prompt.NewScript(answers...)
	bundle, err := scaffold.Bundle("")
	if err != nil {
		t.Fatal(err)
	}
	return &create.Orchestrator{
		Exec:         ec,
		Prompter:     script,
		UI:           p,
		Installer:    &toolchain.Installer{Prompter: script, UI: p},
		Catalog:      &catalog.Catalog{Exec: ec, UI: p},
		Materializer: scaffold.NewMaterializer(ec, bundle, p),
		Settings: config.Settings{
			SDKVersion:         config.DefaultSDKVersion,
			DefaultProjectName: config.DefaultProjectName,
		},
		Cwd: env.ProjectDir,
	}
}

// TestFullFlowDynamicTemplate drives the real subprocess runner against a
// scripted dpm: detect, list, generate, then build and test inside the result.
func TestFullFlowDynamicTemplate(t *testing.T) {
	if _, err := exec.LookPath("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}
	env := setupTestEnv(t)
	installFakeDPM(t, env.BinDir)

	orch := newOrchestrator(t, env, "toolchain", "multi-package")
	out, err := orch.Run(context.Background(), create.Options{ProjectName: "alpha"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Result.Delegated {
		t.Fatal("expected the toolchain to generate the project")
	}

	dir := filepath.Join(env.ProjectDir, "alpha")
	assertFileContains(t, filepath.Join(dir, "daml.yaml"), "name: alpha")
	assertFileNotExists(t, filepath.Join(dir, "scripts"))
	assertFileNotExists(t, filepath.Join(dir, "README.md"))

	tc := out.Toolchain
	build, err := orch.Exec.Invoke(context.Background(), tc, dir, tc.BuildArgs...)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if build.Stdout == "" {
		t.Error("build produced no output")
	}
}

// TestFullFlowStaticTemplateScripts creates a bundled project and runs its
// generated compile script.
func TestFullFlowStaticTemplateScripts(t *testing.T) {
	env := setupTestEnv(t)
	installFakeDPM(t, env.BinDir)

	orch := newOrchestrator(t, env, "bundled", "token")
	if _, err := orch.Run(context.Background(), create.Options{ProjectName: "tokens"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	dir := filepath.Join(env.ProjectDir, "tokens")
	for _, rel := range []string{"daml/Token.daml", "daml/TokenTest.daml", "scripts/compile.sh", "scripts/test.sh", "daml.yaml", ".gitignore", "README.md"} {
		assertFileExists(t, filepath.Join(dir, filepath.FromSlash(rel)))
	}
	assertFileContains(t, filepath.Join(dir, "README.md"), "dpm build")

	cmd := exec.Command(filepath.Join(dir, "scripts", "compile.sh"))
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("compile.sh: %v\n%s", err, output)
	}
}

// TestGeneratedScriptWithoutToolchain checks the guard in generated scripts
// when the toolchain is missing at run time.
func TestGeneratedScriptWithoutToolchain(t *testing.T) {
	env := setupTestEnv(t)

	orch := newOrchestrator(t, env, "n", "empty")
	if _, err := orch.Run(context.Background(), create.Options{ProjectName: "bare"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	dir := filepath.Join(env.ProjectDir, "bare")
	cmd := exec.Command("/bin/sh", filepath.Join(dir, "scripts", "compile.sh"))
	cmd.Dir = dir
	cmd.Env = []string{"PATH=" + env.BinDir}
	output, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("compile.sh err = %v, want exit 1\n%s", err, output)
	}
}
