package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/canton-labs/create-canton-app/internal/catalog"
	"github.com/canton-labs/create-canton-app/internal/toolchain"
	"github.com/canton-labs/create-canton-app/internal/ui"
	securejoin "github.com/cyphar/filepath-securejoin"
)

// ErrProjectAlreadyExists is returned when the destination directory exists.
var ErrProjectAlreadyExists = errors.New("project folder already exists")

// Request describes one project to materialize.
type Request struct {
	ProjectName string
	// Dir is the absolute destination directory; see ResolveDestination.
	Dir      string
	Template catalog.Entry
	// Toolchain is the toolchain the project targets. Ready is false when
	// it is not installed, in which case generated docs carry install
	// instructions instead of build commands.
	Toolchain toolchain.Toolchain
	Ready     bool
	// SDKVersion is written to daml.yaml.
	SDKVersion string
	// NoTests skips the test helper script.
	NoTests bool
}

// Result holds the outcome of a successful materialization.
type Result struct {
	OutputDir string
	// Files lists generated paths relative to OutputDir, slash-separated.
	Files    []string
	Warnings []string
	// Delegated is set when the toolchain generated the project itself.
	Delegated bool
}

// Materializer writes projects to disk.
type Materializer struct {
	Exec *toolchain.ExecContext
	// Bundle holds one directory per static template id.
	Bundle fs.FS
	UI     *ui.Printer

	materialized map[string]bool
}

// NewMaterializer returns a Materializer copying static templates from bundle.
func NewMaterializer(ec *toolchain.ExecContext, bundle fs.FS, p *ui.Printer) *Materializer {
	return &Materializer{Exec: ec, Bundle: bundle, UI: p}
}

// ResolveDestination joins name onto cwd and rejects names that would land
// outside cwd (e.g. "../elsewhere" or absolute paths).
func ResolveDestination(cwd, name string) (string, error) {
	if name == "" || name == "." || filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid project name %q", name)
	}
	dest, err := securejoin.SecureJoin(cwd, name)
	if err != nil {
		return "", fmt.Errorf("resolving project directory for %q: %w", name, err)
	}
	if dest != filepath.Join(cwd, name) || dest == filepath.Clean(cwd) {
		return "", fmt.Errorf("invalid project name %q: must be a folder inside %s", name, cwd)
	}
	return dest, nil
}

// Materialize creates the project described by req. An existing destination
// fails with ErrProjectAlreadyExists before anything is written.
func (m *Materializer) Materialize(ctx context.Context, req Request) (*Result, error) {
	if m.materialized[req.Dir] {
		return nil, fmt.Errorf("%w: %s was already created in this run", ErrProjectAlreadyExists, req.Dir)
	}
	if _, err := os.Lstat(req.Dir); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectAlreadyExists, req.Dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", req.Dir, err)
	}

	if req.Template.Source == catalog.Dynamic {
		return m.delegate(ctx, req)
	}

	if err := os.Mkdir(req.Dir, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrProjectAlreadyExists, req.Dir)
		}
		return nil, fmt.Errorf("creating project directory: %w", err)
	}
	m.markMaterialized(req.Dir)

	result := &Result{OutputDir: req.Dir}

	copied, found, err := m.copyTemplate(req.Template.ID, req.Dir)
	if err != nil {
		return nil, fmt.Errorf("copying template %s: %w", req.Template.ID, err)
	}
	if found {
		result.Files = append(result.Files, copied...)
	} else {
		msg := fmt.Sprintf("Template %s not found, creating empty structure...", req.Template.ID)
		result.Warnings = append(result.Warnings, msg)
		if m.UI != nil {
			m.UI.Warn("%s", msg)
		}
		if err := os.MkdirAll(filepath.Join(req.Dir, sourceDir), 0755); err != nil {
			return nil, fmt.Errorf("creating %s directory: %w", sourceDir, err)
		}
	}

	for _, sub := range []string{"scripts", "config"} {
		if err := os.MkdirAll(filepath.Join(req.Dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("creating %s directory: %w", sub, err)
		}
	}

	generated, warnings, err := writeProjectFiles(req)
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, generated...)
	result.Warnings = append(result.Warnings, warnings...)

	return result, nil
}

// delegate runs the toolchain's project generator in the parent directory.
// The toolchain owns the whole tree; nothing generic is added afterwards.
func (m *Materializer) delegate(ctx context.Context, req Request) (*Result, error) {
	if !req.Ready {
		return nil, fmt.Errorf("%w: %s is needed to generate template %s", toolchain.ErrToolchainMissing, req.Toolchain.Binary, req.Template.ID)
	}

	parent, name := filepath.Split(req.Dir)
	tc := req.Toolchain
	if _, err := m.Exec.Invoke(ctx, tc, parent, tc.GenerateArgs(req.Template.ID, name)...); err != nil {
		return nil, fmt.Errorf("generating project with %s: %w", tc.Binary, err)
	}
	m.markMaterialized(req.Dir)

	files, err := listFiles(req.Dir)
	if err != nil {
		return nil, fmt.Errorf("%s did not create %s: %w", tc.CommandLine(tc.GenerateArgs(req.Template.ID, name)...), req.Dir, err)
	}
	return &Result{OutputDir: req.Dir, Files: files, Delegated: true}, nil
}

func (m *Materializer) markMaterialized(dir string) {
	if m.materialized == nil {
		m.materialized = make(map[string]bool)
	}
	m.materialized[dir] = true
}

// copyTemplate copies the bundled directory for id into dest. found is false
// when the bundle has no such template.
func (m *Materializer) copyTemplate(id, dest string) (files []string, found bool, err error) {
	if m.Bundle == nil || !fs.ValidPath(id) || id == "." {
		return nil, false, nil
	}
	info, err := fs.Stat(m.Bundle, id)
	if err != nil || !info.IsDir() {
		return nil, false, nil
	}
	files, err = copyFS(m.Bundle, id, dest)
	return files, true, err
}

// listFiles returns the regular files below dir, relative and slash-separated.
func listFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				return relErr
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	return files, err
}
