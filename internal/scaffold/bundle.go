package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed templates
var bundledTemplates embed.FS

//go:embed scaffolds
var scaffoldFS embed.FS

// Bundle returns the static template bundle. An empty dir selects the
// templates compiled into the binary; otherwise dir must be a directory
// holding one subdirectory per template id.
func Bundle(dir string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(bundledTemplates, "templates")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
