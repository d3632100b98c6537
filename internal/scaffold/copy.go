package scaffold

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// excludedNames are files/directories never copied out of a template bundle.
var excludedNames = map[string]bool{
	".daml":        true,
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// copyFS recursively copies the directory root of fsys into dst, which must
// already exist. It returns the copied files relative to dst.
func copyFS(fsys fs.FS, root, dst string) ([]string, error) {
	var files []string

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		if excludedNames[d.Name()] {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel := p[len(root)+1:]
		target := filepath.Join(dst, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		// Skip symlinks and other special files during copy.
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(fsys, p, target); err != nil {
			return err
		}
		files = append(files, path.Clean(rel))
		return nil
	})

	return files, err
}

// copyFile copies a single file, keeping its executable bits.
func copyFile(fsys fs.FS, src, dst string) error {
	data, err := fs.ReadFile(fsys, src)
	if err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, err := fs.Stat(fsys, src); err == nil && info.Mode().Perm()&0o111 != 0 {
		mode = 0755
	}

	return os.WriteFile(dst, data, mode)
}
