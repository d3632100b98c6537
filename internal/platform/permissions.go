package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// windowsExecExts are tried, in order, when resolving a bare command name on
// Windows.
var windowsExecExts = []string{".exe", ".cmd", ".bat"}

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// MakeExecutable marks a generated script as runnable by its owner, group
// and others. The umask can strip bits from os.WriteFile, so this is applied
// after the file has been written.
func MakeExecutable(path string) error {
	return Chmod(path, 0755)
}

// IsExecutable reports whether path is a regular file the current platform
// would run.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range windowsExecExts {
			if ext == e {
				return true
			}
		}
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}

// CommandCandidates returns the file names that may hold the command name
// inside a single search directory.
func CommandCandidates(name string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(name) != "" {
		return []string{name}
	}
	names := make([]string, 0, len(windowsExecExts))
	for _, ext := range windowsExecExts {
		names = append(names, name+ext)
	}
	return names
}
