package toolchain

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

// Kind identifies one of the supported toolchains.
type Kind int

const (
	// Successor is the dpm package manager.
	Successor Kind = iota
	// Legacy is the daml assistant that dpm replaces.
	Legacy
)

func (k Kind) String() string {
	switch k {
	case Successor:
		return "dpm"
	case Legacy:
		return "daml"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Toolchain is the capability record for one toolchain kind.
type Toolchain struct {
	Kind        Kind
	DisplayName string
	// Binary is the executable looked up on the search path.
	Binary      string
	VersionArgs []string
	ListArgs    []string
	BuildArgs   []string
	TestArgs    []string
	// InstallCommand is a shell pipeline fetching and running the vendor installer.
	InstallCommand string
	// PostInstallDir is where the installer puts the binary, relative to $HOME.
	PostInstallDir string
	// MinimumVersion is the oldest version known to work with generated projects.
	MinimumVersion string
}

var toolchains = map[Kind]Toolchain{
	Successor: {
		Kind:           Successor,
		DisplayName:    "Digital Asset Package Manager (dpm)",
		Binary:         "dpm",
		VersionArgs:    []string{"version"},
		ListArgs:       []string{"new", "--list"},
		BuildArgs:      []string{"build"},
		TestArgs:       []string{"test"},
		InstallCommand: "curl -sSL https://get.digitalasset.com/install/install.sh | sh",
		PostInstallDir: ".dpm/bin",
		MinimumVersion: "3.3.0",
	},
	Legacy: {
		Kind:           Legacy,
		DisplayName:    "Daml SDK",
		Binary:         "daml",
		VersionArgs:    []string{"version"},
		ListArgs:       []string{"new", "--list"},
		BuildArgs:      []string{"build"},
		TestArgs:       []string{"test"},
		InstallCommand: "curl -sSL https://get.daml.com/ | sh",
		PostInstallDir: ".daml/bin",
		MinimumVersion: "2.0.0",
	},
}

// ForKind returns the capability record for k.
func ForKind(k Kind) Toolchain {
	return toolchains[k]
}

// ParseKind maps a binary name ("dpm", "daml") to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, tc := range toolchains {
		if tc.Binary == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown toolchain %q: supported toolchains are %q and %q", name, "dpm", "daml")
}

// DetectionOrder returns the toolchains to probe, newest first. The legacy
// assistant is only considered when allowLegacy is set.
func DetectionOrder(allowLegacy bool) []Toolchain {
	order := []Toolchain{ForKind(Successor)}
	if allowLegacy {
		order = append(order, ForKind(Legacy))
	}
	return order
}

// GenerateArgs returns the arguments that make the toolchain create a
// project named name from its own template id.
func (tc Toolchain) GenerateArgs(templateID, name string) []string {
	return []string{"new", "--template", templateID, name}
}

// CommandLine renders the binary plus args as a copy-pasteable shell line.
func (tc Toolchain) CommandLine(args ...string) string {
	return shellquote.Join(append([]string{tc.Binary}, args...)...)
}

// BuildCommand returns the shell line that compiles a project, e.g. "dpm build".
func (tc Toolchain) BuildCommand() string { return tc.CommandLine(tc.BuildArgs...) }

// TestCommand returns the shell line that runs a project's tests.
func (tc Toolchain) TestCommand() string { return tc.CommandLine(tc.TestArgs...) }

// PathExport returns the shell line users add to their rc file so the
// installed binary stays on PATH in new shells.
func (tc Toolchain) PathExport() string {
	return fmt.Sprintf(`export PATH="$HOME/%s:$PATH"`, tc.PostInstallDir)
}
