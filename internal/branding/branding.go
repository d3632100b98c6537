// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

// Link is a titled documentation link rendered into generated READMEs.
type Link struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	Tagline     string `yaml:"tagline"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	DocsLinks   []Link `yaml:"docs_links"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "create-canton-app",
			DisplayName: "Canton",
			Description: "Scaffold Canton/Daml projects instantly",
			Tagline:     "Build privacy-first dApps in minutes",
			HomeDir:     ".create-canton-app",
			EnvPrefix:   "CANTON",
			GoModule:    "github.com/canton-labs/create-canton-app",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-canton-app").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Canton").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// Tagline returns the one-line slogan printed under the banner.
func Tagline() string { load(); return defaults.Tagline }

// HomeDir returns the dot-directory name under $HOME (e.g., ".create-canton-app").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CANTON").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// DocsLinks returns the documentation links listed in generated READMEs.
func DocsLinks() []Link {
	load()
	out := make([]Link, len(defaults.DocsLinks))
	copy(out, defaults.DocsLinks)
	return out
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("home") → "CANTON_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
