package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/kballard/go-shellquote"
	"go.yaml.in/yaml/v3"

	"github.com/canton-labs/create-canton-app/internal/branding"
	"github.com/canton-labs/create-canton-app/internal/config"
	"github.com/canton-labs/create-canton-app/internal/platform"
	"github.com/canton-labs/create-canton-app/internal/toolchain"
)

const (
	// sourceDir holds the Daml sources of a project.
	sourceDir = "daml"

	projectConfigFile = "daml.yaml"
	projectVersion    = "1.0.0"
)

var projectDependencies = []string{"daml-prim", "daml-stdlib", "daml-script"}

var scaffoldTemplates = template.Must(template.ParseFS(scaffoldFS, "scaffolds/*.tmpl"))

// ProjectConfig is the daml.yaml build configuration of a project.
type ProjectConfig struct {
	SDKVersion   string   `yaml:"sdk-version"`
	Name         string   `yaml:"name"`
	Source       string   `yaml:"source"`
	Version      string   `yaml:"version"`
	Dependencies []string `yaml:"dependencies"`
}

// NewProjectConfig returns the daml.yaml content for a new project.
func NewProjectConfig(name, sdkVersion string) ProjectConfig {
	if sdkVersion == "" {
		sdkVersion = config.DefaultSDKVersion
	}
	return ProjectConfig{
		SDKVersion:   sdkVersion,
		Name:         name,
		Source:       sourceDir,
		Version:      projectVersion,
		Dependencies: append([]string(nil), projectDependencies...),
	}
}

// Marshal renders the configuration as YAML with two-space indentation.
func (c ProjectConfig) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// scaffoldData holds the variables available to the scaffolds/*.tmpl files.
type scaffoldData struct {
	Name           string
	CLIName        string
	Template       string
	Ready          bool
	WithTests      bool
	ToolchainName  string
	Binary         string
	QuotedInstall  string
	BuildCommand   string
	TestCommand    string
	InstallCommand string
	InstallSteps   []string
	Links          []branding.Link
}

func newScaffoldData(req Request) scaffoldData {
	tc := req.Toolchain
	return scaffoldData{
		Name:           req.ProjectName,
		CLIName:        branding.CLIName(),
		Template:       req.Template.ID,
		Ready:          req.Ready,
		WithTests:      !req.NoTests,
		ToolchainName:  tc.DisplayName,
		Binary:         tc.Binary,
		QuotedInstall:  shellquote.Join(tc.InstallCommand),
		BuildCommand:   tc.BuildCommand(),
		TestCommand:    tc.TestCommand(),
		InstallCommand: tc.InstallCommand,
		InstallSteps:   toolchain.ManualInstructions(tc),
		Links:          branding.DocsLinks(),
	}
}

type generatedFile struct {
	path       string // relative, slash-separated
	template   string
	executable bool
}

// writeProjectFiles renders the generic project files into req.Dir and
// returns the written paths plus any daml.yaml schema warnings.
func writeProjectFiles(req Request) (files, warnings []string, err error) {
	data := newScaffoldData(req)

	outputs := []generatedFile{
		{path: "scripts/compile.sh", template: "compile.sh.tmpl", executable: true},
	}
	if !req.NoTests {
		outputs = append(outputs, generatedFile{path: "scripts/test.sh", template: "test.sh.tmpl", executable: true})
	}
	outputs = append(outputs,
		generatedFile{path: ".gitignore", template: "gitignore.tmpl"},
		generatedFile{path: "README.md", template: "README.md.tmpl"},
	)

	for _, out := range outputs {
		var buf bytes.Buffer
		if err := scaffoldTemplates.ExecuteTemplate(&buf, out.template, data); err != nil {
			return nil, nil, fmt.Errorf("executing template %s: %w", out.template, err)
		}
		if err := writeFile(req.Dir, out.path, buf.Bytes(), out.executable); err != nil {
			return nil, nil, err
		}
		files = append(files, out.path)
	}

	raw, err := NewProjectConfig(req.ProjectName, req.SDKVersion).Marshal()
	if err != nil {
		return nil, nil, fmt.Errorf("rendering %s: %w", projectConfigFile, err)
	}
	if err := writeFile(req.Dir, projectConfigFile, raw, false); err != nil {
		return nil, nil, err
	}
	files = append(files, projectConfigFile)

	valResult, valErr := ValidateProjectConfig(raw)
	if valErr != nil {
		warnings = append(warnings, fmt.Sprintf("Could not validate %s: %v", projectConfigFile, valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			warnings = append(warnings, fmt.Sprintf("%s %s", projectConfigFile, issue))
		}
	}

	return files, warnings, nil
}

func writeFile(dir, rel string, data []byte, executable bool) error {
	path := filepath.Join(dir, filepath.FromSlash(rel))
	mode := os.FileMode(0644)
	if executable {
		mode = 0755
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	if executable {
		if err := platform.MakeExecutable(path); err != nil {
			return fmt.Errorf("making %s executable: %w", rel, err)
		}
	}
	return nil
}
