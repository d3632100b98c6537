package scaffold

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidProjectName is returned when a name cannot appear in daml.yaml.
var ErrInvalidProjectName = errors.New("invalid project name")

//go:embed schema/project.schema.json
var projectSchemaJSON []byte

const projectSchemaURL = "project.schema.json"

var (
	loadProjectSchema = sync.OnceValues(compileProjectSchema)
	issuePrinter      = message.NewPrinter(language.English)
)

func compileProjectSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(projectSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", projectSchemaURL, err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(projectSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("registering %s: %w", projectSchemaURL, err)
	}
	return c.Compile(projectSchemaURL)
}

// ValidationResult lists the schema violations found in a daml.yaml document.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is a single violation. Path is a JSON pointer into the
// document and is empty for violations of the document as a whole.
type ValidationIssue struct {
	Path    string
	Message string
	Keyword string
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidateProjectConfig checks raw daml.yaml bytes against the project
// schema. Violations are reported in the result; the error is for documents
// that cannot be read at all.
func ValidateProjectConfig(data []byte) (*ValidationResult, error) {
	inst, err := yamlInstance(data)
	if err != nil {
		return nil, err
	}
	return validateInstance(inst)
}

// ValidateProjectName reports whether name would produce a valid daml.yaml.
// It lets callers reject a name before anything is written to disk.
func ValidateProjectName(name string) error {
	raw, err := NewProjectConfig(name, "").Marshal()
	if err != nil {
		return err
	}
	result, err := ValidateProjectConfig(raw)
	if err != nil {
		return err
	}
	for _, issue := range result.Issues {
		if issue.Path == "/name" {
			return fmt.Errorf("%w %q: must start with a letter or digit and contain only letters, digits, '.', '_' or '-'", ErrInvalidProjectName, name)
		}
	}
	return nil
}

// yamlInstance decodes YAML into the value model the validator expects.
// Numbers only survive that conversion through a JSON round-trip.
func yamlInstance(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", projectConfigFile, err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", projectConfigFile, err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
}

func validateInstance(inst any) (*ValidationResult, error) {
	schema, err := loadProjectSchema()
	if err != nil {
		return nil, fmt.Errorf("loading project schema: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, fmt.Errorf("validating %s: %w", projectConfigFile, err)
	}

	issues := leafIssues(verr)
	if len(issues) == 0 {
		issues = []ValidationIssue{{Message: verr.Error()}}
	}
	return &ValidationResult{Issues: issues}, nil
}

// leafIssues walks the cause tree and returns one issue per leaf, ordered by
// path and without duplicates.
func leafIssues(root *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	pending := []*jsonschema.ValidationError{root}
	for len(pending) > 0 {
		ve := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if len(ve.Causes) > 0 {
			pending = append(pending, ve.Causes...)
			continue
		}
		if issue, ok := toIssue(ve); ok {
			issues = append(issues, issue)
		}
	}

	slices.SortFunc(issues, func(a, b ValidationIssue) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		if c := strings.Compare(a.Keyword, b.Keyword); c != 0 {
			return c
		}
		return strings.Compare(a.Message, b.Message)
	})
	return slices.Compact(issues)
}

func toIssue(ve *jsonschema.ValidationError) (ValidationIssue, bool) {
	if ve.ErrorKind == nil {
		return ValidationIssue{}, false
	}
	keywords := ve.ErrorKind.KeywordPath()
	if len(keywords) == 0 {
		return ValidationIssue{}, false
	}

	var path string
	for _, token := range ve.InstanceLocation {
		path += "/" + token
	}
	return ValidationIssue{
		Path:    path,
		Message: ve.ErrorKind.LocalizedString(issuePrinter),
		Keyword: keywords[len(keywords)-1],
	}, true
}
