package create

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/canton-labs/create-canton-app/internal/catalog"
	"github.com/canton-labs/create-canton-app/internal/config"
	"github.com/canton-labs/create-canton-app/internal/prompt"
	"github.com/canton-labs/create-canton-app/internal/scaffold"
	"github.com/canton-labs/create-canton-app/internal/toolchain"
	"github.com/canton-labs/create-canton-app/internal/ui"
)

// ErrToolchainRequired is returned when a toolchain template is requested but
// no toolchain is available to generate it.
var ErrToolchainRequired = errors.New("toolchain required for toolchain templates")

const (
	sourceBundled   = "bundled"
	sourceToolchain = "toolchain"
)

// Options are the inputs supplied on the command line.
type Options struct {
	ProjectName string
	Template    string
	// TemplateSet is true when Template was given explicitly, even if empty.
	TemplateSet bool
	NoTests     bool
	AllowLegacy bool
	// Only restricts detection and installation to one toolchain.
	Only *toolchain.Toolchain
}

// Orchestrator sequences detection, installation, template resolution and
// materialization for a single run.
type Orchestrator struct {
	Exec         *toolchain.ExecContext
	Prompter     prompt.Prompter
	UI           *ui.Printer
	Installer    *toolchain.Installer
	Catalog      *catalog.Catalog
	Materializer *scaffold.Materializer
	Settings     config.Settings
	// Cwd is the directory new projects are created in.
	Cwd string
}

// Outcome describes a successful run.
type Outcome struct {
	Result    *scaffold.Result
	Toolchain toolchain.Toolchain
	// Ready is true when Toolchain is installed and usable.
	Ready     bool
	Version   string
	Install   *toolchain.InstallOutcome
	NextSteps []string
}

// state carries what the run has learned so far.
type state struct {
	opts     Options
	tc       toolchain.Toolchain
	ready    bool
	version  string
	install  *toolchain.InstallOutcome
	name     string
	dir      string
	template catalog.Entry
}

// Run executes the creation flow. Declined or failed installs are not errors:
// the project is still created and the next steps explain how to install.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Outcome, error) {
	st := &state{opts: opts}

	o.UI.Blank()
	o.UI.Info("Checking prerequisites...")
	o.UI.Blank()

	o.detectToolchain(ctx, st)
	if o.Settings.JavaCheck {
		o.detectJava()
	}
	o.UI.Blank()

	if err := o.resolveProjectName(st); err != nil {
		return nil, err
	}
	if err := o.resolveTemplate(ctx, st); err != nil {
		return nil, err
	}

	req := scaffold.Request{
		ProjectName: st.name,
		Dir:         st.dir,
		Template:    st.template,
		Toolchain:   st.tc,
		Ready:       st.ready,
		SDKVersion:  o.sdkVersion(st),
		NoTests:     opts.NoTests,
	}
	o.UI.Debug("materializing %s from %s template %s", req.Dir, req.Template.Source, req.Template.ID)

	result, err := o.Materializer.Materialize(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Result:    result,
		Toolchain: st.tc,
		Ready:     st.ready,
		Version:   st.version,
		Install:   st.install,
		NextSteps: NextSteps(st.name, st.tc, st.ready, opts.NoTests),
	}, nil
}

// detectToolchain finds the active toolchain, offering to install the
// preferred one when none is present.
func (o *Orchestrator) detectToolchain(ctx context.Context, st *state) {
	order := toolchain.DetectionOrder(st.opts.AllowLegacy || o.Settings.Legacy)
	if st.opts.Only != nil {
		order = []toolchain.Toolchain{*st.opts.Only}
	}

	active, detections, ok := toolchain.DetectActive(ctx, o.Exec, order)
	for _, d := range detections {
		o.UI.Debug("%s: present=%t path=%s version=%q", d.Toolchain.Binary, d.Present, d.Path, d.Version)
	}
	if ok {
		o.reportFound(active, st)
		return
	}

	st.tc = order[0]
	outcome := o.Installer.Install(ctx, o.Exec, st.tc)
	st.install = &outcome
	if !outcome.Usable() {
		o.UI.Warn("Continuing without %s...", st.tc.DisplayName)
		o.UI.Dim("You can still create the project, but won't be able to compile until %s is installed.", st.tc.Binary)
		o.UI.Blank()
		return
	}

	// The installer put the binary directory on the search path.
	d := toolchain.Detect(ctx, o.Exec, st.tc)
	if !d.Present {
		o.UI.Warn("%s was installed but %s is still not on the search path", st.tc.DisplayName, st.tc.Binary)
		return
	}
	o.reportFound(d, st)
}

func (o *Orchestrator) reportFound(d toolchain.Detection, st *state) {
	st.tc = d.Toolchain
	st.ready = true
	st.version = d.Version

	if d.Version != "" {
		o.UI.Success("%s found (v%s)", d.Toolchain.DisplayName, d.Version)
	} else {
		o.UI.Success("%s found", d.Toolchain.DisplayName)
	}
	if d.Outdated() {
		o.UI.Warn("%s %s is older than %s; generated projects may not build", d.Toolchain.Binary, d.Version, d.Toolchain.MinimumVersion)
	}
	if d.Toolchain.Kind == toolchain.Legacy {
		o.UI.Dim("Using the legacy %s assistant; dpm is its successor.", d.Toolchain.Binary)
	}
}

// detectJava reports whether a Java runtime is on the search path. It never
// blocks the flow.
func (o *Orchestrator) detectJava() {
	if _, err := o.Exec.LookPath("java"); err != nil {
		o.UI.Warn("Java not found (optional, needed for tests)")
		return
	}
	o.UI.Success("Java Runtime found")
}

func (o *Orchestrator) resolveProjectName(st *state) error {
	name := st.opts.ProjectName
	if name == "" {
		def := o.Settings.DefaultProjectName
		if def == "" {
			def = config.DefaultProjectName
		}
		answer, err := o.Prompter.Input("What is your project name?", def)
		if err != nil {
			return fmt.Errorf("reading project name: %w", err)
		}
		name = strings.TrimSpace(answer)
	}
	if name == "" {
		return errors.New("project name must not be empty")
	}
	if err := scaffold.ValidateProjectName(name); err != nil {
		return err
	}

	dir, err := scaffold.ResolveDestination(o.Cwd, name)
	if err != nil {
		return err
	}
	st.name = name
	st.dir = dir
	return nil
}

// resolveTemplate picks the template entry, honoring an explicit --template
// before asking anything.
func (o *Orchestrator) resolveTemplate(ctx context.Context, st *state) error {
	if st.opts.TemplateSet {
		id := strings.TrimSpace(st.opts.Template)
		if id == "" {
			return errors.New("template name must not be empty")
		}
		entry, ok := catalog.LookupStatic(id)
		if !ok {
			entry = catalog.DynamicEntry(id)
			if !st.ready {
				return fmt.Errorf("%w: %q is not a bundled template, and generating it needs %s", ErrToolchainRequired, id, st.tc.Binary)
			}
		}
		st.template = entry
		return nil
	}

	source := sourceBundled
	if st.ready {
		answer, err := o.Prompter.Select("Where should the template come from?", []prompt.Option{
			{Label: "Bundled templates", Value: sourceBundled},
			{Label: fmt.Sprintf("%s templates (%s)", st.tc.Binary, st.tc.CommandLine(st.tc.ListArgs...)), Value: sourceToolchain},
		})
		if err != nil {
			return fmt.Errorf("choosing template source: %w", err)
		}
		source = answer
	}

	if source == sourceToolchain {
		entry, err := o.resolveDynamic(ctx, st)
		if err == nil {
			st.template = entry
			return nil
		}
		if !errors.Is(err, catalog.ErrCatalogEmpty) {
			return err
		}
		o.UI.Warn("No templates reported by %s, falling back to bundled templates", st.tc.Binary)
	}

	entry, err := o.selectEntry(catalog.StaticEntries())
	if err != nil {
		return err
	}
	st.template = entry
	return nil
}

func (o *Orchestrator) resolveDynamic(ctx context.Context, st *state) (catalog.Entry, error) {
	if !st.ready {
		return catalog.Entry{}, fmt.Errorf("%w: install %s to use its templates", ErrToolchainRequired, st.tc.Binary)
	}
	entries := o.Catalog.List(ctx, catalog.Dynamic, st.tc)
	if len(entries) == 0 {
		return catalog.Entry{}, catalog.ErrCatalogEmpty
	}
	return o.selectEntry(entries)
}

func (o *Orchestrator) selectEntry(entries []catalog.Entry) (catalog.Entry, error) {
	options := make([]prompt.Option, len(entries))
	for i, e := range entries {
		options[i] = prompt.Option{Label: e.Label, Value: e.ID}
	}
	id, err := o.Prompter.Select("Which template would you like to use?", options)
	if err != nil {
		return catalog.Entry{}, fmt.Errorf("choosing template: %w", err)
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return catalog.Entry{}, fmt.Errorf("unknown template %q", id)
}

// sdkVersion prefers the detected toolchain version and falls back to the
// configured one.
func (o *Orchestrator) sdkVersion(st *state) string {
	if st.version != "" {
		if _, err := semver.StrictNewVersion(st.version); err == nil {
			return st.version
		}
	}
	if o.Settings.SDKVersion != "" {
		return o.Settings.SDKVersion
	}
	return config.DefaultSDKVersion
}
