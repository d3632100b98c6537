package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canton-labs/create-canton-app/internal/catalog"
	"github.com/canton-labs/create-canton-app/internal/config"
	"github.com/canton-labs/create-canton-app/internal/create"
	"github.com/canton-labs/create-canton-app/internal/prompt"
	"github.com/canton-labs/create-canton-app/internal/scaffold"
	"github.com/canton-labs/create-canton-app/internal/toolchain"
	"github.com/canton-labs/create-canton-app/internal/ui"
)

var (
	createTemplate string
	createNoTests  bool
	createLegacy   bool
	createYes      bool
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&createTemplate, "template", "t", "", "Template to use (token, escrow, empty, or a toolchain template)")
	flags.BoolVar(&createNoTests, "no-tests", false, "Skip the test script")
	flags.BoolVar(&createLegacy, "legacy", false, "Allow the legacy daml assistant when dpm is not installed")
	flags.BoolVarP(&createYes, "yes", "y", false, "Accept defaults without prompting (never installs a toolchain)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd)
	settings := config.Current()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	orch, err := newOrchestrator(cmd, p, settings, cwd)
	if err != nil {
		return err
	}

	opts := create.Options{
		Template:    createTemplate,
		TemplateSet: cmd.Flags().Changed("template"),
		NoTests:     createNoTests,
		AllowLegacy: createLegacy,
	}
	pinned, ok, err := pinnedToolchain()
	if err != nil {
		return err
	}
	if ok {
		opts.Only = &pinned
	}
	if len(args) > 0 {
		opts.ProjectName = args[0]
	}

	out, err := orch.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	create.PrintSummary(p, out)
	return nil
}

func newOrchestrator(cmd *cobra.Command, p *ui.Printer, settings config.Settings, cwd string) (*create.Orchestrator, error) {
	bundle, err := scaffold.Bundle(settings.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	ec := toolchain.NewExecContext()
	prompter := selectPrompter(cmd)

	return &create.Orchestrator{
		Exec:         ec,
		Prompter:     prompter,
		UI:           p,
		Installer:    &toolchain.Installer{Prompter: prompter, UI: p},
		Catalog:      &catalog.Catalog{Exec: ec, UI: p},
		Materializer: scaffold.NewMaterializer(ec, bundle, p),
		Settings:     settings,
		Cwd:          cwd,
	}, nil
}

// selectPrompter asks on the terminal unless --yes was given or stdin is not
// interactive, in which case defaults are used and nothing is installed.
func selectPrompter(cmd *cobra.Command) prompt.Prompter {
	if createYes {
		return prompt.Defaults{}
	}
	if in, ok := cmd.InOrStdin().(*os.File); ok && prompt.IsInteractive(in) {
		return prompt.NewTerminal(in, cmd.OutOrStdout())
	}
	return prompt.Defaults{}
}
