package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canton-labs/create-canton-app/internal/catalog"
	"github.com/canton-labs/create-canton-app/internal/toolchain"
	"github.com/canton-labs/create-canton-app/internal/ui"
)

var (
	templatesLegacy bool
	templatesJSON   bool
)

func init() {
	templatesCmd.Flags().BoolVar(&templatesLegacy, "legacy", false, "Allow the legacy daml assistant")
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print templates as JSON")
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available project templates",
	Long: `List the bundled templates and, when a toolchain is installed, the templates
reported by its "new --list" command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplates(cmd, toolchain.NewExecContext())
	},
}

type templateJSON struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Source string `json:"source"`
}

func runTemplates(cmd *cobra.Command, ec *toolchain.ExecContext) error {
	p := newPrinter(cmd)
	if templatesJSON {
		// Catalog warnings must not corrupt the document on stdout.
		p = ui.New(cmd.ErrOrStderr(), cmd.ErrOrStderr(), debugOutput)
	}
	ctx := cmd.Context()

	entries := catalog.StaticEntries()
	cat := &catalog.Catalog{Exec: ec, UI: p}

	order, err := detectionOrder(templatesLegacy)
	if err != nil {
		return err
	}
	active, _, ok := toolchain.DetectActive(ctx, ec, order)
	var dynamic []catalog.Entry
	if ok {
		dynamic = cat.List(ctx, catalog.Dynamic, active.Toolchain)
		entries = append(entries, dynamic...)
	}

	if templatesJSON {
		list := make([]templateJSON, len(entries))
		for i, e := range entries {
			list[i] = templateJSON{ID: e.ID, Label: e.Label, Source: e.Source.String()}
		}
		out, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling templates: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	p.Heading("Bundled templates")
	for _, e := range catalog.StaticEntries() {
		p.Plain("  %-10s %s", e.ID, e.Label)
	}
	p.Blank()

	if !ok {
		p.Dim("Install %s to see its templates.", order[0].Binary)
		return nil
	}
	p.Heading("%s templates", active.Toolchain.Binary)
	if len(dynamic) == 0 {
		p.Warn("  %s did not report any templates", active.Toolchain.CommandLine(active.Toolchain.ListArgs...))
		return nil
	}
	for _, e := range dynamic {
		p.Plain("  %s", e.ID)
	}
	p.Blank()
	return nil
}
