package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/canton-labs/create-canton-app/internal/config"
	"github.com/canton-labs/create-canton-app/internal/scaffold"
	"github.com/canton-labs/create-canton-app/internal/toolchain"
	"github.com/canton-labs/create-canton-app/internal/ui"
)

var errDoctorFailed = errors.New("no supported toolchain found")

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local Canton development environment",
	Long: `Report which toolchains are installed and their versions, whether Java is
available, and where configuration and templates are read from.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd, newPrinter(cmd), toolchain.NewExecContext())
	},
}

func runDoctor(cmd *cobra.Command, p *ui.Printer, ec *toolchain.ExecContext) error {
	settings := config.Current()

	p.Heading("Toolchains")
	found := 0
	for _, tc := range toolchain.DetectionOrder(true) {
		d := toolchain.Detect(cmd.Context(), ec, tc)
		switch {
		case !d.Present:
			p.Warn("  %s: not found", tc.Binary)
			p.Dim("    install: %s", tc.InstallCommand)
			continue
		case d.Version == "":
			p.Success("  %s: %s (version unknown)", tc.Binary, d.Path)
		default:
			p.Success("  %s: %s (v%s)", tc.Binary, d.Path, d.Version)
		}
		found++
		if d.Outdated() {
			p.Warn("    older than the supported minimum %s", tc.MinimumVersion)
		}
		if tc.Kind == toolchain.Legacy && !settings.Legacy {
			p.Dim("    only used with --legacy or `config set legacy true`")
		}
	}
	p.Blank()

	p.Heading("Auxiliary tools")
	if path, err := ec.LookPath("java"); err == nil {
		p.Success("  java: %s", path)
	} else {
		p.Warn("  java: not found (optional, needed for tests)")
	}
	p.Blank()

	p.Heading("Configuration")
	if _, err := os.Stat(config.FilePath()); err == nil {
		p.Plain("  config file: %s", config.FilePath())
	} else {
		p.Dim("  config file: %s (not created yet)", config.FilePath())
	}
	if settings.TemplatesDir == "" {
		p.Plain("  templates: bundled")
	} else if _, err := scaffold.Bundle(settings.TemplatesDir); err != nil {
		p.Error("  templates: %v", err)
	} else {
		p.Plain("  templates: %s", settings.TemplatesDir)
	}
	p.Plain("  sdk-version fallback: %s", settings.SDKVersion)
	p.Blank()

	if found == 0 {
		return errDoctorFailed
	}
	return nil
}
