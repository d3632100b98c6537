package cli

import (
	"github.com/spf13/cobra"

	"github.com/canton-labs/create-canton-app/internal/branding"
	"github.com/canton-labs/create-canton-app/internal/config"
	"github.com/canton-labs/create-canton-app/internal/toolchain"
	"github.com/canton-labs/create-canton-app/internal/ui"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	debugOutput   bool
	toolchainName string
)

// quietCommands skip the banner; their output is meant to be consumed as-is.
var quietCommands = map[string]bool{
	"version": true,
	"get":     true,
	"set":     true,
	"config":  true,
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [project-name]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds Daml smart-contract projects for the Canton Network.

It finds (or offers to install) the dpm toolchain, lets you pick a bundled
template or one of the toolchain's own templates, and writes a ready-to-build
project with helper scripts, daml.yaml, .gitignore and a README.`,
	Example: `  create-canton-app my-token -t token
  create-canton-app --legacy
  create-canton-app demo --yes --no-tests`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if !quietCommands[cmd.Name()] && !jsonOutput(cmd) {
			printBanner(newPrinter(cmd))
		}
	},
	RunE: runCreate,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugOutput, "debug", false, "Print debug output")
	rootCmd.PersistentFlags().StringVar(&toolchainName, "toolchain", "", "Only use this toolchain (dpm or daml)")
}

// pinnedToolchain returns the toolchain named by --toolchain, or false when
// the flag was not given.
func pinnedToolchain() (toolchain.Toolchain, bool, error) {
	if toolchainName == "" {
		return toolchain.Toolchain{}, false, nil
	}
	k, err := toolchain.ParseKind(toolchainName)
	if err != nil {
		return toolchain.Toolchain{}, false, err
	}
	return toolchain.ForKind(k), true, nil
}

// detectionOrder is the list of toolchains compile, test and templates probe.
func detectionOrder(allowLegacy bool) ([]toolchain.Toolchain, error) {
	tc, ok, err := pinnedToolchain()
	if err != nil {
		return nil, err
	}
	if ok {
		return []toolchain.Toolchain{tc}, nil
	}
	return toolchain.DetectionOrder(allowLegacy || config.Current().Legacy), nil
}

// jsonOutput reports whether cmd was asked for a JSON document on stdout.
func jsonOutput(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup("json")
	return f != nil && f.Value.String() == "true"
}

func newPrinter(cmd *cobra.Command) *ui.Printer {
	return ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), debugOutput)
}

// Execute runs the root command with build info injected via ldflags. A
// returned error has already been printed.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = version

	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		newPrinter(cmd).Error("Error: %v", err)
	}
	return err
}
