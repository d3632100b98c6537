package cli

import (
	"github.com/spf13/cobra"

	"github.com/canton-labs/create-canton-app/internal/toolchain"
)

var testLegacy bool

func init() {
	testCmd.Flags().BoolVar(&testLegacy, "legacy", false, "Allow the legacy daml assistant")
	rootCmd.AddCommand(testCmd)
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run your contract tests",
	Long:  `Run the toolchain's test command (dpm test, or daml test with --legacy) in the current project and print its report.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, toolchain.NewExecContext(), testLegacy, verb{
			progress:   "Running tests...",
			success:    "All tests passed!",
			failure:    "Tests failed!",
			args:       func(tc toolchain.Toolchain) []string { return tc.TestArgs },
			showStdout: true,
		})
	},
}
