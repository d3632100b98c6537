package cli

import (
	"github.com/spf13/cobra"

	"github.com/canton-labs/create-canton-app/internal/toolchain"
)

var compileLegacy bool

func init() {
	compileCmd.Flags().BoolVar(&compileLegacy, "legacy", false, "Allow the legacy daml assistant")
	rootCmd.AddCommand(compileCmd)
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile your Daml contracts",
	Long:  `Run the toolchain's build command (dpm build, or daml build with --legacy) in the current project.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, toolchain.NewExecContext(), compileLegacy, verb{
			progress: "Compiling Daml contracts...",
			success:  "Contracts compiled successfully!",
			failure:  "Compilation failed!",
			args:     func(tc toolchain.Toolchain) []string { return tc.BuildArgs },
		})
	},
}
