package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canton-labs/create-canton-app/internal/toolchain"
)

// verb describes a toolchain command wrapped by compile or test.
type verb struct {
	progress string
	success  string
	failure  string
	args     func(toolchain.Toolchain) []string
	// showStdout prints the command's output after it succeeds.
	showStdout bool
}

// runVerb runs v with the active toolchain in the working directory and
// reports the outcome. Output is captured and shown once the command exits.
func runVerb(cmd *cobra.Command, ec *toolchain.ExecContext, allowLegacy bool, v verb) error {
	p := newPrinter(cmd)
	ctx := cmd.Context()

	order, err := detectionOrder(allowLegacy)
	if err != nil {
		return err
	}
	p.Info("%s", v.progress)

	active, _, ok := toolchain.DetectActive(ctx, ec, order)
	if !ok {
		tc := order[0]
		p.Error("%s not found!", tc.DisplayName)
		p.Blank()
		p.Warn("Install %s:", tc.DisplayName)
		p.Plain("  %s", tc.InstallCommand)
		p.Blank()
		return fmt.Errorf("%w: %s", toolchain.ErrToolchainMissing, tc.Binary)
	}
	tc := active.Toolchain
	p.Debug("using %s at %s", tc.Binary, active.Path)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	out, err := ec.Invoke(ctx, tc, cwd, v.args(tc)...)
	var exitErr *toolchain.ExitError
	if errors.As(err, &exitErr) {
		p.Error("%s", v.failure)
		p.Blank()
		if msg := strings.TrimSpace(out.Stderr); msg != "" {
			p.Error("%s", msg)
		}
		return err
	}
	if err != nil {
		return err
	}

	p.Success("%s", v.success)
	p.Blank()
	if v.showStdout {
		if msg := strings.TrimSpace(out.Stdout); msg != "" {
			p.Dim("%s", msg)
		}
	}
	return nil
}
