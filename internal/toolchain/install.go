package toolchain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/canton-labs/create-canton-app/internal/prompt"
	"github.com/canton-labs/create-canton-app/internal/ui"
)

// ErrInstallFailed reports that the vendor install script exited nonzero.
var ErrInstallFailed = errors.New("toolchain installation failed")

// InstallOutcome is the result of offering to install a toolchain.
type InstallOutcome int

const (
	Installed InstallOutcome = iota
	Declined
	InstallFailed
)

func (o InstallOutcome) String() string {
	switch o {
	case Installed:
		return "installed"
	case Declined:
		return "declined"
	case InstallFailed:
		return "failed"
	default:
		return fmt.Sprintf("InstallOutcome(%d)", int(o))
	}
}

// Usable reports whether the toolchain can be used for the rest of the run.
func (o InstallOutcome) Usable() bool { return o == Installed }

// Err maps the outcome onto the error taxonomy; only InstallFailed is an error.
func (o InstallOutcome) Err() error {
	if o == InstallFailed {
		return ErrInstallFailed
	}
	return nil
}

// Installer offers to download and install a missing toolchain.
type Installer struct {
	Prompter prompt.Prompter
	UI       *ui.Printer
}

// Install asks for consent, runs the vendor install script, and on success
// prepends the toolchain's bin directory to ec's search path. Declining and
// failing are reported to the user and returned as outcomes, not errors.
func (i *Installer) Install(ctx context.Context, ec *ExecContext, tc Toolchain) InstallOutcome {
	p := i.UI
	p.Blank()
	p.Warn("%s not found!", tc.DisplayName)
	p.Blank()
	p.Plain("%s is required to compile Canton smart contracts.", tc.DisplayName)
	p.Blank()

	ok, err := i.Prompter.Confirm(fmt.Sprintf("Would you like to install %s now? (Recommended)", tc.DisplayName), true)
	if err != nil {
		p.Warn("Could not read an answer (%v); not installing.", err)
		ok = false
	}
	if !ok {
		p.Blank()
		p.Warn("Skipping %s installation.", tc.DisplayName)
		p.Dim("You can install it later with:")
		p.Plain("  %s", tc.InstallCommand)
		p.Blank()
		return Declined
	}

	p.Blank()
	p.Info("Installing %s (this may take a few minutes)...", tc.DisplayName)

	out, err := ec.Runner.Run(ctx, Command{
		Path: "sh",
		Args: []string{"-c", tc.InstallCommand},
		Env:  ec.Environ(),
	})
	if err != nil || out.ExitCode != 0 {
		p.Error("Failed to install %s", tc.DisplayName)
		if err != nil {
			p.Error("Error: %v", err)
		} else if msg := strings.TrimSpace(out.Stderr); msg != "" {
			p.Error("Error: %s", msg)
		}
		p.Blank()
		p.Warn("Please install manually:")
		p.Plain("  %s", tc.InstallCommand)
		p.Blank()
		return InstallFailed
	}

	binDir := filepath.Join(ec.Home, filepath.FromSlash(tc.PostInstallDir))
	ec.PrependPath(binDir)

	p.Success("%s installed successfully!", tc.DisplayName)
	p.Blank()
	p.Info("Important: %s was added to PATH for this session only.", binDir)
	p.Dim("Add this line to your ~/.zshrc or ~/.bashrc:")
	p.Blank()
	p.Plain("  %s", tc.PathExport())
	p.Blank()
	p.Dim("Then reload your shell:")
	p.Plain("  source ~/.zshrc")
	p.Blank()
	return Installed
}

// ManualInstructions returns the lines telling a user how to install tc by hand.
func ManualInstructions(tc Toolchain) []string {
	return []string{
		tc.InstallCommand,
		tc.PathExport(),
		"source ~/.zshrc",
	}
}
