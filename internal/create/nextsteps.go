package create

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/canton-labs/create-canton-app/internal/toolchain"
	"github.com/canton-labs/create-canton-app/internal/ui"
)

var summaryPrinter = message.NewPrinter(language.English)

// NextSteps returns the commands a user runs after creating name. Without a
// ready toolchain the build commands are preceded by install instructions.
func NextSteps(name string, tc toolchain.Toolchain, ready, noTests bool) []string {
	steps := []string{shellquote.Join("cd", name)}
	if ready {
		steps = append(steps, fmt.Sprintf("%-20s# Compile your contracts", tc.BuildCommand()))
		if !noTests {
			steps = append(steps, fmt.Sprintf("%-20s# Run tests", tc.TestCommand()))
		}
		return steps
	}

	steps = append(steps, fmt.Sprintf("# First, install %s:", tc.DisplayName))
	steps = append(steps, toolchain.ManualInstructions(tc)...)
	return append(steps, tc.BuildCommand())
}

// PrintSummary reports a successful run.
func PrintSummary(p *ui.Printer, out *Outcome) {
	res := out.Result
	p.Blank()
	if res.Delegated {
		p.Success("Project created successfully by %s!", out.Toolchain.Binary)
	} else {
		p.Success("Project created successfully!")
	}
	p.Dim("%s", summaryPrinter.Sprintf("%d files written to %s", len(res.Files), res.OutputDir))
	for _, w := range res.Warnings {
		p.Warn("%s", w)
	}
	if out.Install != nil {
		if err := out.Install.Err(); err != nil {
			p.Warn("%v: install %s before compiling", err, out.Toolchain.DisplayName)
		}
	}

	p.Blank()
	p.Heading("Next steps:")
	p.Blank()
	for _, step := range out.NextSteps {
		p.Plain("  %s", step)
	}
	p.Blank()
	p.Dim("Read README.md for more information")
	p.Blank()
}
