// Package ui prints leveled, colorized status lines for the CLI.
//
// Colors come from fatih/color and are dropped automatically when the output
// is not a terminal (or NO_COLOR is set), so the same Printer serves both
// interactive sessions and tests that capture output in a buffer.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	plainColor   = color.New(color.FgWhite)
	dimColor     = color.New(color.Faint)
	boldColor    = color.New(color.FgCyan, color.Bold)
	debugColor   = color.New(color.FgHiMagenta)
)

// Printer writes status lines to Out and errors to Err.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	debug bool
}

// New returns a Printer. Nil writers default to os.Stdout/os.Stderr.
func New(out, errOut io.Writer, debug bool) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Printer{Out: out, Err: errOut, debug: debug}
}

// Discard returns a Printer that drops everything.
func Discard() *Printer {
	return &Printer{Out: io.Discard, Err: io.Discard}
}

func (p *Printer) line(w io.Writer, c *color.Color, format string, args ...any) {
	c.Fprintln(w, fmt.Sprintf(format, args...))
}

// Info prints a neutral progress line.
func (p *Printer) Info(format string, args ...any) { p.line(p.Out, infoColor, format, args...) }

// Success prints a completed-step line.
func (p *Printer) Success(format string, args ...any) { p.line(p.Out, successColor, format, args...) }

// Warn prints a non-fatal degradation notice.
func (p *Printer) Warn(format string, args ...any) { p.line(p.Out, warnColor, format, args...) }

// Error prints to the error stream.
func (p *Printer) Error(format string, args ...any) { p.line(p.Err, errorColor, format, args...) }

// Plain prints a command or value the user is expected to copy.
func (p *Printer) Plain(format string, args ...any) { p.line(p.Out, plainColor, format, args...) }

// Dim prints secondary hints.
func (p *Printer) Dim(format string, args ...any) { p.line(p.Out, dimColor, format, args...) }

// Heading prints a bold section title.
func (p *Printer) Heading(format string, args ...any) { p.line(p.Out, boldColor, format, args...) }

// Debug prints only when debug output was enabled.
func (p *Printer) Debug(format string, args ...any) {
	if !p.debug {
		return
	}
	p.line(p.Err, debugColor, "[debug] "+format, args...)
}

// Blank prints an empty line.
func (p *Printer) Blank() { fmt.Fprintln(p.Out) }
