// Package create drives the project creation flow: it detects (or offers to
// install) a toolchain, resolves the project name and template through a
// Prompter, and hands the finished request to the scaffold materializer.
//
// Every user interaction goes through prompt.Prompter, so the whole flow can
// be replayed in tests with prompt.Script answers and a fake toolchain runner.
package create
