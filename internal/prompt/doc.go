// Package prompt defines the interactive question boundary used while
// scaffolding a project. Every question the create flow asks goes through a
// Prompter, so the flow can be driven by a terminal, by defaults when stdin
// is not a TTY, or by a canned script in tests.
package prompt
