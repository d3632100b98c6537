// Package catalog resolves the project templates a user can choose from:
// the static set bundled with this tool, or the dynamic set reported by the
// installed toolchain's `new --list` command.
package catalog
