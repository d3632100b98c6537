// Package scaffold materializes a new Daml project on disk. Bundled
// templates are copied and completed with generated helper scripts, a
// daml.yaml build configuration, a .gitignore and a README. Toolchain
// templates are handed to the toolchain's own `new` command instead and
// are left exactly as the toolchain wrote them.
package scaffold
