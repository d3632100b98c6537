// Package toolchain models the two Daml toolchains a project can be built
// with (the dpm package manager and the legacy daml assistant), detects which
// one is installed, offers to install a missing one, and runs its commands.
//
// All lookups and subprocesses go through an ExecContext, which carries the
// effective search path for the run. Installing a toolchain prepends its bin
// directory to that context only; the process environment is never touched.
package toolchain
