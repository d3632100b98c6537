package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/canton-labs/create-canton-app/internal/platform"
)

// ErrToolchainMissing is returned when no supported toolchain binary can be
// resolved on the search path.
var ErrToolchainMissing = errors.New("toolchain not found")

// Command is a fully resolved subprocess invocation.
type Command struct {
	Path string
	Args []string
	Dir  string
	Env  []string
}

// String renders the command for log output.
func (c Command) String() string {
	return strings.Join(append([]string{filepath.Base(c.Path)}, c.Args...), " ")
}

// Output captures the result of a finished subprocess.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner starts a subprocess, blocks until it exits, and returns its
// captured output. A nonzero exit is reported through Output.ExitCode, not
// as an error; errors mean the process could not be run at all.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// ExitError reports a toolchain command that exited nonzero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

// ExecContext is the execution environment for one run: the effective
// search path, the user's home directory, the base environment passed to
// children, and the Runner that starts them.
type ExecContext struct {
	Path   string
	Home   string
	Env    []string
	Runner Runner
}

// NewExecContext snapshots the current process environment.
func NewExecContext() *ExecContext {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return &ExecContext{
		Path:   os.Getenv("PATH"),
		Home:   home,
		Env:    os.Environ(),
		Runner: &ProcessRunner{},
	}
}

// PrependPath puts dir in front of the search path for the rest of the run.
func (ec *ExecContext) PrependPath(dir string) {
	if ec.Path == "" {
		ec.Path = dir
		return
	}
	ec.Path = dir + string(os.PathListSeparator) + ec.Path
}

// Environ returns the child environment with PATH set to the effective search path.
func (ec *ExecContext) Environ() []string {
	env := make([]string, len(ec.Env))
	copy(env, ec.Env)
	return setEnv(env, "PATH", ec.Path)
}

// LookPath resolves name against the context's search path without running it.
func (ec *ExecContext) LookPath(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) {
		if platform.IsExecutable(name) {
			return name, nil
		}
		return "", fmt.Errorf("%s is not an executable file", name)
	}
	for _, dir := range filepath.SplitList(ec.Path) {
		// Empty and relative entries would resolve against the working
		// directory, which is never a trusted place to find a toolchain.
		if dir == "" || !filepath.IsAbs(dir) {
			continue
		}
		for _, file := range platform.CommandCandidates(name) {
			candidate := filepath.Join(dir, file)
			if platform.IsExecutable(candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%s not found in search path", name)
}

// Invoke runs the toolchain binary with args in dir. A missing binary wraps
// ErrToolchainMissing; a nonzero exit returns the output together with an
// *ExitError.
func (ec *ExecContext) Invoke(ctx context.Context, tc Toolchain, dir string, args ...string) (*Output, error) {
	bin, err := ec.LookPath(tc.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrToolchainMissing, tc.Binary, err)
	}

	out, err := ec.Runner.Run(ctx, Command{Path: bin, Args: args, Dir: dir, Env: ec.Environ()})
	if err != nil {
		return out, fmt.Errorf("running %s: %w", tc.CommandLine(args...), err)
	}
	if out.ExitCode != 0 {
		return out, &ExitError{Command: tc.CommandLine(args...), ExitCode: out.ExitCode, Stderr: out.Stderr}
	}
	return out, nil
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
