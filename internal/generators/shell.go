package generators

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atinylittleshell/gshmatch/internal/pipeline"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

type ShellOptions struct {
	// Env is the initial environment. Nil uses os.Environ.
	Env []string
	// Dir is the working directory. Empty uses the process directory.
	Dir      string
	Stdout   io.Writer
	Stderr   io.Writer
	Registry *SpecRegistry
	// Cycle configures selection for the compgen builtin.
	Cycle pipeline.Cycle
}

// NewRunner creates the shell that completion functions and rc files run in,
// with the `complete` and `compgen` builtins installed.
func NewRunner(opts ShellOptions) (*interp.Runner, error) {
	env := opts.Env
	if env == nil {
		env = os.Environ()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	registry := opts.Registry
	if registry == nil {
		registry = NewSpecRegistry()
	}

	var runner *interp.Runner
	runnerOpts := []interp.RunnerOption{
		interp.Interactive(true),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, stdout, stderr),
		interp.ExecHandlers(
			NewCompleteCommandHandler(registry),
			NewCompgenCommandHandler(func() *interp.Runner { return runner }, opts.Cycle),
		),
	}
	if opts.Dir != "" {
		runnerOpts = append(runnerOpts, interp.Dir(opts.Dir))
	}

	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create shell runner: %w", err)
	}
	return runner, nil
}

// SourceReader parses and runs a script in runner itself, so that the
// functions, aliases and completion specs it defines persist.
func SourceReader(ctx context.Context, runner *interp.Runner, reader io.Reader, name string) error {
	prog, err := syntax.NewParser().Parse(reader, name)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return runner.Run(ctx, prog)
}

// SourceFile runs the script at path in runner.
func SourceFile(ctx context.Context, runner *interp.Runner, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return SourceReader(ctx, runner, f, path)
}
