package generators

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/atinylittleshell/gshmatch/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/interp"
)

func newBufferedRunner(t *testing.T, registry *SpecRegistry) (*interp.Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	runner, err := NewRunner(ShellOptions{
		Env:      []string{"HOME=/nonexistent"},
		Stdout:   &out,
		Registry: registry,
		Cycle:    pipeline.DefaultCycle(),
	})
	require.NoError(t, err)
	return runner, &out
}

func run(t *testing.T, runner *interp.Runner, script string) error {
	t.Helper()
	return SourceReader(context.Background(), runner, strings.NewReader(script), "test")
}

func TestCompleteBuiltin(t *testing.T) {
	registry := NewSpecRegistry()
	runner, out := newBufferedRunner(t, registry)

	require.NoError(t, run(t, runner, `complete -W "add commit push" git`))
	spec, ok := registry.GetSpec("git")
	require.True(t, ok)
	assert.Equal(t, CompletionSpec{Command: "git", Type: WordListCompletion, Value: "add commit push"}, spec)

	require.NoError(t, run(t, runner, `complete -F _docker docker`))
	spec, ok = registry.GetSpec("docker")
	require.True(t, ok)
	assert.Equal(t, FunctionCompletion, spec.Type)
	assert.Equal(t, "_docker", spec.Value)

	require.NoError(t, run(t, runner, `complete -p`))
	assert.Equal(t, "complete -F _docker docker\ncomplete -W 'add commit push' git\n", out.String())

	out.Reset()
	require.NoError(t, run(t, runner, `complete -p docker`))
	assert.Equal(t, "complete -F _docker docker\n", out.String())

	out.Reset()
	require.NoError(t, run(t, runner, `complete`))
	assert.Contains(t, out.String(), "complete -W 'add commit push' git")

	require.NoError(t, run(t, runner, `complete -r git`))
	_, ok = registry.GetSpec("git")
	assert.False(t, ok)
}

func TestCompleteBuiltinErrors(t *testing.T) {
	tests := []struct {
		script string
		err    string
	}{
		{`complete -W`, "requires a word list"},
		{`complete -F`, "requires a function name"},
		{`complete -X git`, "unknown option: -X"},
		{`complete -W words`, "no command specified"},
		{`complete git`, "invalid usage"},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			runner, _ := newBufferedRunner(t, NewSpecRegistry())
			err := run(t, runner, tt.script)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestCompgenWordList(t *testing.T) {
	runner, out := newBufferedRunner(t, nil)

	require.NoError(t, run(t, runner, `compgen -W "apple Apricot banana" ap`))
	assert.Equal(t, "apple\nApricot\n", out.String())

	out.Reset()
	require.NoError(t, run(t, runner, `compgen -W "one two"`))
	assert.Equal(t, "one\ntwo\n", out.String())

	out.Reset()
	require.NoError(t, run(t, runner, `compgen -W "-a -b" -- -b`))
	assert.Equal(t, "-b\n", out.String())
}

func TestCompgenNoMatchesExitsNonZero(t *testing.T) {
	runner, out := newBufferedRunner(t, nil)

	err := run(t, runner, `compgen -W "alpha beta" zeta`)
	var status interp.ExitStatus
	require.True(t, errors.As(err, &status))
	assert.Equal(t, interp.ExitStatus(1), status)
	assert.Empty(t, out.String())
}

func TestCompgenFunction(t *testing.T) {
	runner, out := newBufferedRunner(t, nil)

	require.NoError(t, run(t, runner, `
_fruit() {
	COMPREPLY=(apple apricot banana)
}
compgen -F _fruit ap
`))
	assert.Equal(t, "apple\napricot\n", out.String())
}

func TestCompgenCapturedBySubstitution(t *testing.T) {
	runner, out := newBufferedRunner(t, nil)

	require.NoError(t, run(t, runner, `
words=$(compgen -W "red green blue" g)
echo "got:$words"
`))
	assert.Equal(t, "got:green\n", out.String())
}

func TestCompgenErrors(t *testing.T) {
	tests := []struct {
		script string
		err    string
	}{
		{`compgen`, "no options specified"},
		{`compgen -W`, "requires a word list"},
		{`compgen -F`, "requires a function name"},
		{`compgen -Z x`, "unknown option: -Z"},
		{`compgen word`, "no completion type specified"},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			runner, _ := newBufferedRunner(t, nil)
			err := run(t, runner, tt.script)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}
