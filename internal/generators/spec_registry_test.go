package generators

import (
	"context"
	"strings"
	"testing"

	"github.com/atinylittleshell/gshmatch/internal/linestate"
	"github.com/atinylittleshell/gshmatch/internal/matches"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/interp"
)

// generate runs gen against line and returns the candidates it added.
func generate(t *testing.T, gen interface {
	Generate(context.Context, linestate.LineState, *matches.Builder) bool
}, line string) ([]matches.Desc, bool, *matches.Matches) {
	t.Helper()
	m := matches.New(matches.Options{})
	definitive := gen.Generate(context.Background(), linestate.Parse(line, len(line)), matches.NewBuilder(m))

	var descs []matches.Desc
	for i := 0; i < m.UnfilteredCount(); i++ {
		descs = append(descs, matches.Desc{Text: m.UnfilteredMatch(i), Type: m.UnfilteredMatchType(i)})
	}
	return descs, definitive, m
}

func newTestRunner(t *testing.T, registry *SpecRegistry, script string) *interp.Runner {
	t.Helper()
	runner, err := NewRunner(ShellOptions{Env: []string{"HOME=/nonexistent"}, Registry: registry})
	require.NoError(t, err)
	if script != "" {
		require.NoError(t, SourceReader(context.Background(), runner, strings.NewReader(script), "test"))
	}
	return runner
}

func TestSpecRegistry(t *testing.T) {
	r := NewSpecRegistry()
	assert.Empty(t, r.ListSpecs())

	git := CompletionSpec{Command: "git", Type: WordListCompletion, Value: "add commit push"}
	docker := CompletionSpec{Command: "docker", Type: FunctionCompletion, Value: "_docker"}
	r.AddSpec(git)
	r.AddSpec(docker)

	got, ok := r.GetSpec("git")
	assert.True(t, ok)
	assert.Equal(t, git, got)
	assert.Equal(t, []CompletionSpec{docker, git}, r.ListSpecs())

	updated := CompletionSpec{Command: "git", Type: WordListCompletion, Value: "status"}
	r.AddSpec(updated)
	got, _ = r.GetSpec("git")
	assert.Equal(t, "status", got.Value)

	r.RemoveSpec("git")
	_, ok = r.GetSpec("git")
	assert.False(t, ok)
	_, ok = r.GetSpec("nonexistent")
	assert.False(t, ok)
}

func TestSpecGeneratorWordList(t *testing.T) {
	r := NewSpecRegistry()
	r.AddSpec(CompletionSpec{Command: "git", Type: WordListCompletion, Value: "add  commit\tpush"})
	gen := NewSpecGenerator(r, nil, nil)

	descs, definitive, _ := generate(t, gen, "git c")
	assert.True(t, definitive)
	assert.Equal(t, []matches.Desc{
		{Text: "add", Type: matches.TypeOf(matches.KindWord)},
		{Text: "commit", Type: matches.TypeOf(matches.KindWord)},
		{Text: "push", Type: matches.TypeOf(matches.KindWord)},
	}, descs)

	// The command word itself is not completed from the spec.
	descs, definitive, _ = generate(t, gen, "git")
	assert.False(t, definitive)
	assert.Empty(t, descs)

	descs, definitive, _ = generate(t, gen, "hg c")
	assert.False(t, definitive)
	assert.Empty(t, descs)

	// Specs apply to the command under the cursor.
	descs, definitive, _ = generate(t, gen, "ls | git ")
	assert.True(t, definitive)
	assert.Len(t, descs, 3)
}

func TestSpecGeneratorFunction(t *testing.T) {
	r := NewSpecRegistry()
	runner := newTestRunner(t, r, `
_mycmd() {
	COMPREPLY=(alpha "beta gamma")
}
complete -F _mycmd mycmd
`)
	gen := NewSpecGenerator(r, func() *interp.Runner { return runner }, nil)

	descs, definitive, _ := generate(t, gen, "mycmd a")
	assert.True(t, definitive)
	assert.Equal(t, []matches.Desc{
		{Text: "alpha", Type: matches.TypeOf(matches.KindArg)},
		{Text: "beta gamma", Type: matches.TypeOf(matches.KindArg)},
	}, descs)

	noShell := NewSpecGenerator(r, func() *interp.Runner { return nil }, nil)
	descs, definitive, _ = generate(t, noShell, "mycmd a")
	assert.False(t, definitive)
	assert.Empty(t, descs)
}

func TestSpecGeneratorFunctionFailure(t *testing.T) {
	r := NewSpecRegistry()
	runner := newTestRunner(t, r, `
_broken() {
	COMPREPLY=(partial)
	return 3
}
complete -F _broken broken
`)
	gen := NewSpecGenerator(r, func() *interp.Runner { return runner }, nil)

	descs, definitive, _ := generate(t, gen, "broken x")
	assert.False(t, definitive)
	assert.Empty(t, descs)
}

func TestShellFunctionCompletionEnvironment(t *testing.T) {
	runner := newTestRunner(t, nil, `
_env() {
	COMPREPLY=("$COMP_CWORD" "$COMP_POINT" "${COMP_WORDS[1]}" "$1" "$2" "$3" "$COMP_LINE")
}
`)

	line := "echo hi | mycmd 'first word' sec"
	results, err := NewShellFunction("_env", runner).Execute(context.Background(), linestate.Parse(line, len(line)))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2",
		"22",
		"first word",
		"mycmd",
		"sec",
		"first word",
		"mycmd 'first word' sec",
	}, results)

	// The function runs in a subshell and leaves the parent untouched.
	_, ok := runner.Vars["COMP_LINE"]
	assert.False(t, ok)
}

func TestShellFunctionWithoutReply(t *testing.T) {
	runner := newTestRunner(t, nil, `
_quiet() {
	:
}
_scalar() {
	COMPREPLY=only
}
`)

	results, err := NewShellFunction("_quiet", runner).Execute(context.Background(), linestate.Parse("x ", 2))
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = NewShellFunction("_scalar", runner).Execute(context.Background(), linestate.Parse("x ", 2))
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, results)
}
