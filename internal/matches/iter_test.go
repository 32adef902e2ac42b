package matches

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(it *Iter) []string {
	var out []string
	for it.Next() {
		out = append(out, it.Match())
	}
	return out
}

func TestIterPlainWalksVisibleMatches(t *testing.T) {
	m := New(Options{})
	addAll(t, m,
		Desc{Text: "abc", Type: TypeOf(KindWord)},
		Desc{Text: "xyz", Type: TypeOf(KindWord)},
		Desc{Text: "abd", Type: TypeOf(KindFile)},
	)
	m.Coalesce(selectWhere(m, func(s string) bool { return s[0] == 'a' }))

	it := m.Iter()
	assert.Equal(t, -1, it.Index())
	assert.Equal(t, "", it.Match())

	require.True(t, it.Next())
	assert.Equal(t, "abc", it.Match())
	assert.Equal(t, TypeOf(KindWord), it.MatchType())
	require.True(t, it.Next())
	assert.Equal(t, "abd", it.Match())
	assert.Equal(t, 1, it.Index())
	assert.False(t, it.Next())
	assert.Equal(t, "", it.Match())
	assert.False(t, it.Next())
}

func TestIterPatternWalksUnfilteredMatches(t *testing.T) {
	m := New(Options{})
	addAll(t, m,
		Desc{Text: "origin/master", Type: TypeOf(KindWord)},
		Desc{Text: "src/", Type: TypeOf(KindDir)},
		Desc{Text: "origin/dev/x", Type: TypeOf(KindFile)},
		Desc{Text: ".secret", Type: TypeOf(KindFile)},
		Desc{Text: "other", Type: TypeOf(KindWord)},
	)
	m.Coalesce(0)
	require.Equal(t, 0, m.Count())

	// The non-pathish word may cross separators, the pathish file may not.
	assert.Equal(t, []string{"origin/master"}, collect(m.IterPattern("ori*")))
	assert.Equal(t, []string{"src/"}, collect(m.IterPattern("s?c")))
	assert.Equal(t, []string{".secret"}, collect(m.IterPattern("sec*")))
	assert.Equal(t, []string{"origin/dev/x"}, collect(m.IterPattern("origin/*/x")))
	assert.Empty(t, collect(m.IterPattern("nothing*")))
}

func TestIterPatternTildeExpansion(t *testing.T) {
	home := func() (string, error) { return "/home/me", nil }

	m := New(Options{TildeExpansion: true, HomeDir: home})
	addAll(t, m, Desc{Text: "/home/me/notes.txt", Type: TypeOf(KindFile)})

	it := m.IterPattern("~/*.txt")
	assert.Equal(t, "/home/me/*.txt", it.Pattern())
	assert.Equal(t, []string{"/home/me/notes.txt"}, collect(it))

	plain := New(Options{HomeDir: home})
	addAll(t, plain, Desc{Text: "/home/me/notes.txt", Type: TypeOf(KindFile)})
	it = plain.IterPattern("~/*.txt")
	assert.Equal(t, "~/*.txt", it.Pattern())
	assert.Empty(t, collect(it))
}

func TestIterAggregatesFilenameFlags(t *testing.T) {
	m := New(Options{})
	addAll(t, m,
		Desc{Text: "dir/", Type: TypeOf(KindDir)},
		Desc{Text: "file", Type: TypeOf(KindFile)},
		Desc{Text: "word", Type: TypeOf(KindWord)},
	)
	m.Coalesce(selectWhere(m, func(string) bool { return true }))

	it := m.Iter()
	assert.False(t, it.IsFilenameCompletionDesired().Get())
	assert.False(t, it.IsFilenameDisplayDesired().Get())

	require.True(t, it.Next())
	require.True(t, it.Next())
	assert.True(t, it.IsFilenameCompletionDesired().Get())
	assert.True(t, it.IsFilenameDisplayDesired().Get())

	require.True(t, it.Next())
	assert.True(t, it.IsFilenameCompletionDesired().Get())
	assert.False(t, it.IsFilenameDisplayDesired().Get())
}

func TestIterHonoursExplicitOverrides(t *testing.T) {
	m := New(Options{})
	addAll(t, m, Desc{Text: "word", Type: TypeOf(KindWord)})
	m.SetMatchesAreFiles(true)
	m.Coalesce(selectWhere(m, func(string) bool { return true }))

	it := m.Iter()
	for it.Next() {
	}
	assert.True(t, it.IsFilenameCompletionDesired().Get())
	assert.True(t, it.IsFilenameCompletionDesired().IsExplicit())
	assert.True(t, it.IsFilenameDisplayDesired().Get())

	m.Reset()
	addAll(t, m, Desc{Text: "word", Type: TypeOf(KindWord)})
	m.filenameCompletionDesired.SetExplicit(true)
	m.Coalesce(selectWhere(m, func(string) bool { return true }))

	it = m.Iter()
	for it.Next() {
	}
	display := it.IsFilenameDisplayDesired()
	assert.True(t, display.Get())
	assert.False(t, display.IsExplicit())
}
