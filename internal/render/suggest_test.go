package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	m := newMatches(t, words("checkout", "cherry-pick", "commit", "checkout")...)

	assert.Equal(t, []string{"checkout"}, Suggest(m, "chkout", 5))
	assert.Len(t, Suggest(m, "c", 2), 2)
	assert.Empty(t, Suggest(m, "zzz", 5))
	assert.Empty(t, Suggest(m, "", 5))
	assert.Empty(t, Suggest(m, "c", 0))
}

func TestSuggestIgnoresSelection(t *testing.T) {
	m := newMatches(t, words("status", "stash")...)
	m.Coalesce(0)
	assert.Equal(t, 0, m.Count())

	assert.ElementsMatch(t, []string{"status", "stash"}, Suggest(m, "sta", 5))
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"main.go":      "main.go",
		"src/main.go":  "main.go",
		"src/pkg/":     "pkg/",
		`C:\dir\f.txt`: "f.txt",
		"/":            "/",
		"~":            "~",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, displayName(in), in)
	}
}
