package wildmatch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchBasic(t *testing.T) {
	tests := []struct {
		pattern  string
		name     string
		expected bool
	}{
		{"a*/ghi", "abc/def/ghi", false},
		{"*foo*", "food", true},
		{"*foo*", "qfood", true},
		{"*foo*", "qfoo", true},
		{"*foo*bar", "foobar", true},
		{"*foo*bar", "foodbar", true},
		{"*foo*bar", "foodbard", false},
		{"*foo*bar", "build.foobar", true},
		{"*foo*bar", "build.foo123bar", true},
		{"*foo*bar", "build.foo123bard", false},
		{"*foo*bar", "build.fo123bar", false},
		{"build*.log", "build.foo.bar.log", true},
		{"build*.log", "wmbuild.foo.bar.log", false},
		{"wmbuild*.log", "wmbuild.foo.bar.log", true},
		{"*r*p", "error.cpp", true},
		{"", "", true},
		{"*", "", true},
		{"?", "", false},
		{"é?", "éa", true},
		{"Foo", "foo", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s~%s", tt.pattern, tt.name), func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.pattern, tt.name, false))
		})
	}
}

func TestMatchLeadingPeriod(t *testing.T) {
	tests := []struct {
		pattern  string
		name     string
		expected bool
	}{
		{"bu*", "build", true},
		{"bu*", ".build", true},
		{"bu*", "..build", true},
		{".bu*", "build", false},
		{".bu*", ".build", true},
		{".bu*", "..build", false},
		{"abc/bu*", "build", false},
		{"abc/bu*", "abc/build", true},
		{"abc/bu*", ".build", false},
		{"abc/bu*", "abc/.build", true},
		{"*", ".hidden", true},
		{"?uild", ".build", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s~%s", tt.pattern, tt.name), func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.pattern, tt.name, false))
		})
	}
}

func TestMatchComponents(t *testing.T) {
	tests := []struct {
		pattern  string
		name     string
		expected bool
	}{
		{"abc/def/ghi", "abc/def/ghi", true},
		{"a*/def/ghi", "abc/def/ghi", true},
		{"a*/d?f/*i", "abc/def/ghi", true},
		{"abc/def", "abc/def/build", false},
		{"abc/def/?i*", "abc/def/build", false},
		{"abc/def/??i*", "abc/def/build", true},
		{"a*/*/ghi", "abc/def/ghi", true},
		{"abc/*", "abc/def/ghi", false},
		{"abc/*", "abc/def", true},
		{"/abc", "abc", false},
		{"abc//def", "abc/def", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s~%s", tt.pattern, tt.name), func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.pattern, tt.name, false))
		})
	}
}

func TestMatchSlashes(t *testing.T) {
	assert.True(t, Match("abc/def/ghi", `abc\def\ghi`, false))
	assert.True(t, Match(`abc\def\ghi`, "abc/def/ghi", false))
	assert.True(t, Match(`abc/\def`, `abc\\/def`, false))
}

func TestMatchEndStar(t *testing.T) {
	assert.False(t, Match("ori*", "origin/master", false))
	assert.True(t, Match("ori*", "origin/master", true))
	assert.True(t, Match("abc/*", "abc/def/ghi", true))
	assert.False(t, Match("abc/x*", "abc/def/ghi", true))
	assert.False(t, Match("ori", "origin/master", true))
	assert.False(t, Match("*/ori*", "origin", true))
}

func TestComponentCountInvariant(t *testing.T) {
	patterns := []string{"*", "a*", "?b", "a/*", "*/*", "a/b/c", ".x"}
	candidates := []string{"a", "ab", "a/b", "a/b/c", ".x", "x/.x/y", "a\\b"}

	for _, p := range patterns {
		for _, c := range candidates {
			if len(Components(p)) == len(Components(c)) {
				continue
			}
			assert.Falsef(t, Match(p, c, false), "pattern %q candidate %q", p, c)
		}
	}
}

func TestDotSkipInvariant(t *testing.T) {
	patterns := []string{"bu*", "b?ild", "*", "*ld", "build"}

	for _, p := range patterns {
		want := Match(p, "build", false)
		assert.True(t, want, p)
		for _, dots := range []string{".", "..", "..."} {
			assert.Equalf(t, want, Match(p, dots+"build", false), "pattern %q", p)
			assert.Equalf(t, want, Match("dir/"+p, "dir/"+dots+"build", false), "pattern %q", p)
		}
	}
}

func TestComponents(t *testing.T) {
	assert.Equal(t, []string{""}, Components(""))
	assert.Equal(t, []string{"abc"}, Components("abc"))
	assert.Equal(t, []string{"", "abc"}, Components("/abc"))
	assert.Equal(t, []string{"abc", ""}, Components("abc/"))
	assert.Equal(t, []string{"a", "b", "c"}, Components(`a//b\\\c`))
}

func TestTrimTrailingSeparators(t *testing.T) {
	assert.Equal(t, "abc", TrimTrailingSeparators(`abc/\/`))
	assert.Equal(t, "abc/def", TrimTrailingSeparators("abc/def"))
	assert.Equal(t, "", TrimTrailingSeparators("//"))
}
