package matches

import (
	"github.com/atinylittleshell/gshmatch/internal/core"
	"github.com/atinylittleshell/gshmatch/internal/wildmatch"
)

// Iter walks matches in order. A plain iterator visits the visible matches; a
// patterned iterator visits every candidate and yields the ones whose text,
// without trailing separators, matches the pattern. Pathish candidates are
// matched without letting a trailing star cross separators.
type Iter struct {
	matches    *Matches
	pattern    string
	hasPattern bool

	index int
	next  int

	anyPathish bool
	allPathish bool

	filenameCompletionDesired ShadowBool
	filenameDisplayDesired    ShadowBool
}

// Iter returns an iterator over the visible matches.
func (m *Matches) Iter() *Iter {
	return newIter(m, "", false)
}

// IterPattern returns an iterator over the candidates matching pattern.
func (m *Matches) IterPattern(pattern string) *Iter {
	return newIter(m, pattern, true)
}

func newIter(m *Matches, pattern string, hasPattern bool) *Iter {
	if hasPattern && m.tildeExpansion {
		pattern = core.ExpandTilde(pattern, m.homeDir)
	}

	return &Iter{
		matches:                   m,
		pattern:                   pattern,
		hasPattern:                hasPattern,
		index:                     -1,
		allPathish:                true,
		filenameCompletionDesired: m.IsFilenameCompletionDesired(),
		filenameDisplayDesired:    m.IsFilenameDisplayDesired(),
	}
}

// Pattern returns the pattern in effect after tilde expansion.
func (it *Iter) Pattern() string {
	return it.pattern
}

// Next advances to the next match and reports whether there was one.
func (it *Iter) Next() bool {
	if it.hasPattern {
		for it.next < it.matches.UnfilteredCount() {
			it.index = it.next
			it.next++

			text := wildmatch.TrimTrailingSeparators(it.matches.UnfilteredMatch(it.index))
			if wildmatch.Match(it.pattern, text, !it.MatchType().IsPathish()) {
				it.accumulate()
				return true
			}
		}
		it.index = it.next
		return false
	}

	it.index = it.next
	if it.index >= it.matches.Count() {
		return false
	}
	it.next++
	it.accumulate()
	return true
}

func (it *Iter) accumulate() {
	if it.MatchType().IsPathish() {
		it.anyPathish = true
	} else {
		it.allPathish = false
	}
}

// Index returns the position of the current match in the array the
// iterator walks, or -1 before the first call to Next.
func (it *Iter) Index() int {
	return it.index
}

// Match returns the current match, or "" when there is none.
func (it *Iter) Match() string {
	if it.hasPattern {
		return it.matches.UnfilteredMatch(it.index)
	}
	return it.matches.Match(it.index)
}

// MatchType returns the type of the current match.
func (it *Iter) MatchType() Type {
	if it.hasPattern {
		return it.matches.UnfilteredMatchType(it.index)
	}
	return it.matches.MatchType(it.index)
}

// IsFilenameCompletionDesired is inferred from the matches visited so far
// unless the generators set it explicitly.
func (it *Iter) IsFilenameCompletionDesired() ShadowBool {
	b := it.filenameCompletionDesired
	b.SetImplicit(it.anyPathish)
	return b
}

// IsFilenameDisplayDesired is inferred from the matches visited so far unless
// the generators set it explicitly.
func (it *Iter) IsFilenameDisplayDesired() ShadowBool {
	b := it.filenameDisplayDesired
	b.SetImplicit(it.anyPathish && it.allPathish)
	if it.filenameCompletionDesired.IsExplicit() && it.filenameCompletionDesired.Get() {
		b.SetImplicit(true)
	}
	return b
}
