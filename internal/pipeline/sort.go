package pipeline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atinylittleshell/gshmatch/internal/matches"
	"github.com/atinylittleshell/gshmatch/internal/strcompare"
	"github.com/atinylittleshell/gshmatch/internal/wildmatch"
)

// SortDirs places directories relative to other matches.
type SortDirs int

const (
	SortDirsWith SortDirs = iota
	SortDirsBefore
	SortDirsAfter
)

func (s SortDirs) String() string {
	switch s {
	case SortDirsWith:
		return "with"
	case SortDirsBefore:
		return "before"
	case SortDirsAfter:
		return "after"
	}
	return fmt.Sprintf("SortDirs(%d)", int(s))
}

// ParseSortDirs parses "before", "with" or "after".
func ParseSortDirs(s string) (SortDirs, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "with":
		return SortDirsWith, nil
	case "before":
		return SortDirsBefore, nil
	case "after":
		return SortDirsAfter, nil
	}
	return SortDirsWith, fmt.Errorf("invalid sort dirs %q: expected before, with or after", s)
}

func (s SortDirs) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SortDirs) UnmarshalText(text []byte) error {
	v, err := ParseSortDirs(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// kindRank orders matches that collate equally.
var kindRank = map[matches.Kind]int{
	matches.KindDir:   0,
	matches.KindAlias: 1,
	matches.KindWord:  2,
	matches.KindArg:   3,
	matches.KindFile:  4,
}

const otherRank = 5

func rank(t matches.Type) int {
	if r, ok := kindRank[t.Kind]; ok {
		return r
	}
	return otherRank
}

func isDirMatch(text []byte, t matches.Type) bool {
	if t.Is(matches.KindDir) {
		return true
	}
	return t.Is(matches.KindNone) && len(text) > 0 && wildmatch.IsSeparator(text[len(text)-1])
}

func sortText(text []byte, dir bool) string {
	if dir && len(text) > 0 && wildmatch.IsSeparator(text[len(text)-1]) {
		text = text[:len(text)-1]
	}
	return string(text)
}

// Compare orders a before b by directory placement, then collation, then kind.
func Compare(a, b matches.Info, dirs SortDirs, coll *strcompare.Collator) int {
	aDir := isDirMatch(a.Bytes(), a.Type)
	bDir := isDirMatch(b.Bytes(), b.Type)

	if aDir != bDir {
		switch dirs {
		case SortDirsBefore:
			if aDir {
				return -1
			}
			return 1
		case SortDirsAfter:
			if aDir {
				return 1
			}
			return -1
		}
	}

	if c := coll.Compare(sortText(a.Bytes(), aDir), sortText(b.Bytes(), bDir)); c != 0 {
		return c
	}

	return rank(a.Type) - rank(b.Type)
}

// Less reports whether a sorts before b.
func Less(a, b matches.Info, dirs SortDirs, coll *strcompare.Collator) bool {
	return Compare(a, b, dirs, coll) < 0
}

// SortMatches stably sorts infos in place.
func SortMatches(infos []matches.Info, dirs SortDirs, coll *strcompare.Collator) {
	slices.SortStableFunc(infos, func(a, b matches.Info) int {
		return Compare(a, b, dirs, coll)
	})
}
