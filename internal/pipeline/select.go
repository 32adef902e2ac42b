package pipeline

import (
	"github.com/atinylittleshell/gshmatch/internal/matches"
	"github.com/atinylittleshell/gshmatch/internal/strcompare"
)

// SelectMatches marks every candidate that the needle is a complete prefix of
// and returns how many were marked.
func SelectMatches(opts strcompare.Options, needle string, infos []matches.Info) int {
	selected := 0
	for i := range infos {
		infos[i].Selected = strcompare.HasPrefix(opts, needle, string(infos[i].Bytes()))
		if infos[i].Selected {
			selected++
		}
	}
	return selected
}
