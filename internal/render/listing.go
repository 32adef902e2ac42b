package render

import (
	"strings"

	"github.com/atinylittleshell/gshmatch/internal/matches"
	"github.com/atinylittleshell/gshmatch/internal/pipeline"
	"github.com/atinylittleshell/gshmatch/internal/wildmatch"
	"github.com/muesli/reflow/truncate"
	"github.com/rivo/uniseg"
)

const (
	columnGap    = 2
	truncateTail = "…"
)

type cell struct {
	text  string
	width int
	t     matches.Type
}

// Entries drains it and returns the display text of every distinct match,
// keeping the first occurrence. When the matches are displayed as filenames
// only the last path component is shown, keeping a trailing separator on
// directories.
func Entries(it *matches.Iter) ([]string, []matches.Type) {
	var texts []string
	var types []matches.Type
	seen := make(map[string]struct{})
	for it.Next() {
		text := it.Match()
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		texts = append(texts, text)
		types = append(types, it.MatchType())
	}

	if it.IsFilenameDisplayDesired().Get() {
		for i, text := range texts {
			texts[i] = displayName(text)
		}
	}
	return texts, types
}

func displayName(text string) string {
	trimmed := wildmatch.TrimTrailingSeparators(text)
	if trimmed == "" {
		return text
	}

	return text[strings.LastIndexAny(trimmed, `/\`)+1:]
}

// Listing lays the matches out in columns that fit width, filling each column
// top to bottom. A width of zero or less prints one match per line. Matches
// wider than width are truncated.
func Listing(it *matches.Iter, width int, styled bool) string {
	texts, types := Entries(it)
	if len(texts) == 0 {
		return ""
	}

	cells := make([]cell, len(texts))
	maxWidth := 0
	for i, text := range texts {
		if width > 0 && uniseg.StringWidth(text) > width {
			text = truncate.StringWithTail(text, uint(width), truncateTail)
		}
		cells[i] = cell{text: text, width: uniseg.StringWidth(text), t: types[i]}
		maxWidth = max(maxWidth, cells[i].width)
	}

	columns := 1
	if width > 0 {
		columns = max(1, (width+columnGap)/(maxWidth+columnGap))
	}
	rows := (len(cells) + columns - 1) / columns
	columns = (len(cells) + rows - 1) / rows

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			i := col*rows + row
			if i >= len(cells) {
				break
			}

			text := cells[i].text
			if styled {
				text = StyleFor(cells[i].t).Render(text)
			}
			sb.WriteString(text)

			last := col == columns-1 || (col+1)*rows+row >= len(cells)
			if !last {
				sb.WriteString(strings.Repeat(" ", max(0, maxWidth+columnGap-cells[i].width)))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DisplayListing prints entries supplied by a generator that took over
// display, one per line with descriptions aligned after the widest display
// text.
func DisplayListing(entries []pipeline.DisplayEntry, styled bool) string {
	maxWidth := 0
	for _, e := range entries {
		maxWidth = max(maxWidth, uniseg.StringWidth(displayText(e)))
	}

	var sb strings.Builder
	for _, e := range entries {
		text := displayText(e)
		sb.WriteString(text)
		if e.Description != "" {
			sb.WriteString(strings.Repeat(" ", max(0, maxWidth+columnGap-uniseg.StringWidth(text))))
			if styled {
				sb.WriteString(DescriptionStyle.Render(e.Description))
			} else {
				sb.WriteString(e.Description)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func displayText(e pipeline.DisplayEntry) string {
	if e.Display != "" {
		return e.Display
	}
	return e.Match
}

// Lines prints each distinct match on its own line without styling, for
// pipes and scripts.
func Lines(it *matches.Iter) string {
	var sb strings.Builder
	seen := make(map[string]struct{})
	for it.Next() {
		text := it.Match()
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
