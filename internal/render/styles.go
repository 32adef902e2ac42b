// Package render formats completion matches for the terminal.
package render

import (
	"github.com/atinylittleshell/gshmatch/internal/matches"
	"github.com/charmbracelet/lipgloss"
)

const (
	ColorBlue    = lipgloss.Color("12")
	ColorCyan    = lipgloss.Color("14")
	ColorGreen   = lipgloss.Color("10")
	ColorMagenta = lipgloss.Color("13")
	ColorYellow  = lipgloss.Color("11")
	ColorGray    = lipgloss.Color("8")
)

var (
	// DirStyle is used for directories
	DirStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)

	// LinkStyle is used for symbolic links
	LinkStyle = lipgloss.NewStyle().Foreground(ColorCyan)

	// CmdStyle is used for executables found on PATH
	CmdStyle = lipgloss.NewStyle().Foreground(ColorGreen)

	// AliasStyle is used for shell aliases
	AliasStyle = lipgloss.NewStyle().Foreground(ColorMagenta)

	// ReadonlyStyle is used for files the user cannot write
	ReadonlyStyle = lipgloss.NewStyle().Foreground(ColorYellow)

	// HiddenStyle dims dot files
	HiddenStyle = lipgloss.NewStyle().Foreground(ColorGray)

	// DescriptionStyle is used for match descriptions
	DescriptionStyle = lipgloss.NewStyle().Foreground(ColorGray)

	PlainStyle = lipgloss.NewStyle()
)

// StyleFor picks the style for a match type. Hidden wins over the kind so dot
// directories still read as secondary.
func StyleFor(t matches.Type) lipgloss.Style {
	if t.Has(matches.FlagHidden) {
		return HiddenStyle
	}

	switch t.Kind {
	case matches.KindDir:
		return DirStyle
	case matches.KindLink:
		return LinkStyle
	case matches.KindCmd:
		return CmdStyle
	case matches.KindAlias:
		return AliasStyle
	case matches.KindFile:
		if t.Has(matches.FlagReadonly) {
			return ReadonlyStyle
		}
	}
	return PlainStyle
}
