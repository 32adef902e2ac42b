package matches

// Builder is the write side of a Matches handed to generators.
type Builder struct {
	matches *Matches
}

// NewBuilder returns a Builder that adds to m.
func NewBuilder(m *Matches) *Builder {
	return &Builder{matches: m}
}

// AddMatch adds a candidate; see Matches.AddMatch.
func (b *Builder) AddMatch(desc Desc) bool {
	return b.matches.AddMatch(desc)
}

// Add is shorthand for AddMatch(Desc{Text: text, Type: t}).
func (b *Builder) Add(text string, t Type) bool {
	return b.matches.AddMatch(Desc{Text: text, Type: t})
}

// SetAppendCharacter sets the character appended after an inserted match.
func (b *Builder) SetAppendCharacter(c byte) {
	b.matches.SetAppendCharacter(c)
}

// SetSuppressAppend turns appending after an inserted match off or on.
func (b *Builder) SetSuppressAppend(suppress bool) {
	b.matches.SetSuppressAppend(suppress)
}

// SetSuppressQuoting sets how an inserted match is quoted.
func (b *Builder) SetSuppressQuoting(mode QuotingMode) {
	b.matches.SetSuppressQuoting(mode)
}

// SetMatchesAreFiles marks the matches as filenames for completion and display.
func (b *Builder) SetMatchesAreFiles(files bool) {
	b.matches.SetMatchesAreFiles(files)
}
