// Package matches holds the candidates of one completion cycle.
//
// Generators add candidates through a Builder while the cycle is open. The
// selection step then marks the candidates that survive and calls Coalesce,
// which moves them to the front and freezes the set. From then on the line
// editor reads the result through the accessors or an Iter until Reset starts
// the next cycle.
package matches

import (
	"github.com/atinylittleshell/gshmatch/internal/wildmatch"
	"go.uber.org/zap"
)

// Desc describes a match handed to AddMatch. It is not retained.
type Desc struct {
	Text string
	Type Type
}

// Info is one stored candidate. Its text lives in the Store and is only valid
// until the owning Matches is reset.
type Info struct {
	text     []byte
	Type     Type
	Selected bool
}

// Text returns a copy of the candidate text.
func (i Info) Text() string {
	return string(i.text)
}

// Bytes returns the stored candidate text without copying.
func (i Info) Bytes() []byte {
	return i.text
}

// QuotingMode controls how the editor quotes an inserted match.
type QuotingMode int

const (
	// QuoteNormal quotes matches that need it.
	QuoteNormal QuotingMode = iota
	// QuoteSuppress never quotes.
	QuoteSuppress
	// QuoteSuppressEnd opens quotes but does not close them.
	QuoteSuppressEnd
)

// Options configures a Matches.
type Options struct {
	// StoreSize is the Store page size in bytes. Zero uses MinPageSize.
	StoreSize int
	// MaxStorePages bounds the Store; zero or less means unbounded.
	MaxStorePages int
	// TildeExpansion expands a leading "~" in iterator patterns.
	TildeExpansion bool
	// HomeDir resolves "~". Nil uses os.UserHomeDir.
	HomeDir func() (string, error)
	Logger  *zap.Logger
}

// Matches is the registry of candidates for one completion cycle.
//
// A Matches is not safe for concurrent use.
type Matches struct {
	store     *Store
	infos     []Info
	count     int
	coalesced bool

	appendCharacter   byte
	suppressAppend    bool
	suppressQuoting   QuotingMode
	wordBreakPosition int
	regenBlocked      bool

	filenameCompletionDesired ShadowBool
	filenameDisplayDesired    ShadowBool

	tildeExpansion bool
	homeDir        func() (string, error)
	logger         *zap.Logger
}

// New creates an empty Matches.
func New(opts Options) *Matches {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Matches{
		store:             NewStore(opts.StoreSize, opts.MaxStorePages),
		infos:             make([]Info, 0, 1024),
		wordBreakPosition: -1,
		tildeExpansion:    opts.TildeExpansion,
		homeDir:           opts.HomeDir,
		logger:            logger,
	}
}

// Reset empties the registry for a new cycle.
func (m *Matches) Reset() {
	m.store.Reset()
	clear(m.infos)
	m.infos = m.infos[:0]
	m.count = 0
	m.coalesced = false
	m.appendCharacter = 0
	m.suppressAppend = false
	m.suppressQuoting = QuoteNormal
	m.wordBreakPosition = -1
	m.regenBlocked = false
	m.filenameCompletionDesired.Reset()
	m.filenameDisplayDesired.Reset()
}

// AddMatch stores a candidate. It returns false, leaving the registry
// unchanged, when the text is empty, the registry is coalesced, or the Store
// cannot hold the text. An unclassified match ending in a path separator is
// classified as a directory.
func (m *Matches) AddMatch(desc Desc) bool {
	if m.coalesced || desc.Text == "" {
		return false
	}

	t := desc.Type
	if t.Kind == KindNone && wildmatch.IsSeparator(desc.Text[len(desc.Text)-1]) {
		t.Kind = KindDir
	}

	text, err := m.store.StoreFront(desc.Text)
	if err != nil {
		m.logger.Debug("dropping match", zap.Int("length", len(desc.Text)), zap.Error(err))
		return false
	}

	m.infos = append(m.infos, Info{text: text, Type: t})
	m.count++
	return true
}

// Coalesce moves every selected candidate to the front, preserving their
// relative order, and freezes the registry. Gathering stops once countHint
// selected candidates have been found. The filename flags are re-inferred
// from the survivors: completion is desired when any of them is pathish and
// display when all of them are.
func (m *Matches) Coalesce(countHint int) {
	anyPathish := false
	allPathish := true

	j := 0
	for i := 0; i < len(m.infos) && j < countHint; i++ {
		if !m.infos[i].Selected {
			continue
		}

		if m.infos[i].Type.IsPathish() {
			anyPathish = true
		} else {
			allPathish = false
		}

		if i != j {
			m.infos[i], m.infos[j] = m.infos[j], m.infos[i]
		}
		j++
	}

	m.filenameCompletionDesired.SetImplicit(anyPathish)
	m.filenameDisplayDesired.SetImplicit(anyPathish && allPathish)

	m.count = j
	m.coalesced = true
}

// Coalesced reports whether Coalesce has run this cycle.
func (m *Matches) Coalesced() bool {
	return m.coalesced
}

// Infos exposes every stored candidate for in-place selection and sorting.
func (m *Matches) Infos() []Info {
	return m.infos
}

// Store returns the backing Store.
func (m *Matches) Store() *Store {
	return m.store
}

// Count returns the number of visible matches: every candidate before
// coalescing, the selected ones after.
func (m *Matches) Count() int {
	return m.count
}

// Match returns the i-th visible match, or "" when i is out of range.
func (m *Matches) Match(i int) string {
	if i < 0 || i >= m.count {
		return ""
	}
	return m.infos[i].Text()
}

// MatchType returns the type of the i-th visible match, or the zero Type when
// i is out of range.
func (m *Matches) MatchType(i int) Type {
	if i < 0 || i >= m.count {
		return Type{}
	}
	return m.infos[i].Type
}

// UnfilteredCount returns the number of candidates ever added this cycle.
func (m *Matches) UnfilteredCount() int {
	return len(m.infos)
}

// UnfilteredMatch returns the i-th candidate regardless of selection.
func (m *Matches) UnfilteredMatch(i int) string {
	if i < 0 || i >= len(m.infos) {
		return ""
	}
	return m.infos[i].Text()
}

// UnfilteredMatchType returns the type of the i-th candidate regardless of
// selection.
func (m *Matches) UnfilteredMatchType(i int) Type {
	if i < 0 || i >= len(m.infos) {
		return Type{}
	}
	return m.infos[i].Type
}

// IsFilenameCompletionDesired reports whether the matches should be completed
// as filenames.
func (m *Matches) IsFilenameCompletionDesired() ShadowBool {
	return m.filenameCompletionDesired
}

// IsFilenameDisplayDesired reports whether the matches should be displayed as
// filenames. An explicit request for filename completion implies display.
func (m *Matches) IsFilenameDisplayDesired() ShadowBool {
	if m.filenameDisplayDesired.IsExplicit() {
		return m.filenameDisplayDesired
	}

	display := m.filenameDisplayDesired
	if m.filenameCompletionDesired.IsExplicit() && m.filenameCompletionDesired.Get() {
		display.SetImplicit(true)
	}
	return display
}

// AppendCharacter returns the character to append after an inserted match,
// or 0 for the editor's default.
func (m *Matches) AppendCharacter() byte {
	return m.appendCharacter
}

// SuppressAppend reports whether nothing is appended after an inserted match.
func (m *Matches) SuppressAppend() bool {
	return m.suppressAppend
}

// SuppressQuoting returns how an inserted match is quoted.
func (m *Matches) SuppressQuoting() QuotingMode {
	return m.suppressQuoting
}

// WordBreakPosition returns the offset of the word being completed, or -1.
func (m *Matches) WordBreakPosition() int {
	return m.wordBreakPosition
}

// RegenBlocked reports whether a generator asked for the matches to be kept
// rather than regenerated as the user keeps typing.
func (m *Matches) RegenBlocked() bool {
	return m.regenBlocked
}

// SetAppendCharacter sets the character appended after an inserted match.
func (m *Matches) SetAppendCharacter(c byte) {
	m.appendCharacter = c
}

// SetSuppressAppend turns appending after an inserted match off or on.
func (m *Matches) SetSuppressAppend(suppress bool) {
	m.suppressAppend = suppress
}

// SetSuppressQuoting sets how an inserted match is quoted.
func (m *Matches) SetSuppressQuoting(mode QuotingMode) {
	m.suppressQuoting = mode
}

// SetWordBreakPosition records the offset of the word being completed.
func (m *Matches) SetWordBreakPosition(position int) {
	m.wordBreakPosition = position
}

// SetRegenBlocked keeps the matches until the next Reset.
func (m *Matches) SetRegenBlocked() {
	m.regenBlocked = true
}

// SetMatchesAreFiles explicitly sets both filename flags.
func (m *Matches) SetMatchesAreFiles(files bool) {
	m.filenameCompletionDesired.SetExplicit(files)
	m.filenameDisplayDesired.SetExplicit(files)
}
