// Package linestate describes the line being completed: its text, the cursor,
// and the words of the command under the cursor.
package linestate

import "strings"

// Word is a span of the line. Offset and Length are byte positions and
// include any quotes.
type Word struct {
	Offset      int
	Length      int
	CommandWord bool
	IsAlias     bool
	Quoted      bool
	// Delim is the byte preceding the word, or 0 at the start of the line.
	Delim byte
}

// LineState is a read-only snapshot of the line handed to generators.
type LineState struct {
	line          string
	cursor        int
	commandOffset int
	words         []Word
}

// New creates a LineState from words already split by the caller.
// commandOffset is the index of the first word of the command under the
// cursor. The last word is the one being completed.
func New(line string, cursor int, commandOffset int, words []Word) LineState {
	return LineState{
		line:          line,
		cursor:        clamp(cursor, 0, len(line)),
		commandOffset: commandOffset,
		words:         words,
	}
}

// Parse splits the line up to the cursor into words. Whitespace separates
// words, quotes and backslashes protect separators, and ';', '|' and '&' start
// a new command. The word being completed is always present; it is empty when
// the cursor follows a separator.
func Parse(line string, cursor int) LineState {
	cursor = clamp(cursor, 0, len(line))
	text := line[:cursor]

	var (
		words         []Word
		commandOffset int
		start         = -1
		quote         byte
		quoted        bool
		newCommand    = true
	)

	flush := func(end int) {
		if start < 0 {
			return
		}
		var delim byte
		if start > 0 {
			delim = text[start-1]
		}
		words = append(words, Word{
			Offset:      start,
			Length:      end - start,
			CommandWord: newCommand,
			Quoted:      quoted,
			Delim:       delim,
		})
		if newCommand {
			commandOffset = len(words) - 1
		}
		newCommand = false
		start = -1
		quoted = false
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if quote != 0 {
			if c == quote {
				quote = 0
			} else if c == '\\' && quote == '"' && i+1 < len(text) {
				i++
			}
			continue
		}

		switch c {
		case ' ', '\t', '\n':
			flush(i)
		case ';', '|', '&':
			flush(i)
			newCommand = true
		default:
			if start < 0 {
				start = i
			}
			switch c {
			case '\\':
				if i+1 < len(text) {
					i++
				}
			case '"', '\'':
				quote = c
				quoted = true
			}
		}
	}

	if start >= 0 {
		flush(len(text))
	} else {
		start = len(text)
		flush(len(text))
	}

	return LineState{
		line:          line,
		cursor:        cursor,
		commandOffset: commandOffset,
		words:         words,
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func (s LineState) Line() string {
	return s.line
}

func (s LineState) Cursor() int {
	return s.cursor
}

// CommandOffset returns the index of the first word of the current command.
func (s LineState) CommandOffset() int {
	return s.commandOffset
}

// EndWordOffset returns the byte offset of the word being completed.
func (s LineState) EndWordOffset() int {
	if len(s.words) == 0 {
		return s.cursor
	}
	return s.words[len(s.words)-1].Offset
}

func (s LineState) Words() []Word {
	return s.words
}

func (s LineState) WordCount() int {
	return len(s.words)
}

// RawWord returns the i-th word including quotes, or "" when out of range.
func (s LineState) RawWord(i int) string {
	if i < 0 || i >= len(s.words) {
		return ""
	}
	w := s.words[i]
	end := min(w.Offset+w.Length, len(s.line))
	return s.line[w.Offset:end]
}

// Word returns the i-th word with quotes and escapes removed.
func (s LineState) Word(i int) string {
	return Unquote(s.RawWord(i))
}

// RawEndWord returns the word being completed including quotes.
func (s LineState) RawEndWord() string {
	return s.RawWord(len(s.words) - 1)
}

// EndWord returns the word being completed with quotes removed.
func (s LineState) EndWord() string {
	return s.Word(len(s.words) - 1)
}

// CommandWord returns the command of the current command, quotes removed.
func (s LineState) CommandWord() string {
	return s.Word(s.commandOffset)
}

// IsCommandPosition reports whether the word being completed is the command
// word itself.
func (s LineState) IsCommandPosition() bool {
	return len(s.words) == 0 || len(s.words)-1 == s.commandOffset
}

// Args returns every word of the current command with quotes removed, the
// word being completed last.
func (s LineState) Args() []string {
	if s.commandOffset >= len(s.words) {
		return nil
	}
	args := make([]string, 0, len(s.words)-s.commandOffset)
	for i := s.commandOffset; i < len(s.words); i++ {
		args = append(args, s.Word(i))
	}
	return args
}

// Unquote removes shell quoting from a possibly unterminated word.
func Unquote(word string) string {
	if !strings.ContainsAny(word, `"'\`) {
		return word
	}

	var sb strings.Builder
	sb.Grow(len(word))

	var quote byte
	for i := 0; i < len(word); i++ {
		c := word[i]
		switch {
		case quote == '\'':
			if c == '\'' {
				quote = 0
				continue
			}
		case quote == '"':
			if c == '"' {
				quote = 0
				continue
			}
			if c == '\\' && i+1 < len(word) && strings.IndexByte(`"\$`+"`", word[i+1]) >= 0 {
				i++
				c = word[i]
			}
		case c == '\'' || c == '"':
			quote = c
			continue
		case c == '\\' && i+1 < len(word):
			i++
			c = word[i]
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
