// Package strcompare implements the string comparison modes shared by match
// selection and match sorting, so that what matches and how it is ordered
// never disagree.
package strcompare

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Mode selects how characters are compared.
type Mode int

const (
	// Exact compares characters ordinally.
	Exact Mode = iota
	// Caseless ignores letter case.
	Caseless
	// Relaxed ignores letter case and treats '-' and '_' as equal.
	Relaxed
)

var modeNames = map[Mode]string{
	Exact:    "exact",
	Caseless: "caseless",
	Relaxed:  "relaxed",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses one of "exact", "caseless" or "relaxed".
func ParseMode(s string) (Mode, error) {
	for mode, name := range modeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return mode, nil
		}
	}
	return Exact, fmt.Errorf("invalid compare mode %q: expected exact, caseless or relaxed", s)
}

// Options is the active comparison mode.
type Options struct {
	Mode Mode
	// FuzzyAccents additionally treats accented letters as their base letter.
	FuzzyAccents bool
}

func (o Options) fold(r rune) rune {
	if o.Mode >= Caseless {
		r = unicode.ToLower(r)
	}
	if o.Mode >= Relaxed && r == '-' {
		r = '_'
	}
	if r == '\\' {
		r = '/'
	}
	return r
}

// Prefix returns how many bytes at the start of lhs match the start of rhs,
// or -1 when both strings match in their entirety. Path separators compare
// equal to each other and a run of separators compares equal to a single one.
// Bytes that are not valid UTF-8 are compared as raw bytes.
func Prefix(opts Options, lhs, rhs string) int {
	i, j := 0, 0
	for i < len(lhs) && j < len(rhs) {
		c, cn := utf8.DecodeRuneInString(lhs[i:])
		d, dn := utf8.DecodeRuneInString(rhs[j:])

		// Invalid bytes only match themselves.
		if (c == utf8.RuneError && cn == 1) || (d == utf8.RuneError && dn == 1) {
			if lhs[i] != rhs[j] {
				break
			}
			i++
			j++
			continue
		}

		c = opts.fold(c)
		d = opts.fold(d)

		if c != d {
			if !opts.FuzzyAccents || normalizeAccent(c) != normalizeAccent(d) {
				break
			}
		}

		i += cn
		j += dn

		if c == '/' {
			for i < len(lhs) && isSeparator(lhs[i]) {
				i++
			}
			for j < len(rhs) && isSeparator(rhs[j]) {
				j++
			}
		}
	}

	if i < len(lhs) || j < len(rhs) {
		return i
	}
	return -1
}

// HasPrefix reports whether needle is a complete prefix of s under opts.
func HasPrefix(opts Options, needle, s string) bool {
	n := Prefix(opts, needle, s)
	return n < 0 || n == len(needle)
}

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// normalizeAccent maps a precomposed letter to its base letter.
func normalizeAccent(r rune) rune {
	if r < utf8.RuneSelf {
		return r
	}
	base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
	return base
}
