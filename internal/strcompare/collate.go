package strcompare

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator orders strings the way matches are sorted: locale aware, digits
// compared as numbers, case ignored. Relaxed mode folds '-' onto '_' and
// FuzzyAccents ignores diacritics, mirroring Prefix.
//
// A Collator is not safe for concurrent use.
type Collator struct {
	opts Options
	tag  language.Tag
	c    *collate.Collator
}

// NewCollator creates a Collator for the given locale.
func NewCollator(tag language.Tag, opts Options) *Collator {
	collateOpts := []collate.Option{collate.IgnoreCase, collate.Numeric}
	if opts.FuzzyAccents {
		collateOpts = append(collateOpts, collate.IgnoreDiacritics)
	}

	return &Collator{
		opts: opts,
		tag:  tag,
		c:    collate.New(tag, collateOpts...),
	}
}

// Matches reports whether the collator was built for tag and opts.
func (c *Collator) Matches(tag language.Tag, opts Options) bool {
	return c.tag == tag && c.opts == opts
}

// Compare returns -1, 0 or +1.
func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(c.prepare(a), c.prepare(b))
}

func (c *Collator) prepare(s string) string {
	relaxed := c.opts.Mode >= Relaxed
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\\':
			return '/'
		case relaxed && r == '-':
			return '_'
		}
		return r
	}, s)
}

// ParseLocale turns a POSIX locale name such as "de_DE.UTF-8@euro" or a
// BCP 47 tag into a language tag. "C", "POSIX" and unparsable names yield
// language.Und.
func ParseLocale(name string) language.Tag {
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	name = strings.ReplaceAll(strings.TrimSpace(name), "_", "-")

	switch name {
	case "", "C", "POSIX":
		return language.Und
	}

	tag, err := language.Parse(name)
	if err != nil {
		return language.Und
	}
	return tag
}

// LocaleFromEnv picks the collation locale from LC_ALL, LC_COLLATE and LANG,
// in that order.
func LocaleFromEnv(lookup func(string) (string, bool)) language.Tag {
	for _, key := range []string{"LC_ALL", "LC_COLLATE", "LANG"} {
		if v, ok := lookup(key); ok && v != "" {
			return ParseLocale(v)
		}
	}
	return language.Und
}
