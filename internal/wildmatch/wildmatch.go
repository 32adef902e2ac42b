// Package wildmatch matches path-like strings against wildcard patterns.
//
// Patterns and candidates are compared one path component at a time. Both '/'
// and '\' separate components and a run of separators counts as one. Within a
// component '*' matches any run of characters and '?' matches exactly one;
// everything else matches literally. A candidate component's leading dots are
// skipped unless the pattern component itself starts with a dot, so "bu*"
// matches both "build" and ".build".
package wildmatch

import "strings"

// IsSeparator reports whether c separates path components.
func IsSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// TrimTrailingSeparators removes every trailing separator from s.
func TrimTrailingSeparators(s string) string {
	return strings.TrimRight(s, `/\`)
}

// Components splits s into path components. Runs of separators collapse into
// one. A leading separator produces an empty first component and a trailing
// separator an empty last component, which keeps "/abc" and "abc" distinct.
func Components(s string) []string {
	parts := make([]string, 0, 4)
	start := 0
	for i := 0; i < len(s); {
		if !IsSeparator(s[i]) {
			i++
			continue
		}
		parts = append(parts, s[start:i])
		for i < len(s) && IsSeparator(s[i]) {
			i++
		}
		start = i
	}
	return append(parts, s[start:])
}

// Match reports whether candidate matches pattern.
//
// The component counts of pattern and candidate must be equal, with one
// exception: when endStarCrossesSeparators is true and the last pattern
// component ends in '*', that star also swallows every remaining candidate
// component. Match("ori*", "origin/master", true) is therefore true while the
// same call with false is not.
func Match(pattern, candidate string, endStarCrossesSeparators bool) bool {
	pat := Components(pattern)
	cand := Components(candidate)

	if endStarCrossesSeparators && len(cand) > len(pat) && strings.HasSuffix(pat[len(pat)-1], "*") {
		cand = cand[:len(pat)]
	}

	if len(pat) != len(cand) {
		return false
	}

	for i := range pat {
		if !matchComponent(pat[i], cand[i]) {
			return false
		}
	}
	return true
}

// matchComponent matches a single component with backtracking on '*'. The
// match is anchored at both ends.
func matchComponent(pattern, name string) bool {
	if !strings.HasPrefix(pattern, ".") {
		name = strings.TrimLeft(name, ".")
	}

	p := []rune(pattern)
	s := []rune(name)

	pi, si := 0, 0
	starP, starS := -1, 0
	for si < len(s) {
		if pi < len(p) {
			switch p[pi] {
			case '*':
				starP, starS = pi, si
				pi++
				continue
			case '?':
				pi++
				si++
				continue
			default:
				if p[pi] == s[si] {
					pi++
					si++
					continue
				}
			}
		}

		if starP < 0 {
			return false
		}

		// Let the last star eat one more character and retry from there.
		starS++
		pi, si = starP+1, starS
	}

	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
