// Package slug derives URL-safe identifiers from display names and resolves
// collisions against slugs that already exist.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Any run of characters outside [a-z0-9].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Multiple consecutive dashes.
	multipleDashes = regexp.MustCompile(`-+`)
)

// Make converts a display name to its base slug.
//
// Normalization rules:
//  1. Decompose unicode so accents split from their letters (é → e + ´)
//  2. Drop everything outside ASCII
//  3. Lowercase
//  4. Replace each run of non-alphanumerics with a single dash
//  5. Trim leading/trailing dashes
//
// Examples:
//
//	"Café Society"        → "cafe-society"
//	"Don't Panic!"        → "don-t-panic"
//	"  The   Long Night " → "the-long-night"
//	"🐉"                  → ""
func Make(name string) string {
	s := norm.NFKD.String(name)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Matcher recognises slugs in the family of a base slug: the base itself and
// the base followed by a dash and an optional run of digits ("wes", "wes-2", "wes-").
type Matcher struct {
	base string
	re   *regexp.Regexp
}

// NewMatcher builds a case-insensitive matcher for ^(base)(-[0-9]*)?$.
func NewMatcher(base string) *Matcher {
	return &Matcher{
		base: base,
		re:   regexp.MustCompile(`(?i)^(` + regexp.QuoteMeta(base) + `)(-[0-9]*)?$`),
	}
}

// Match reports whether candidate belongs to the base slug's family.
func (m *Matcher) Match(candidate string) bool {
	return m.re.MatchString(candidate)
}

// Count returns how many of candidates belong to the family.
func (m *Matcher) Count(candidates []string) int {
	n := 0
	for _, c := range candidates {
		if m.Match(c) {
			n++
		}
	}
	return n
}

// Next picks the slug for a new record given how many existing records
// already sit in the family. Zero matches keeps the base; N matches yields
// base-(N+1).
//
// This counts rows rather than reading the highest suffix, so a family with
// gaps (x, x-3) can produce a slug that already exists (x-3). Callers that
// need uniqueness must back this with a store constraint.
func Next(base string, matches int) string {
	if matches == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(matches+1)
}

// LikePrefix returns a SQL LIKE pattern (escape character '\') that
// over-selects the suffixed members of base's family. The exact test is left
// to Matcher.
func LikePrefix(base string) string {
	var b strings.Builder
	b.Grow(len(base) + 2)
	for _, r := range base {
		if r == '%' || r == '_' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteString("-%")
	return b.String()
}
