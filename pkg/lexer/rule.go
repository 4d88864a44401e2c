package lexer

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlparse/pkg/token"
)

// matcher attempts an anchored match at the start of src and returns the
// matched length, or -1 if it does not match.
type matcher interface {
	match(src string) int
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) match(src string) int {
	loc := m.re.FindStringIndex(src)
	if loc == nil || loc[0] != 0 || loc[1] == 0 {
		return -1
	}
	return loc[1]
}

type stringMatcher struct {
	lit string
}

func (m stringMatcher) match(src string) int {
	if strings.HasPrefix(src, m.lit) {
		return len(m.lit)
	}
	return -1
}

// Rule is one priority-ordered lexer entry: a named anchored pattern, the
// token class it yields, and optional trim instructions. Trimming affects
// the token's matching text only; the raw span always covers the full match.
type Rule struct {
	Name  string
	Class token.Class

	m          matcher
	trimPrefix string
	trimSuffix string
}

// Option configures a Rule.
type Option func(*Rule)

// TrimPrefix strips a known marker from the stored text (for example the
// "--" comment introducer) while keeping the span over the full match.
func TrimPrefix(p string) Option {
	return func(r *Rule) { r.trimPrefix = p }
}

// TrimSuffix strips a trailing marker from the stored text.
func TrimSuffix(s string) Option {
	return func(r *Rule) { r.trimSuffix = s }
}

// Regex builds a rule from a regular expression. The pattern is anchored at
// the current lexing offset; use \b inside the pattern when a trailing word
// boundary is required (so "GROUPX" is not split as GROUP + X).
func Regex(name, pattern string, class token.Class, opts ...Option) Rule {
	r := Rule{
		Name:  name,
		Class: class,
		m:     regexMatcher{re: regexp.MustCompile(`\A(?:` + pattern + `)`)},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// String builds a rule that matches an exact literal.
func String(name, literal string, class token.Class, opts ...Option) Rule {
	r := Rule{
		Name:  name,
		Class: class,
		m:     stringMatcher{lit: literal},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// text derives the stored matching text from a raw match.
func (r Rule) text(raw string) string {
	t := strings.TrimPrefix(raw, r.trimPrefix)
	if r.trimSuffix != "" {
		t = strings.TrimSuffix(t, r.trimSuffix)
	}
	return t
}
