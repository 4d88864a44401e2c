// Package lexer tokenizes SQL input using an ordered, dialect-patchable
// rule list.
//
// Rules are tried in priority order at each offset and the first match
// wins, even when a later rule would match more text. Every byte of the
// input ends up in some token: bytes no rule matches become unlexable
// tokens and are reported as warnings, never as a fatal error.
package lexer

import (
	"fmt"

	"github.com/leapstack-labs/sqlparse/pkg/token"
)

// Warning records a contiguous run of input no lexer rule matched.
type Warning struct {
	Pos token.Position
	Raw string
}

// String formats the warning for diagnostics.
func (w Warning) String() string {
	return fmt.Sprintf("unlexable input %q at %s", w.Raw, w.Pos)
}

// UnlexableRuleName is the rule name carried by unlexable tokens.
const UnlexableRuleName = "unlexable"

// Lexer tokenizes input against a fixed, effective rule list. A Lexer is
// immutable and safe for concurrent use.
type Lexer struct {
	rules []Rule
}

// New creates a Lexer from an effective rule list.
func New(rules []Rule) *Lexer {
	return &Lexer{rules: rules}
}

// Rules returns the effective rule list in priority order.
func (l *Lexer) Rules() []Rule {
	out := make([]Rule, len(l.rules))
	copy(out, l.rules)
	return out
}

// Lex scans the whole input and returns the exhaustive token stream plus
// warnings for unlexable spans. Concatenating the Raw fields of the
// returned tokens always reproduces src exactly.
func (l *Lexer) Lex(src string) ([]token.Token, []Warning) {
	var (
		toks     []token.Token
		warnings []Warning
		pos      = token.Position{Line: 1, Column: 1, Offset: 0}
		badStart = -1 // start index into toks of the current unlexable run
	)

	for pos.Offset < len(src) {
		rest := src[pos.Offset:]
		matched := false
		for _, r := range l.rules {
			n := r.m.match(rest)
			if n <= 0 {
				continue
			}
			raw := rest[:n]
			toks = append(toks, token.Token{
				Class: r.Class,
				Rule:  r.Name,
				Raw:   raw,
				Text:  r.text(raw),
				Pos:   pos,
			})
			pos = pos.Advance(raw)
			matched = true
			break
		}
		if matched {
			badStart = -1
			continue
		}

		// No rule matched: emit a one-byte unlexable token and keep going.
		raw := rest[:1]
		toks = append(toks, token.Token{
			Class: token.Unlexable,
			Rule:  UnlexableRuleName,
			Raw:   raw,
			Text:  raw,
			Pos:   pos,
		})
		if badStart >= 0 && toks[len(toks)-2].Class == token.Unlexable {
			// Extend the warning for a contiguous unlexable run.
			warnings[len(warnings)-1].Raw += raw
		} else {
			warnings = append(warnings, Warning{Pos: pos, Raw: raw})
			badStart = len(toks) - 1
		}
		pos = pos.Advance(raw)
	}

	return toks, warnings
}
