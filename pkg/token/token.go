// Package token defines the lossless token model shared by the lexer,
// the grammar combinators and the parse tree.
//
// Every byte of the source text belongs to exactly one token, whitespace
// and comments included, so a token stream can always be folded back into
// the original input.
package token

// Class is the coarse lexical category of a token. The fine-grained
// identity of a token is the name of the lexer rule that produced it.
type Class int

const (
	// Unlexable marks a byte no lexer rule matched. Lexing skips over it
	// one byte at a time instead of aborting.
	Unlexable Class = iota

	// Whitespace covers horizontal whitespace runs.
	Whitespace

	// NewlineClass covers line break tokens.
	NewlineClass

	// Comment covers inline and block comments.
	Comment

	// Word covers identifiers, keyword candidates and quoted identifiers.
	// Whether a word is a keyword is decided by the parser against the
	// dialect keyword tables, not by the lexer.
	Word

	// Numeric covers numeric literals.
	Numeric

	// Literal covers quoted string literals.
	Literal

	// Symbol covers operators and punctuation.
	Symbol
)

var classNames = map[Class]string{
	Unlexable:    "unlexable",
	Whitespace:   "whitespace",
	NewlineClass: "newline",
	Comment:      "comment",
	Word:         "word",
	Numeric:      "numeric",
	Literal:      "literal",
	Symbol:       "symbol",
}

// String returns the lowercase class name.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// Token is an immutable lexed unit of source text.
//
// Raw always holds the exact source slice the token covers. Text holds the
// text used for grammar matching; it equals Raw unless the producing lexer
// rule trims marker characters (comment introducers, quote characters).
type Token struct {
	Class Class
	Rule  string // name of the lexer rule that produced the token
	Raw   string
	Text  string
	Pos   Position
}

// Span returns the source region the token covers.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End()}
}

// End returns the position immediately after the token.
func (t Token) End() Position {
	return t.Pos.Advance(t.Raw)
}

// IsTrivia reports whether the token is whitespace, a newline or a comment.
// Trivia is preserved in the stream and the tree but is transparent to
// grammar matching.
func (t Token) IsTrivia() bool {
	switch t.Class {
	case Whitespace, NewlineClass, Comment:
		return true
	}
	return false
}

// IsCode reports whether the token participates in grammar matching.
func (t Token) IsCode() bool {
	return !t.IsTrivia()
}
