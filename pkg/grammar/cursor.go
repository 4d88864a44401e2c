package grammar

import (
	"github.com/leapstack-labs/sqlparse/pkg/token"
	"github.com/leapstack-labs/sqlparse/pkg/tree"
)

// Cursor is an immutable position in a token stream. Combinators receive a
// cursor by value and return an advanced copy on success, so backtracking
// never needs to undo state: a failed attempt simply discards its copy.
type Cursor struct {
	toks  []token.Token
	idx   int
	limit int
}

// NewCursor positions a cursor at the start of a token stream.
func NewCursor(toks []token.Token) Cursor {
	return Cursor{toks: toks, idx: 0, limit: len(toks)}
}

// Bounded restricts the cursor to tokens before limit. Used by the
// two-phase engine to confine structural parsing to a confirmed bound.
func (c Cursor) Bounded(limit int) Cursor {
	if limit > c.limit {
		limit = c.limit
	}
	out := c
	out.limit = limit
	return out
}

// Index returns the current token index.
func (c Cursor) Index() int { return c.idx }

// Limit returns the exclusive upper bound of the cursor.
func (c Cursor) Limit() int { return c.limit }

// EOF reports whether the cursor is at or past its limit.
func (c Cursor) EOF() bool { return c.idx >= c.limit }

// At returns the token at index i.
func (c Cursor) At(i int) token.Token { return c.toks[i] }

// To returns a copy advanced to index i.
func (c Cursor) To(i int) Cursor {
	out := c
	out.idx = i
	return out
}

// NextCode returns the index of the first non-trivia token at or after the
// cursor, or false if only trivia remains before the limit.
func (c Cursor) NextCode() (int, bool) {
	return c.nextCodeFrom(c.idx)
}

func (c Cursor) nextCodeFrom(i int) (int, bool) {
	for ; i < c.limit; i++ {
		if c.toks[i].IsCode() {
			return i, true
		}
	}
	return 0, false
}

// Pos returns the source position at the cursor: the position of the next
// token, or the end of the last token when the cursor is exhausted.
func (c Cursor) Pos() token.Position {
	if c.idx < len(c.toks) {
		return c.toks[c.idx].Pos
	}
	if len(c.toks) > 0 {
		return c.toks[len(c.toks)-1].End()
	}
	return token.Position{Line: 1, Column: 1}
}

// leaves returns the tokens in [from, to) as leaf nodes labelled with
// their lexer rule names.
func (c Cursor) leaves(from, to int) []tree.Node {
	if to <= from {
		return nil
	}
	out := make([]tree.Node, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, tree.NewLeaf(c.toks[i]))
	}
	return out
}
