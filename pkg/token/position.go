package token

import "fmt"

// Position identifies a location in the source text.
// Line and Column are 1-based, Offset is a 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns "line:column" for diagnostics.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Advance returns the position after consuming s starting at p.
func (p Position) Advance(s string) Position {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	p.Offset += len(s)
	return p
}

// Span covers a contiguous region of source text.
// End is exclusive: it is the position immediately after the last byte.
type Span struct {
	Start Position
	End   Position
}

// Union returns the smallest span covering both a and b.
func (a Span) Union(b Span) Span {
	out := a
	if b.Start.Offset < out.Start.Offset {
		out.Start = b.Start
	}
	if b.End.Offset > out.End.Offset {
		out.End = b.End
	}
	return out
}

// Empty reports whether the span covers no bytes.
func (a Span) Empty() bool {
	return a.Start.Offset >= a.End.Offset
}
