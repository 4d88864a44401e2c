package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionAdvance(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Position
	}{
		{"empty", "", Position{Line: 1, Column: 1, Offset: 0}},
		{"single line", "select", Position{Line: 1, Column: 7, Offset: 6}},
		{"newline resets column", "a\nbc", Position{Line: 2, Column: 3, Offset: 4}},
		{"crlf counts both bytes", "a\r\nb", Position{Line: 2, Column: 2, Offset: 4}},
		{"trailing newline", "x\n", Position{Line: 2, Column: 1, Offset: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := Position{Line: 1, Column: 1, Offset: 0}
			assert.Equal(t, tt.want, start.Advance(tt.text))
		})
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 14, Offset: 42}
	assert.Equal(t, "3:14", p.String())
}

func TestSpanUnion(t *testing.T) {
	a := Span{
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   Position{Line: 1, Column: 5, Offset: 4},
	}
	b := Span{
		Start: Position{Line: 1, Column: 8, Offset: 7},
		End:   Position{Line: 2, Column: 3, Offset: 12},
	}

	got := a.Union(b)
	assert.Equal(t, 0, got.Start.Offset)
	assert.Equal(t, 12, got.End.Offset)

	// Union is symmetric.
	assert.Equal(t, got, b.Union(a))
}

func TestSpanEmpty(t *testing.T) {
	p := Position{Line: 1, Column: 1, Offset: 5}
	assert.True(t, Span{Start: p, End: p}.Empty())
	assert.False(t, Span{Start: p, End: Position{Line: 1, Column: 2, Offset: 6}}.Empty())
}

func TestTokenTrivia(t *testing.T) {
	tests := []struct {
		class  Class
		trivia bool
	}{
		{Whitespace, true},
		{NewlineClass, true},
		{Comment, true},
		{Word, false},
		{Numeric, false},
		{Literal, false},
		{Symbol, false},
		{Unlexable, false},
	}

	for _, tt := range tests {
		tok := Token{Class: tt.class}
		assert.Equal(t, tt.trivia, tok.IsTrivia(), "class %s", tt.class)
		assert.Equal(t, !tt.trivia, tok.IsCode(), "class %s", tt.class)
	}
}

func TestTokenSpan(t *testing.T) {
	tok := Token{
		Raw: "a\nb",
		Pos: Position{Line: 1, Column: 3, Offset: 2},
	}
	s := tok.Span()
	assert.Equal(t, 2, s.Start.Offset)
	assert.Equal(t, 5, s.End.Offset)
	assert.Equal(t, 2, s.End.Line)
}
