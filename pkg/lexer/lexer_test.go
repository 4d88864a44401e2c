package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlparse/pkg/token"
)

func testRules() []Rule {
	return []Rule{
		Regex("whitespace", `[^\S\r\n]+`, token.Whitespace),
		Regex("inline_comment", `--[^\n]*`, token.Comment, TrimPrefix("--")),
		Regex("single_quote", `'(?:[^']|'')*'`, token.Literal),
		Regex("numeric_literal", `\d+\.\d*|\.\d+|\d+`, token.Numeric),
		String("comparison_operator", "<=", token.Symbol),
		String("less_than", "<", token.Symbol),
		String("minus", "-", token.Symbol),
		String("dot", ".", token.Symbol),
		String("semicolon", ";", token.Symbol),
		Regex("word", `[0-9a-zA-Z_]*[a-zA-Z_][0-9a-zA-Z_]*`, token.Word),
		Regex("newline", `\r?\n`, token.NewlineClass),
	}
}

func rawsOf(toks []token.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.Raw)
	}
	return sb.String()
}

func rulesOf(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Rule
	}
	return out
}

func TestLexFirstMatchWins(t *testing.T) {
	l := New(testRules())

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			// "--" is a comment, not two minus tokens, because the comment
			// rule sits above minus.
			name: "comment shadows minus",
			src:  "1 -- neg\n",
			want: []string{"numeric_literal", "whitespace", "inline_comment", "newline"},
		},
		{
			// "<=" must not lex as "<" then unlexable "=".
			name: "longer operator listed first",
			src:  "a<=1",
			want: []string{"word", "comparison_operator", "numeric_literal"},
		},
		{
			// ".5" is one numeric because numeric sits above dot.
			name: "leading dot numeric",
			src:  ".5",
			want: []string{"numeric_literal"},
		},
		{
			name: "dotted reference",
			src:  "t.c",
			want: []string{"word", "dot", "word"},
		},
		{
			name: "doubled quote stays one literal",
			src:  "'it''s'",
			want: []string{"single_quote"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, warns := l.Lex(tt.src)
			require.Empty(t, warns)
			assert.Equal(t, tt.want, rulesOf(toks))
			assert.Equal(t, tt.src, rawsOf(toks))
		})
	}
}

func TestLexRoundTrip(t *testing.T) {
	l := New(testRules())

	srcs := []string{
		"",
		"select a from t;",
		"  leading and trailing  ",
		"a\n\nb\r\nc",
		"1 -- trailing comment",
		"no newline at end",
		"'quoted ; literal' ; x",
	}

	for _, src := range srcs {
		toks, _ := l.Lex(src)
		assert.Equal(t, src, rawsOf(toks), "round trip of %q", src)
	}
}

func TestLexUnlexable(t *testing.T) {
	l := New(testRules())

	toks, warns := l.Lex("a ?? b")
	assert.Equal(t, "a ?? b", rawsOf(toks))

	// A contiguous unlexable run is one warning, but each byte is its own
	// token.
	require.Len(t, warns, 1)
	assert.Equal(t, "??", warns[0].Raw)
	assert.Equal(t, 3, warns[0].Pos.Column)

	var unlexable int
	for _, tok := range toks {
		if tok.Class == token.Unlexable {
			unlexable++
			assert.Equal(t, UnlexableRuleName, tok.Rule)
			assert.Len(t, tok.Raw, 1)
		}
	}
	assert.Equal(t, 2, unlexable)
}

func TestLexSeparateUnlexableRuns(t *testing.T) {
	l := New(testRules())

	_, warns := l.Lex("? a ?")
	require.Len(t, warns, 2)
	assert.Equal(t, "?", warns[0].Raw)
	assert.Equal(t, "?", warns[1].Raw)
	assert.Equal(t, 1, warns[0].Pos.Column)
	assert.Equal(t, 5, warns[1].Pos.Column)
}

func TestLexTrimKeepsRaw(t *testing.T) {
	l := New(testRules())

	toks, _ := l.Lex("-- note")
	require.Len(t, toks, 1)
	assert.Equal(t, "-- note", toks[0].Raw)
	assert.Equal(t, " note", toks[0].Text)
}

func TestLexPositions(t *testing.T) {
	l := New(testRules())

	toks, _ := l.Lex("ab\ncd")
	require.Len(t, toks, 3)
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, token.Position{Line: 1, Column: 3, Offset: 2}, toks[1].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 1, Offset: 3}, toks[2].Pos)
}

func TestZeroLengthMatchRejected(t *testing.T) {
	// A pattern that can match empty must not produce an infinite loop:
	// the matcher rejects zero-length matches and the byte becomes
	// unlexable instead.
	l := New([]Rule{Regex("maybe", `a*`, token.Word)})

	toks, warns := l.Lex("b")
	require.Len(t, toks, 1)
	assert.Equal(t, token.Unlexable, toks[0].Class)
	require.Len(t, warns, 1)
}

func TestApplyPatches(t *testing.T) {
	base := []Rule{
		String("one", "1", token.Numeric),
		String("two", "2", token.Numeric),
		String("three", "3", token.Numeric),
	}

	names := func(rules []Rule) []string {
		out := make([]string, len(rules))
		for i, r := range rules {
			out[i] = r.Name
		}
		return out
	}

	tests := []struct {
		name    string
		patches []Patch
		want    []string
	}{
		{"none", nil, []string{"one", "two", "three"}},
		{
			"insert before",
			[]Patch{InsertBefore("two", String("x", "x", token.Word))},
			[]string{"one", "x", "two", "three"},
		},
		{
			"insert after",
			[]Patch{InsertAfter("two", String("x", "x", token.Word))},
			[]string{"one", "two", "x", "three"},
		},
		{
			"remove",
			[]Patch{Remove("two")},
			[]string{"one", "three"},
		},
		{
			"replace keeps slot",
			[]Patch{Replace("two", String("two2", "2", token.Numeric))},
			[]string{"one", "two2", "three"},
		},
		{
			"patches apply in order",
			[]Patch{
				InsertBefore("one", String("zero", "0", token.Numeric)),
				Remove("three"),
			},
			[]string{"zero", "one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(base, tt.patches)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
			// The base list is never modified.
			assert.Equal(t, []string{"one", "two", "three"}, names(base))
		})
	}
}

func TestApplyUnknownAnchor(t *testing.T) {
	base := []Rule{String("one", "1", token.Numeric)}

	_, err := Apply(base, []Patch{Remove("missing")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAnchor)
	assert.Contains(t, err.Error(), "missing")
}
