package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlparse/pkg/grammar"
	"github.com/leapstack-labs/sqlparse/pkg/lexer"
	"github.com/leapstack-labs/sqlparse/pkg/token"
)

func baseLexerRules() []lexer.Rule {
	return []lexer.Rule{
		lexer.Regex("whitespace", `\s+`, token.Whitespace),
		lexer.Regex("word", `[a-zA-Z_]+`, token.Word),
		lexer.String("semicolon", ";", token.Symbol),
	}
}

func baseBuilder(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder("base").
		RootRule("file").
		LexerRules(baseLexerRules()...).
		AddRules(
			grammar.Rule{Name: "file", BoundExpr: grammar.Ref("greeting")},
			grammar.Rule{Name: "greeting", BoundExpr: grammar.Keyword("HELLO")},
		).
		ReserveKeywords("HELLO")
}

func TestBuildRoot(t *testing.T) {
	d, err := baseBuilder(t).Build()
	require.NoError(t, err)

	assert.Equal(t, "base", d.Name())
	assert.Nil(t, d.Parent())
	assert.Equal(t, "file", d.RootRule())
	assert.Equal(t, []string{"file", "greeting"}, d.RuleNames())
	assert.True(t, d.IsReservedKeyword("hello"))
	assert.False(t, d.IsReservedKeyword("world"))

	rule, err := d.ResolveRule("greeting")
	require.NoError(t, err)
	assert.Equal(t, "greeting", rule.Name)

	_, err = d.ResolveRule("nope")
	require.Error(t, err)
	var unknown *UnknownRuleError
	assert.ErrorAs(t, err, &unknown)
}

func TestBuildRequiresRootRule(t *testing.T) {
	_, err := NewBuilder("x").LexerRules(baseLexerRules()...).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no root rule")
}

func TestBuildRequiresLexerRules(t *testing.T) {
	_, err := NewBuilder("x").
		RootRule("file").
		AddRules(grammar.Rule{Name: "file", BoundExpr: grammar.Nothing()}).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no lexer rules")
}

func TestBuildValidatesClosure(t *testing.T) {
	_, err := NewBuilder("x").
		RootRule("file").
		LexerRules(baseLexerRules()...).
		AddRules(grammar.Rule{Name: "file", BoundExpr: grammar.Ref("missing")}).
		Build()
	require.Error(t, err)

	var unknown *UnknownRuleError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Rule)
	assert.Equal(t, "file", unknown.From)
}

func TestExtendInheritsAndOverrides(t *testing.T) {
	base := baseBuilder(t).MustBuild()

	derived, err := Extend("derived", base).
		AddRules(grammar.Rule{Name: "greeting", BoundExpr: grammar.Keyword("HOWDY")}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, base, derived.Parent())
	// Root rule and keywords inherit.
	assert.Equal(t, "file", derived.RootRule())
	assert.True(t, derived.IsReservedKeyword("HELLO"))

	// The override is visible through the same name; the parent keeps
	// its own definition.
	dr, err := derived.ResolveRule("greeting")
	require.NoError(t, err)
	br, err := base.ResolveRule("greeting")
	require.NoError(t, err)
	assert.NotEqual(t, br.BoundExpr, dr.BoundExpr)
}

func TestExtendKeywordDeltas(t *testing.T) {
	base := baseBuilder(t).MustBuild()

	derived := Extend("derived", base).
		UnreserveKeywords("HELLO").
		ReserveKeywords("QUALIFY").
		MustBuild()

	assert.False(t, derived.IsReservedKeyword("hello"))
	assert.True(t, derived.IsUnreservedKeyword("hello"))
	assert.True(t, derived.IsReservedKeyword("qualify"))

	// The parent is untouched.
	assert.True(t, base.IsReservedKeyword("hello"))
	assert.Equal(t, []string{"HELLO"}, base.ReservedKeywords())
	assert.Equal(t, []string{"QUALIFY"}, derived.ReservedKeywords())
}

func TestRemoveRuleBreaksClosure(t *testing.T) {
	base := baseBuilder(t).MustBuild()

	// Removing a rule still referenced from the root fails at build.
	_, err := Extend("derived", base).RemoveRule("greeting").Build()
	require.Error(t, err)
	var unknown *UnknownRuleError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "greeting", unknown.Rule)

	// Removing it and re-adding a replacement is fine.
	d, err := Extend("derived", base).
		RemoveRule("greeting").
		AddRules(grammar.Rule{Name: "greeting", BoundExpr: grammar.Keyword("HI")}).
		Build()
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestExtendPatchesLexer(t *testing.T) {
	base := baseBuilder(t).MustBuild()

	derived := Extend("derived", base).
		PatchLexer(lexer.InsertBefore("word",
			lexer.String("bang", "!", token.Symbol),
		)).
		MustBuild()

	var names []string
	for _, r := range derived.LexerRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"whitespace", "bang", "word", "semicolon"}, names)

	// Parent's effective list is unchanged.
	assert.Len(t, base.LexerRules(), 3)

	toks, warns := derived.Lexer().Lex("hi!")
	assert.Empty(t, warns)
	require.Len(t, toks, 2)
	assert.Equal(t, "bang", toks[1].Rule)
}

func TestExtendPatchUnknownAnchor(t *testing.T) {
	base := baseBuilder(t).MustBuild()

	_, err := Extend("derived", base).
		PatchLexer(lexer.Remove("missing_rule")).
		Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, lexer.ErrUnknownAnchor)
}

func TestRegistry(t *testing.T) {
	d := baseBuilder(t).MustBuild()
	Register(d)

	got, ok := Get("base")
	require.True(t, ok)
	assert.Equal(t, d, got)

	// Lookup is case-insensitive.
	got, ok = Get("BASE")
	require.True(t, ok)
	assert.Equal(t, d, got)

	_, ok = Get("never-registered")
	assert.False(t, ok)

	assert.Contains(t, List(), "base")
}
