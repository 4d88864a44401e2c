package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlparse/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlparse/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlparse/pkg/parser"
	"github.com/leapstack-labs/sqlparse/pkg/tree"
)

func typeCount(n tree.Node, segType string) int {
	count := 0
	tree.Walk(n, func(node tree.Node, _ int) bool {
		if node.Type() == segType {
			count++
		}
		return true
	})
	return count
}

func TestLexerDeltas(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"casting operator is one token", "a::int", []string{"word", "casting_operator", "word"}},
		{"dollar quote is one literal", "$$select 1$$", []string{"dollar_quote"}},
		{"tagged dollar quote", "$body$it's fine$body$", []string{"dollar_quote"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, warns := parser.Lex(tt.src, postgres.Dialect)
			require.Empty(t, warns)
			got := make([]string, len(toks))
			for i, tok := range toks {
				got[i] = tok.Rule
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnsiLexerHasNoCastingOperator(t *testing.T) {
	// The :: token exists only through the lexer patch; the parent still
	// rejects it.
	_, warns := parser.Lex("a::int", ansi.Dialect)
	assert.NotEmpty(t, warns)
}

func TestCastSuffix(t *testing.T) {
	tr, issues, err := parser.Parse("select a::int, b::numeric(10, 2)::text from t", postgres.Dialect)
	require.NoError(t, err)
	assert.Empty(t, issues)

	assert.Equal(t, 1, typeCount(tr.Root, "select_statement"))
	// Three :: applications across the two targets.
	assert.Equal(t, 3, typeCount(tr.Root, "datatype"))
}

func TestIlikeOperator(t *testing.T) {
	tr, issues, err := parser.Parse("select a from t where name not ilike '%x%'", postgres.Dialect)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, 1, typeCount(tr.Root, "where_clause"))
	assert.Equal(t, 0, typeCount(tr.Root, "unparsable"))
}

func TestDollarQuotedFunctionBody(t *testing.T) {
	src := "create function add_one(x int) returns int language sql as $body$ select x + 1; $body$;"
	tr, issues, err := parser.Parse(src, postgres.Dialect)
	require.NoError(t, err)
	assert.Empty(t, issues)

	assert.Equal(t, src, tr.Raw())
	assert.Equal(t, 1, typeCount(tr.Root, "create_function_statement"))
	assert.Equal(t, 1, typeCount(tr.Root, "function_body"))
}

func TestSetofReturnType(t *testing.T) {
	src := "create function all_users() returns setof int language sql as $$ select id from users; $$;"

	// Postgres knows table-valued returns.
	tr, issues, err := parser.Parse(src, postgres.Dialect)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, 1, typeCount(tr.Root, "create_function_statement"))
	assert.Equal(t, 0, typeCount(tr.Root, "unparsable"))
}

func TestSetofFailureStaysLocalInParent(t *testing.T) {
	// The same statement under the parent dialect degrades, but only the
	// statement span: its neighbours still parse cleanly.
	src := "select 1; create function f() returns setof int language sql as 'x'; select 2;"

	tr, issues, err := parser.Parse(src, ansi.Dialect)
	require.NoError(t, err)
	assert.Equal(t, src, tr.Raw())
	assert.NotEmpty(t, issues)
	assert.Equal(t, 2, typeCount(tr.Root, "select_statement"))
	assert.GreaterOrEqual(t, typeCount(tr.Root, "unparsable"), 1)

	// Under Postgres the whole file is clean.
	tr, issues, err = parser.Parse(src, postgres.Dialect)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, 2, typeCount(tr.Root, "select_statement"))
	assert.Equal(t, 1, typeCount(tr.Root, "create_function_statement"))
}

func TestInheritedGrammarStillWorks(t *testing.T) {
	tr, issues, err := parser.Parse("select count(*) from t group by a having count(*) > 1 order by a", postgres.Dialect)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, 1, typeCount(tr.Root, "having_clause"))
	assert.Equal(t, 1, typeCount(tr.Root, "orderby_clause"))
}

func TestDialectLineage(t *testing.T) {
	assert.Equal(t, "postgres", postgres.Dialect.Name())
	assert.Equal(t, ansi.Dialect, postgres.Dialect.Parent())
	assert.True(t, postgres.Dialect.IsReservedKeyword("ilike"))
	assert.False(t, ansi.Dialect.IsReservedKeyword("ilike"))
}
