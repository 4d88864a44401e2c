// Package postgres derives the PostgreSQL dialect from ANSI: dollar
// quoting and the :: cast operator at the lexer level, SETOF return
// types and ILIKE at the grammar level.
package postgres

import (
	"github.com/leapstack-labs/sqlparse/pkg/dialect"
	"github.com/leapstack-labs/sqlparse/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlparse/pkg/grammar"
	"github.com/leapstack-labs/sqlparse/pkg/lexer"
	"github.com/leapstack-labs/sqlparse/pkg/token"
)

// Dialect is PostgreSQL, derived from ANSI.
var Dialect = dialect.Extend("postgres", ansi.Dialect).
	PatchLexer(
		// Dollar quotes sit above single_quote so $$...$$ bodies lex as
		// one literal. RE2 has no backreferences, so tag equality between
		// the open and close markers is not enforced.
		lexer.InsertBefore("single_quote",
			lexer.Regex("dollar_quote", `\$\w*\$(?s:.*?)\$\w*\$`, token.Literal),
		),
		lexer.InsertBefore("comparison_operator",
			lexer.String("casting_operator", "::", token.Symbol),
		),
	).
	AddRules(
		grammar.Rule{
			Name: "cast_suffix",
			BoundExpr: grammar.Rep(grammar.Seq(
				grammar.Tok("casting_operator"),
				grammar.Ref("datatype"),
			)),
		},
		grammar.Rule{
			Name: "function_return_type",
			BoundExpr: grammar.Seq(
				grammar.Opt(grammar.Keyword("SETOF")),
				grammar.Ref("datatype"),
			),
		},
		grammar.Rule{
			Name: "function_body",
			BoundExpr: grammar.OneOf(
				grammar.TokAs("dollar_quote", "function_body"),
				grammar.TokAs("single_quote", "function_body"),
			),
		},
		grammar.Rule{
			Name: "binary_operator",
			BoundExpr: grammar.OneOf(
				grammar.Seq(grammar.Opt(grammar.Keyword("NOT")), grammar.Keyword("ILIKE")),
				ansi.BinaryOperator(),
			),
		},
	).
	ReserveKeywords("ILIKE").
	MustBuild()

func init() {
	dialect.Register(Dialect)
}
