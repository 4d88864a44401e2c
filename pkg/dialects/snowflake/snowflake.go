// Package snowflake derives the Snowflake dialect from ANSI. The main
// delta is QUALIFY: a post-aggregation filter clause slotted between
// HAVING and ORDER BY.
package snowflake

import (
	"github.com/leapstack-labs/sqlparse/pkg/dialect"
	"github.com/leapstack-labs/sqlparse/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlparse/pkg/grammar"
)

// Dialect is Snowflake, derived from ANSI.
var Dialect = dialect.Extend("snowflake", ansi.Dialect).
	AddRules(
		grammar.Rule{
			Name: "qualify_clause",
			BoundExpr: grammar.Bounded(
				grammar.Keyword("QUALIFY"),
				grammar.Ref("clause_terminator"),
			),
			ParseExpr: grammar.Seq(
				grammar.Keyword("QUALIFY"),
				grammar.Indent(),
				grammar.Ref("expression"),
				grammar.Dedent(),
			),
		},
		// Fill the post-HAVING hook with QUALIFY.
		grammar.Rule{
			Name:      "select_statement_extras",
			BoundExpr: grammar.Opt(grammar.Ref("qualify_clause")),
		},
		// QUALIFY also ends the preceding clause, so every clause bound
		// picks it up through the shared terminator rule.
		grammar.Rule{
			Name: "clause_terminator",
			BoundExpr: grammar.OneOf(
				grammar.Keyword("QUALIFY"),
				ansi.ClauseTerminator(),
			),
		},
	).
	ReserveKeywords("QUALIFY").
	MustBuild()

func init() {
	dialect.Register(Dialect)
}
