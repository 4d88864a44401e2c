package ansi

import (
	"github.com/leapstack-labs/sqlparse/pkg/grammar"
)

// ClauseTerminator matches at any point where a select clause must end.
// It backs the shared clause_terminator rule; derived dialects extend the
// alternatives (Snowflake adds QUALIFY) by overriding that rule, which
// retargets every clause bound at once.
func ClauseTerminator() grammar.Expr {
	return grammar.OneOf(
		grammar.Keyword("FROM"),
		grammar.Keyword("WHERE"),
		grammar.Seq(grammar.Keyword("GROUP"), grammar.Keyword("BY")),
		grammar.Keyword("HAVING"),
		grammar.Seq(grammar.Keyword("ORDER"), grammar.Keyword("BY")),
		grammar.Keyword("LIMIT"),
		grammar.Ref("set_operator"),
		grammar.Tok("semicolon"),
	)
}

func clauseRules() []grammar.Rule {
	return []grammar.Rule{
		{
			Name:      "clause_terminator",
			BoundExpr: ClauseTerminator(),
		},
		{
			Name:      "select_clause",
			BoundExpr: grammar.Bounded(grammar.Keyword("SELECT"), grammar.Ref("clause_terminator")),
			ParseExpr: grammar.Seq(
				grammar.Keyword("SELECT"),
				grammar.Opt(grammar.OneOf(grammar.Keyword("DISTINCT"), grammar.Keyword("ALL"))),
				grammar.Indent(),
				grammar.Delimited(grammar.Ref("select_target"), grammar.Tok("comma")),
				grammar.Dedent(),
			),
		},
		{
			Name: "select_target",
			BoundExpr: grammar.OneOf(
				grammar.Ref("wildcard_expression"),
				grammar.Seq(grammar.Ref("expression"), grammar.Opt(grammar.Ref("alias_expression"))),
			),
		},
		{
			Name: "wildcard_expression",
			BoundExpr: grammar.Seq(
				grammar.Opt(grammar.Seq(grammar.Ref("object_reference"), grammar.Tok("dot"))),
				grammar.TokAs("star", "wildcard"),
			),
		},
		{
			Name: "alias_expression",
			BoundExpr: grammar.Seq(
				grammar.Opt(grammar.Keyword("AS")),
				identifier("alias_identifier"),
			),
		},
		{
			Name:      "from_clause",
			BoundExpr: grammar.Bounded(grammar.Keyword("FROM"), grammar.Ref("clause_terminator")),
			ParseExpr: grammar.Seq(
				grammar.Keyword("FROM"),
				grammar.Indent(),
				grammar.Delimited(grammar.Ref("from_expression"), grammar.Tok("comma")),
				grammar.Dedent(),
			),
		},
		{
			Name: "from_expression",
			BoundExpr: grammar.Seq(
				grammar.Ref("table_expression"),
				grammar.Rep(grammar.Ref("join_clause")),
			),
		},
		{
			Name: "table_expression",
			BoundExpr: grammar.OneOf(
				grammar.Seq(
					grammar.Bracketed(grammar.Ref("select_statement")),
					grammar.Opt(grammar.Ref("alias_expression")),
				),
				grammar.Seq(
					grammar.Ref("table_reference"),
					grammar.Opt(grammar.Ref("alias_expression")),
				),
			),
		},
		{
			Name: "join_clause",
			BoundExpr: grammar.Seq(
				grammar.Opt(grammar.OneOf(
					grammar.Keyword("INNER"),
					grammar.Seq(
						grammar.OneOf(grammar.Keyword("LEFT"), grammar.Keyword("RIGHT"), grammar.Keyword("FULL")),
						grammar.Opt(grammar.Keyword("OUTER")),
					),
					grammar.Keyword("CROSS"),
				)),
				grammar.Keyword("JOIN"),
				grammar.Ref("table_expression"),
				grammar.Opt(grammar.OneOf(
					grammar.Seq(grammar.Keyword("ON"), grammar.Ref("expression")),
					grammar.Seq(
						grammar.Keyword("USING"),
						grammar.Bracketed(grammar.Delimited(identifier("column_name"), grammar.Tok("comma"))),
					),
				)),
			),
		},
		{
			Name:      "where_clause",
			BoundExpr: grammar.Bounded(grammar.Keyword("WHERE"), grammar.Ref("clause_terminator")),
			ParseExpr: grammar.Seq(
				grammar.Keyword("WHERE"),
				grammar.Indent(),
				grammar.Ref("expression"),
				grammar.Dedent(),
			),
		},
		{
			Name: "groupby_clause",
			BoundExpr: grammar.Bounded(
				grammar.Seq(grammar.Keyword("GROUP"), grammar.Keyword("BY")),
				grammar.Ref("clause_terminator"),
			),
			ParseExpr: grammar.Seq(
				grammar.Keyword("GROUP"), grammar.Keyword("BY"),
				grammar.Indent(),
				grammar.Delimited(grammar.Ref("expression"), grammar.Tok("comma")),
				grammar.Dedent(),
			),
		},
		{
			Name:      "having_clause",
			BoundExpr: grammar.Bounded(grammar.Keyword("HAVING"), grammar.Ref("clause_terminator")),
			ParseExpr: grammar.Seq(
				grammar.Keyword("HAVING"),
				grammar.Indent(),
				grammar.Ref("expression"),
				grammar.Dedent(),
			),
		},
		// Hook between HAVING and ORDER BY. Empty here; dialects with
		// extra post-aggregation clauses override it.
		{
			Name:      "select_statement_extras",
			BoundExpr: grammar.Nothing(),
		},
		{
			Name: "orderby_clause",
			BoundExpr: grammar.Bounded(
				grammar.Seq(grammar.Keyword("ORDER"), grammar.Keyword("BY")),
				grammar.Ref("clause_terminator"),
			),
			ParseExpr: grammar.Seq(
				grammar.Keyword("ORDER"), grammar.Keyword("BY"),
				grammar.Indent(),
				grammar.Delimited(
					grammar.Seq(
						grammar.Ref("expression"),
						grammar.Opt(grammar.OneOf(grammar.Keyword("ASC"), grammar.Keyword("DESC"))),
						grammar.Opt(grammar.Seq(
							grammar.Keyword("NULLS"),
							grammar.OneOf(grammar.Keyword("FIRST"), grammar.Keyword("LAST")),
						)),
					),
					grammar.Tok("comma"),
				),
				grammar.Dedent(),
			),
		},
		{
			Name: "limit_clause",
			BoundExpr: grammar.Seq(
				grammar.Keyword("LIMIT"),
				grammar.Ref("expression"),
				grammar.Opt(grammar.Seq(grammar.Keyword("OFFSET"), grammar.Ref("expression"))),
			),
		},
	}
}
