package ansi

import (
	"github.com/leapstack-labs/sqlparse/pkg/grammar"
)

// statementRules covers the file root and the statement forms. Statement
// rules carry a separate bounding expression: applicability plus end
// boundary are confirmed before the structural expression descends into
// the span, and a structural failure inside a confirmed bound degrades
// into an unparsable node instead of failing the statement.
func statementRules() []grammar.Rule {
	return []grammar.Rule{
		{
			Name: "file",
			BoundExpr: grammar.Rep(grammar.OneOf(
				grammar.Tok("semicolon"),
				grammar.Recovered(grammar.Ref("statement"), grammar.Tok("semicolon")),
			)),
		},
		{
			Name: "statement",
			BoundExpr: grammar.OneOf(
				grammar.Ref("select_statement"),
				grammar.Ref("insert_statement"),
				grammar.Ref("update_statement"),
				grammar.Ref("delete_statement"),
				// CREATE FUNCTION before CREATE TABLE: both start with
				// CREATE and choice is first match.
				grammar.Ref("create_function_statement"),
				grammar.Ref("create_table_statement"),
				grammar.Ref("drop_statement"),
			),
		},
		{
			Name:      "select_statement",
			BoundExpr: grammar.Bounded(grammar.Keyword("SELECT"), grammar.Tok("semicolon")),
			ParseExpr: grammar.Seq(
				grammar.Ref("select_block"),
				grammar.Rep(grammar.Seq(grammar.Ref("set_operator"), grammar.Ref("select_block"))),
			),
		},
		{
			Name:      "select_block",
			BoundExpr: grammar.Bounded(grammar.Keyword("SELECT"), grammar.Ref("set_operator")),
			ParseExpr: grammar.Seq(
				grammar.Ref("select_clause"),
				grammar.Opt(grammar.Ref("from_clause")),
				grammar.Opt(grammar.Ref("where_clause")),
				grammar.Opt(grammar.Ref("groupby_clause")),
				grammar.Opt(grammar.Ref("having_clause")),
				grammar.Ref("select_statement_extras"),
				grammar.Opt(grammar.Ref("orderby_clause")),
				grammar.Opt(grammar.Ref("limit_clause")),
			),
		},
		{
			Name: "set_operator",
			BoundExpr: grammar.OneOf(
				grammar.Seq(grammar.Keyword("UNION"), grammar.Opt(grammar.OneOf(grammar.Keyword("ALL"), grammar.Keyword("DISTINCT")))),
				grammar.Keyword("INTERSECT"),
				grammar.Keyword("EXCEPT"),
			),
		},
		{
			Name: "insert_statement",
			BoundExpr: grammar.Bounded(
				grammar.Seq(grammar.Keyword("INSERT"), grammar.Keyword("INTO")),
				grammar.Tok("semicolon"),
			),
			ParseExpr: grammar.Seq(
				grammar.Keyword("INSERT"), grammar.Keyword("INTO"),
				grammar.Ref("table_reference"),
				grammar.Opt(grammar.Bracketed(grammar.Delimited(grammar.Ref("column_reference"), grammar.Tok("comma")))),
				grammar.OneOf(grammar.Ref("values_clause"), grammar.Ref("select_statement")),
			),
		},
		{
			Name: "values_clause",
			BoundExpr: grammar.Seq(
				grammar.Keyword("VALUES"),
				grammar.Delimited(
					grammar.Bracketed(grammar.Delimited(grammar.Ref("expression"), grammar.Tok("comma"))),
					grammar.Tok("comma"),
				),
			),
		},
		{
			Name:      "update_statement",
			BoundExpr: grammar.Bounded(grammar.Keyword("UPDATE"), grammar.Tok("semicolon")),
			ParseExpr: grammar.Seq(
				grammar.Keyword("UPDATE"),
				grammar.Ref("table_reference"),
				grammar.Ref("set_clause"),
				grammar.Opt(grammar.Ref("where_clause")),
			),
		},
		{
			Name:      "set_clause",
			BoundExpr: grammar.Bounded(grammar.Keyword("SET"), grammar.Ref("clause_terminator")),
			ParseExpr: grammar.Seq(
				grammar.Keyword("SET"),
				grammar.Indent(),
				grammar.Delimited(
					grammar.Seq(grammar.Ref("column_reference"), grammar.Tok("comparison_operator"), grammar.Ref("expression")),
					grammar.Tok("comma"),
				),
				grammar.Dedent(),
			),
		},
		{
			Name: "delete_statement",
			BoundExpr: grammar.Bounded(
				grammar.Seq(grammar.Keyword("DELETE"), grammar.Keyword("FROM")),
				grammar.Tok("semicolon"),
			),
			// WHERE is optional: an unfiltered DELETE is a complete,
			// parseable statement.
			ParseExpr: grammar.Seq(
				grammar.Keyword("DELETE"), grammar.Keyword("FROM"),
				grammar.Ref("table_reference"),
				grammar.Opt(grammar.Ref("alias_expression")),
				grammar.Opt(grammar.Ref("where_clause")),
			),
		},
		{
			Name: "create_table_statement",
			BoundExpr: grammar.Bounded(
				grammar.Seq(grammar.Keyword("CREATE"), grammar.Keyword("TABLE")),
				grammar.Tok("semicolon"),
			),
			ParseExpr: grammar.Seq(
				grammar.Keyword("CREATE"), grammar.Keyword("TABLE"),
				grammar.Opt(grammar.Seq(grammar.Keyword("IF"), grammar.Keyword("NOT"), grammar.Keyword("EXISTS"))),
				grammar.Ref("table_reference"),
				grammar.OneOf(
					grammar.Bracketed(grammar.Delimited(grammar.Ref("column_definition"), grammar.Tok("comma"))),
					grammar.Seq(grammar.Keyword("AS"), grammar.Ref("select_statement")),
				),
			),
		},
		{
			Name: "column_definition",
			BoundExpr: grammar.Seq(
				identifier("column_name"),
				grammar.Ref("datatype"),
				grammar.Rep(grammar.Ref("column_constraint")),
			),
		},
		{
			Name: "column_constraint",
			BoundExpr: grammar.OneOf(
				grammar.Seq(grammar.Keyword("NOT"), grammar.Keyword("NULL")),
				grammar.Keyword("NULL"),
				grammar.Seq(grammar.Keyword("PRIMARY"), grammar.Keyword("KEY")),
				grammar.Keyword("UNIQUE"),
				grammar.Seq(grammar.Keyword("DEFAULT"), grammar.Ref("expression")),
			),
		},
		{
			Name: "create_function_statement",
			BoundExpr: grammar.Bounded(
				grammar.Seq(
					grammar.Keyword("CREATE"),
					grammar.Opt(grammar.Seq(grammar.Keyword("OR"), grammar.Keyword("REPLACE"))),
					grammar.Keyword("FUNCTION"),
				),
				grammar.Tok("semicolon"),
			),
			ParseExpr: grammar.Seq(
				grammar.Keyword("CREATE"),
				grammar.Opt(grammar.Seq(grammar.Keyword("OR"), grammar.Keyword("REPLACE"))),
				grammar.Keyword("FUNCTION"),
				grammar.Ref("object_reference"),
				grammar.Bracketed(grammar.Opt(grammar.Delimited(grammar.Ref("function_parameter"), grammar.Tok("comma")))),
				grammar.Keyword("RETURNS"),
				grammar.Ref("function_return_type"),
				grammar.Opt(grammar.Seq(grammar.Keyword("LANGUAGE"), identifier("language_name"))),
				grammar.Opt(grammar.Seq(grammar.Keyword("AS"), grammar.Ref("function_body"))),
			),
		},
		{
			Name: "function_parameter",
			BoundExpr: grammar.OneOf(
				grammar.Seq(identifier("parameter_name"), grammar.Ref("datatype")),
				grammar.Ref("datatype"),
			),
		},
		// Dialects with table-valued returns (SETOF and friends) override
		// function_return_type.
		{
			Name:      "function_return_type",
			BoundExpr: grammar.Ref("datatype"),
		},
		{
			Name:      "function_body",
			BoundExpr: grammar.TokAs("single_quote", "function_body"),
		},
		{
			Name: "drop_statement",
			BoundExpr: grammar.Bounded(
				grammar.Seq(grammar.Keyword("DROP"), grammar.OneOf(grammar.Keyword("TABLE"), grammar.Keyword("FUNCTION"))),
				grammar.Tok("semicolon"),
			),
			ParseExpr: grammar.Seq(
				grammar.Keyword("DROP"),
				grammar.OneOf(grammar.Keyword("TABLE"), grammar.Keyword("FUNCTION")),
				grammar.Opt(grammar.Seq(grammar.Keyword("IF"), grammar.Keyword("EXISTS"))),
				grammar.Ref("object_reference"),
			),
		},
	}
}
