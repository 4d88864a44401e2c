package ansi

import (
	"github.com/leapstack-labs/sqlparse/pkg/grammar"
)

// identifier matches a naked or quoted identifier leaf. Naked words go
// through the dialect's reserved-keyword check.
func identifier(as string) grammar.Expr {
	return grammar.OneOf(
		grammar.Word(as),
		grammar.TokAs("double_quote", "quoted_identifier"),
	)
}

// BinaryOperator matches one infix operator. Exposed so derived dialects
// can extend the alternatives when overriding the binary_operator rule.
func BinaryOperator() grammar.Expr {
	return grammar.OneOf(
		grammar.Tok("comparison_operator"),
		grammar.Tok("plus"),
		grammar.Tok("minus"),
		grammar.Tok("star"),
		grammar.Tok("divide"),
		grammar.Tok("modulo"),
		grammar.Tok("concat"),
		grammar.Keyword("AND"),
		grammar.Keyword("OR"),
		grammar.Seq(grammar.Keyword("IS"), grammar.Opt(grammar.Keyword("NOT"))),
		grammar.Seq(grammar.Opt(grammar.Keyword("NOT")), grammar.Keyword("IN")),
		grammar.Seq(grammar.Opt(grammar.Keyword("NOT")), grammar.Keyword("BETWEEN")),
		grammar.Seq(grammar.Opt(grammar.Keyword("NOT")), grammar.Keyword("LIKE")),
	)
}

// term matches one operand of an expression chain, postfixed by the
// cast_suffix hook (empty in ANSI, "::type" in Postgres). Order matters:
// keyword-led forms first, then function calls before bare column
// references since both start with a word.
func term() grammar.Expr {
	return grammar.Seq(
		grammar.OneOf(
			grammar.Ref("case_expression"),
			grammar.Ref("cast_expression"),
			grammar.Seq(grammar.Keyword("EXISTS"), grammar.Bracketed(grammar.Ref("select_statement"))),
			grammar.Ref("function_call"),
			grammar.Ref("literal"),
			grammar.Bracketed(grammar.OneOf(
				grammar.Ref("select_statement"),
				grammar.Delimited(grammar.Ref("expression"), grammar.Tok("comma")),
			)),
			grammar.Seq(
				grammar.OneOf(grammar.Tok("plus"), grammar.Tok("minus"), grammar.Keyword("NOT")),
				grammar.Ref("expression"),
			),
			grammar.Ref("column_reference"),
		),
		grammar.Ref("cast_suffix"),
	)
}

// expressionRules covers value expressions and the leaf-ish references
// they are built from. Expressions parse as a flat operand/operator
// chain; precedence is not modelled, the tree preserves source order.
func expressionRules() []grammar.Rule {
	return []grammar.Rule{
		{
			Name: "expression",
			BoundExpr: grammar.Seq(
				term(),
				grammar.Rep(grammar.Seq(grammar.Ref("binary_operator"), term())),
			),
		},
		{
			Name:      "binary_operator",
			BoundExpr: BinaryOperator(),
		},
		// Postfix hook on every term. Empty in ANSI; Postgres overrides it
		// with the :: cast chain.
		{
			Name:      "cast_suffix",
			BoundExpr: grammar.Nothing(),
		},
		{
			Name: "case_expression",
			BoundExpr: grammar.Seq(
				grammar.Keyword("CASE"),
				grammar.Opt(grammar.Ref("expression")),
				grammar.Rep(grammar.Ref("when_clause"), grammar.Min(1)),
				grammar.Opt(grammar.Ref("else_clause")),
				grammar.Keyword("END"),
			),
		},
		{
			Name: "when_clause",
			BoundExpr: grammar.Seq(
				grammar.Keyword("WHEN"), grammar.Ref("expression"),
				grammar.Keyword("THEN"), grammar.Ref("expression"),
			),
		},
		{
			Name: "else_clause",
			BoundExpr: grammar.Seq(
				grammar.Keyword("ELSE"), grammar.Ref("expression"),
			),
		},
		{
			Name: "cast_expression",
			BoundExpr: grammar.Seq(
				grammar.Keyword("CAST"),
				grammar.Bracketed(grammar.Seq(
					grammar.Ref("expression"),
					grammar.Keyword("AS"),
					grammar.Ref("datatype"),
				)),
			),
		},
		{
			Name: "function_call",
			BoundExpr: grammar.Seq(
				grammar.Word("function_name"),
				grammar.Bracketed(grammar.Opt(grammar.OneOf(
					grammar.TokAs("star", "wildcard"),
					grammar.Seq(
						grammar.Opt(grammar.Keyword("DISTINCT")),
						grammar.Delimited(grammar.Ref("expression"), grammar.Tok("comma")),
					),
				))),
			),
		},
		{
			Name: "literal",
			BoundExpr: grammar.OneOf(
				grammar.Tok("numeric_literal"),
				grammar.TokAs("single_quote", "quoted_literal"),
				grammar.Keyword("NULL"),
				grammar.Keyword("TRUE"),
				grammar.Keyword("FALSE"),
			),
		},
		{
			Name: "datatype",
			BoundExpr: grammar.Seq(
				grammar.Word("data_type_identifier"),
				grammar.Opt(grammar.Bracketed(grammar.Delimited(grammar.Tok("numeric_literal"), grammar.Tok("comma")))),
			),
		},
		{
			Name:      "column_reference",
			BoundExpr: grammar.Delimited(identifier("naked_identifier"), grammar.Tok("dot")),
		},
		{
			Name:      "table_reference",
			BoundExpr: grammar.Delimited(identifier("naked_identifier"), grammar.Tok("dot")),
		},
		{
			Name:      "object_reference",
			BoundExpr: grammar.Delimited(identifier("naked_identifier"), grammar.Tok("dot")),
		},
	}
}
