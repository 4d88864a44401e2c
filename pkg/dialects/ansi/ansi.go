// Package ansi defines the base ANSI SQL dialect. Every other dialect
// derives from it and overrides rules, keywords, or lexer entries by name.
package ansi

import (
	"github.com/leapstack-labs/sqlparse/pkg/dialect"
)

// Dialect is the root of the dialect tree.
var Dialect = dialect.NewBuilder("ansi").
	RootRule("file").
	LexerRules(LexerRules()...).
	AddRules(statementRules()...).
	AddRules(clauseRules()...).
	AddRules(expressionRules()...).
	ReserveKeywords(ReservedKeywords...).
	UnreserveKeywords(UnreservedKeywords...).
	MustBuild()

func init() {
	dialect.Register(Dialect)
}
