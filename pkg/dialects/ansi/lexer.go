package ansi

import (
	"github.com/leapstack-labs/sqlparse/pkg/lexer"
	"github.com/leapstack-labs/sqlparse/pkg/token"
)

// LexerRules returns the ANSI lexer rule list in priority order. First
// match wins, so ordering carries meaning: comments sit above the
// operators they share a prefix with ("--" above minus, "/*" above
// divide) and numerics sit above dot so ".5" lexes as one literal.
func LexerRules() []lexer.Rule {
	return []lexer.Rule{
		lexer.Regex("whitespace", `[^\S\r\n]+`, token.Whitespace),
		lexer.Regex("inline_comment", `--[^\n]*`, token.Comment, lexer.TrimPrefix("--")),
		lexer.Regex("block_comment", `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`, token.Comment),
		lexer.Regex("single_quote", `'(?:[^']|'')*'`, token.Literal),
		lexer.Regex("double_quote", `"(?:[^"]|"")*"`, token.Word),
		lexer.Regex("numeric_literal", `\d+\.\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?|\d+(?:[eE][+-]?\d+)?`, token.Numeric),
		lexer.String("concat", "||", token.Symbol),
		lexer.Regex("comparison_operator", `<>|!=|<=|>=|<|>|=`, token.Symbol),
		lexer.String("plus", "+", token.Symbol),
		lexer.String("minus", "-", token.Symbol),
		lexer.String("star", "*", token.Symbol),
		lexer.String("divide", "/", token.Symbol),
		lexer.String("modulo", "%", token.Symbol),
		lexer.String("comma", ",", token.Symbol),
		lexer.String("dot", ".", token.Symbol),
		lexer.String("semicolon", ";", token.Symbol),
		lexer.String("start_bracket", "(", token.Symbol),
		lexer.String("end_bracket", ")", token.Symbol),
		lexer.String("start_square_bracket", "[", token.Symbol),
		lexer.String("end_square_bracket", "]", token.Symbol),
		lexer.Regex("word", `[0-9a-zA-Z_]*[a-zA-Z_][0-9a-zA-Z_]*`, token.Word),
		lexer.Regex("newline", `\r?\n`, token.NewlineClass),
	}
}
