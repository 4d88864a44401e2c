package grammar

import (
	"strings"

	"github.com/leapstack-labs/sqlparse/pkg/token"
	"github.com/leapstack-labs/sqlparse/pkg/tree"
)

// keywordExpr matches one word token case-insensitively and relabels the
// leaf as "keyword". Leading trivia is collected into the match.
type keywordExpr struct {
	kw string
}

// Keyword matches a word token whose text equals kw, ignoring case.
func Keyword(kw string) Expr {
	return keywordExpr{kw: kw}
}

func (e keywordExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	i, ok := c.NextCode()
	if !ok {
		return Match{}, false
	}
	t := c.At(i)
	if t.Class != token.Word || !strings.EqualFold(t.Text, e.kw) {
		return Match{}, false
	}
	nodes := append(c.leaves(c.idx, i), tree.NewLeafAs("keyword", t))
	return Match{Nodes: nodes, End: c.To(i + 1)}, true
}

// tokExpr matches one code token produced by a named lexer rule,
// optionally relabelling the leaf.
type tokExpr struct {
	rule string
	as   string
}

// Tok matches the next code token produced by the named lexer rule. The
// leaf keeps the rule name as its segment type.
func Tok(rule string) Expr {
	return tokExpr{rule: rule, as: rule}
}

// TokAs is Tok with an explicit segment type for the leaf.
func TokAs(rule, as string) Expr {
	return tokExpr{rule: rule, as: as}
}

func (e tokExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	i, ok := c.NextCode()
	if !ok {
		return Match{}, false
	}
	t := c.At(i)
	if t.Rule != e.rule {
		return Match{}, false
	}
	nodes := append(c.leaves(c.idx, i), tree.NewLeafAs(e.as, t))
	return Match{Nodes: nodes, End: c.To(i + 1)}, true
}

// wordExpr matches an unquoted word that the dialect keyword tables do not
// reserve. Keyword eligibility for identifiers is a parser-level concern,
// which is why the check happens here and not in the lexer.
type wordExpr struct {
	as string
}

// Word matches a non-reserved word token as an identifier leaf.
func Word(as string) Expr {
	return wordExpr{as: as}
}

func (e wordExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	i, ok := c.NextCode()
	if !ok {
		return Match{}, false
	}
	t := c.At(i)
	if t.Class != token.Word || t.Rule != "word" {
		return Match{}, false
	}
	if ctx.resolver != nil && ctx.resolver.IsReservedKeyword(t.Text) {
		return Match{}, false
	}
	nodes := append(c.leaves(c.idx, i), tree.NewLeafAs(e.as, t))
	return Match{Nodes: nodes, End: c.To(i + 1)}, true
}

// nothingExpr always succeeds with a zero-width match. Base dialects use
// it to define hook rules that derived dialects override.
type nothingExpr struct{}

// Nothing matches the empty span. It is the canonical body of a hook rule.
func Nothing() Expr {
	return nothingExpr{}
}

func (nothingExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	return Match{End: c}, true
}

// metaExpr emits a zero-width structural marker at the current position.
type metaExpr struct {
	kind tree.MetaKind
}

// Indent emits a zero-width indent marker for downstream formatting.
func Indent() Expr {
	return metaExpr{kind: tree.IndentMeta}
}

// Dedent emits a zero-width dedent marker.
func Dedent() Expr {
	return metaExpr{kind: tree.DedentMeta}
}

func (e metaExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	m := &tree.Meta{Kind: e.kind, At: c.Pos()}
	return Match{Nodes: []tree.Node{m}, End: c}, true
}
