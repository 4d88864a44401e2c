package grammar

import (
	"github.com/leapstack-labs/sqlparse/pkg/tree"
)

// bracketedExpr matches an open bracket, an inner expression, and the
// matching close bracket. The close is located first by depth counting so
// nested pairs of the same kind never close the outer span prematurely.
// When the inner expression cannot account for the bracketed span, the
// span becomes an unparsable node instead of failing the bracket match.
type bracketedExpr struct {
	inner     Expr
	openRule  string
	closeRule string
}

// BracketOption configures Bracketed.
type BracketOption func(*bracketedExpr)

// Brackets selects the lexer rule names of the bracket pair. The default
// pair is "start_bracket"/"end_bracket".
func Brackets(openRule, closeRule string) BracketOption {
	return func(e *bracketedExpr) {
		e.openRule = openRule
		e.closeRule = closeRule
	}
}

// Square selects square brackets ("start_square_bracket"/"end_square_bracket").
func Square() BracketOption {
	return Brackets("start_square_bracket", "end_square_bracket")
}

// Bracketed matches inner enclosed in a balanced bracket pair and wraps
// the whole span in a "bracketed" segment.
func Bracketed(inner Expr, opts ...BracketOption) Expr {
	e := bracketedExpr{
		inner:     inner,
		openRule:  "start_bracket",
		closeRule: "end_bracket",
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func (e bracketedExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	openIdx, ok := c.NextCode()
	if !ok || c.At(openIdx).Rule != e.openRule {
		return Match{}, false
	}

	// Locate the matching close with nesting depth tracking.
	depth := 1
	closeIdx := -1
	for i := openIdx + 1; i < c.limit; i++ {
		switch c.At(i).Rule {
		case e.openRule:
			depth++
		case e.closeRule:
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		// Unbalanced within the attempted span.
		return Match{}, false
	}

	kids := []tree.Node{tree.NewLeaf(c.At(openIdx))}

	innerStart := c.To(openIdx + 1).Bounded(closeIdx)
	m, mok := e.inner.Match(ctx, innerStart)
	switch {
	case mok && fullyConsumed(m.End, closeIdx):
		kids = append(kids, m.Nodes...)
		kids = append(kids, innerStart.leaves(m.End.idx, closeIdx)...)
	default:
		// The confirmed bracket span did not decompose: recover it as a
		// single unparsable node rather than failing the bracket.
		if openIdx+1 < closeIdx {
			kids = append(kids, &tree.Unparsable{
				Expected: exprName(e.inner),
				Kids:     innerStart.leaves(openIdx+1, closeIdx),
			})
		}
	}

	kids = append(kids, tree.NewLeaf(c.At(closeIdx)))
	nodes := append(c.leaves(c.idx, openIdx), tree.NewBranch("bracketed", kids))
	return Match{Nodes: nodes, End: c.To(closeIdx + 1)}, true
}

// fullyConsumed reports whether only trivia remains between the cursor and
// the bound.
func fullyConsumed(c Cursor, bound int) bool {
	_, ok := c.Bounded(bound).NextCode()
	return !ok
}
