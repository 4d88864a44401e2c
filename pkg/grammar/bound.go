package grammar

import (
	"github.com/leapstack-labs/sqlparse/pkg/tree"
)

// untilExpr greedily consumes tokens as plain leaves, halting immediately
// before the first position where any terminator alternative matches.
// Used inside bounding expressions, where the consumed span is re-parsed
// structurally anyway, so the flat leaves are never kept.
type untilExpr struct {
	terms []Expr
}

// Until consumes everything up to (not including) the first terminator
// match, or to the end of the bounded span when no terminator appears.
func Until(terms ...Expr) Expr {
	return untilExpr{terms: terms}
}

func (e untilExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	cur := c
	for {
		i, ok := cur.NextCode()
		if !ok {
			break
		}
		if matchesAny(ctx, cur.To(i), e.terms) {
			break
		}
		cur = cur.To(advanceOver(cur, i))
	}
	return Match{Nodes: c.leaves(c.idx, cur.idx), End: cur}, true
}

// advanceOver steps past the token at i. An open bracket advances past
// the whole balanced span, so terminators are only probed at bracket
// depth zero: a FROM inside a subquery never ends the enclosing clause.
// An unbalanced open consumes to the bound.
func advanceOver(c Cursor, i int) int {
	var closing string
	open := c.At(i).Rule
	switch open {
	case "start_bracket":
		closing = "end_bracket"
	case "start_square_bracket":
		closing = "end_square_bracket"
	default:
		return i + 1
	}
	depth := 1
	for j := i + 1; j < c.limit; j++ {
		switch c.At(j).Rule {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return c.limit
}

// Bounded builds the canonical bounding expression of a rule: a start
// expression followed by a greedy scan up to the rule's terminators. It
// is deliberately cheap: it confirms applicability and locates the end
// boundary without descending into internal structure.
func Bounded(start Expr, terms ...Expr) Expr {
	return Seq(start, Until(terms...))
}

// recoveredExpr tries an inner expression and, when it fails outright,
// consumes the offending span up to the nearest terminator into an
// unparsable node. This bounds a match failure locally instead of
// propagating it to the enclosing rule.
type recoveredExpr struct {
	inner Expr
	terms []Expr
}

// Recovered wraps inner with terminator-bounded failure recovery.
func Recovered(inner Expr, terms ...Expr) Expr {
	return recoveredExpr{inner: inner, terms: terms}
}

func (e recoveredExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	if m, ok := e.inner.Match(ctx, c); ok {
		return m, true
	}

	first, ok := c.NextCode()
	if !ok {
		// Only trivia left: nothing to recover.
		return Match{}, false
	}

	// Consume at least one code token, then stop before the first
	// terminator so parsing resumes cleanly after the span.
	cur := c.To(advanceOver(c, first))
	for {
		i, ok := cur.NextCode()
		if !ok {
			break
		}
		if matchesAny(ctx, cur.To(i), e.terms) {
			break
		}
		cur = cur.To(advanceOver(cur, i))
	}

	nodes := append(
		c.leaves(c.idx, first),
		&tree.Unparsable{Expected: exprName(e.inner), Kids: c.leaves(first, cur.idx)},
	)
	return Match{Nodes: nodes, End: cur}, true
}

func matchesAny(ctx *Context, c Cursor, terms []Expr) bool {
	for _, t := range terms {
		if _, ok := t.Match(ctx, c); ok {
			return true
		}
	}
	return false
}
