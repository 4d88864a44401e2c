package grammar

import (
	"github.com/leapstack-labs/sqlparse/pkg/tree"
)

// refExpr resolves a rule name against the active dialect at parse time.
// The indirection is what lets a derived dialect override a rule for every
// expression that references it by name, and what allows forward and
// mutually recursive references without eager construction.
type refExpr struct {
	name string
}

// Ref references a named grammar rule, resolved at parse time.
func Ref(name string) Expr {
	return refExpr{name: name}
}

// Match runs the two-phase resolution for the referenced rule.
//
// Phase one evaluates the bounding expression, which cheaply confirms the
// rule applies and locates its end boundary. Only then is the structural
// expression, when present, run over exactly the bounded span. A choice
// over rule references therefore pays bounding cost per alternative and
// deep parsing cost only for the alternative that is committed to.
//
// Structural failure inside a confirmed bound does not propagate: the
// bound has already been established, so the unmatched remainder becomes
// an unparsable node and parsing resumes after the span.
func (e refExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	rule, err := ctx.resolver.ResolveRule(e.name)
	if err != nil {
		ctx.fail(err)
		return Match{}, false
	}

	if ctx.depth >= maxDepth {
		return Match{}, false
	}
	ctx.depth++
	defer func() { ctx.depth-- }()

	bm, ok := rule.BoundExpr.Match(ctx, c)
	if !ok {
		return Match{}, false
	}

	if rule.ParseExpr == nil {
		// The bounding expression doubles as the structural one.
		if len(bm.Nodes) == 0 {
			// Zero-width rules (hook rules) contribute no segment.
			return bm, true
		}
		node := tree.NewBranch(rule.Name, bm.Nodes)
		return Match{Nodes: []tree.Node{node}, End: bm.End}, true
	}

	bound := bm.End.idx
	inner := c.Bounded(bound)
	dm, dok := rule.ParseExpr.Match(ctx, inner)
	if !dok {
		// The whole confirmed span failed to decompose.
		node := tree.NewBranch(rule.Name, []tree.Node{
			&tree.Unparsable{Expected: rule.Name, Kids: c.leaves(c.idx, bound)},
		})
		return Match{Nodes: []tree.Node{node}, End: bm.End}, true
	}

	kids := dm.Nodes
	if rest, ok := dm.End.Bounded(bound).NextCode(); ok {
		// Structure matched a prefix of the bound: keep what parsed and
		// wrap the remaining code tokens as unparsable.
		kids = append(kids, inner.leaves(dm.End.idx, rest)...)
		kids = append(kids, &tree.Unparsable{
			Expected: rule.Name,
			Kids:     inner.leaves(rest, bound),
		})
	} else {
		// Trailing trivia inside the bound stays with the segment.
		kids = append(kids, inner.leaves(dm.End.idx, bound)...)
	}

	node := tree.NewBranch(rule.Name, kids)
	return Match{Nodes: []tree.Node{node}, End: bm.End}, true
}
