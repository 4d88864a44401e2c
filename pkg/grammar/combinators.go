package grammar

import (
	"github.com/leapstack-labs/sqlparse/pkg/tree"
)

// seqExpr matches an ordered list of sub-expressions. Trivia between steps
// is collected by the leaf matchers, so a failed step discards the whole
// partial consumption by returning the caller's cursor untouched.
type seqExpr struct {
	items []Expr
}

// Seq matches its sub-expressions in order, all or nothing.
func Seq(items ...Expr) Expr {
	return seqExpr{items: items}
}

func (e seqExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	var nodes []tree.Node
	cur := c
	for _, item := range e.items {
		m, ok := item.Match(ctx, cur)
		if !ok {
			return Match{}, false
		}
		nodes = append(nodes, m.Nodes...)
		cur = m.End
	}
	return Match{Nodes: nodes, End: cur}, true
}

// oneOfExpr tries alternatives in declared order against the same starting
// cursor and returns the first success. First-match semantics, not longest.
type oneOfExpr struct {
	alts []Expr
}

// OneOf returns the first alternative that matches.
func OneOf(alts ...Expr) Expr {
	return oneOfExpr{alts: alts}
}

func (e oneOfExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	for _, alt := range e.alts {
		if m, ok := alt.Match(ctx, c); ok {
			return m, true
		}
	}
	return Match{}, false
}

// optExpr turns a sub-expression's failure into a zero-width success.
type optExpr struct {
	inner Expr
}

// Opt makes inner optional.
func Opt(inner Expr) Expr {
	return optExpr{inner: inner}
}

func (e optExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	if m, ok := e.inner.Match(ctx, c); ok {
		return m, true
	}
	return Match{End: c}, true
}

// RepOption configures Rep and Delimited.
type RepOption func(*repConfig)

type repConfig struct {
	min   int
	max   int
	terms []Expr
	trail bool
}

// Min requires at least n matches.
func Min(n int) RepOption {
	return func(cfg *repConfig) { cfg.min = n }
}

// Max caps the number of matches; zero means unbounded.
func Max(n int) RepOption {
	return func(cfg *repConfig) { cfg.max = n }
}

// StopAt halts repetition immediately before the first matching
// terminator, without consuming it.
func StopAt(terms ...Expr) RepOption {
	return func(cfg *repConfig) { cfg.terms = append(cfg.terms, terms...) }
}

// AllowTrailing permits a trailing delimiter in a Delimited list.
func AllowTrailing() RepOption {
	return func(cfg *repConfig) { cfg.trail = true }
}

func (cfg *repConfig) atTerminator(ctx *Context, c Cursor) bool {
	for _, t := range cfg.terms {
		if _, ok := t.Match(ctx, c); ok {
			return true
		}
	}
	return false
}

// repExpr matches a sub-expression greedily zero or more times, stopping
// at a terminator or on the first failure, whichever comes first.
type repExpr struct {
	inner Expr
	cfg   repConfig
}

// Rep repeats inner greedily. By default it matches zero or more times.
func Rep(inner Expr, opts ...RepOption) Expr {
	e := repExpr{inner: inner}
	for _, opt := range opts {
		opt(&e.cfg)
	}
	return e
}

func (e repExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	var nodes []tree.Node
	cur := c
	count := 0
	for {
		if len(e.cfg.terms) > 0 && e.cfg.atTerminator(ctx, cur) {
			break
		}
		m, ok := e.inner.Match(ctx, cur)
		if !ok {
			break
		}
		if m.End.idx == cur.idx {
			// Zero-width inner match: stop rather than loop forever.
			break
		}
		nodes = append(nodes, m.Nodes...)
		cur = m.End
		count++
		if e.cfg.max > 0 && count >= e.cfg.max {
			break
		}
	}
	if count < e.cfg.min {
		return Match{}, false
	}
	return Match{Nodes: nodes, End: cur}, true
}

// delimitedExpr matches elements separated by a delimiter expression.
// A trailing delimiter is backtracked unless explicitly allowed.
type delimitedExpr struct {
	elem  Expr
	delim Expr
	cfg   repConfig
}

// Delimited matches one or more elem separated by delim.
func Delimited(elem, delim Expr, opts ...RepOption) Expr {
	e := delimitedExpr{elem: elem, delim: delim}
	e.cfg.min = 1
	for _, opt := range opts {
		opt(&e.cfg)
	}
	return e
}

func (e delimitedExpr) Match(ctx *Context, c Cursor) (Match, bool) {
	var nodes []tree.Node
	cur := c
	count := 0

	for {
		if len(e.cfg.terms) > 0 && e.cfg.atTerminator(ctx, cur) {
			break
		}
		m, ok := e.elem.Match(ctx, cur)
		if !ok {
			break
		}
		nodes = append(nodes, m.Nodes...)
		cur = m.End
		count++

		dm, ok := e.delim.Match(ctx, cur)
		if !ok {
			break
		}
		// Probe for another element before committing to the delimiter.
		if len(e.cfg.terms) > 0 && e.cfg.atTerminator(ctx, dm.End) {
			if e.cfg.trail {
				nodes = append(nodes, dm.Nodes...)
				cur = dm.End
			}
			break
		}
		if _, ok := e.elem.Match(ctx, dm.End); !ok {
			if e.cfg.trail {
				nodes = append(nodes, dm.Nodes...)
				cur = dm.End
			}
			break
		}
		nodes = append(nodes, dm.Nodes...)
		cur = dm.End
	}

	if count < e.cfg.min {
		return Match{}, false
	}
	return Match{Nodes: nodes, End: cur}, true
}
