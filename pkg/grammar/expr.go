// Package grammar provides the composable matching primitives the parser
// is built from: literals, sequences, choices, repetitions, delimited
// lists, bracketed spans, optional wrappers, named references, and
// terminator-bounded scans.
//
// Combinators are side-effect free: matching speculatively against a
// cursor copy is always safe, and failure returns the caller to its
// original cursor. Named references resolve against the active dialect at
// parse time, which is what lets a derived dialect override a rule for
// every other rule that refers to it by name.
package grammar

import (
	"github.com/leapstack-labs/sqlparse/pkg/tree"
)

// maxDepth bounds rule recursion so a pathological grammar degrades into
// a NoMatch instead of exhausting the stack.
const maxDepth = 500

// Match is a successful combinator result: the nodes built from the
// consumed span and the advanced cursor. Nodes always cover exactly the
// tokens between the starting cursor and End, trivia included.
type Match struct {
	Nodes []tree.Node
	End   Cursor
}

// Expr is a grammar combinator expression. Match either consumes a span,
// returning the built nodes and the advanced cursor, or reports NoMatch
// by returning ok == false with the caller's cursor untouched.
type Expr interface {
	Match(ctx *Context, c Cursor) (Match, bool)
}

// Rule is a named, dialect-scoped grammar entry. BoundExpr is the cheap
// applicability/boundary check; ParseExpr, when present, is the full
// structural decomposition applied over the confirmed bound. When
// ParseExpr is nil the bounding expression serves both phases.
type Rule struct {
	Name      string
	BoundExpr Expr
	ParseExpr Expr
}

// Resolver supplies dialect context during matching: named rule lookup
// and keyword table membership.
type Resolver interface {
	// ResolveRule returns the nearest definition of a rule name on the
	// dialect chain. Failure is a configuration defect.
	ResolveRule(name string) (Rule, error)
	// IsReservedKeyword reports whether a word may not be used as a
	// naked identifier.
	IsReservedKeyword(word string) bool
}

// Context carries the per-parse dialect binding. It holds no mutable parse
// state besides a recursion guard and the first configuration error.
type Context struct {
	resolver Resolver
	depth    int
	err      error
}

// NewContext binds a resolver for one parse run.
func NewContext(r Resolver) *Context {
	return &Context{resolver: r}
}

// Err returns the first configuration error hit during matching, if any.
func (ctx *Context) Err() error { return ctx.err }

func (ctx *Context) fail(err error) {
	if ctx.err == nil {
		ctx.err = err
	}
}
