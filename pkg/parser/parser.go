// Package parser is the top-level entry point: it lexes source text under
// a dialect's token rules, matches the token stream against the dialect's
// grammar, and returns a lossless parse tree.
//
// Parsing never aborts on malformed input. Spans the grammar cannot match
// become unparsable nodes in the tree and are also surfaced as issues, so
// callers always get a tree covering the whole input.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlparse/pkg/dialect"
	"github.com/leapstack-labs/sqlparse/pkg/grammar"
	"github.com/leapstack-labs/sqlparse/pkg/lexer"
	"github.com/leapstack-labs/sqlparse/pkg/token"
	"github.com/leapstack-labs/sqlparse/pkg/tree"
)

// Option configures a parse run.
type Option func(*config)

type config struct {
	rootRule string
}

// WithRootRule starts the parse from a named rule instead of the
// dialect's default root. Useful for parsing fragments, e.g. a single
// expression.
func WithRootRule(name string) Option {
	return func(c *config) { c.rootRule = name }
}

// Issue is a non-fatal problem found while lexing or parsing: an
// unlexable byte run or an unparsable token span.
type Issue struct {
	// Pos is where the problem span starts.
	Pos token.Position
	// Raw is the source text of the problem span.
	Raw string
	// Expected names the rule that failed over the span; "token" for
	// lexer-level issues.
	Expected string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: cannot parse %q as %s", i.Pos, i.Raw, i.Expected)
}

// Lex tokenizes source under a dialect's lexer rules. The returned
// warnings describe unlexable byte runs; the token stream still covers
// the entire input.
func Lex(src string, d *dialect.Dialect) ([]token.Token, []lexer.Warning) {
	return d.Lexer().Lex(src)
}

// Parse lexes and parses source under a dialect. The returned tree always
// covers the full input; issues list the spans that failed to lex or
// match. The error is non-nil only for configuration defects, such as an
// unknown root rule.
func Parse(src string, d *dialect.Dialect, opts ...Option) (*Tree, []Issue, error) {
	cfg := config{rootRule: d.RootRule()}
	for _, opt := range opts {
		opt(&cfg)
	}

	toks, warns := d.Lexer().Lex(src)

	ctx := grammar.NewContext(d)
	c := grammar.NewCursor(toks)

	m, ok := grammar.Ref(cfg.rootRule).Match(ctx, c)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// The root reference already yields a branch typed after the root
	// rule; reuse it instead of wrapping a second layer around it.
	root := tree.NewBranch(cfg.rootRule, nil)
	end := c
	if ok {
		end = m.End
		if b, one := soleBranch(m.Nodes, cfg.rootRule); one {
			root = b
		} else {
			root.Kids = m.Nodes
		}
	}

	// Whatever the root rule left behind still belongs in the tree:
	// trivia as plain leaves, code as one trailing unparsable span.
	if rest, more := end.NextCode(); more {
		root.Kids = append(root.Kids, leavesOf(end, end.Index(), rest)...)
		root.Kids = append(root.Kids, &tree.Unparsable{
			Expected: cfg.rootRule,
			Kids:     leavesOf(end, rest, end.Limit()),
		})
	} else {
		root.Kids = append(root.Kids, leavesOf(end, end.Index(), end.Limit())...)
	}

	t := &Tree{Source: src, Root: root}
	return t, collectIssues(t, warns), nil
}

func soleBranch(nodes []tree.Node, segType string) (*tree.Branch, bool) {
	if len(nodes) != 1 {
		return nil, false
	}
	b, ok := nodes[0].(*tree.Branch)
	if !ok || b.SegType != segType {
		return nil, false
	}
	return b, true
}

func leavesOf(c grammar.Cursor, from, to int) []tree.Node {
	var out []tree.Node
	for i := from; i < to; i++ {
		out = append(out, tree.NewLeaf(c.At(i)))
	}
	return out
}

// collectIssues flattens lexer warnings and unparsable tree spans into a
// single issue list, in source order.
func collectIssues(t *Tree, warns []lexer.Warning) []Issue {
	var issues []Issue
	for _, w := range warns {
		issues = append(issues, Issue{Pos: w.Pos, Raw: w.Raw, Expected: "token"})
	}
	tree.Walk(t.Root, func(n tree.Node, _ int) bool {
		if u, ok := n.(*tree.Unparsable); ok {
			issues = append(issues, Issue{
				Pos:      u.Span().Start,
				Raw:      u.Raw(),
				Expected: u.Expected,
			})
			return false
		}
		return true
	})
	sortIssues(issues)
	return issues
}

func sortIssues(issues []Issue) {
	// Insertion sort by offset; issue lists are short.
	for i := 1; i < len(issues); i++ {
		for j := i; j > 0 && issues[j].Pos.Offset < issues[j-1].Pos.Offset; j-- {
			issues[j], issues[j-1] = issues[j-1], issues[j]
		}
	}
}
