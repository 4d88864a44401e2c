// Package tree defines the typed, lossless parse tree produced by the
// parser: segment branches, token leaves, zero-width meta markers, and
// unparsable spans recovered from match failures.
//
// Invariant: concatenating the raw text of all leaf tokens in tree order
// reproduces the original input byte for byte, trivia included.
package tree

import (
	"strings"

	"github.com/leapstack-labs/sqlparse/pkg/token"
)

// Node is a parse tree node.
type Node interface {
	// Type is the segment type name used in rendered output.
	Type() string
	// Raw reconstructs the exact source text the node covers.
	Raw() string
	// Span is the source region the node covers. Zero-width nodes report
	// a point span at their insertion position.
	Span() token.Span
	// Children returns the ordered child nodes, nil for leaves.
	Children() []Node
}

// Leaf wraps a single token. SegType defaults to the lexer rule name and
// may be relabelled by the grammar (for example "keyword").
type Leaf struct {
	SegType string
	Tok     token.Token
}

// NewLeaf builds a leaf labelled with the token's lexer rule name.
func NewLeaf(t token.Token) *Leaf {
	return &Leaf{SegType: t.Rule, Tok: t}
}

// NewLeafAs builds a leaf with an explicit segment type.
func NewLeafAs(segType string, t token.Token) *Leaf {
	return &Leaf{SegType: segType, Tok: t}
}

func (l *Leaf) Type() string     { return l.SegType }
func (l *Leaf) Raw() string      { return l.Tok.Raw }
func (l *Leaf) Span() token.Span { return l.Tok.Span() }
func (l *Leaf) Children() []Node { return nil }

// Branch is a typed segment owning an ordered child sequence.
type Branch struct {
	SegType string
	Kids    []Node
}

// NewBranch builds a branch segment.
func NewBranch(segType string, kids []Node) *Branch {
	return &Branch{SegType: segType, Kids: kids}
}

func (b *Branch) Type() string { return b.SegType }

func (b *Branch) Raw() string {
	var sb strings.Builder
	for _, k := range b.Kids {
		sb.WriteString(k.Raw())
	}
	return sb.String()
}

func (b *Branch) Span() token.Span { return spanOf(b.Kids) }
func (b *Branch) Children() []Node { return b.Kids }

// MetaKind distinguishes zero-width structural markers.
type MetaKind int

const (
	// IndentMeta marks the start of a nested region for formatting.
	IndentMeta MetaKind = iota
	// DedentMeta marks the end of a nested region.
	DedentMeta
)

// Meta is a zero-width structural marker. It carries no source text and is
// inserted only where grammar authors place it.
type Meta struct {
	Kind MetaKind
	At   token.Position
}

func (m *Meta) Type() string {
	if m.Kind == DedentMeta {
		return "dedent"
	}
	return "indent"
}

func (m *Meta) Raw() string      { return "" }
func (m *Meta) Span() token.Span { return token.Span{Start: m.At, End: m.At} }
func (m *Meta) Children() []Node { return nil }

// Unparsable wraps a contiguous token span the engine could not match.
// It is a valid tree node, not an error: parsing continues after it.
type Unparsable struct {
	// Expected names the rule that was being attempted over the span.
	Expected string
	Kids     []Node
}

func (u *Unparsable) Type() string { return "unparsable" }

func (u *Unparsable) Raw() string {
	var sb strings.Builder
	for _, k := range u.Kids {
		sb.WriteString(k.Raw())
	}
	return sb.String()
}

func (u *Unparsable) Span() token.Span { return spanOf(u.Kids) }
func (u *Unparsable) Children() []Node { return u.Kids }

func spanOf(kids []Node) token.Span {
	var (
		out   token.Span
		found bool
	)
	for _, k := range kids {
		s := k.Span()
		if !found {
			out = s
			found = true
			continue
		}
		out = out.Union(s)
	}
	return out
}

// Walk iterates the tree depth first, yielding each node with its depth.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node, int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, k := range n.Children() {
		walk(k, depth+1, fn)
	}
}
