package parser

import (
	"github.com/leapstack-labs/sqlparse/pkg/tree"
)

// Tree is a completed parse: the original source plus the root segment.
type Tree struct {
	// Source is the input text exactly as given.
	Source string
	// Root is the top-level segment, typed after the root rule.
	Root *tree.Branch
}

// Raw reconstructs the source from the tree's leaves. It equals Source
// for every tree the parser produces.
func (t *Tree) Raw() string { return t.Root.Raw() }

// Render returns the indented textual form of the tree.
func (t *Tree) Render() string { return tree.Render(t.Root) }

// Walk iterates the tree depth first.
func (t *Tree) Walk(fn func(tree.Node, int) bool) { tree.Walk(t.Root, fn) }
