// Package dialect models SQL dialects as a single-inheritance tree of
// deltas over a base grammar.
//
// A derived dialect stores only its differences: grammar rule overrides,
// keyword table deltas, and lexer rule patches. Everything else comes from
// the parent chain. Dialects follow a build-then-freeze discipline: all
// registration happens before any parse begins, and a built Dialect is
// immutable and safe for concurrent parses without locking.
package dialect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlparse/pkg/grammar"
	"github.com/leapstack-labs/sqlparse/pkg/lexer"
)

// Dialect is an immutable, fully resolved dialect. All parent-chain
// resolution is flattened at build time, so lookups during parsing are
// plain map reads.
type Dialect struct {
	name     string
	parent   *Dialect
	rootRule string

	rules      map[string]grammar.Rule
	reserved   map[string]struct{}
	unreserved map[string]struct{}

	lexRules []lexer.Rule
	lex      *lexer.Lexer
}

// Name returns the dialect identifier.
func (d *Dialect) Name() string { return d.name }

// Parent returns the parent dialect, nil for the root dialect.
func (d *Dialect) Parent() *Dialect { return d.parent }

// RootRule returns the default rule name parses start from.
func (d *Dialect) RootRule() string { return d.rootRule }

// ResolveRule returns the nearest definition of a rule name on the chain.
// Missing names are configuration defects; Build validates every name
// reachable from the root rule, so parse-time failures indicate a rule
// requested outside the validated closure.
func (d *Dialect) ResolveRule(name string) (grammar.Rule, error) {
	if r, ok := d.rules[name]; ok {
		return r, nil
	}
	return grammar.Rule{}, &UnknownRuleError{Rule: name}
}

// IsReservedKeyword reports whether a word may not be used as a naked
// identifier under this dialect.
func (d *Dialect) IsReservedKeyword(word string) bool {
	_, ok := d.reserved[strings.ToUpper(word)]
	return ok
}

// IsUnreservedKeyword reports whether a word is a known keyword that may
// still be used as an identifier.
func (d *Dialect) IsUnreservedKeyword(word string) bool {
	_, ok := d.unreserved[strings.ToUpper(word)]
	return ok
}

// LexerRules returns the effective, priority-ordered lexer rule list.
func (d *Dialect) LexerRules() []lexer.Rule {
	out := make([]lexer.Rule, len(d.lexRules))
	copy(out, d.lexRules)
	return out
}

// Lexer returns the dialect's lexer over its effective rule list.
func (d *Dialect) Lexer() *lexer.Lexer { return d.lex }

// RuleNames returns all resolvable rule names, sorted.
func (d *Dialect) RuleNames() []string {
	names := make([]string, 0, len(d.rules))
	for name := range d.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReservedKeywords returns the effective reserved keyword set, sorted.
func (d *Dialect) ReservedKeywords() []string {
	out := make([]string, 0, len(d.reserved))
	for kw := range d.reserved {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Builder accumulates a dialect definition. Build resolves the parent
// chain, applies lexer patches, and validates the grammar closure.
type Builder struct {
	name     string
	parent   *Dialect
	rootRule string

	lexBase    []lexer.Rule
	lexPatches []lexer.Patch

	rules        map[string]grammar.Rule
	removedRules map[string]struct{}

	reserve   []string
	unreserve []string
}

// NewBuilder starts a definition for a root dialect.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:         name,
		rules:        make(map[string]grammar.Rule),
		removedRules: make(map[string]struct{}),
	}
}

// Extend starts a definition for a dialect derived from parent.
func Extend(name string, parent *Dialect) *Builder {
	b := NewBuilder(name)
	b.parent = parent
	return b
}

// RootRule sets the rule parses start from by default. Inherited from the
// parent when unset.
func (b *Builder) RootRule(name string) *Builder {
	b.rootRule = name
	return b
}

// LexerRules sets the base lexer rule list. Only valid on root dialects;
// derived dialects patch instead.
func (b *Builder) LexerRules(rules ...lexer.Rule) *Builder {
	b.lexBase = rules
	return b
}

// PatchLexer appends lexer delta entries, applied in order against the
// parent's effective list.
func (b *Builder) PatchLexer(patches ...lexer.Patch) *Builder {
	b.lexPatches = append(b.lexPatches, patches...)
	return b
}

// AddRules defines or overrides named grammar rules. Override-by-name is
// the only mechanism: redefining replaces the inherited rule for every
// reference to that name.
func (b *Builder) AddRules(rules ...grammar.Rule) *Builder {
	for _, r := range rules {
		b.rules[r.Name] = r
		delete(b.removedRules, r.Name)
	}
	return b
}

// ReplaceRule is AddRules for a single rule; it reads better at call sites
// that override an inherited definition.
func (b *Builder) ReplaceRule(r grammar.Rule) *Builder {
	return b.AddRules(r)
}

// RemoveRule deletes an inherited rule from this dialect's view. Removing
// a rule still referenced from the root closure fails at Build.
func (b *Builder) RemoveRule(name string) *Builder {
	b.removedRules[name] = struct{}{}
	delete(b.rules, name)
	return b
}

// ReserveKeywords adds words to the reserved keyword table.
func (b *Builder) ReserveKeywords(words ...string) *Builder {
	b.reserve = append(b.reserve, words...)
	return b
}

// UnreserveKeywords moves words out of the reserved table into the
// unreserved one, making them usable as naked identifiers.
func (b *Builder) UnreserveKeywords(words ...string) *Builder {
	b.unreserve = append(b.unreserve, words...)
	return b
}

// Build flattens the parent chain into an immutable Dialect and validates
// that every rule name reachable from the root rule resolves.
func (b *Builder) Build() (*Dialect, error) {
	d := &Dialect{
		name:       b.name,
		parent:     b.parent,
		rootRule:   b.rootRule,
		rules:      make(map[string]grammar.Rule),
		reserved:   make(map[string]struct{}),
		unreserved: make(map[string]struct{}),
	}

	if b.parent != nil {
		if d.rootRule == "" {
			d.rootRule = b.parent.rootRule
		}
		for name, r := range b.parent.rules {
			d.rules[name] = r
		}
		for kw := range b.parent.reserved {
			d.reserved[kw] = struct{}{}
		}
		for kw := range b.parent.unreserved {
			d.unreserved[kw] = struct{}{}
		}
	}
	if d.rootRule == "" {
		return nil, fmt.Errorf("dialect %q: no root rule defined", b.name)
	}

	for name := range b.removedRules {
		delete(d.rules, name)
	}
	for name, r := range b.rules {
		d.rules[name] = r
	}

	for _, kw := range b.unreserve {
		up := strings.ToUpper(kw)
		delete(d.reserved, up)
		d.unreserved[up] = struct{}{}
	}
	for _, kw := range b.reserve {
		up := strings.ToUpper(kw)
		delete(d.unreserved, up)
		d.reserved[up] = struct{}{}
	}

	var (
		base []lexer.Rule
		err  error
	)
	if b.parent != nil {
		base = b.parent.lexRules
	} else {
		base = b.lexBase
	}
	d.lexRules, err = lexer.Apply(base, b.lexPatches)
	if err != nil {
		return nil, fmt.Errorf("dialect %q: %w", b.name, err)
	}
	if len(d.lexRules) == 0 {
		return nil, fmt.Errorf("dialect %q: no lexer rules", b.name)
	}
	d.lex = lexer.New(d.lexRules)

	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("dialect %q: %w", b.name, err)
	}
	return d, nil
}

// validate walks the grammar closure from the root rule, checking that
// every referenced name resolves somewhere on the (flattened) chain.
func (d *Dialect) validate() error {
	if _, ok := d.rules[d.rootRule]; !ok {
		return &UnknownRuleError{Rule: d.rootRule}
	}

	visited := make(map[string]struct{})
	queue := []string{d.rootRule}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, done := visited[name]; done {
			continue
		}
		visited[name] = struct{}{}

		rule := d.rules[name]
		refs := grammar.CollectRefs(rule.BoundExpr)
		refs = append(refs, grammar.CollectRefs(rule.ParseExpr)...)
		for _, ref := range refs {
			if _, ok := d.rules[ref]; !ok {
				return &UnknownRuleError{Rule: ref, From: name}
			}
			queue = append(queue, ref)
		}
	}
	return nil
}

// MustBuild is Build for package-level dialect variables, where a
// definition error is a programming defect.
func (b *Builder) MustBuild() *Dialect {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}
