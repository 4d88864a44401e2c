package lexer

import (
	"errors"
	"fmt"
)

// ErrUnknownAnchor is returned when a patch names a rule absent from the
// list it is applied to.
var ErrUnknownAnchor = errors.New("unknown lexer rule anchor")

type patchOp int

const (
	opInsertBefore patchOp = iota
	opInsertAfter
	opRemove
	opReplace
)

// Patch is one entry of a dialect's lexer delta: an insertion at a named
// anchor point, a removal, or an in-place replacement.
type Patch struct {
	op     patchOp
	anchor string
	rules  []Rule
}

// InsertBefore inserts rules immediately before the named rule.
func InsertBefore(anchor string, rules ...Rule) Patch {
	return Patch{op: opInsertBefore, anchor: anchor, rules: rules}
}

// InsertAfter inserts rules immediately after the named rule.
func InsertAfter(anchor string, rules ...Rule) Patch {
	return Patch{op: opInsertAfter, anchor: anchor, rules: rules}
}

// Remove deletes the named rule.
func Remove(name string) Patch {
	return Patch{op: opRemove, anchor: name}
}

// Replace swaps the named rule for a new one, keeping its priority slot.
func Replace(name string, rule Rule) Patch {
	return Patch{op: opReplace, anchor: name, rules: []Rule{rule}}
}

// Apply resolves a dialect's effective rule list: the base list with the
// patches applied in order. The base slice is never modified. Unknown
// anchors are configuration defects and fail hard.
func Apply(base []Rule, patches []Patch) ([]Rule, error) {
	out := make([]Rule, len(base))
	copy(out, base)

	for _, p := range patches {
		at := -1
		for i, r := range out {
			if r.Name == p.anchor {
				at = i
				break
			}
		}
		if at < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAnchor, p.anchor)
		}

		switch p.op {
		case opInsertBefore:
			out = splice(out, at, 0, p.rules)
		case opInsertAfter:
			out = splice(out, at+1, 0, p.rules)
		case opRemove:
			out = splice(out, at, 1, nil)
		case opReplace:
			out = splice(out, at, 1, p.rules)
		}
	}
	return out, nil
}

func splice(rules []Rule, at, drop int, insert []Rule) []Rule {
	out := make([]Rule, 0, len(rules)-drop+len(insert))
	out = append(out, rules[:at]...)
	out = append(out, insert...)
	out = append(out, rules[at+drop:]...)
	return out
}
