package dialect

import "fmt"

// UnknownRuleError reports a rule name that resolves nowhere on a dialect
// chain. It is a registry-configuration defect raised at build time, never
// during parsing.
type UnknownRuleError struct {
	Rule string
	From string // rule that referenced it, empty for the root rule itself
}

func (e *UnknownRuleError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("unknown grammar rule %q", e.Rule)
	}
	return fmt.Sprintf("unknown grammar rule %q referenced from %q", e.Rule, e.From)
}
