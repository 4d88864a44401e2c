package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlparse/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Dialect", "Extends", "Rules", "Reserved"})
			for _, name := range dialect.List() {
				d, ok := dialect.Get(name)
				if !ok {
					continue
				}
				parent := ""
				if p := d.Parent(); p != nil {
					parent = p.Name()
				}
				t.AppendRow(table.Row{
					d.Name(), parent, len(d.RuleNames()), len(d.ReservedKeywords()),
				})
			}
			t.Render()
			return nil
		},
	}
}

// resolveDialect looks a dialect up by name, listing the registered
// names on failure.
func resolveDialect(name string) (*dialect.Dialect, error) {
	d, ok := dialect.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (available: %v)", name, dialect.List())
	}
	return d, nil
}
