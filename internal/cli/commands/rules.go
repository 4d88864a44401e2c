package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlparse/internal/cli/output"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Keywords bool
	Lexer    bool
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the grammar rules of a dialect",
		Long: `List every resolvable grammar rule name of the configured dialect,
inherited rules included. With --keywords, list the dialect's reserved
keywords instead; with --lexer, its effective lexer rules in priority
order.`,
		Example: `  # Rules of the default dialect
  sqlparse rules

  # Snowflake's reserved keywords
  sqlparse rules -d snowflake --keywords

  # Postgres' lexer rules, patches applied
  sqlparse rules -d postgres --lexer`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFrom(cmd.Context())
			d, err := resolveDialect(cfg.Dialect)
			if err != nil {
				return err
			}

			styles := output.NewStyles()
			if opts.Lexer {
				fmt.Fprintln(cmd.OutOrStdout(), styles.Header.Render(
					fmt.Sprintf("Lexer rules (%s, priority order)", d.Name())))
				for i, r := range d.LexerRules() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %3d  %s%s\n",
						i, r.Name, styles.Muted.Render("  ("+r.Class.String()+")"))
				}
				return nil
			}
			if opts.Keywords {
				fmt.Fprintln(cmd.OutOrStdout(), styles.Header.Render(
					fmt.Sprintf("Reserved keywords (%s)", d.Name())))
				for _, kw := range d.ReservedKeywords() {
					fmt.Fprintln(cmd.OutOrStdout(), "  "+kw)
				}
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), styles.Header.Render(
				fmt.Sprintf("Grammar rules (%s, root %s)", d.Name(), d.RootRule())))
			for _, name := range d.RuleNames() {
				line := "  " + name
				if name == d.RootRule() {
					line += styles.Muted.Render("  (root)")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Keywords, "keywords", "k", false, "List reserved keywords instead of rules")
	cmd.Flags().BoolVar(&opts.Lexer, "lexer", false, "List lexer rules instead of grammar rules")

	return cmd
}
