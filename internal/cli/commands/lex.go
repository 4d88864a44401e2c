package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlparse/internal/cli/output"
)

// NewLexCommand creates the lex command.
func NewLexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lex [file]",
		Short: "Tokenize SQL and print the token stream",
		Long: `Tokenize SQL from a file (or stdin) under the configured dialect's
lexer rules and print one row per token.

Unlexable byte runs become one-byte tokens and are reported as
warnings; the token stream always covers the whole input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ConfigFrom(cmd.Context())
			d, err := resolveDialect(cfg.Dialect)
			if err != nil {
				return err
			}

			var src []byte
			if len(args) == 0 {
				src, err = io.ReadAll(cmd.InOrStdin())
			} else {
				src, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			toks, warns := d.Lexer().Lex(string(src))

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Rule", "Class", "Pos", "Raw"})
			for i, tok := range toks {
				t.AppendRow(table.Row{i, tok.Rule, tok.Class, tok.Pos, fmt.Sprintf("%q", tok.Raw)})
			}
			t.Render()

			if len(warns) > 0 {
				styles := output.NewStyles()
				for _, w := range warns {
					fmt.Fprintln(cmd.ErrOrStderr(), styles.Warning.Render(w.String()))
				}
			}
			return nil
		},
	}
}
