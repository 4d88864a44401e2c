// Package cli provides the command-line interface for sqlparse.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlparse/internal/cli/commands"
	"github.com/leapstack-labs/sqlparse/internal/config"
	"github.com/leapstack-labs/sqlparse/pkg/dialect"

	// Register the built-in dialects.
	_ "github.com/leapstack-labs/sqlparse/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlparse/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/sqlparse/pkg/dialects/snowflake"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlparse",
		Short: "Dialect-aware SQL lexer and parser",
		Long: `sqlparse tokenizes and parses SQL under a chosen dialect and prints
the resulting lossless parse tree.

Malformed statements never abort a parse: unparsable spans stay in the
tree and are reported as diagnostics, and the tree always reproduces
the input byte for byte.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			ctx := commands.WithConfig(cmd.Context(), cfg)
			ctx = commands.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if used := config.GetConfigFileUsed(); used != "" {
					logger.Debug("using config file", "path", used)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sqlparse.yaml)")
	rootCmd.PersistentFlags().StringP("dialect", "d", "", "SQL dialect (default: ansi)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format (tree|yaml|raw)")
	rootCmd.PersistentFlags().IntP("parallelism", "j", 0, "Max concurrent file parses (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.List(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"tree", "yaml", "raw"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewLexCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
