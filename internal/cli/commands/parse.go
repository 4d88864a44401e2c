package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqlparse/internal/cli/output"
	"github.com/leapstack-labs/sqlparse/pkg/dialect"
	"github.com/leapstack-labs/sqlparse/pkg/parser"
	"github.com/leapstack-labs/sqlparse/pkg/tree"
)

// ErrIssuesFound reports that parsing completed but some spans did not
// lex or parse. It drives the non-zero exit code; the tree and the
// diagnostics have already been printed when it is returned.
var ErrIssuesFound = errors.New("input contains unparsable spans")

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	RootRule string
	Watch    bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse SQL files and print their parse trees",
		Long: `Parse SQL from files (or stdin when no files are given) under the
configured dialect and print the resulting tree.

Unparsable spans are kept in the tree and reported as diagnostics on
stderr. Parsing itself never aborts, but the exit code is non-zero when
any span failed to parse.`,
		Example: `  # Parse a file with the default (ansi) dialect
  sqlparse parse query.sql

  # Parse stdin as Snowflake SQL
  echo 'select 1 qualify rn = 1' | sqlparse parse -d snowflake

  # Re-parse on every change
  sqlparse parse --watch models/*.sql

  # Print the tree as YAML
  sqlparse parse -f yaml query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ConfigFrom(cmd.Context())
			d, err := resolveDialect(cfg.Dialect)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				src, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				return parseAndPrint(cmd, d, "<stdin>", string(src), cfg.Format, opts)
			}

			err = parseFiles(cmd, d, args, cfg.Format, cfg.Parallelism, opts)
			if opts.Watch {
				// Issues in the initial pass do not stop watching.
				if err != nil && !errors.Is(err, ErrIssuesFound) {
					return err
				}
				return watchFiles(cmd, d, args, cfg.Format, opts)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.RootRule, "rule", "", "Parse from a named grammar rule instead of the dialect root")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-parse files whenever they change")

	return cmd
}

// parseFiles parses all files concurrently and prints results in
// argument order.
func parseFiles(cmd *cobra.Command, d *dialect.Dialect, files []string, format string, parallelism int, opts *ParseOptions) error {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	outputs := make([]string, len(files))
	diags := make([]string, len(files))

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			rendered, diag, err := renderParse(d, path, string(src), format, opts)
			if err != nil {
				return err
			}
			outputs[i] = rendered
			diags[i] = diag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	hadIssues := false
	for i := range files {
		if len(files) > 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n", files[i])
		}
		fmt.Fprint(cmd.OutOrStdout(), outputs[i])
		if diags[i] != "" {
			fmt.Fprint(cmd.ErrOrStderr(), diags[i])
			hadIssues = true
		}
	}
	if hadIssues {
		return ErrIssuesFound
	}
	return nil
}

func parseAndPrint(cmd *cobra.Command, d *dialect.Dialect, name, src, format string, opts *ParseOptions) error {
	rendered, diag, err := renderParse(d, name, src, format, opts)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	if diag != "" {
		fmt.Fprint(cmd.ErrOrStderr(), diag)
		return ErrIssuesFound
	}
	return nil
}

// renderParse runs one parse and formats the tree and diagnostics.
func renderParse(d *dialect.Dialect, name, src, format string, opts *ParseOptions) (rendered, diags string, err error) {
	var parseOpts []parser.Option
	if opts.RootRule != "" {
		parseOpts = append(parseOpts, parser.WithRootRule(opts.RootRule))
	}

	t, issues, err := parser.Parse(src, d, parseOpts...)
	if err != nil {
		return "", "", fmt.Errorf("parsing %s: %w", name, err)
	}

	switch format {
	case "", "tree":
		rendered = t.Render()
	case "yaml":
		b, merr := yaml.Marshal(treeToYAML(t.Root))
		if merr != nil {
			return "", "", merr
		}
		rendered = string(b)
	case "raw":
		rendered = t.Raw()
	default:
		return "", "", fmt.Errorf("unknown output format %q", format)
	}

	if len(issues) > 0 {
		styles := output.NewStyles()
		var sb strings.Builder
		for _, is := range issues {
			sb.WriteString(styles.Warning.Render(fmt.Sprintf("%s:%s", name, is)))
			sb.WriteByte('\n')
		}
		diags = sb.String()
	}
	return rendered, diags, nil
}

// treeToYAML converts a node to the nested form marshalled for -f yaml.
func treeToYAML(n tree.Node) map[string]any {
	out := map[string]any{"type": n.Type()}
	kids := n.Children()
	if len(kids) == 0 {
		out["raw"] = n.Raw()
		return out
	}
	children := make([]map[string]any, 0, len(kids))
	for _, k := range kids {
		children = append(children, treeToYAML(k))
	}
	out["children"] = children
	return out
}

// watchFiles re-parses files as they change until interrupted. Events
// are debounced: editors often emit several writes per save.
func watchFiles(cmd *cobra.Command, d *dialect.Dialect, files []string, format string, opts *ParseOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// Watch directories, not files: editors that replace-on-save would
	// otherwise drop the watch after the first change.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	log := LoggerFrom(cmd.Context())
	log.Debug("watching for changes", "files", len(watched))

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := make(map[string]bool)
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			pending[abs] = true
			debounce.Reset(100 * time.Millisecond)
		case <-debounce.C:
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			clear(pending)
			sort.Strings(changed)
			for _, f := range changed {
				src, err := os.ReadFile(f)
				if err != nil {
					log.Warn("re-read failed", "file", f, "err", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n", f)
				err = parseAndPrint(cmd, d, f, string(src), format, opts)
				if err != nil && !errors.Is(err, ErrIssuesFound) {
					log.Warn("re-parse failed", "file", f, "err", err)
				}
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", werr)
		}
	}
}
