package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// matching the behavior of testing.T.Chdir (Go 1.24+) on Go 1.21.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("dialect", DefaultDialect, "")
	fs.String("format", DefaultFormat, "")
	fs.Int("parallelism", 0, "")
	fs.Bool("verbose", false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Equal(t, "tree", cfg.Format)
	assert.Equal(t, 0, cfg.Parallelism)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("dialect: postgres\nparallelism: 4\n"), 0o644))
	chdir(t, dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, 4, cfg.Parallelism)
	// Unset keys keep their defaults.
	assert.Equal(t, "tree", cfg.Format)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadFindsFileUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileNameAlt), []byte("dialect: snowflake\n"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "snowflake", cfg.Dialect)
}

func TestLoadExplicitFileWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("dialect: postgres\n"), 0o644))
	other := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(other, []byte("dialect: snowflake\n"), 0o644))
	chdir(t, dir)

	cfg, err := Load(other, nil)
	require.NoError(t, err)
	assert.Equal(t, "snowflake", cfg.Dialect)
	assert.Equal(t, other, GetConfigFileUsed())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("dialect: postgres\n"), 0o644))
	chdir(t, dir)
	t.Setenv("SQLPARSE_DIALECT", "snowflake")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "snowflake", cfg.Dialect)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SQLPARSE_DIALECT", "postgres")

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--dialect", "snowflake", "--verbose"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "snowflake", cfg.Dialect)
	assert.True(t, cfg.Verbose)
}

func TestLoadUnchangedFlagsDoNotOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SQLPARSE_DIALECT", "postgres")

	// A flag at its default but never set on the command line must not
	// mask the environment value.
	fs := newFlagSet()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Dialect)
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(":\tnot yaml"), 0o644))
	chdir(t, dir)

	_, err := Load("", nil)
	require.Error(t, err)
}
