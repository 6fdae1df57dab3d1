package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("database", "", "")
	fs.Int("port", 0, "")
	fs.String("currency", "", "")
	fs.String("output", "", "")
	fs.Bool("verbose", false, "")
	fs.Bool("watch", false, "")
	return fs
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultCurrency, cfg.Currency)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	// Default database path resolves against the project root.
	assert.True(t, filepath.IsAbs(cfg.DatabasePath))
}

func TestLoadConfig_FromFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	content := "port: 9100\ncurrency: \"$\"\ndatabase_path: data/tracker.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "expenses.yaml"), []byte(content), 0o600))
	chdir(t, dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "$", cfg.Currency)
	assert.Equal(t, filepath.Join(cfg.ProjectRoot, "data", "tracker.db"), cfg.DatabasePath)
	assert.Equal(t, filepath.Join(dir, "expenses.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_UpwardSearch(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "expenses.yml"), []byte("port: 9200\n"), 0o600))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	chdir(t, nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Port)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "expenses.yaml"), []byte("port: 9100\n"), 0o600))
	chdir(t, dir)
	t.Setenv("EXPENSES_PORT", "9300")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 9300, cfg.Port)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())
	t.Setenv("EXPENSES_CURRENCY", "€")

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--currency", "$", "--verbose"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, "$", cfg.Currency)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_DatabaseFlagMapsToDatabasePath(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--database", "my.db"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.DatabasePath))
	assert.Equal(t, "my.db", filepath.Base(cfg.DatabasePath))
}

func TestLoadConfig_MemoryDatabaseNotResolved(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--database", ":memory:"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DatabasePath)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())
	t.Setenv("EXPENSES_PORT", "99999")

	_, err := LoadConfig("", nil)
	assert.Error(t, err)
}

func TestLoadConfig_ExplicitConfigFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9400\n"), 0o600))
	chdir(t, t.TempDir())

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 9400, cfg.Port)
	assert.Equal(t, dir, cfg.ProjectRoot)
}
