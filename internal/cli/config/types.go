// Package config provides configuration management for the expense
// tracker CLI.
package config

// Default configuration values.
const (
	DefaultDatabaseFile = ".expenses/expenses.db"
	DefaultPort         = 8750
	DefaultCurrency     = "₹"
	DefaultOutput       = "table"
)

// Config holds the resolved configuration for a command invocation.
type Config struct {
	// DatabasePath is the SQLite database file.
	DatabasePath string `koanf:"database_path"`

	// Port is the web UI listen port.
	Port int `koanf:"port"`

	// SessionSecret signs the web UI's session cookies. Generated per
	// process when unset.
	SessionSecret string `koanf:"session_secret"`

	// Watch reloads web templates from disk on change (dev mode).
	Watch bool `koanf:"watch"`

	// Currency is the symbol shown next to amounts.
	Currency string `koanf:"currency"`

	// OutputFormat selects CLI rendering: table, json or csv.
	OutputFormat string `koanf:"output"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// ProjectRoot is the directory relative paths resolve against.
	ProjectRoot string `koanf:"-"`
}
