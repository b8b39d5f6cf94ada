// Package config provides configuration management for the leapmigrate CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	Dialect       string `koanf:"dialect"`
	Compatibility string `koanf:"compatibility"`
	MigrationsDir string `koanf:"migrations_dir"`
	OutDir        string `koanf:"out_dir"`
	Direction     string `koanf:"direction"`
	Format        string `koanf:"format"`
	Concurrency   int    `koanf:"concurrency"`
	Verbose       bool   `koanf:"verbose"`
	OutputFormat  string `koanf:"output"`

	// Targets are named dialect profiles selected with --target.
	Targets map[string]TargetConfig `koanf:"targets"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
	// Target is the name of the applied target, if any.
	Target string `koanf:"-"`
}

// TargetConfig overrides generation settings for one deployment target.
type TargetConfig struct {
	Dialect       string `koanf:"dialect"`
	Compatibility string `koanf:"compatibility"`
	OutDir        string `koanf:"out_dir"`
}

// Export formats.
const (
	FormatSQL   = "sql"
	FormatGoose = "goose"
)

// Default configuration values.
const (
	DefaultDialect       = "generic"
	DefaultCompatibility = "loose"
	DefaultMigrationsDir = "migrations"
	DefaultDirection     = "up"
	DefaultFormat        = FormatSQL
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// ConfigFileNames are searched in order.
var ConfigFileNames = []string{"leapmigrate.yaml", "leapmigrate.yml"}
