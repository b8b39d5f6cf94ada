package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmigrate/pkg/core"
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/all" // register dialects
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("target", "", "")
	fs.String("dialect", "", "")
	fs.Bool("strict", false, "")
	fs.String("migrations-dir", "", "")
	fs.String("out", "", "")
	fs.String("direction", "", "")
	fs.String("format", "", "")
	fs.Int("concurrency", 0, "")
	fs.Bool("watch", false, "")
	fs.BoolP("verbose", "v", false, "")
	fs.StringP("output", "o", "", "")
	return fs
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "leapmigrate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader()
	l.WorkDir = dir

	cfg, err := l.Load("", "", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultCompatibility, cfg.Compatibility)
	assert.Equal(t, filepath.Join(dir, DefaultMigrationsDir), cfg.MigrationsDir)
	assert.Equal(t, DefaultDirection, cfg.Direction)
	assert.Equal(t, FormatSQL, cfg.Format)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Empty(t, cfg.OutDir)
	assert.Empty(t, l.FileUsed())
}

func TestLoadPrecedence(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
dialect: postgres
compatibility: strict
migrations_dir: db/migrations
out_dir: build/sql
format: goose
`)
	sub := filepath.Join(root, "services", "api")
	require.NoError(t, os.MkdirAll(sub, 0750))

	t.Run("file found upward", func(t *testing.T) {
		l := NewLoader()
		l.WorkDir = sub
		cfg, err := l.Load("", "", nil)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(root, "leapmigrate.yaml"), l.FileUsed())
		assert.Equal(t, root, cfg.ProjectRoot)
		assert.Equal(t, "postgres", cfg.Dialect)
		assert.Equal(t, "strict", cfg.Compatibility)
		assert.Equal(t, FormatGoose, cfg.Format)
		assert.Equal(t, filepath.Join(root, "db", "migrations"), cfg.MigrationsDir)
		assert.Equal(t, filepath.Join(root, "build", "sql"), cfg.OutDir)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("LEAPMIGRATE_DIALECT", "mysql8")
		l := NewLoader()
		l.WorkDir = sub
		cfg, err := l.Load("", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "mysql8", cfg.Dialect)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("LEAPMIGRATE_DIALECT", "mysql8")
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--dialect", "sqlite", "--strict=false", "--migrations-dir", "local", "--watch"}))

		l := NewLoader()
		l.WorkDir = sub
		cfg, err := l.Load("", "", flags)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Dialect)
		assert.Equal(t, "loose", cfg.Compatibility)
		assert.Equal(t, filepath.Join(sub, "local"), cfg.MigrationsDir)
		assert.Equal(t, filepath.Join(root, "build", "sql"), cfg.OutDir)
	})

	t.Run("unset flags do not override", func(t *testing.T) {
		l := NewLoader()
		l.WorkDir = sub
		cfg, err := l.Load("", "", newFlags())
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Dialect)
		assert.Equal(t, "strict", cfg.Compatibility)
	})
}

func TestLoadTarget(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `
dialect: generic
targets:
  warehouse:
    dialect: snowflake
    compatibility: strict
    out_dir: out/snowflake
`)

	t.Run("applied", func(t *testing.T) {
		l := NewLoader()
		l.WorkDir = t.TempDir()
		cfg, err := l.Load(path, "warehouse", nil)
		require.NoError(t, err)
		assert.Equal(t, "warehouse", cfg.Target)
		assert.Equal(t, "snowflake", cfg.Dialect)
		assert.Equal(t, "strict", cfg.Compatibility)
		assert.Equal(t, filepath.Join(root, "out", "snowflake"), cfg.OutDir)
	})

	t.Run("flags beat the target", func(t *testing.T) {
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--dialect", "duckdb"}))
		l := NewLoader()
		l.WorkDir = root
		cfg, err := l.Load("", "warehouse", flags)
		require.NoError(t, err)
		assert.Equal(t, "duckdb", cfg.Dialect)
		assert.Equal(t, "strict", cfg.Compatibility)
	})

	t.Run("unknown", func(t *testing.T) {
		l := NewLoader()
		l.WorkDir = root
		_, err := l.Load("", "lake", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown target "lake"`)
	})
}

func TestLoadInvalidFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "dialect: [unclosed\n")
	l := NewLoader()
	l.WorkDir = root
	_, err := l.Load("", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Dialect:       "postgres",
			Compatibility: "loose",
			MigrationsDir: "migrations",
			Direction:     "up",
			Format:        FormatSQL,
			OutputFormat:  "auto",
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		errs   []string
	}{
		{"valid", func(*Config) {}, nil},
		{"alias dialect", func(c *Config) { c.Dialect = "PG" }, nil},
		{"unknown dialect", func(c *Config) { c.Dialect = "oracle" }, []string{`unknown dialect "oracle"`, "Available dialects"}},
		{"empty dialect", func(c *Config) { c.Dialect = "" }, []string{"dialect is required"}},
		{"bad compatibility", func(c *Config) { c.Compatibility = "lenient" }, []string{`unknown compatibility mode "lenient"`}},
		{"bad direction", func(c *Config) { c.Direction = "sideways" }, []string{`invalid direction "sideways"`}},
		{"bad output", func(c *Config) { c.OutputFormat = "html" }, []string{`invalid output format "html"`}},
		{"bad format", func(c *Config) { c.Format = "flyway" }, []string{`invalid format "flyway"`}},
		{"negative concurrency", func(c *Config) { c.Concurrency = -1 }, []string{"concurrency must not be negative"}},
		{"bad target", func(c *Config) {
			c.Targets = map[string]TargetConfig{"prod": {Compatibility: "nope"}}
		}, []string{"target prod:"}},
		{"several problems", func(c *Config) {
			c.Direction = ""
			c.MigrationsDir = ""
		}, []string{"invalid direction", "migrations_dir is required"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if len(tt.errs) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			for _, want := range tt.errs {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestGenerator(t *testing.T) {
	cfg := Config{Dialect: "sqlite3", Compatibility: "strict"}
	g, err := cfg.Generator()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", g.Name())
	assert.Equal(t, core.Strict, g.CompatibilityMode())
}

func TestValidateDirectories(t *testing.T) {
	cfg := Config{MigrationsDir: filepath.Join(t.TempDir(), "missing")}
	err := cfg.ValidateDirectories()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hint:")

	cfg.MigrationsDir = t.TempDir()
	assert.NoError(t, cfg.ValidateDirectories())
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	assert.Same(t, logger, GetLogger(WithLogger(context.Background(), logger)))
}
