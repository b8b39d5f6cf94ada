package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "LEAPMIGRATE_"

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// flagKeys maps flag names that differ from their config key.
var flagKeys = map[string]string{
	"out":    "out_dir",
	"strict": "compatibility",
}

// flagsIgnored are flags that select the configuration rather than set it.
var flagsIgnored = map[string]bool{
	"config": true,
	"target": true,
	"watch":  true,
	"help":   true,
}

// configIn returns the config file in dir, if any.
func configIn(dir string) string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a config file.
func findConfigUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if f := configIn(dir); f != "" {
			return f
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Loader loads layered configuration. The zero value is not usable; use NewLoader.
type Loader struct {
	k        *koanf.Koanf
	fileUsed string
	// WorkDir is where the config search starts. Empty means the process working directory.
	WorkDir string
}

// NewLoader creates a configuration loader.
func NewLoader() *Loader {
	return &Loader{k: koanf.New(".")}
}

// FileUsed returns the config file that was loaded, if any.
func (l *Loader) FileUsed() string { return l.fileUsed }

// Load reads configuration with precedence flags > env vars > config file > defaults,
// then applies the selected target.
func (l *Loader) Load(cfgFile, target string, flags *pflag.FlagSet) (*Config, error) {
	l.k = koanf.New(".")
	l.fileUsed = ""

	workDir := l.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = wd
	}

	// 1. Defaults
	if err := l.k.Load(confmap.Provider(map[string]any{
		"dialect":        DefaultDialect,
		"compatibility":  DefaultCompatibility,
		"migrations_dir": DefaultMigrationsDir,
		"direction":      DefaultDirection,
		"format":         DefaultFormat,
		"concurrency":    0,
		"verbose":        false,
		"output":         DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file: explicit path, else searched upward from the work dir
	projectRoot := workDir
	if cfgFile != "" {
		l.fileUsed = resolvePathRelativeTo(cfgFile, workDir)
	} else {
		l.fileUsed = findConfigUpward(workDir)
	}
	if l.fileUsed != "" {
		if err := l.k.Load(file.Provider(l.fileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", l.fileUsed, err)
		}
		projectRoot = filepath.Dir(l.fileUsed)
	}

	// 3. Environment: LEAPMIGRATE_MIGRATIONS_DIR -> migrations_dir
	if err := l.k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set. Paths given on the command line are
	// relative to the work dir, not the project root.
	flagPaths := map[string]string{}
	if flags != nil {
		if err := l.k.Load(posflag.ProviderWithFlag(flags, ".", l.k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || flagsIgnored[f.Name] {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				key = mapped
			}
			if f.Name == "strict" {
				if f.Value.String() == "true" {
					return key, "strict"
				}
				return key, "loose"
			}
			if key == "migrations_dir" || key == "out_dir" {
				flagPaths[key] = resolvePathRelativeTo(f.Value.String(), workDir)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ProjectRoot = projectRoot

	if target != "" {
		t, ok := cfg.Targets[target]
		if !ok {
			return nil, fmt.Errorf("unknown target %q\nHint: define it under targets: in %s", target, ConfigFileNames[0])
		}
		cfg.applyTarget(t, flags)
		cfg.Target = target
	}

	if p, ok := flagPaths["migrations_dir"]; ok {
		cfg.MigrationsDir = p
	} else {
		cfg.MigrationsDir = resolvePathRelativeTo(cfg.MigrationsDir, projectRoot)
	}
	if p, ok := flagPaths["out_dir"]; ok {
		cfg.OutDir = p
	} else {
		cfg.OutDir = resolvePathRelativeTo(cfg.OutDir, projectRoot)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyTarget overlays a target. Explicit flags still win.
func (c *Config) applyTarget(t TargetConfig, flags *pflag.FlagSet) {
	changed := func(name string) bool { return flags != nil && flags.Changed(name) }
	if t.Dialect != "" && !changed("dialect") {
		c.Dialect = t.Dialect
	}
	if t.Compatibility != "" && !changed("strict") {
		c.Compatibility = t.Compatibility
	}
	if t.OutDir != "" && !changed("out") {
		c.OutDir = t.OutDir
	}
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

type configKey struct{}

// WithConfig stores the loaded configuration in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the configuration stored by WithConfig, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(configKey{}).(*Config)
	return cfg
}
