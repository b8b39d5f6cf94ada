package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/leapstack-labs/leapmigrate/internal/migration"
	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
)

// Validate checks every setting and reports all problems at once.
// Dialect names are checked against the registry, so dialects must be
// registered before loading.
func (c *Config) Validate() error {
	var errs []error
	if c.Dialect == "" {
		errs = append(errs, errors.New("dialect is required"))
	} else if _, err := generator.Resolve(c.Dialect); err != nil {
		errs = append(errs, err)
	}
	if _, err := core.ParseCompatibilityMode(c.Compatibility); err != nil {
		errs = append(errs, err)
	}
	if _, err := migration.ParseDirection(c.Direction); err != nil {
		errs = append(errs, err)
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if c.Format != FormatSQL && c.Format != FormatGoose {
		errs = append(errs, fmt.Errorf("invalid format %q (expected %s or %s)", c.Format, FormatSQL, FormatGoose))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	if c.MigrationsDir == "" {
		errs = append(errs, errors.New("migrations_dir is required"))
	}
	for name, t := range c.Targets {
		if t.Compatibility == "" {
			continue
		}
		if _, err := core.ParseCompatibilityMode(t.Compatibility); err != nil {
			errs = append(errs, fmt.Errorf("target %s: %w", name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Generator resolves the configured dialect in the configured compatibility mode.
func (c *Config) Generator() (*generator.Generator, error) {
	g, err := generator.Resolve(c.Dialect)
	if err != nil {
		return nil, err
	}
	mode, err := core.ParseCompatibilityMode(c.Compatibility)
	if err != nil {
		return nil, err
	}
	return g.WithMode(mode), nil
}

// ValidateDirectories checks that the migrations directory exists.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.MigrationsDir); os.IsNotExist(err) {
		return fmt.Errorf("migrations directory does not exist: %s\nHint: Create the directory or use --migrations-dir to specify a different path", c.MigrationsDir)
	}
	return nil
}
