package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/leapmigrate/internal/cli/config"
)

// generateConfigDocs generates the leapmigrate.yaml reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "project" or "target"
}

// configSchema returns the configuration keys. It mirrors config.Config and
// config.TargetConfig.
func configSchema() []ConfigField {
	return []ConfigField{
		{Name: "dialect", Type: "string", Default: config.DefaultDialect, Description: "Target SQL dialect or alias", Category: "project"},
		{Name: "compatibility", Type: "string", Default: config.DefaultCompatibility, Description: "loose skips unsupported operations, strict reports them", Category: "project"},
		{Name: "migrations_dir", Type: "string", Default: config.DefaultMigrationsDir, Description: "Directory holding migration documents", Category: "project"},
		{Name: "out_dir", Type: "string", Description: "Write generated scripts here instead of printing them", Category: "project"},
		{Name: "direction", Type: "string", Default: config.DefaultDirection, Description: "Generate up or down scripts", Category: "project"},
		{Name: "format", Type: "string", Default: config.DefaultFormat, Description: "Export format: sql or goose", Category: "project"},
		{Name: "concurrency", Type: "int", Default: strconv.Itoa(0), Description: "Documents rendered in parallel (0 means one per CPU)", Category: "project"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Log debug output to stderr", Category: "project"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: auto, text, markdown, json", Category: "project"},

		{Name: "dialect", Type: "string", Description: "Dialect used when the target is selected", Category: "target"},
		{Name: "compatibility", Type: "string", Description: "Compatibility mode for the target", Category: "target"},
		{Name: "out_dir", Type: "string", Description: "Output directory for the target", Category: "target"},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return InlineCode(s)
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "LeapMigrate configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("LeapMigrate reads %s from the working directory or the nearest parent directory. "+
		"Relative paths in the file are resolved against the directory that contains it.", InlineCode(config.ConfigFileNames[0])))

	fields := configSchema()

	w.Header(2, "Project Settings")
	var projectRows [][]string
	for _, f := range fields {
		if f.Category == "project" {
			projectRows = append(projectRows, []string{InlineCode(f.Name), f.Type, orDash(f.Default), f.Description})
		}
	}
	w.Table([]string{"Field", "Type", "Default", "Description"}, projectRows)

	w.Header(2, "Targets")
	w.Paragraph("Targets are named profiles under the `targets` key, selected with `--target`. " +
		"A target overrides the project settings below, and explicit flags override the target.")
	var targetRows [][]string
	for _, f := range fields {
		if f.Category == "target" {
			targetRows = append(targetRows, []string{InlineCode(f.Name), f.Type, f.Description})
		}
	}
	w.Table([]string{"Field", "Type", "Description"}, targetRows)

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# leapmigrate.yaml
dialect: postgres
compatibility: loose
migrations_dir: migrations
out_dir: build/sql

targets:
  app:
    dialect: sqlite
    compatibility: strict
    out_dir: build/sqlite
  warehouse:
    dialect: snowflake`)

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Command-line flags",
		fmt.Sprintf("Environment variables (%s prefix)", InlineCode(config.EnvPrefix)),
		"The selected target",
		"The config file",
		"Built-in defaults",
	})

	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
