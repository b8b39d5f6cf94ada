package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapmigrate/internal/cli/config"
	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new LeapMigrate project",
		Long: `Initialize a new LeapMigrate project with a configuration file and an
empty migrations directory.

This creates:
  - leapmigrate.yaml configuration file
  - migrations/ directory for migration documents

Use --example to add sample migrations (tables, a foreign key, an index,
seed rows and a column change) and targets for SQLite and SQL Server.`,
		Example: `  # Initialize in current directory
  leapmigrate init

  # Initialize a new directory with sample migrations
  leapmigrate init my-project --example

  # Force overwrite existing config
  leapmigrate init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			mode := output.ModeAuto
			if cfg := config.FromContext(cmd.Context()); cfg != nil {
				m, err := output.ParseMode(cfg.OutputFormat)
				if err != nil {
					return err
				}
				mode = m
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			template := "minimal"
			if example {
				template = "example"
			}
			return runInit(r, dir, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Add sample migrations and targets")

	return cmd
}

func runInit(r *output.Renderer, dir, template string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileNames[0])
	}

	written, err := copyTemplate(template, dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}
	cfgFiles, migrations := groupTemplateFiles(written)

	r.Header(2, "Configuration")
	for _, f := range cfgFiles {
		r.StatusLine(f, "success", "")
	}
	if len(migrations) > 0 {
		r.Println("")
		r.Header(2, "Migrations")
		for _, f := range migrations {
			r.StatusLine(f, "success", "")
		}
	}

	r.Println("")
	r.Success("LeapMigrate project initialized!")
	r.Println("")
	r.Println("Next steps:")
	if template == "example" {
		r.Println("  leapmigrate validate                Check the sample migrations")
		r.Println("  leapmigrate generate                Print PostgreSQL scripts")
		r.Println("  leapmigrate generate -t app --out build/sqlite")
		r.Println("                                      Write SQLite scripts")
		return nil
	}
	r.Println("  1. Add migration documents to migrations/")
	r.Println("  2. Run 'leapmigrate validate' to check them")
	r.Println("  3. Run 'leapmigrate generate' to produce SQL")
	return nil
}
