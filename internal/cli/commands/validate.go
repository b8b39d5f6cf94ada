package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/leapstack-labs/leapmigrate/internal/migration"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Check migration documents without generating SQL",
		Long: `Decode and validate every migration document and report all problems
with their file and line. Migrations without a down section whose up steps
cannot be reversed are reported as warnings.

Exits non-zero when any problem is found.`,
		Example: `  # Validate the configured migrations directory
  leapmigrate validate

  # Validate one file, as JSON
  leapmigrate validate migrations/00003_orders.yaml -o json`,
		RunE: runValidate,
	}
}

// FileReport is the validation result of one migration file.
type FileReport struct {
	File     string   `json:"file"`
	Version  int64    `json:"version,omitempty"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateOutput is the JSON output of the validate command.
type ValidateOutput struct {
	Valid bool         `json:"valid"`
	Files []FileReport `json:"files"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	paths, err := pathsOrDefault(cmdCtx.Cfg, args)
	if err != nil {
		return err
	}

	loader := migration.NewLoader(cmdCtx.Logger)
	files, err := loader.Files(paths)
	if err != nil {
		return err
	}

	result := ValidateOutput{Valid: true, Files: make([]FileReport, 0, len(files))}
	versions := make(map[int64]string)
	problems := 0
	for _, f := range files {
		report := validateFile(loader, f, versions)
		if len(report.Errors) > 0 {
			result.Valid = false
			problems += len(report.Errors)
		}
		result.Files = append(result.Files, report)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(result); err != nil {
			return err
		}
	case output.ModeMarkdown:
		validateMarkdown(r, result)
	default:
		validateText(r, result)
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found in migrations", problems)
	}
	return nil
}

// validateFile decodes and checks one file. versions maps already seen
// versions to their file.
func validateFile(loader *migration.Loader, file string, versions map[int64]string) FileReport {
	report := FileReport{File: file, Errors: []string{}, Warnings: []string{}}

	doc, err := loader.LoadFile(file)
	if err != nil {
		var decodeErrs migration.DecodeErrors
		if errors.As(err, &decodeErrs) {
			for _, e := range decodeErrs {
				report.Errors = append(report.Errors, e.Error())
			}
		} else {
			report.Errors = append(report.Errors, err.Error())
		}
		return report
	}

	report.Version = doc.Version
	if other, ok := versions[doc.Version]; ok {
		report.Errors = append(report.Errors, (&migration.DuplicateVersionError{
			Version: doc.Version,
			Files:   []string{other, file},
		}).Error())
	} else {
		versions[doc.Version] = file
	}

	for _, e := range doc.Validate() {
		report.Errors = append(report.Errors, e.Error())
	}
	if len(report.Errors) == 0 && !doc.HasExplicitDown() {
		if _, err := doc.Expressions(migration.Down); err != nil {
			report.Warnings = append(report.Warnings, firstLine(err.Error()))
		}
	}
	return report
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func validateText(r *output.Renderer, result ValidateOutput) {
	styles := r.Styles()
	r.Header(1, fmt.Sprintf("Migrations (%d files)", len(result.Files)))
	for _, f := range result.Files {
		status := "success"
		if len(f.Errors) > 0 {
			status = "failed"
		}
		r.StatusLine(filepath.Base(f.File), status, "")
		for _, e := range f.Errors {
			r.Println("  " + styles.Error.Render(e))
		}
		for _, w := range f.Warnings {
			r.Println("  " + styles.Warning.Render(w))
		}
	}
	if result.Valid {
		r.Success("All migrations are valid")
	}
}

func validateMarkdown(r *output.Renderer, result ValidateOutput) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Migrations (%d files)", len(result.Files))))
	r.Println("")
	for _, f := range result.Files {
		r.Println(output.FormatHeader(2, filepath.Base(f.File)))
		status := "valid"
		if len(f.Errors) > 0 {
			status = "invalid"
		}
		r.Println(output.FormatKeyValue("Status", status))
		for _, e := range f.Errors {
			r.Println(output.FormatKeyValue("Error", e))
		}
		for _, w := range f.Warnings {
			r.Println(output.FormatKeyValue("Warning", w))
		}
		r.Println("")
	}
}
