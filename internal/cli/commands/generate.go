package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/leapmigrate/internal/cli/config"
	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/leapstack-labs/leapmigrate/internal/migration"
	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/spf13/cobra"
)

// watchDebounce collapses bursts of editor writes into one regeneration.
const watchDebounce = 100 * time.Millisecond

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Generate dialect SQL from migration documents",
		Long: `Generate SQL for the configured dialect from migration documents.

Paths may be files or directories; with no paths the configured migrations
directory is used. Without --out the SQL is printed:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

With --out one file per migration is written, as plain SQL or goose files.`,
		Example: `  # Print the up SQL for PostgreSQL
  leapmigrate generate --dialect postgres

  # Fail on operations SQLite cannot express
  leapmigrate generate --dialect sqlite --strict

  # Write goose migrations for a configured target
  leapmigrate generate --target warehouse --format goose --out build/sql

  # Regenerate whenever a migration changes
  leapmigrate generate --out build/sql --watch`,
		Aliases: []string{"gen"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, watch)
		},
	}

	cmd.Flags().String("direction", config.DefaultDirection, "Direction to generate: up or down")
	cmd.Flags().String("out", "", "Write one file per migration into this directory")
	cmd.Flags().String("format", config.DefaultFormat, "File format with --out: sql or goose")
	cmd.Flags().Int("concurrency", 0, "Migrations rendered in parallel (0 = unlimited)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Regenerate when migration files change")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, watch bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	paths, err := pathsOrDefault(cmdCtx.Cfg, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if !watch {
		return generate(ctx, cmdCtx, paths)
	}
	return watchAndGenerate(ctx, cmdCtx, paths)
}

// generated is one migration's rendering. Down is nil when it was not
// requested or cannot be derived.
type generated struct {
	doc  *migration.Document
	up   *migration.Script
	down *migration.Script
}

// primary returns the script for the requested direction.
func (g generated) primary(dir migration.Direction) *migration.Script {
	if dir == migration.Down {
		return g.down
	}
	return g.up
}

func generate(ctx context.Context, cmdCtx *CommandContext, paths []string) error {
	cfg := cmdCtx.Cfg
	gen, err := cfg.Generator()
	if err != nil {
		return err
	}
	dir, err := migration.ParseDirection(cfg.Direction)
	if err != nil {
		return err
	}
	// A goose file holds both directions and is keyed by its up script.
	if cfg.Format == config.FormatGoose {
		dir = migration.Up
	}

	docs, err := migration.NewLoader(cmdCtx.Logger).LoadPaths(paths)
	if err != nil {
		return err
	}
	if err := migration.ValidateAll(docs); err != nil {
		return err
	}

	results, err := renderDocuments(ctx, cmdCtx, migration.NewRenderer(gen, cmdCtx.Logger), docs, dir)
	if err != nil {
		return err
	}

	if cfg.OutDir != "" {
		if err := writeFiles(cmdCtx, results, dir); err != nil {
			return err
		}
	} else if err := printScripts(cmdCtx.Renderer, results, dir, cfg.Format); err != nil {
		return err
	}

	compat := 0
	for _, res := range results {
		for _, s := range []*migration.Script{res.up, res.down} {
			if s != nil {
				compat += len(s.CompatibilityErrors())
			}
		}
	}
	if compat > 0 && gen.CompatibilityMode() == core.Strict {
		return fmt.Errorf("%d operation(s) not supported by %s in strict mode\nHint: drop --strict to skip unsupported operations", compat, gen.Name())
	}
	return nil
}

// renderDocuments renders docs in dir. For goose files the down scripts are
// rendered as well, and migrations that cannot be reversed are exported
// without a down section.
func renderDocuments(ctx context.Context, cmdCtx *CommandContext, r *migration.Renderer, docs []*migration.Document, dir migration.Direction) ([]generated, error) {
	cfg := cmdCtx.Cfg
	results := make([]generated, len(docs))
	for i, doc := range docs {
		results[i].doc = doc
	}

	goose := cfg.Format == config.FormatGoose
	if dir == migration.Up {
		ups, err := r.RenderAll(ctx, docs, migration.Up, cfg.Concurrency)
		if err != nil {
			return nil, err
		}
		for i, s := range ups {
			results[i].up = s
		}
	}

	if dir == migration.Down {
		downs, err := r.RenderAll(ctx, docs, migration.Down, cfg.Concurrency)
		if err != nil {
			return nil, err
		}
		// RenderAll returns down scripts newest first; that is also the
		// order they are shown in.
		out := make([]generated, len(downs))
		for i, s := range downs {
			out[i] = generated{doc: results[len(results)-1-i].doc, down: s}
		}
		return out, nil
	}

	if goose {
		for i, doc := range docs {
			s, err := r.Render(ctx, doc, migration.Down)
			if errors.Is(err, expression.ErrIrreversible) {
				cmdCtx.Logger.Warn("exporting without down section", "file", doc.File, "error", err)
				continue
			}
			if err != nil {
				return nil, err
			}
			results[i].down = s
		}
	}
	return results, nil
}

// writeFiles writes one file per migration into the output directory.
func writeFiles(cmdCtx *CommandContext, results []generated, dir migration.Direction) error {
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	if err := os.MkdirAll(cfg.OutDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, res := range results {
		var buf bytes.Buffer
		var name string
		script := res.primary(dir)
		if cfg.Format == config.FormatGoose {
			name = migration.GooseFileName(res.doc)
			if err := migration.WriteGoose(&buf, res.up, res.down); err != nil {
				return err
			}
		} else {
			name = migration.FileName(res.doc, dir)
			if err := migration.WriteSQL(&buf, script); err != nil {
				return err
			}
		}

		path := filepath.Join(cfg.OutDir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		cmdCtx.Logger.Debug("wrote migration", "path", path)

		status := "success"
		if len(script.CompatibilityErrors()) > 0 {
			status = "failed"
		}
		r.StatusLine(name, status, fmt.Sprintf("%d statement(s)", len(script.SQL())))
	}
	return nil
}

type statementJSON struct {
	Kind                 string   `json:"kind"`
	SQL                  []string `json:"sql,omitempty"`
	CompatibilityMessage string   `json:"compatibility_error,omitempty"`
}

type scriptJSON struct {
	Version     int64           `json:"version"`
	Description string          `json:"description,omitempty"`
	File        string          `json:"file"`
	Dialect     string          `json:"dialect"`
	Direction   string          `json:"direction"`
	Statements  []statementJSON `json:"statements"`
}

func toScriptJSON(s *migration.Script) scriptJSON {
	out := scriptJSON{
		Version:     s.Version,
		Description: s.Description,
		File:        s.File,
		Dialect:     s.Dialect,
		Direction:   string(s.Direction),
		Statements:  make([]statementJSON, 0, len(s.Statements)),
	}
	for _, st := range s.Statements {
		sj := statementJSON{Kind: st.Kind.String(), SQL: st.Executable()}
		if st.Compat != nil {
			sj.CompatibilityMessage = st.Compat.Message
		}
		out.Statements = append(out.Statements, sj)
	}
	return out
}

// printScripts writes the rendered scripts to stdout in the effective mode.
func printScripts(r *output.Renderer, results []generated, dir migration.Direction, format string) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		scripts := make([]scriptJSON, 0, len(results))
		for _, res := range results {
			scripts = append(scripts, toScriptJSON(res.primary(dir)))
		}
		return r.JSON(scripts)

	case output.ModeMarkdown:
		for _, res := range results {
			var buf bytes.Buffer
			var err error
			if format == config.FormatGoose {
				err = migration.WriteGoose(&buf, res.up, res.down)
			} else {
				err = migration.WriteSQL(&buf, res.primary(dir))
			}
			if err != nil {
				return err
			}
			r.Println(output.FormatHeader(2, scriptTitle(res.doc)))
			r.Println(output.FormatKeyValue("File", res.doc.File))
			r.Println("")
			r.Println(output.FormatCodeBlock("sql", buf.String()))
		}
		return nil

	default:
		styles := r.Styles()
		for _, res := range results {
			r.Header(2, scriptTitle(res.doc))
			r.Println(styles.Muted.Render(res.doc.File))
			printStatements(r, res.primary(dir))
			if format == config.FormatGoose && res.down != nil {
				r.Println(styles.Bold.Render("down:"))
				printStatements(r, res.down)
			}
			r.Println("")
		}
		return nil
	}
}

func printStatements(r *output.Renderer, s *migration.Script) {
	styles := r.Styles()
	for _, st := range s.Statements {
		if st.Compat != nil {
			r.Println(styles.Error.Render(fmt.Sprintf("-- %s: %s", st.Kind, st.Compat.Message)))
			continue
		}
		for _, sql := range st.Executable() {
			r.Println(strings.TrimSuffix(sql, ";") + ";")
		}
	}
}

func scriptTitle(doc *migration.Document) string {
	if doc.Description == "" {
		return fmt.Sprintf("%d", doc.Version)
	}
	return fmt.Sprintf("%d: %s", doc.Version, doc.Description)
}

// watchAndGenerate generates once, then again whenever a migration file in
// one of the watched directories changes, until ctx is canceled. Errors after
// the first run are reported without stopping the watch.
func watchAndGenerate(ctx context.Context, cmdCtx *CommandContext, paths []string) error {
	r := cmdCtx.Renderer
	regenerate := func() {
		if err := generate(ctx, cmdCtx, paths); err != nil {
			r.Error(err.Error())
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, p := range paths {
		dir := p
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			dir = filepath.Dir(p)
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	regenerate()
	cmdCtx.Logger.Info("watching for changes", "paths", paths)

	trigger := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !migration.IsMigrationFile(event.Name) {
				continue
			}
			cmdCtx.Logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case <-trigger:
			regenerate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watcher error", "error", err)
		}
	}
}
