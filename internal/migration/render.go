package migration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
	"golang.org/x/sync/errgroup"
)

// Statement is the rendering of one expression.
type Statement struct {
	Kind expression.Kind
	// SQL is the in-band text: the SQL, or the compatibility message.
	SQL    string
	Parts  []string
	Compat *generator.CompatibilityError
}

// IsCompatibilityError reports whether the expression could not be rendered
// for the dialect in strict mode.
func (s Statement) IsCompatibilityError() bool { return s.Compat != nil }

// Executable returns the individual SQL statements, or nil for a
// compatibility error.
func (s Statement) Executable() []string {
	switch {
	case s.Compat != nil:
		return nil
	case len(s.Parts) > 0:
		return s.Parts
	default:
		return []string{s.SQL}
	}
}

// Script is a rendered migration.
type Script struct {
	File        string
	Version     int64
	Description string
	Direction   Direction
	Dialect     string
	Statements  []Statement
}

// CompatibilityErrors returns the compatibility errors in statement order.
func (s *Script) CompatibilityErrors() []*generator.CompatibilityError {
	var out []*generator.CompatibilityError
	for _, st := range s.Statements {
		if st.Compat != nil {
			out = append(out, st.Compat)
		}
	}
	return out
}

// SQL returns every executable statement in order.
func (s *Script) SQL() []string {
	var out []string
	for _, st := range s.Statements {
		out = append(out, st.Executable()...)
	}
	return out
}

// Renderer renders documents with one generator. Generators are immutable,
// so a Renderer is safe for concurrent use.
type Renderer struct {
	gen    *generator.Generator
	logger *slog.Logger
}

// NewRenderer creates a renderer. A nil logger discards output.
func NewRenderer(gen *generator.Generator, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{gen: gen, logger: logger.With(slog.String("dialect", gen.Name()))}
}

// Render renders doc in one direction with gen.
func Render(ctx context.Context, doc *Document, gen *generator.Generator, dir Direction) (*Script, error) {
	return NewRenderer(gen, nil).Render(ctx, doc, dir)
}

// Render renders doc in one direction. Loose-mode omissions are dropped;
// strict-mode compatibility errors are kept as statements.
func (r *Renderer) Render(ctx context.Context, doc *Document, dir Direction) (*Script, error) {
	exprs, err := doc.Expressions(dir)
	if err != nil {
		return nil, err
	}

	script := &Script{
		File:        doc.File,
		Version:     doc.Version,
		Description: doc.Description,
		Direction:   dir,
		Dialect:     r.gen.Name(),
		Statements:  make([]Statement, 0, len(exprs)),
	}
	for i, e := range exprs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := r.gen.Generate(e)
		if err != nil {
			return nil, fmt.Errorf("%s: %s step %d (%s): %w", doc.File, dir, i+1, e.Kind(), err)
		}
		if res.IsEmpty() {
			r.logger.Debug("operation omitted", slog.Int64("version", doc.Version), slog.String("kind", e.Kind().String()))
			continue
		}
		if res.Compat != nil {
			r.logger.Warn("compatibility error",
				slog.Int64("version", doc.Version),
				slog.String("kind", e.Kind().String()),
				slog.String("message", res.Compat.Message))
		}
		script.Statements = append(script.Statements, Statement{
			Kind:   e.Kind(),
			SQL:    res.String(),
			Parts:  res.Parts,
			Compat: res.Compat,
		})
	}
	return script, nil
}

// RenderAll renders documents concurrently and returns the scripts in input
// order. concurrency <= 0 means no limit. The first error cancels the rest.
func (r *Renderer) RenderAll(ctx context.Context, docs []*Document, dir Direction, concurrency int) ([]*Script, error) {
	scripts := make([]*Script, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, doc := range docs {
		g.Go(func() error {
			s, err := r.Render(ctx, doc, dir)
			if err != nil {
				return err
			}
			scripts[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if dir == Down {
		reverse(scripts)
	}
	return scripts, nil
}

func reverse(scripts []*Script) {
	for i, j := 0, len(scripts)-1; i < j; i, j = i+1, j-1 {
		scripts[i], scripts[j] = scripts[j], scripts[i]
	}
}
