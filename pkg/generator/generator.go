// Package generator renders expressions into dialect SQL.
//
// A Generator is built once per dialect from a core.DialectConfig through the
// Builder: the baseline handler table is copied, capability handlers are wired
// from the config flags, and the dialect's sparse overrides are applied last.
// Built generators are immutable and safe for concurrent use.
package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/quote"
)

// Handler renders one expression kind.
type Handler func(g *Generator, e expression.Expression) (Result, error)

// IndexToken renders an optional keyword of CREATE INDEX, including its trailing space.
type IndexToken func(idx *expression.Index) string

// Result is the outcome of rendering one expression: either SQL text or a
// compatibility error. In loose mode an unsupported capability yields an
// empty Result.
type Result struct {
	SQL    string
	Compat *CompatibilityError
	// Parts holds the individual statements SQL was joined from.
	Parts []string
}

// IsCompatibilityError reports whether the result carries a compatibility error.
func (r Result) IsCompatibilityError() bool {
	return r.Compat != nil
}

// IsEmpty reports whether there is nothing to execute.
func (r Result) IsEmpty() bool {
	return r.Compat == nil && r.SQL == ""
}

// String returns the in-band form: the SQL, or the compatibility message.
func (r Result) String() string {
	if r.Compat != nil {
		return r.Compat.Message
	}
	return r.SQL
}

// Generator renders expressions for a single dialect.
type Generator struct {
	cfg          core.DialectConfig
	quoter       *quote.Quoter
	columns      *ColumnBuilder
	descriptions DescriptionGenerator
	templates    Templates
	handlers     map[expression.Kind]Handler
	features     map[expression.Feature]struct{}
	rejected     map[expression.Kind]struct{}
	uniqueToken  IndexToken
	clusterToken IndexToken
	fkName       func(*expression.ForeignKey) string
	mode         core.CompatibilityMode
}

// ---------- Accessors ----------

// Name returns the dialect name.
func (g *Generator) Name() string { return g.cfg.Name }

// Aliases returns the alternative names of the dialect.
func (g *Generator) Aliases() []string { return append([]string(nil), g.cfg.Aliases...) }

// Config returns a copy of the dialect configuration.
func (g *Generator) Config() core.DialectConfig { return g.cfg }

// Quoter returns the dialect quoter.
func (g *Generator) Quoter() *quote.Quoter { return g.quoter }

// Columns returns the column clause builder.
func (g *Generator) Columns() *ColumnBuilder { return g.columns }

// Descriptions returns the description generator.
func (g *Generator) Descriptions() DescriptionGenerator { return g.descriptions }

// Templates returns a copy of the statement templates.
func (g *Generator) Templates() Templates { return g.templates }

// Separator returns the statement separator.
func (g *Generator) Separator() string { return g.cfg.StatementSeparator() }

// CompatibilityMode returns the mode the generator was configured with.
func (g *Generator) CompatibilityMode() core.CompatibilityMode { return g.mode }

// WithMode returns a copy of the generator using mode.
func (g *Generator) WithMode(mode core.CompatibilityMode) *Generator {
	c := *g
	c.mode = mode
	return &c
}

// IsAdditionalFeatureSupported reports whether the dialect recognizes f.
func (g *Generator) IsAdditionalFeatureSupported(f expression.Feature) bool {
	_, ok := g.features[f]
	return ok
}

// SupportedFeatures returns the features the dialect recognizes (sorted).
func (g *Generator) SupportedFeatures() []expression.Feature {
	out := make([]expression.Feature, 0, len(g.features))
	for f := range g.features {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Supports reports whether the generator has a native handler for kind,
// as opposed to a compatibility fallback.
func (g *Generator) Supports(kind expression.Kind) bool {
	if _, ok := g.rejected[kind]; ok {
		return false
	}
	switch kind {
	case expression.KindCreateSchema, expression.KindAlterSchema, expression.KindDeleteSchema:
		return g.cfg.SupportsSchemas
	case expression.KindCreateSequence, expression.KindDeleteSequence:
		return g.cfg.SupportsSequences
	}
	_, ok := g.handlers[kind]
	return ok
}

// UniqueToken renders the uniqueness keyword of CREATE INDEX.
func (g *Generator) UniqueToken(idx *expression.Index) string { return g.uniqueToken(idx) }

// ClusterToken renders the clustering keyword of CREATE INDEX.
func (g *Generator) ClusterToken(idx *expression.Index) string { return g.clusterToken(idx) }

// ForeignKeyName returns the explicit name of fk, or the dialect's derived name.
func (g *Generator) ForeignKeyName(fk *expression.ForeignKey) string {
	if fk.Name != "" {
		return fk.Name
	}
	return g.fkName(fk)
}

// ---------- Generation ----------

// Generate validates e and renders it.
//
// Validation failures return *ValidationError, incomplete expressions return
// *UsageError, and system methods the dialect cannot express wrap
// ErrUnsupportedSystemMethod. Compatibility problems are not errors: in strict mode they come
// back in Result.Compat.
func (g *Generator) Generate(e expression.Expression) (Result, error) {
	if e == nil {
		return Result{}, fmt.Errorf("%s: nil expression", g.cfg.Name)
	}
	if errs := e.Validate(); len(errs) > 0 {
		return Result{}, &ValidationError{Kind: e.Kind(), Errors: errs}
	}
	if err := g.checkSystemMethods(e); err != nil {
		return Result{}, err
	}

	h, ok := g.handlers[e.Kind()]
	if !ok {
		return Result{}, fmt.Errorf("%s: no handler for %s", g.cfg.Name, e.Kind())
	}

	res, err := h(g, e)
	if err != nil {
		return Result{}, err
	}
	if res.Compat != nil {
		if res.Compat.Kind == expression.KindUnknown {
			res.Compat.Kind = e.Kind()
		}
		if res.Compat.Dialect == "" {
			res.Compat.Dialect = g.cfg.Name
		}
	}
	return res, nil
}

func (g *Generator) checkSystemMethods(e expression.Expression) error {
	for _, v := range values(e) {
		m, ok := v.(expression.SystemMethod)
		if !ok {
			continue
		}
		if _, ok := g.quoter.SystemMethod(m); !ok {
			return fmt.Errorf("%s: %w %q", g.cfg.Name, ErrUnsupportedSystemMethod, string(m))
		}
	}
	return nil
}

// values collects the literal values an expression renders: column defaults
// and data rows.
func values(e expression.Expression) []any {
	var out []any
	cols := func(cs ...*expression.Column) {
		for _, c := range cs {
			if c != nil && c.HasDefault() {
				out = append(out, c.Default)
			}
		}
	}
	rows := func(rs ...expression.Row) {
		for _, r := range rs {
			out = append(out, r.Values()...)
		}
	}
	switch e := e.(type) {
	case *expression.CreateTable:
		cols(e.Columns...)
	case *expression.CreateColumn:
		cols(e.Column)
	case *expression.AlterColumn:
		cols(e.Column)
	case *expression.InsertData:
		rows(e.Rows...)
	case *expression.UpdateData:
		rows(e.Set, e.Where)
	case *expression.DeleteData:
		rows(e.Rows...)
	}
	return out
}

// GenerateSQL renders e using the in-band contract: a compatibility error is
// returned as the SQL text itself.
func (g *Generator) GenerateSQL(e expression.Expression) (string, error) {
	res, err := g.Generate(e)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// GenerateAll renders a sequence of expressions, stopping at the first error.
func (g *Generator) GenerateAll(exprs []expression.Expression) ([]Result, error) {
	out := make([]Result, 0, len(exprs))
	for i, e := range exprs {
		res, err := g.Generate(e)
		if err != nil {
			return nil, fmt.Errorf("expression %d: %w", i+1, err)
		}
		out = append(out, res)
	}
	return out, nil
}

// HandleCompatibility applies the compatibility mode to an unsupported operation.
// Strict returns msg as a compatibility error; loose renders nothing.
func (g *Generator) HandleCompatibility(msg string) Result {
	if g.mode == core.Strict {
		return Result{Compat: &CompatibilityError{Dialect: g.cfg.Name, Message: msg}}
	}
	return Result{}
}

// UnsupportedFeaturesMessage is the prefix of the strict-mode feature error.
const UnsupportedFeaturesMessage = "The following database specific additional features are not supported in strict mode"

// CheckFeatures verifies every feature in the bags against the dialect.
// It returns ok=false with a compatibility result only in strict mode when at
// least one feature is not recognized; loose mode ignores unknown features.
func (g *Generator) CheckFeatures(bags ...expression.Features) (Result, bool) {
	if g.mode != core.Strict {
		return Result{}, true
	}

	seen := make(map[expression.Feature]struct{})
	var unsupported []string
	for _, bag := range bags {
		for _, f := range bag.Keys() {
			if g.IsAdditionalFeatureSupported(f) {
				continue
			}
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			unsupported = append(unsupported, string(f))
		}
	}
	if len(unsupported) == 0 {
		return Result{}, true
	}
	sort.Strings(unsupported)
	return g.HandleCompatibility(fmt.Sprintf("%s [%s]", UnsupportedFeaturesMessage, strings.Join(unsupported, ", "))), false
}

// Statements joins the non-empty statements with the dialect separator.
func (g *Generator) Statements(stmts ...string) Result {
	kept := make([]string, 0, len(stmts))
	for _, s := range stmts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return Result{SQL: strings.Join(kept, g.Separator()), Parts: kept}
}

// As narrows an expression to its concrete type inside a handler.
func As[T expression.Expression](e expression.Expression) (T, error) {
	t, ok := e.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s handler received %T", e.Kind(), e)
	}
	return t, nil
}
