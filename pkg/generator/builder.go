package generator

import (
	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/quote"
)

// Builder provides a fluent API for constructing generators.
//
// Later calls win: a dialect version can start from its predecessor's builder
// and replace individual pieces.
type Builder struct {
	config       *core.DialectConfig
	templates    Templates
	overrides    map[expression.Kind]Handler
	rejected     map[expression.Kind]struct{}
	quoter       *quote.Quoter
	types        *TypeMap
	descriptions DescriptionFactory
	features     map[expression.Feature]struct{}
	clauses      []ColumnClause
	uniqueToken  IndexToken
	clusterToken IndexToken
	fkName       func(*expression.ForeignKey) string
	mode         core.CompatibilityMode
}

// New creates a generator builder from a DialectConfig.
// Capability handlers are auto-wired from the config flags when Build() is called.
func New(cfg *core.DialectConfig) *Builder {
	return &Builder{
		config:    cfg,
		templates: DefaultTemplates(),
		overrides: make(map[expression.Kind]Handler),
		rejected:  make(map[expression.Kind]struct{}),
		features:  make(map[expression.Feature]struct{}),
	}
}

// Templates edits the statement templates.
func (b *Builder) Templates(edit func(t *Templates)) *Builder {
	edit(&b.templates)
	return b
}

// Handle overrides the handler of one expression kind.
func (b *Builder) Handle(kind expression.Kind, h Handler) *Builder {
	b.overrides[kind] = h
	delete(b.rejected, kind)
	return b
}

// Reject marks kinds the dialect cannot express. They report msg through the
// compatibility mode and Supports returns false for them.
func (b *Builder) Reject(msg string, kinds ...expression.Kind) *Builder {
	for _, k := range kinds {
		b.overrides[k] = Unsupported(msg)
		b.rejected[k] = struct{}{}
	}
	return b
}

// Quoter replaces the quoter built from the config.
func (b *Builder) Quoter(q *quote.Quoter) *Builder {
	b.quoter = q
	return b
}

// Types sets the type map. The default is DefaultTypeMap.
func (b *Builder) Types(m *TypeMap) *Builder {
	b.types = m
	return b
}

// Descriptions sets the description generator used when the config enables descriptions.
func (b *Builder) Descriptions(f DescriptionFactory) *Builder {
	b.descriptions = f
	return b
}

// Features declares additional features the dialect recognizes.
func (b *Builder) Features(fs ...expression.Feature) *Builder {
	for _, f := range fs {
		b.features[f] = struct{}{}
	}
	return b
}

// ColumnClauses replaces the column clause sequence.
func (b *Builder) ColumnClauses(cs ...ColumnClause) *Builder {
	b.clauses = cs
	return b
}

// IndexTokens sets the uniqueness and clustering hooks of CREATE INDEX.
// A nil hook keeps the default.
func (b *Builder) IndexTokens(unique, clustered IndexToken) *Builder {
	if unique != nil {
		b.uniqueToken = unique
	}
	if clustered != nil {
		b.clusterToken = clustered
	}
	return b
}

// ForeignKeyNames sets the derived-name function for unnamed foreign keys.
func (b *Builder) ForeignKeyNames(fn func(*expression.ForeignKey) string) *Builder {
	b.fkName = fn
	return b
}

// Mode sets the compatibility mode of the built generator.
func (b *Builder) Mode(m core.CompatibilityMode) *Builder {
	b.mode = m
	return b
}

// Build returns the constructed generator.
func (b *Builder) Build() *Generator {
	cfg := *b.config
	cfg.Aliases = append([]string(nil), b.config.Aliases...)

	g := &Generator{
		cfg:          cfg,
		templates:    b.templates,
		handlers:     baseline(),
		features:     make(map[expression.Feature]struct{}, len(b.features)),
		rejected:     make(map[expression.Kind]struct{}, len(b.rejected)),
		uniqueToken:  b.uniqueToken,
		clusterToken: b.clusterToken,
		fkName:       b.fkName,
		mode:         b.mode,
	}
	for f := range b.features {
		g.features[f] = struct{}{}
	}
	for k := range b.rejected {
		g.rejected[k] = struct{}{}
	}

	g.quoter = b.quoter
	if g.quoter == nil {
		g.quoter = quote.New(cfg.Identifiers, cfg.Values)
	}
	if g.uniqueToken == nil {
		g.uniqueToken = defaultUniqueToken
	}
	if g.clusterToken == nil {
		g.clusterToken = func(*expression.Index) string { return "" }
	}
	if g.fkName == nil {
		g.fkName = expression.DefaultForeignKeyName
	}

	types := b.types
	if types == nil {
		types = DefaultTypeMap()
	}
	g.columns = NewColumnBuilder(g.quoter, types)
	if b.clauses != nil {
		g.columns.clauses = append([]ColumnClause(nil), b.clauses...)
	}
	g.columns.fkName = g.fkName
	g.columns.supports = g.IsAdditionalFeatureSupported

	// ===== Auto-wire capabilities from config =====
	g.descriptions = NoopDescriptions{}
	if cfg.SupportsDescriptions {
		factory := b.descriptions
		if factory == nil {
			factory = CommentOnDescriptions
		}
		g.descriptions = factory(g.quoter)
	}
	if cfg.SupportsSchemas {
		g.handlers[expression.KindCreateSchema] = HandleCreateSchema
		g.handlers[expression.KindAlterSchema] = HandleAlterSchema
		g.handlers[expression.KindDeleteSchema] = HandleDeleteSchema
	}
	if cfg.SupportsSequences {
		g.handlers[expression.KindCreateSequence] = HandleCreateSequence
		g.handlers[expression.KindDeleteSequence] = HandleDeleteSequence
	}

	// ===== Sparse overrides =====
	for kind, h := range b.overrides {
		g.handlers[kind] = h
	}

	return g
}

func defaultUniqueToken(idx *expression.Index) string {
	if idx.IsUnique {
		return "UNIQUE "
	}
	return ""
}
