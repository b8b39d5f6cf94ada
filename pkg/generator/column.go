package generator

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/quote"
)

// ColumnClause renders one fragment of a column definition.
// An empty fragment is skipped. inlinePK is true when the column carries the
// table's only, unnamed primary key.
type ColumnClause func(b *ColumnBuilder, col *expression.Column, inlinePK bool) (string, error)

// ColumnBuilder renders column definitions from an ordered clause sequence.
type ColumnBuilder struct {
	quoter   *quote.Quoter
	types    *TypeMap
	clauses  []ColumnClause
	fkName   func(*expression.ForeignKey) string
	supports func(expression.Feature) bool
}

// DefaultColumnClauses returns the baseline clause sequence:
// name, type, collation, identity, nullability, default, primary key, unique.
func DefaultColumnClauses() []ColumnClause {
	return []ColumnClause{
		ClauseName,
		ClauseType,
		ClauseCollation,
		ClauseIdentity,
		ClauseNullable,
		ClauseDefault,
		ClausePrimaryKey,
		ClauseUnique,
	}
}

// NewColumnBuilder creates a builder with the default clauses.
func NewColumnBuilder(q *quote.Quoter, types *TypeMap) *ColumnBuilder {
	return &ColumnBuilder{
		quoter:   q,
		types:    types,
		clauses:  DefaultColumnClauses(),
		fkName:   expression.DefaultForeignKeyName,
		supports: func(expression.Feature) bool { return false },
	}
}

// WithClauses returns a copy of the builder rendering the given clause sequence.
// Dialects use it for statements that accept only part of a definition.
func (b *ColumnBuilder) WithClauses(cs ...ColumnClause) *ColumnBuilder {
	c := *b
	c.clauses = append([]ColumnClause(nil), cs...)
	return &c
}

// Quoter returns the quoter used by the builder.
func (b *ColumnBuilder) Quoter() *quote.Quoter { return b.quoter }

// Types returns the type map used by the builder.
func (b *ColumnBuilder) Types() *TypeMap { return b.types }

// Supports reports whether the dialect recognizes f.
func (b *ColumnBuilder) Supports(f expression.Feature) bool { return b.supports(f) }

// Generate renders a single column definition, with an inline primary key
// when the column is flagged as one.
func (b *ColumnBuilder) Generate(col *expression.Column) (string, error) {
	return b.generate(col, col.IsPrimaryKey)
}

func (b *ColumnBuilder) generate(col *expression.Column, inlinePK bool) (string, error) {
	parts := make([]string, 0, len(b.clauses))
	for _, clause := range b.clauses {
		frag, err := clause(b, col, inlinePK)
		if err != nil {
			return "", err
		}
		if frag != "" {
			parts = append(parts, frag)
		}
	}
	return strings.Join(parts, " "), nil
}

// GenerateList renders the body of CREATE TABLE.
//
// A single unnamed primary key column is declared inline. Composite or named
// primary keys are appended as a separate PRIMARY KEY clause. Inline foreign
// keys follow, owned by table.
func (b *ColumnBuilder) GenerateList(cols []*expression.Column, table, schema string) (string, error) {
	var pkCols []string
	var pkName string
	for _, c := range cols {
		if c.IsPrimaryKey {
			pkCols = append(pkCols, c.Name)
			if pkName == "" {
				pkName = c.PrimaryKeyName
			}
		}
	}
	separatePK := len(pkCols) > 1 || pkName != ""

	parts := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		def, err := b.generate(c, c.IsPrimaryKey && !separatePK)
		if err != nil {
			return "", fmt.Errorf("column %s: %w", c.Name, err)
		}
		parts = append(parts, def)
	}

	if separatePK {
		pk := "PRIMARY KEY (" + b.quoter.QuoteColumnNames(pkCols) + ")"
		if pkName != "" {
			pk = "CONSTRAINT " + b.quoter.Quote(pkName) + " " + pk
		}
		parts = append(parts, pk)
	}

	for _, c := range cols {
		if c.ForeignKey == nil {
			continue
		}
		parts = append(parts, b.FormatForeignKey(c.InlineForeignKey(table, schema), b.fkName))
	}

	return strings.Join(parts, ", "), nil
}

// FormatForeignKey renders CONSTRAINT .. FOREIGN KEY .. REFERENCES. nameFn
// supplies the name when fk has none; nil uses expression.DefaultForeignKeyName.
func (b *ColumnBuilder) FormatForeignKey(fk *expression.ForeignKey, nameFn func(*expression.ForeignKey) string) string {
	name := fk.Name
	if name == "" {
		if nameFn == nil {
			nameFn = expression.DefaultForeignKeyName
		}
		name = nameFn(fk)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		b.quoter.Quote(name),
		b.quoter.QuoteColumnNames(fk.ForeignColumns),
		b.quoter.QuoteTableName(fk.PrimaryTable, fk.PrimaryTableSchema),
		b.quoter.QuoteColumnNames(fk.PrimaryColumns))
	if rule := fk.OnDelete.SQL(); rule != "" {
		sb.WriteString(" ON DELETE " + rule)
	}
	if rule := fk.OnUpdate.SQL(); rule != "" {
		sb.WriteString(" ON UPDATE " + rule)
	}
	return sb.String()
}

// Type renders the column type: CustomType verbatim, else the type map entry.
func (b *ColumnBuilder) Type(col *expression.Column) (string, error) {
	if col.CustomType != "" {
		return col.CustomType, nil
	}
	return b.types.Lookup(col.Type, col.Size, col.Precision)
}

// ---------- Clauses ----------

// ClauseName renders the quoted column name.
func ClauseName(b *ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	return b.quoter.QuoteColumnName(col.Name), nil
}

// ClauseType renders the column type.
func ClauseType(b *ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	return b.Type(col)
}

// ClauseCollation renders COLLATE when the dialect supports column collation.
func ClauseCollation(b *ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	collation := col.Features.String(expression.FeatureColumnCollation)
	if collation == "" || !b.Supports(expression.FeatureColumnCollation) {
		return "", nil
	}
	return "COLLATE " + collation, nil
}

// ClauseIdentity renders the standard GENERATED .. AS IDENTITY clause.
func ClauseIdentity(b *ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	if !col.IsIdentity {
		return "", nil
	}
	generation := "BY DEFAULT"
	if b.Supports(expression.FeatureIdentityGeneration) &&
		strings.EqualFold(col.Features.String(expression.FeatureIdentityGeneration), "always") {
		generation = "ALWAYS"
	}
	return "GENERATED " + generation + " AS IDENTITY", nil
}

// ClauseNullable renders NULL or NOT NULL; an unset nullability renders nothing.
func ClauseNullable(_ *ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	switch {
	case col.IsNullable == nil:
		return "", nil
	case *col.IsNullable:
		return "NULL", nil
	default:
		return "NOT NULL", nil
	}
}

// ClauseDefault renders DEFAULT with the quoted default value.
func ClauseDefault(b *ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	if !col.HasDefault() {
		return "", nil
	}
	return "DEFAULT " + b.quoter.QuoteValue(col.Default), nil
}

// ClausePrimaryKey renders the inline PRIMARY KEY token.
func ClausePrimaryKey(_ *ColumnBuilder, _ *expression.Column, inlinePK bool) (string, error) {
	if !inlinePK {
		return "", nil
	}
	return "PRIMARY KEY", nil
}

// ClauseUnique renders UNIQUE for unique non-key columns.
func ClauseUnique(_ *ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	if !col.IsUnique || col.IsPrimaryKey {
		return "", nil
	}
	return "UNIQUE", nil
}
