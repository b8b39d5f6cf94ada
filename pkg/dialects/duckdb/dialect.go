package duckdb

import (
	"fmt"

	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
)

func init() {
	generator.Register(DuckDB)
}

// Compatibility messages.
const (
	MsgIdentity    = "DuckDB has no identity columns; use a sequence default"
	MsgAlterSchema = "DuckDB cannot move a table to another schema"
	MsgConstraints = "DuckDB does not support adding or dropping constraints after table creation"
	MsgForeignKeys = "DuckDB does not support adding or dropping foreign keys after table creation"
)

// Types maps column types to DuckDB types.
var Types = generator.NewTypeMap().
	Set(expression.AnsiString, "VARCHAR").
	SetSized(expression.AnsiString, generator.MaxSize, "VARCHAR($size)").
	Set(expression.AnsiStringFixedLength, "VARCHAR").
	SetSized(expression.AnsiStringFixedLength, generator.MaxSize, "VARCHAR($size)").
	Set(expression.String, "VARCHAR").
	SetSized(expression.String, generator.MaxSize, "VARCHAR($size)").
	Set(expression.StringFixedLength, "VARCHAR").
	SetSized(expression.StringFixedLength, generator.MaxSize, "VARCHAR($size)").
	Set(expression.Binary, "BLOB").
	Set(expression.Boolean, "BOOLEAN").
	Set(expression.Byte, "UTINYINT").
	Set(expression.Int16, "SMALLINT").
	Set(expression.Int32, "INTEGER").
	Set(expression.Int64, "BIGINT").
	Set(expression.Decimal, "DECIMAL(19,5)").
	SetSized(expression.Decimal, 38, "DECIMAL($size,$precision)").
	Set(expression.Currency, "DECIMAL(19,4)").
	Set(expression.Double, "DOUBLE").
	Set(expression.Single, "FLOAT").
	Set(expression.Date, "DATE").
	Set(expression.Time, "TIME").
	Set(expression.DateTime, "TIMESTAMP").
	Set(expression.DateTime2, "TIMESTAMP").
	Set(expression.DateTimeOffset, "TIMESTAMPTZ").
	Set(expression.Guid, "UUID").
	Set(expression.Xml, "VARCHAR")

// DuckDB is the DuckDB generator.
var DuckDB = generator.New(Config).
	Templates(func(t *generator.Templates) {
		t.SequenceIncrement = " INCREMENT BY %d"
	}).
	Types(Types).
	ColumnClauses(
		generator.ClauseName,
		generator.ClauseType,
		generator.ClauseCollation,
		generator.ClauseNullable,
		generator.ClauseDefault,
		generator.ClausePrimaryKey,
		generator.ClauseUnique,
	).
	Features(expression.FeatureColumnCollation).
	Handle(expression.KindCreateTable, withoutIdentity(generator.HandleCreateTable)).
	Handle(expression.KindCreateColumn, withoutIdentity(generator.HandleCreateColumn)).
	Handle(expression.KindAlterColumn, handleAlterColumn).
	Reject(MsgAlterSchema, expression.KindAlterSchema).
	Reject(MsgConstraints, expression.KindCreateConstraint, expression.KindDeleteConstraint).
	Reject(MsgForeignKeys, expression.KindCreateForeignKey, expression.KindDeleteForeignKey).
	Build()

// withoutIdentity reports identity columns in strict mode. Loose mode renders
// the column without it, since the clause sequence has no identity clause.
func withoutIdentity(next generator.Handler) generator.Handler {
	return func(g *generator.Generator, e expression.Expression) (generator.Result, error) {
		var cols []*expression.Column
		switch x := e.(type) {
		case *expression.CreateTable:
			cols = x.Columns
		case *expression.CreateColumn:
			cols = []*expression.Column{x.Column}
		}
		if g.CompatibilityMode() == core.Strict {
			for _, c := range cols {
				if c.IsIdentity {
					return g.HandleCompatibility(MsgIdentity), nil
				}
			}
		}
		return next(g, e)
	}
}

// handleAlterColumn emits one ALTER TABLE per change; DuckDB takes a single action each.
func handleAlterColumn(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	ac, err := generator.As[*expression.AlterColumn](e)
	if err != nil {
		return generator.Result{}, err
	}
	if res, ok := g.CheckFeatures(ac.Column.Features); !ok {
		return res, nil
	}
	actions, err := g.AlterColumnActions(ac, "TYPE")
	if err != nil {
		return generator.Result{}, err
	}

	table := g.Quoter().QuoteTableName(ac.TableName, ac.Schema)
	stmts := make([]string, len(actions))
	for i, a := range actions {
		stmts[i] = fmt.Sprintf("ALTER TABLE %s %s", table, a)
	}
	return g.Statements(stmts...), nil
}
