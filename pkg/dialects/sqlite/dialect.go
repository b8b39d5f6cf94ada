package sqlite

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
)

func init() {
	generator.Register(SQLite)
}

// Compatibility messages for operations SQLite cannot express.
const (
	MsgAlterColumn = "SQLite does not support altering columns; recreate the table instead"
	MsgConstraints = "SQLite does not support adding or dropping constraints after table creation"
	MsgForeignKeys = "SQLite does not support adding or dropping foreign keys after table creation"
)

// MaxCompoundSelect is SQLite's default limit of SELECTs joined by UNION ALL.
const MaxCompoundSelect = 500

// Types maps column types to SQLite storage classes.
var Types = generator.NewTypeMap().
	Set(expression.AnsiString, "TEXT").
	Set(expression.AnsiStringFixedLength, "TEXT").
	Set(expression.String, "TEXT").
	Set(expression.StringFixedLength, "TEXT").
	Set(expression.Binary, "BLOB").
	Set(expression.Boolean, "INTEGER").
	Set(expression.Byte, "INTEGER").
	Set(expression.Int16, "INTEGER").
	Set(expression.Int32, "INTEGER").
	Set(expression.Int64, "INTEGER").
	Set(expression.Decimal, "NUMERIC").
	Set(expression.Currency, "NUMERIC").
	Set(expression.Double, "REAL").
	Set(expression.Single, "REAL").
	Set(expression.Date, "DATETIME").
	Set(expression.Time, "DATETIME").
	Set(expression.DateTime, "DATETIME").
	Set(expression.DateTime2, "DATETIME").
	Set(expression.DateTimeOffset, "DATETIME").
	Set(expression.Guid, "TEXT").
	Set(expression.Xml, "TEXT")

// SQLite is the SQLite generator.
var SQLite = generator.New(Config).
	Types(Types).
	ColumnClauses(
		generator.ClauseName,
		clauseType,
		generator.ClauseCollation,
		generator.ClauseNullable,
		generator.ClauseDefault,
		clausePrimaryKey,
		generator.ClauseUnique,
	).
	Features(expression.FeatureColumnCollation, expression.FeatureIndexFilter).
	Reject(MsgAlterColumn, expression.KindAlterColumn).
	Reject(MsgConstraints, expression.KindCreateConstraint, expression.KindDeleteConstraint).
	Reject(MsgForeignKeys, expression.KindCreateForeignKey, expression.KindDeleteForeignKey).
	Handle(expression.KindCreateIndex, handleCreateIndex).
	Handle(expression.KindInsertData, handleInsertData).
	Build()

// clauseType forces INTEGER on identity columns; AUTOINCREMENT requires it.
func clauseType(b *generator.ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	if col.IsIdentity {
		return "INTEGER", nil
	}
	return b.Type(col)
}

func clausePrimaryKey(_ *generator.ColumnBuilder, col *expression.Column, inlinePK bool) (string, error) {
	switch {
	case !inlinePK:
		return "", nil
	case col.IsIdentity:
		return "PRIMARY KEY AUTOINCREMENT", nil
	default:
		return "PRIMARY KEY", nil
	}
}

func handleCreateIndex(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	ci, err := generator.As[*expression.CreateIndex](e)
	if err != nil {
		return generator.Result{}, err
	}
	if res, ok := g.CheckFeatures(ci.Index.Features); !ok {
		return res, nil
	}
	return g.Statements(g.CreateIndexStatement(ci.Index) + g.FilterClause(ci.Index)), nil
}

// handleInsertData batches consecutive rows sharing a column list into
// INSERT .. SELECT .. UNION ALL SELECT .., at most MaxCompoundSelect rows each.
func handleInsertData(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	ins, err := generator.As[*expression.InsertData](e)
	if err != nil {
		return generator.Result{}, err
	}
	if res, ok := g.CheckFeatures(ins.Features); !ok {
		return res, nil
	}

	q := g.Quoter()
	table := q.QuoteTableName(ins.TableName, ins.Schema)

	var stmts []string
	var cols []string
	var selects []string
	flush := func() {
		if len(selects) > 0 {
			stmts = append(stmts, fmt.Sprintf("INSERT INTO %s (%s) %s",
				table, q.QuoteColumnNames(cols), strings.Join(selects, " UNION ALL ")))
		}
		selects = selects[:0]
	}
	for _, row := range ins.Rows {
		rowCols := row.Columns()
		if !slices.Equal(rowCols, cols) || len(selects) == MaxCompoundSelect {
			flush()
			cols = rowCols
		}
		selects = append(selects, "SELECT "+g.ValueList(row))
	}
	flush()
	return g.Statements(stmts...), nil
}
