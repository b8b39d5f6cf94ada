package postgres

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
)

func init() {
	generator.Register(Postgres)
}

// Types maps column types to PostgreSQL types.
var Types = generator.NewTypeMap().
	Set(expression.AnsiString, "VARCHAR(255)").
	SetSized(expression.AnsiString, 10485760, "VARCHAR($size)").
	SetSized(expression.AnsiString, generator.MaxSize, "TEXT").
	Set(expression.AnsiStringFixedLength, "CHAR(255)").
	SetSized(expression.AnsiStringFixedLength, 10485760, "CHAR($size)").
	Set(expression.String, "VARCHAR(255)").
	SetSized(expression.String, 10485760, "VARCHAR($size)").
	SetSized(expression.String, generator.MaxSize, "TEXT").
	Set(expression.StringFixedLength, "CHAR(255)").
	SetSized(expression.StringFixedLength, 10485760, "CHAR($size)").
	Set(expression.Binary, "BYTEA").
	Set(expression.Boolean, "BOOLEAN").
	Set(expression.Byte, "SMALLINT").
	Set(expression.Int16, "SMALLINT").
	Set(expression.Int32, "INTEGER").
	Set(expression.Int64, "BIGINT").
	Set(expression.Decimal, "DECIMAL(19,5)").
	SetSized(expression.Decimal, 1000, "DECIMAL($size,$precision)").
	Set(expression.Currency, "MONEY").
	Set(expression.Double, "DOUBLE PRECISION").
	Set(expression.Single, "REAL").
	Set(expression.Date, "DATE").
	Set(expression.Time, "TIME").
	Set(expression.DateTime, "TIMESTAMP").
	Set(expression.DateTime2, "TIMESTAMP").
	Set(expression.DateTimeOffset, "TIMESTAMPTZ").
	Set(expression.Guid, "UUID").
	Set(expression.Xml, "XML")

// Postgres is the PostgreSQL generator.
var Postgres = generator.New(Config).
	Types(Types).
	Features(
		expression.FeatureIdentityGeneration,
		expression.FeatureColumnCollation,
		expression.FeatureIncludeColumns,
		expression.FeatureIndexFilter,
		expression.FeatureIndexMethod,
	).
	Handle(expression.KindAlterColumn, handleAlterColumn).
	Handle(expression.KindCreateIndex, handleCreateIndex).
	Build()

// handleAlterColumn renders every change as an action of one ALTER TABLE.
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
	return g.Statements(fmt.Sprintf("ALTER TABLE %s %s",
		g.Quoter().QuoteTableName(ac.TableName, ac.Schema), strings.Join(actions, ", "))), nil
}

// handleCreateIndex places USING between the table and the column list.
func handleCreateIndex(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	ci, err := generator.As[*expression.CreateIndex](e)
	if err != nil {
		return generator.Result{}, err
	}
	if res, ok := g.CheckFeatures(ci.Index.Features); !ok {
		return res, nil
	}

	idx := ci.Index
	q := g.Quoter()
	var using string
	if method := idx.Features.String(expression.FeatureIndexMethod); method != "" {
		using = " USING " + method
	}
	return g.Statements(fmt.Sprintf("CREATE %sINDEX %s ON %s%s (%s)%s%s",
		g.UniqueToken(idx),
		q.Quote(idx.Name),
		q.QuoteTableName(idx.TableName, idx.Schema),
		using,
		g.IndexColumnList(idx),
		g.IncludeClause(idx),
		g.FilterClause(idx))), nil
}
