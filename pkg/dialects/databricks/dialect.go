package databricks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
	"github.com/leapstack-labs/leapmigrate/pkg/quote"
)

func init() {
	generator.Register(Databricks)
}

// Compatibility messages.
const (
	MsgIndexes          = "Databricks does not support secondary indexes"
	MsgAlterSchema      = "Databricks cannot move a table to another schema"
	MsgUniqueConstraint = "Databricks does not support UNIQUE constraints"
)

// Types maps column types to Databricks types. TIME has no equivalent.
var Types = generator.NewTypeMap().
	Set(expression.AnsiString, "STRING").
	Set(expression.AnsiStringFixedLength, "STRING").
	Set(expression.String, "STRING").
	Set(expression.StringFixedLength, "STRING").
	Set(expression.Binary, "BINARY").
	Set(expression.Boolean, "BOOLEAN").
	Set(expression.Byte, "TINYINT").
	Set(expression.Int16, "SMALLINT").
	Set(expression.Int32, "INT").
	Set(expression.Int64, "BIGINT").
	Set(expression.Decimal, "DECIMAL(19,5)").
	SetSized(expression.Decimal, 38, "DECIMAL($size,$precision)").
	Set(expression.Currency, "DECIMAL(19,4)").
	Set(expression.Double, "DOUBLE").
	Set(expression.Single, "FLOAT").
	Set(expression.Date, "DATE").
	Set(expression.DateTime, "TIMESTAMP_NTZ").
	Set(expression.DateTime2, "TIMESTAMP_NTZ").
	Set(expression.DateTimeOffset, "TIMESTAMP").
	Set(expression.Guid, "STRING").
	Set(expression.Xml, "STRING")

// Databricks is the Databricks SQL generator.
var Databricks = generator.New(Config).
	Types(Types).
	Descriptions(comments).
	ColumnClauses(
		generator.ClauseName,
		generator.ClauseType,
		clauseNotNull,
		clauseIdentity,
		generator.ClauseDefault,
		generator.ClausePrimaryKey,
	).
	Features(
		expression.FeatureIdentityGeneration,
		expression.FeatureIdentitySeed,
		expression.FeatureIdentityIncrement,
	).
	Handle(expression.KindAlterColumn, handleAlterColumn).
	Reject(MsgAlterSchema, expression.KindAlterSchema).
	Reject(MsgIndexes, expression.KindCreateIndex, expression.KindDeleteIndex).
	Handle(expression.KindCreateConstraint, handleCreateConstraint).
	Build()

// clauseNotNull renders NOT NULL only; Databricks has no explicit NULL keyword.
func clauseNotNull(_ *generator.ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	if col.IsNullable != nil && !*col.IsNullable {
		return "NOT NULL", nil
	}
	return "", nil
}

// clauseIdentity extends the standard identity clause with START WITH and INCREMENT BY.
func clauseIdentity(b *generator.ColumnBuilder, col *expression.Column, inlinePK bool) (string, error) {
	s, err := generator.ClauseIdentity(b, col, inlinePK)
	if s == "" || err != nil {
		return s, err
	}
	var opts []string
	if v, ok := col.Features.Int(expression.FeatureIdentitySeed); ok && b.Supports(expression.FeatureIdentitySeed) {
		opts = append(opts, "START WITH "+strconv.Itoa(v))
	}
	if v, ok := col.Features.Int(expression.FeatureIdentityIncrement); ok && b.Supports(expression.FeatureIdentityIncrement) {
		opts = append(opts, "INCREMENT BY "+strconv.Itoa(v))
	}
	if len(opts) == 0 {
		return s, nil
	}
	return fmt.Sprintf("%s (%s)", s, strings.Join(opts, " ")), nil
}

// commentGenerator uses COMMENT ON TABLE for tables and ALTER COLUMN .. COMMENT for columns.
type commentGenerator struct {
	q *quote.Quoter
}

func comments(q *quote.Quoter) generator.DescriptionGenerator { return commentGenerator{q: q} }

func (c commentGenerator) TableDescription(table, schema, text string) []string {
	return []string{fmt.Sprintf("COMMENT ON TABLE %s IS %s", c.q.QuoteTableName(table, schema), c.q.QuoteString(text))}
}

func (c commentGenerator) ColumnDescription(table, schema, column, text string) []string {
	return []string{fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s COMMENT %s",
		c.q.QuoteTableName(table, schema), c.q.QuoteColumnName(column), c.q.QuoteString(text))}
}

// handleAlterColumn emits one ALTER TABLE per change.
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

// handleCreateConstraint accepts informational primary keys only.
func handleCreateConstraint(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	cc, err := generator.As[*expression.CreateConstraint](e)
	if err != nil {
		return generator.Result{}, err
	}
	if !cc.Constraint.IsPrimaryKey() {
		return g.HandleCompatibility(MsgUniqueConstraint), nil
	}
	return generator.HandleCreateConstraint(g, e)
}
