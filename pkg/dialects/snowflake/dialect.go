package snowflake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
)

func init() {
	generator.Register(Snowflake)
}

// Compatibility messages.
const (
	MsgIndexes        = "Snowflake does not support secondary indexes"
	MsgSequenceOption = "Snowflake sequences support only START WITH and INCREMENT BY"
	MsgAlterDefault   = "Snowflake cannot change a column default after creation"
)

// Types maps column types to Snowflake types.
var Types = generator.NewTypeMap().
	Set(expression.AnsiString, "VARCHAR").
	SetSized(expression.AnsiString, 16777216, "VARCHAR($size)").
	Set(expression.AnsiStringFixedLength, "CHAR(1)").
	SetSized(expression.AnsiStringFixedLength, 16777216, "CHAR($size)").
	Set(expression.String, "VARCHAR").
	SetSized(expression.String, 16777216, "VARCHAR($size)").
	Set(expression.StringFixedLength, "CHAR(1)").
	SetSized(expression.StringFixedLength, 16777216, "CHAR($size)").
	Set(expression.Binary, "BINARY").
	SetSized(expression.Binary, 8388608, "BINARY($size)").
	Set(expression.Boolean, "BOOLEAN").
	Set(expression.Byte, "NUMBER(3,0)").
	Set(expression.Int16, "SMALLINT").
	Set(expression.Int32, "INTEGER").
	Set(expression.Int64, "BIGINT").
	Set(expression.Decimal, "NUMBER(19,5)").
	SetSized(expression.Decimal, 38, "NUMBER($size,$precision)").
	Set(expression.Currency, "NUMBER(19,4)").
	Set(expression.Double, "FLOAT").
	Set(expression.Single, "FLOAT").
	Set(expression.Date, "DATE").
	Set(expression.Time, "TIME").
	Set(expression.DateTime, "TIMESTAMP_NTZ").
	Set(expression.DateTime2, "TIMESTAMP_NTZ").
	Set(expression.DateTimeOffset, "TIMESTAMP_TZ").
	Set(expression.Guid, "VARCHAR(36)").
	Set(expression.Xml, "VARIANT")

// Snowflake is the Snowflake generator.
var Snowflake = generator.New(Config).
	Templates(func(t *generator.Templates) {
		t.SequenceIncrement = " INCREMENT BY %d"
	}).
	Types(Types).
	ColumnClauses(
		generator.ClauseName,
		generator.ClauseType,
		generator.ClauseCollation,
		clauseIdentity,
		generator.ClauseNullable,
		generator.ClauseDefault,
		generator.ClausePrimaryKey,
		generator.ClauseUnique,
	).
	Features(
		expression.FeatureIdentitySeed,
		expression.FeatureIdentityIncrement,
		expression.FeatureColumnCollation,
	).
	Handle(expression.KindAlterColumn, handleAlterColumn).
	Handle(expression.KindAlterSchema, handleAlterSchema).
	Reject(MsgIndexes, expression.KindCreateIndex, expression.KindDeleteIndex).
	Handle(expression.KindCreateSequence, handleCreateSequence).
	Build()

// clauseIdentity renders AUTOINCREMENT START n INCREMENT m.
func clauseIdentity(b *generator.ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	if !col.IsIdentity {
		return "", nil
	}
	start, increment := 1, 1
	if v, ok := col.Features.Int(expression.FeatureIdentitySeed); ok && b.Supports(expression.FeatureIdentitySeed) {
		start = v
	}
	if v, ok := col.Features.Int(expression.FeatureIdentityIncrement); ok && b.Supports(expression.FeatureIdentityIncrement) {
		increment = v
	}
	return "AUTOINCREMENT START " + strconv.Itoa(start) + " INCREMENT " + strconv.Itoa(increment), nil
}

// handleAlterColumn joins the changes into one ALTER TABLE. A default change
// is reported in strict mode and dropped in loose mode.
func handleAlterColumn(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	ac, err := generator.As[*expression.AlterColumn](e)
	if err != nil {
		return generator.Result{}, err
	}
	if res, ok := g.CheckFeatures(ac.Column.Features); !ok {
		return res, nil
	}
	if ac.Column.HasDefault() {
		if g.CompatibilityMode() == core.Strict {
			return g.HandleCompatibility(MsgAlterDefault), nil
		}
		col := ac.Column.Clone()
		col.Default = nil
		ac = &expression.AlterColumn{TableName: ac.TableName, Schema: ac.Schema, Column: col}
	}

	actions, err := g.AlterColumnActions(ac, "SET DATA TYPE")
	if err != nil {
		return generator.Result{}, err
	}
	return g.Statements(fmt.Sprintf("ALTER TABLE %s %s",
		g.Quoter().QuoteTableName(ac.TableName, ac.Schema), strings.Join(actions, ", "))), nil
}

// handleAlterSchema moves a table by renaming it into the destination schema.
func handleAlterSchema(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	as, err := generator.As[*expression.AlterSchema](e)
	if err != nil {
		return generator.Result{}, err
	}
	q := g.Quoter()
	return g.Statements(fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		q.QuoteTableName(as.TableName, as.SourceSchema),
		q.QuoteTableName(as.TableName, as.DestinationSchema))), nil
}

func handleCreateSequence(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	cs, err := generator.As[*expression.CreateSequence](e)
	if err != nil {
		return generator.Result{}, err
	}
	seq := cs.Sequence
	if seq.MinValue != nil || seq.MaxValue != nil || seq.Cache != nil || seq.Cycle {
		return g.HandleCompatibility(MsgSequenceOption), nil
	}
	return generator.HandleCreateSequence(g, e)
}
