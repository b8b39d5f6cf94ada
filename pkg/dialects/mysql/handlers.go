package mysql

import (
	"fmt"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
	"github.com/leapstack-labs/leapmigrate/pkg/quote"
)

func clauseAutoIncrement(_ *generator.ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	if !col.IsIdentity {
		return "", nil
	}
	return "AUTO_INCREMENT", nil
}

// clauseComment renders column descriptions inline.
func clauseComment(b *generator.ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	if col.Description == "" {
		return "", nil
	}
	return "COMMENT " + b.Quoter().QuoteString(col.Description), nil
}

// comments sets table comments with ALTER TABLE; column comments are inline.
type comments struct {
	q *quote.Quoter
}

func tableComments(q *quote.Quoter) generator.DescriptionGenerator { return comments{q: q} }

func (c comments) TableDescription(table, schema, text string) []string {
	return []string{fmt.Sprintf("ALTER TABLE %s COMMENT = %s", c.q.QuoteTableName(table, schema), c.q.QuoteString(text))}
}

func (comments) ColumnDescription(string, string, string, string) []string { return nil }

// handleCreateTable appends the ENGINE table option.
func handleCreateTable(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	ct, err := generator.As[*expression.CreateTable](e)
	if err != nil {
		return generator.Result{}, err
	}
	if res, ok := g.CheckFeatures(generator.TableFeatures(ct)...); !ok {
		return res, nil
	}

	body, err := g.Columns().GenerateList(ct.Columns, ct.Name, ct.Schema)
	if err != nil {
		return generator.Result{}, fmt.Errorf("create table %s: %w", ct.Name, err)
	}

	stmt := fmt.Sprintf(g.Templates().CreateTable, g.Quoter().QuoteTableName(ct.Name, ct.Schema), body)
	if engine := ct.Features.String(expression.FeatureTableEngine); engine != "" && g.IsAdditionalFeatureSupported(expression.FeatureTableEngine) {
		stmt += " ENGINE = " + engine
	}
	return g.Statements(append([]string{stmt}, g.DescribeTable(ct)...)...), nil
}

// handleAlterColumn restates the definition with MODIFY COLUMN, minus key clauses.
func handleAlterColumn(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	ac, err := generator.As[*expression.AlterColumn](e)
	if err != nil {
		return generator.Result{}, err
	}
	if res, ok := g.CheckFeatures(ac.Column.Features); !ok {
		return res, nil
	}

	def, err := g.Columns().WithClauses(
		generator.ClauseName,
		generator.ClauseType,
		generator.ClauseCollation,
		generator.ClauseNullable,
		generator.ClauseDefault,
		clauseAutoIncrement,
		clauseComment,
	).Generate(ac.Column)
	if err != nil {
		return generator.Result{}, fmt.Errorf("alter column %s.%s: %w", ac.TableName, ac.Column.Name, err)
	}
	return g.Statements(fmt.Sprintf(g.Templates().AlterColumn, g.Quoter().QuoteTableName(ac.TableName, ac.Schema), def)), nil
}

// handleDeleteConstraint drops the primary key, or the index backing a unique constraint.
func handleDeleteConstraint(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	dc, err := generator.As[*expression.DeleteConstraint](e)
	if err != nil {
		return generator.Result{}, err
	}
	c := dc.Constraint
	table := g.Quoter().QuoteTableName(c.TableName, c.Schema)
	if c.IsPrimaryKey() {
		return g.Statements("ALTER TABLE " + table + " DROP PRIMARY KEY"), nil
	}
	return g.Statements("ALTER TABLE " + table + " DROP INDEX " + g.Quoter().QuoteConstraintName(generator.ConstraintName(c), "")), nil
}
