package sqlserver

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
)

// clauseIdentity renders IDENTITY(seed,increment), both defaulting to 1.
func clauseIdentity(b *generator.ColumnBuilder, col *expression.Column, _ bool) (string, error) {
	if !col.IsIdentity {
		return "", nil
	}
	seed, increment := 1, 1
	if v, ok := col.Features.Int(expression.FeatureIdentitySeed); ok && b.Supports(expression.FeatureIdentitySeed) {
		seed = v
	}
	if v, ok := col.Features.Int(expression.FeatureIdentityIncrement); ok && b.Supports(expression.FeatureIdentityIncrement) {
		increment = v
	}
	return "IDENTITY(" + strconv.Itoa(seed) + "," + strconv.Itoa(increment) + ")", nil
}

func clusterToken(idx *expression.Index) string {
	if idx.IsClustered {
		return "CLUSTERED "
	}
	return "NONCLUSTERED "
}

// handleInsertData wraps the inserts in SET IDENTITY_INSERT when requested.
func handleInsertData(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	ins, err := generator.As[*expression.InsertData](e)
	if err != nil {
		return generator.Result{}, err
	}
	if res, ok := g.CheckFeatures(ins.Features); !ok {
		return res, nil
	}

	stmts := g.InsertStatements(ins)
	if ins.Features.Bool(expression.FeatureIdentityInsert) {
		table := g.Quoter().QuoteTableName(ins.TableName, ins.Schema)
		stmts = append([]string{"SET IDENTITY_INSERT " + table + " ON"}, stmts...)
		stmts = append(stmts, "SET IDENTITY_INSERT "+table+" OFF")
	}
	return g.Statements(stmts...), nil
}

func handleRenameTable(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	rt, err := generator.As[*expression.RenameTable](e)
	if err != nil {
		return generator.Result{}, err
	}
	q := g.Quoter()
	return g.Statements(fmt.Sprintf("EXEC sp_rename %s, %s",
		q.QuoteString(q.QuoteTableName(rt.OldName, rt.Schema)),
		q.QuoteString(rt.NewName))), nil
}

func handleRenameColumn(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	rc, err := generator.As[*expression.RenameColumn](e)
	if err != nil {
		return generator.Result{}, err
	}
	q := g.Quoter()
	object := q.QuoteTableName(rc.TableName, rc.Schema) + "." + q.QuoteColumnName(rc.OldName)
	return g.Statements(fmt.Sprintf("EXEC sp_rename %s, %s, %s",
		q.QuoteString(object), q.QuoteString(rc.NewName), q.QuoteString("COLUMN"))), nil
}

// handleAlterColumn changes type and nullability in place. ALTER COLUMN takes
// no DEFAULT, so a default becomes a named DF_ constraint.
func handleAlterColumn(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	ac, err := generator.As[*expression.AlterColumn](e)
	if err != nil {
		return generator.Result{}, err
	}
	if res, ok := g.CheckFeatures(ac.Column.Features); !ok {
		return res, nil
	}

	def, err := g.Columns().
		WithClauses(generator.ClauseName, generator.ClauseType, generator.ClauseCollation, generator.ClauseNullable).
		Generate(ac.Column)
	if err != nil {
		return generator.Result{}, fmt.Errorf("alter column %s.%s: %w", ac.TableName, ac.Column.Name, err)
	}

	q := g.Quoter()
	table := q.QuoteTableName(ac.TableName, ac.Schema)
	stmts := []string{fmt.Sprintf(g.Templates().AlterColumn, table, def)}
	if ac.Column.HasDefault() {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s DEFAULT %s FOR %s",
			table,
			q.Quote("DF_"+ac.TableName+"_"+ac.Column.Name),
			q.QuoteValue(ac.Column.Default),
			q.QuoteColumnName(ac.Column.Name)))
	}
	return g.Statements(stmts...), nil
}

// handleCreateIndex appends INCLUDE and WHERE when the release supports them.
func handleCreateIndex(g *generator.Generator, e expression.Expression) (generator.Result, error) {
	ci, err := generator.As[*expression.CreateIndex](e)
	if err != nil {
		return generator.Result{}, err
	}
	if res, ok := g.CheckFeatures(ci.Index.Features); !ok {
		return res, nil
	}
	return g.Statements(g.CreateIndexStatement(ci.Index) + g.IncludeClause(ci.Index) + g.FilterClause(ci.Index)), nil
}
