package generator

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
)

// Compatibility messages for capabilities a dialect lacks.
const (
	MsgSchemasNotSupported   = "Schemas are not supported"
	MsgSequencesNotSupported = "Sequences are not supported"
)

// baseline returns the handler table every dialect starts from.
func baseline() map[expression.Kind]Handler {
	return map[expression.Kind]Handler{
		expression.KindCreateTable:      HandleCreateTable,
		expression.KindDeleteTable:      HandleDeleteTable,
		expression.KindRenameTable:      HandleRenameTable,
		expression.KindCreateColumn:     HandleCreateColumn,
		expression.KindAlterColumn:      HandleAlterColumn,
		expression.KindDeleteColumn:     HandleDeleteColumn,
		expression.KindRenameColumn:     HandleRenameColumn,
		expression.KindCreateIndex:      HandleCreateIndex,
		expression.KindDeleteIndex:      HandleDeleteIndex,
		expression.KindCreateConstraint: HandleCreateConstraint,
		expression.KindDeleteConstraint: HandleDeleteConstraint,
		expression.KindCreateForeignKey: HandleCreateForeignKey,
		expression.KindDeleteForeignKey: HandleDeleteForeignKey,
		expression.KindCreateSchema:     HandleSchemasUnsupported,
		expression.KindAlterSchema:      HandleSchemasUnsupported,
		expression.KindDeleteSchema:     HandleSchemasUnsupported,
		expression.KindCreateSequence:   HandleSequencesUnsupported,
		expression.KindDeleteSequence:   HandleSequencesUnsupported,
		expression.KindInsertData:       HandleInsertData,
		expression.KindUpdateData:       HandleUpdateData,
		expression.KindDeleteData:       HandleDeleteData,
	}
}

// ---------- Tables ----------

// HandleCreateTable renders CREATE TABLE followed by any description statements.
func HandleCreateTable(g *Generator, e expression.Expression) (Result, error) {
	ct, err := As[*expression.CreateTable](e)
	if err != nil {
		return Result{}, err
	}
	if res, ok := g.CheckFeatures(TableFeatures(ct)...); !ok {
		return res, nil
	}

	body, err := g.columns.GenerateList(ct.Columns, ct.Name, ct.Schema)
	if err != nil {
		return Result{}, fmt.Errorf("create table %s: %w", ct.Name, err)
	}

	stmts := []string{fmt.Sprintf(g.templates.CreateTable, g.quoter.QuoteTableName(ct.Name, ct.Schema), body)}
	stmts = append(stmts, g.DescribeTable(ct)...)
	return g.Statements(stmts...), nil
}

// TableFeatures collects the feature bags of a table and its columns.
func TableFeatures(ct *expression.CreateTable) []expression.Features {
	bags := make([]expression.Features, 0, len(ct.Columns)+1)
	bags = append(bags, ct.Features)
	for _, c := range ct.Columns {
		bags = append(bags, c.Features)
	}
	return bags
}

// DescribeTable returns the description statements for a table and its columns.
func (g *Generator) DescribeTable(ct *expression.CreateTable) []string {
	var stmts []string
	if ct.Description != "" {
		stmts = append(stmts, g.descriptions.TableDescription(ct.Name, ct.Schema, ct.Description)...)
	}
	for _, c := range ct.Columns {
		if c.Description != "" {
			stmts = append(stmts, g.descriptions.ColumnDescription(ct.Name, ct.Schema, c.Name, c.Description)...)
		}
	}
	return stmts
}

// HandleDeleteTable renders DROP TABLE.
func HandleDeleteTable(g *Generator, e expression.Expression) (Result, error) {
	dt, err := As[*expression.DeleteTable](e)
	if err != nil {
		return Result{}, err
	}
	return g.Statements(fmt.Sprintf(g.templates.DropTable, g.quoter.QuoteTableName(dt.Name, dt.Schema))), nil
}

// HandleRenameTable renders ALTER TABLE .. RENAME TO.
func HandleRenameTable(g *Generator, e expression.Expression) (Result, error) {
	rt, err := As[*expression.RenameTable](e)
	if err != nil {
		return Result{}, err
	}
	return g.Statements(fmt.Sprintf(g.templates.RenameTable,
		g.quoter.QuoteTableName(rt.OldName, rt.Schema),
		g.quoter.QuoteTableName(rt.NewName, ""))), nil
}

// ---------- Columns ----------

// HandleCreateColumn renders ALTER TABLE .. ADD COLUMN and the column
// description. An inline foreign key follows as the dialect's CreateForeignKey
// statement, so dialects that reject foreign keys reject the whole column in
// strict mode.
func HandleCreateColumn(g *Generator, e expression.Expression) (Result, error) {
	cc, err := As[*expression.CreateColumn](e)
	if err != nil {
		return Result{}, err
	}
	if res, ok := g.CheckFeatures(cc.Column.Features); !ok {
		return res, nil
	}

	def, err := g.columns.Generate(cc.Column)
	if err != nil {
		return Result{}, fmt.Errorf("create column %s.%s: %w", cc.TableName, cc.Column.Name, err)
	}

	stmts := []string{fmt.Sprintf(g.templates.AddColumn, g.quoter.QuoteTableName(cc.TableName, cc.Schema), def)}
	if fk := cc.Column.InlineForeignKey(cc.TableName, cc.Schema); fk != nil {
		res, err := g.handlers[expression.KindCreateForeignKey](g, &expression.CreateForeignKey{ForeignKey: fk})
		if err != nil {
			return Result{}, fmt.Errorf("create column %s.%s: %w", cc.TableName, cc.Column.Name, err)
		}
		if res.Compat != nil {
			return res, nil
		}
		stmts = append(stmts, res.Parts...)
	}
	if cc.Column.Description != "" {
		stmts = append(stmts, g.descriptions.ColumnDescription(cc.TableName, cc.Schema, cc.Column.Name, cc.Column.Description)...)
	}
	return g.Statements(stmts...), nil
}

// HandleAlterColumn renders ALTER TABLE .. ALTER COLUMN with the full definition.
func HandleAlterColumn(g *Generator, e expression.Expression) (Result, error) {
	ac, err := As[*expression.AlterColumn](e)
	if err != nil {
		return Result{}, err
	}
	if res, ok := g.CheckFeatures(ac.Column.Features); !ok {
		return res, nil
	}

	def, err := g.columns.Generate(ac.Column)
	if err != nil {
		return Result{}, fmt.Errorf("alter column %s.%s: %w", ac.TableName, ac.Column.Name, err)
	}
	return g.Statements(fmt.Sprintf(g.templates.AlterColumn, g.quoter.QuoteTableName(ac.TableName, ac.Schema), def)), nil
}

// HandleDeleteColumn renders one DROP COLUMN statement per column, in order.
func HandleDeleteColumn(g *Generator, e expression.Expression) (Result, error) {
	dc, err := As[*expression.DeleteColumn](e)
	if err != nil {
		return Result{}, err
	}
	table := g.quoter.QuoteTableName(dc.TableName, dc.Schema)
	stmts := make([]string, len(dc.ColumnNames))
	for i, name := range dc.ColumnNames {
		stmts[i] = fmt.Sprintf(g.templates.DropColumn, table, g.quoter.QuoteColumnName(name))
	}
	return g.Statements(stmts...), nil
}

// HandleRenameColumn renders ALTER TABLE .. RENAME COLUMN.
func HandleRenameColumn(g *Generator, e expression.Expression) (Result, error) {
	rc, err := As[*expression.RenameColumn](e)
	if err != nil {
		return Result{}, err
	}
	return g.Statements(fmt.Sprintf(g.templates.RenameColumn,
		g.quoter.QuoteTableName(rc.TableName, rc.Schema),
		g.quoter.QuoteColumnName(rc.OldName),
		g.quoter.QuoteColumnName(rc.NewName))), nil
}

// ---------- Indexes ----------

// HandleCreateIndex renders CREATE INDEX with explicit ASC/DESC per column.
func HandleCreateIndex(g *Generator, e expression.Expression) (Result, error) {
	ci, err := As[*expression.CreateIndex](e)
	if err != nil {
		return Result{}, err
	}
	if res, ok := g.CheckFeatures(ci.Index.Features); !ok {
		return res, nil
	}
	return g.Statements(g.CreateIndexStatement(ci.Index)), nil
}

// CreateIndexStatement renders the CREATE INDEX statement of idx without
// feature checks, for dialect handlers that append clauses to it.
func (g *Generator) CreateIndexStatement(idx *expression.Index) string {
	return fmt.Sprintf(g.templates.CreateIndex,
		g.uniqueToken(idx),
		g.clusterToken(idx),
		g.quoter.QuoteIndexName(idx.Name, ""),
		g.quoter.QuoteTableName(idx.TableName, idx.Schema),
		g.IndexColumnList(idx))
}

// IndexColumnList renders the index columns in declared order with their direction.
func (g *Generator) IndexColumnList(idx *expression.Index) string {
	cols := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		cols[i] = g.quoter.QuoteColumnName(c.Name) + " " + c.Direction.String()
	}
	return strings.Join(cols, ", ")
}

// HandleDeleteIndex renders DROP INDEX.
func HandleDeleteIndex(g *Generator, e expression.Expression) (Result, error) {
	di, err := As[*expression.DeleteIndex](e)
	if err != nil {
		return Result{}, err
	}
	return g.Statements(fmt.Sprintf(g.templates.DropIndex,
		g.quoter.QuoteIndexName(di.Index.Name, di.Index.Schema),
		g.quoter.QuoteTableName(di.Index.TableName, di.Index.Schema))), nil
}

// ---------- Constraints ----------

// ConstraintKeyword returns PRIMARY KEY or UNIQUE.
func ConstraintKeyword(c *expression.Constraint) string {
	if c.IsPrimaryKey() {
		return "PRIMARY KEY"
	}
	return "UNIQUE"
}

// ConstraintName returns the explicit or derived constraint name.
func ConstraintName(c *expression.Constraint) string {
	if c.Name != "" {
		return c.Name
	}
	return expression.DefaultConstraintName(c)
}

// HandleCreateConstraint renders ALTER TABLE .. ADD CONSTRAINT.
func HandleCreateConstraint(g *Generator, e expression.Expression) (Result, error) {
	cc, err := As[*expression.CreateConstraint](e)
	if err != nil {
		return Result{}, err
	}
	c := cc.Constraint
	// constraint names are scoped by their table
	return g.Statements(fmt.Sprintf(g.templates.AddConstraint,
		g.quoter.QuoteTableName(c.TableName, c.Schema),
		g.quoter.QuoteConstraintName(ConstraintName(c), ""),
		ConstraintKeyword(c),
		g.quoter.QuoteColumnNames(c.Columns))), nil
}

// HandleDeleteConstraint renders ALTER TABLE .. DROP CONSTRAINT.
func HandleDeleteConstraint(g *Generator, e expression.Expression) (Result, error) {
	dc, err := As[*expression.DeleteConstraint](e)
	if err != nil {
		return Result{}, err
	}
	c := dc.Constraint
	return g.Statements(fmt.Sprintf(g.templates.DropConstraint,
		g.quoter.QuoteTableName(c.TableName, c.Schema),
		g.quoter.QuoteConstraintName(ConstraintName(c), ""))), nil
}

// HandleCreateForeignKey renders ALTER TABLE .. ADD CONSTRAINT .. FOREIGN KEY.
func HandleCreateForeignKey(g *Generator, e expression.Expression) (Result, error) {
	cf, err := As[*expression.CreateForeignKey](e)
	if err != nil {
		return Result{}, err
	}
	fk := cf.ForeignKey
	return g.Statements(fmt.Sprintf(g.templates.AddForeignKey,
		g.quoter.QuoteTableName(fk.ForeignTable, fk.ForeignTableSchema),
		g.columns.FormatForeignKey(fk, g.fkName))), nil
}

// ForeignKeyToDelete returns the foreign key of a DeleteForeignKey, or a
// *UsageError when the owning table was never specified.
func ForeignKeyToDelete(e expression.Expression) (*expression.ForeignKey, error) {
	df, err := As[*expression.DeleteForeignKey](e)
	if err != nil {
		return nil, err
	}
	if df.ForeignKey == nil || df.ForeignKey.ForeignTable == "" {
		return nil, &UsageError{
			Kind:    expression.KindDeleteForeignKey,
			Message: "the foreign table of the foreign key to delete was not specified; complete the deletion with the owning table",
		}
	}
	return df.ForeignKey, nil
}

// HandleDeleteForeignKey renders ALTER TABLE .. DROP CONSTRAINT for a foreign key.
func HandleDeleteForeignKey(g *Generator, e expression.Expression) (Result, error) {
	fk, err := ForeignKeyToDelete(e)
	if err != nil {
		return Result{}, err
	}
	return g.Statements(fmt.Sprintf(g.templates.DropForeignKey,
		g.quoter.QuoteTableName(fk.ForeignTable, fk.ForeignTableSchema),
		g.quoter.QuoteConstraintName(g.ForeignKeyName(fk), ""))), nil
}

// ---------- Schemas ----------

// HandleSchemasUnsupported is wired for every schema kind when the dialect has no schemas.
func HandleSchemasUnsupported(g *Generator, _ expression.Expression) (Result, error) {
	return g.HandleCompatibility(MsgSchemasNotSupported), nil
}

// HandleCreateSchema renders CREATE SCHEMA.
func HandleCreateSchema(g *Generator, e expression.Expression) (Result, error) {
	cs, err := As[*expression.CreateSchema](e)
	if err != nil {
		return Result{}, err
	}
	return g.Statements(fmt.Sprintf(g.templates.CreateSchema, g.quoter.QuoteSchemaName(cs.Name))), nil
}

// HandleAlterSchema moves a table to another schema.
func HandleAlterSchema(g *Generator, e expression.Expression) (Result, error) {
	as, err := As[*expression.AlterSchema](e)
	if err != nil {
		return Result{}, err
	}
	return g.Statements(fmt.Sprintf(g.templates.AlterSchema,
		g.quoter.QuoteTableName(as.TableName, as.SourceSchema),
		g.quoter.QuoteSchemaName(as.DestinationSchema))), nil
}

// HandleDeleteSchema renders DROP SCHEMA.
func HandleDeleteSchema(g *Generator, e expression.Expression) (Result, error) {
	ds, err := As[*expression.DeleteSchema](e)
	if err != nil {
		return Result{}, err
	}
	return g.Statements(fmt.Sprintf(g.templates.DropSchema, g.quoter.QuoteSchemaName(ds.Name))), nil
}

// ---------- Sequences ----------

// HandleSequencesUnsupported is wired for sequence kinds when the dialect has no sequences.
func HandleSequencesUnsupported(g *Generator, _ expression.Expression) (Result, error) {
	return g.HandleCompatibility(MsgSequencesNotSupported), nil
}

// HandleCreateSequence renders CREATE SEQUENCE with the optional clauses that are set,
// in fixed order.
func HandleCreateSequence(g *Generator, e expression.Expression) (Result, error) {
	cs, err := As[*expression.CreateSequence](e)
	if err != nil {
		return Result{}, err
	}
	seq := cs.Sequence
	t := g.templates

	var sb strings.Builder
	fmt.Fprintf(&sb, t.CreateSequence, g.quoter.QuoteSequenceName(seq.Name, seq.Schema))
	for _, opt := range []struct {
		tmpl string
		val  *int64
	}{
		{t.SequenceIncrement, seq.Increment},
		{t.SequenceMinValue, seq.MinValue},
		{t.SequenceMaxValue, seq.MaxValue},
		{t.SequenceStartWith, seq.StartWith},
		{t.SequenceCache, seq.Cache},
	} {
		if opt.val != nil {
			fmt.Fprintf(&sb, opt.tmpl, *opt.val)
		}
	}
	if seq.Cycle {
		sb.WriteString(t.SequenceCycle)
	}
	return g.Statements(sb.String()), nil
}

// HandleDeleteSequence renders DROP SEQUENCE.
func HandleDeleteSequence(g *Generator, e expression.Expression) (Result, error) {
	ds, err := As[*expression.DeleteSequence](e)
	if err != nil {
		return Result{}, err
	}
	return g.Statements(fmt.Sprintf(g.templates.DropSequence, g.quoter.QuoteSequenceName(ds.Name, ds.Schema))), nil
}

// ---------- Data ----------

// HandleInsertData renders one INSERT per row. Features are checked once for
// the whole expression.
func HandleInsertData(g *Generator, e expression.Expression) (Result, error) {
	ins, err := As[*expression.InsertData](e)
	if err != nil {
		return Result{}, err
	}
	if res, ok := g.CheckFeatures(ins.Features); !ok {
		return res, nil
	}
	return g.Statements(g.InsertStatements(ins)...), nil
}

// InsertStatements renders one INSERT statement per row, each with its own column order.
func (g *Generator) InsertStatements(ins *expression.InsertData) []string {
	table := g.quoter.QuoteTableName(ins.TableName, ins.Schema)
	stmts := make([]string, len(ins.Rows))
	for i, row := range ins.Rows {
		stmts[i] = fmt.Sprintf(g.templates.Insert, table, g.quoter.QuoteColumnNames(row.Columns()), g.ValueList(row))
	}
	return stmts
}

// ValueList renders the row values in order, comma-joined.
func (g *Generator) ValueList(row expression.Row) string {
	vals := make([]string, len(row))
	for i, p := range row {
		vals[i] = g.quoter.QuoteValue(p.Value)
	}
	return strings.Join(vals, ", ")
}

// SetList renders col = value pairs, comma-joined.
func (g *Generator) SetList(row expression.Row) string {
	pairs := make([]string, len(row))
	for i, p := range row {
		pairs[i] = g.quoter.QuoteColumnName(p.Column) + " = " + g.quoter.QuoteValue(p.Value)
	}
	return strings.Join(pairs, ", ")
}

// WhereClause renders a filter row. Null values compare with IS, everything
// else with =; pairs are ANDed.
func (g *Generator) WhereClause(row expression.Row) string {
	preds := make([]string, len(row))
	for i, p := range row {
		col := g.quoter.QuoteColumnName(p.Column)
		if expression.IsNull(p.Value) {
			preds[i] = col + " IS NULL"
			continue
		}
		preds[i] = col + " = " + g.quoter.QuoteValue(p.Value)
	}
	return strings.Join(preds, " AND ")
}

// HandleUpdateData renders UPDATE .. SET .. WHERE.
func HandleUpdateData(g *Generator, e expression.Expression) (Result, error) {
	up, err := As[*expression.UpdateData](e)
	if err != nil {
		return Result{}, err
	}
	where := AllRowsPredicate
	if !up.AllRows {
		where = g.WhereClause(up.Where)
	}
	return g.Statements(fmt.Sprintf(g.templates.Update,
		g.quoter.QuoteTableName(up.TableName, up.Schema), g.SetList(up.Set), where)), nil
}

// HandleDeleteData renders one DELETE per filter row, or a single all-rows DELETE.
func HandleDeleteData(g *Generator, e expression.Expression) (Result, error) {
	del, err := As[*expression.DeleteData](e)
	if err != nil {
		return Result{}, err
	}
	table := g.quoter.QuoteTableName(del.TableName, del.Schema)
	if del.AllRows {
		return g.Statements(fmt.Sprintf(g.templates.Delete, table, AllRowsPredicate)), nil
	}
	stmts := make([]string, len(del.Rows))
	for i, row := range del.Rows {
		stmts[i] = fmt.Sprintf(g.templates.Delete, table, g.WhereClause(row))
	}
	return g.Statements(stmts...), nil
}

// ---------- Dialect helpers ----------

// Unsupported returns a handler that reports msg through the compatibility mode.
func Unsupported(msg string) Handler {
	return func(g *Generator, _ expression.Expression) (Result, error) {
		return g.HandleCompatibility(msg), nil
	}
}

// AlterColumnActions renders the ALTER COLUMN actions of dialects that change
// type, nullability and default separately. typeKeyword is TYPE or SET DATA TYPE.
func (g *Generator) AlterColumnActions(ac *expression.AlterColumn, typeKeyword string) ([]string, error) {
	col := ac.Column
	typ, err := g.columns.Type(col)
	if err != nil {
		return nil, fmt.Errorf("alter column %s.%s: %w", ac.TableName, col.Name, err)
	}

	prefix := "ALTER COLUMN " + g.quoter.QuoteColumnName(col.Name) + " "
	actions := []string{prefix + typeKeyword + " " + typ}
	if col.IsNullable != nil {
		if *col.IsNullable {
			actions = append(actions, prefix+"DROP NOT NULL")
		} else {
			actions = append(actions, prefix+"SET NOT NULL")
		}
	}
	if col.HasDefault() {
		actions = append(actions, prefix+"SET DEFAULT "+g.quoter.QuoteValue(col.Default))
	}
	return actions, nil
}

// IncludeClause renders " INCLUDE (..)" for dialects supporting covering columns.
func (g *Generator) IncludeClause(idx *expression.Index) string {
	cols := idx.Features.Strings(expression.FeatureIncludeColumns)
	if len(cols) == 0 || !g.IsAdditionalFeatureSupported(expression.FeatureIncludeColumns) {
		return ""
	}
	return " INCLUDE (" + g.quoter.QuoteColumnNames(cols) + ")"
}

// FilterClause renders " WHERE <filter>" for dialects supporting partial indexes.
func (g *Generator) FilterClause(idx *expression.Index) string {
	filter := idx.Features.String(expression.FeatureIndexFilter)
	if filter == "" || !g.IsAdditionalFeatureSupported(expression.FeatureIndexFilter) {
		return ""
	}
	return " WHERE " + filter
}
