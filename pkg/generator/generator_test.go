package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *core.DialectConfig {
	return &core.DialectConfig{
		Name:                 "test",
		SupportsSchemas:      true,
		SupportsSequences:    true,
		SupportsDescriptions: true,
	}
}

func ansiGenerator() *Generator {
	return New(testConfig()).Build()
}

func bareGenerator() *Generator {
	return New(&core.DialectConfig{Name: "bare"}).Build()
}

func bracketGenerator() *Generator {
	return New(&core.DialectConfig{
		Name:        "brackets",
		Identifiers: core.IdentifierConfig{Quote: "[", QuoteEnd: "]", Escape: "]]"},
	}).Build()
}

func TestGenerateBaseline(t *testing.T) {
	fk := &expression.ForeignKey{
		ForeignTable:   "Orders",
		ForeignColumns: []string{"UserId"},
		PrimaryTable:   "Users",
		PrimaryColumns: []string{"Id"},
	}

	tests := []struct {
		name string
		expr expression.Expression
		want string
	}{
		{
			name: "create table",
			expr: &expression.CreateTable{Name: "Users", Columns: []*expression.Column{
				{Name: "Id", Type: expression.Int32, IsPrimaryKey: true, IsIdentity: true, IsNullable: expression.Nullable(false)},
				{Name: "Name", Type: expression.String, Size: 100, IsNullable: expression.Nullable(true), Default: "x"},
			}},
			want: `CREATE TABLE "Users" ("Id" INTEGER GENERATED BY DEFAULT AS IDENTITY NOT NULL PRIMARY KEY, "Name" NVARCHAR(100) NULL DEFAULT 'x')`,
		},
		{
			name: "delete table",
			expr: &expression.DeleteTable{Name: "Users", Schema: "app"},
			want: `DROP TABLE "app"."Users"`,
		},
		{
			name: "rename table",
			expr: &expression.RenameTable{OldName: "Old", NewName: "New", Schema: "app"},
			want: `ALTER TABLE "app"."Old" RENAME TO "New"`,
		},
		{
			name: "create column",
			expr: &expression.CreateColumn{TableName: "Users", Column: &expression.Column{
				Name: "Email", Type: expression.String, IsNullable: expression.Nullable(false),
			}},
			want: `ALTER TABLE "Users" ADD COLUMN "Email" NVARCHAR(255) NOT NULL`,
		},
		{
			name: "alter column",
			expr: &expression.AlterColumn{TableName: "Users", Column: &expression.Column{
				Name: "Email", Type: expression.String, Size: 320,
			}},
			want: `ALTER TABLE "Users" ALTER COLUMN "Email" NVARCHAR(320)`,
		},
		{
			name: "delete columns keep order",
			expr: &expression.DeleteColumn{TableName: "Users", ColumnNames: []string{"B", "A"}},
			want: `ALTER TABLE "Users" DROP COLUMN "B"; ALTER TABLE "Users" DROP COLUMN "A"`,
		},
		{
			name: "rename column",
			expr: &expression.RenameColumn{TableName: "Users", OldName: "Mail", NewName: "Email"},
			want: `ALTER TABLE "Users" RENAME COLUMN "Mail" TO "Email"`,
		},
		{
			name: "delete index",
			expr: &expression.DeleteIndex{Index: &expression.Index{Name: "IX", TableName: "Users", Schema: "app"}},
			want: `DROP INDEX "IX"`,
		},
		{
			name: "unnamed unique constraint",
			expr: &expression.CreateConstraint{Constraint: &expression.Constraint{
				TableName: "Users", Kind: expression.Unique, Columns: []string{"Email"},
			}},
			want: `ALTER TABLE "Users" ADD CONSTRAINT "UC_Users_Email" UNIQUE ("Email")`,
		},
		{
			name: "primary key constraint",
			expr: &expression.CreateConstraint{Constraint: &expression.Constraint{
				Name: "PK_Users", TableName: "Users", Kind: expression.PrimaryKey, Columns: []string{"Id", "Tenant"},
			}},
			want: `ALTER TABLE "Users" ADD CONSTRAINT "PK_Users" PRIMARY KEY ("Id", "Tenant")`,
		},
		{
			name: "delete constraint",
			expr: &expression.DeleteConstraint{Constraint: &expression.Constraint{Name: "UC_X", TableName: "Users"}},
			want: `ALTER TABLE "Users" DROP CONSTRAINT "UC_X"`,
		},
		{
			name: "create foreign key",
			expr: &expression.CreateForeignKey{ForeignKey: fk},
			want: `ALTER TABLE "Orders" ADD CONSTRAINT "FK_Orders_UserId_Users_Id" FOREIGN KEY ("UserId") REFERENCES "Users" ("Id")`,
		},
		{
			name: "delete foreign key derives name",
			expr: &expression.DeleteForeignKey{ForeignKey: fk},
			want: `ALTER TABLE "Orders" DROP CONSTRAINT "FK_Orders_UserId_Users_Id"`,
		},
		{
			name: "create schema",
			expr: &expression.CreateSchema{Name: "app"},
			want: `CREATE SCHEMA "app"`,
		},
		{
			name: "alter schema",
			expr: &expression.AlterSchema{SourceSchema: "dbo", TableName: "Users", DestinationSchema: "app"},
			want: `ALTER TABLE "dbo"."Users" SET SCHEMA "app"`,
		},
		{
			name: "delete schema",
			expr: &expression.DeleteSchema{Name: "app"},
			want: `DROP SCHEMA "app"`,
		},
		{
			name: "sequence with every clause",
			expr: &expression.CreateSequence{Sequence: &expression.Sequence{
				Name: "Seq", Schema: "s",
				Increment: expression.Int64Ptr(2), MinValue: expression.Int64Ptr(1), MaxValue: expression.Int64Ptr(100),
				StartWith: expression.Int64Ptr(5), Cache: expression.Int64Ptr(10), Cycle: true,
			}},
			want: `CREATE SEQUENCE "s"."Seq" INCREMENT 2 MINVALUE 1 MAXVALUE 100 START WITH 5 CACHE 10 CYCLE`,
		},
		{
			name: "delete sequence",
			expr: &expression.DeleteSequence{Name: "Seq"},
			want: `DROP SEQUENCE "Seq"`,
		},
		{
			name: "update with null filter",
			expr: &expression.UpdateData{
				TableName: "Users",
				Set:       expression.Row{}.Add("Name", "x"),
				Where:     expression.Row{}.Add("Id", 1).Add("Deleted", nil),
			},
			want: `UPDATE "Users" SET "Name" = 'x' WHERE "Id" = 1 AND "Deleted" IS NULL`,
		},
		{
			name: "update all rows",
			expr: &expression.UpdateData{TableName: "Users", Set: expression.Row{}.Add("Active", true), AllRows: true},
			want: `UPDATE "Users" SET "Active" = 1 WHERE 1 = 1`,
		},
		{
			name: "delete per row",
			expr: &expression.DeleteData{TableName: "Users", Rows: []expression.Row{
				expression.Row{}.Add("Id", 1),
				expression.Row{}.Add("Name", expression.DBNull),
			}},
			want: `DELETE FROM "Users" WHERE "Id" = 1; DELETE FROM "Users" WHERE "Name" IS NULL`,
		},
	}

	g := ansiGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := g.Generate(tt.expr)
			require.NoError(t, err)
			assert.False(t, res.IsCompatibilityError())
			assert.Equal(t, tt.want, res.SQL)
		})
	}
}

func TestInsertDataRowsJoinedBySeparator(t *testing.T) {
	ins := &expression.InsertData{TableName: "TestTable1", Rows: []expression.Row{
		expression.Row{}.Add("Id", 1).Add("Name", "Just'in").Add("Website", "codethinked.com"),
		expression.Row{}.Add("Id", 2).Add("Name", `Na\te`).Add("Website", "kohari.org"),
	}}

	sql, err := ansiGenerator().GenerateSQL(ins)
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO "TestTable1" ("Id", "Name", "Website") VALUES (1, 'Just''in', 'codethinked.com'); `+
			`INSERT INTO "TestTable1" ("Id", "Name", "Website") VALUES (2, 'Na\te', 'kohari.org')`,
		sql)
	assert.Equal(t, 1, strings.Count(sql, "; "))
}

func TestInsertDataRowOrderIsPerRow(t *testing.T) {
	ins := &expression.InsertData{TableName: "T", Rows: []expression.Row{
		expression.Row{}.Add("A", 1).Add("B", 2),
		expression.Row{}.Add("B", 3).Add("A", 4),
		expression.Row{}.Add("C", 5),
	}}

	res, err := ansiGenerator().Generate(ins)
	require.NoError(t, err)

	stmts := strings.Split(res.SQL, "; ")
	require.Len(t, stmts, 3)
	assert.Equal(t, `INSERT INTO "T" ("A", "B") VALUES (1, 2)`, stmts[0])
	assert.Equal(t, `INSERT INTO "T" ("B", "A") VALUES (3, 4)`, stmts[1])
	assert.Equal(t, `INSERT INTO "T" ("C") VALUES (5)`, stmts[2])
}

func TestDeleteAllRowsUnderBrackets(t *testing.T) {
	sql, err := bracketGenerator().GenerateSQL(&expression.DeleteData{TableName: "TestTable1", AllRows: true})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM [TestTable1] WHERE 1 = 1", sql)
}

func TestCreateSequenceIncrementAndCycleOnly(t *testing.T) {
	seq := &expression.CreateSequence{Sequence: &expression.Sequence{
		Name: "Sequence", Increment: expression.Int64Ptr(1), Cycle: true,
	}}

	sql, err := ansiGenerator().GenerateSQL(seq)
	require.NoError(t, err)
	assert.Equal(t, `CREATE SEQUENCE "Sequence" INCREMENT 1 CYCLE`, sql)
}

func TestCreateIndexColumnOrderAndDirection(t *testing.T) {
	idx := &expression.Index{
		Name:      "IX_Users",
		TableName: "Users",
		IsUnique:  true,
		Columns: []expression.IndexColumn{
			{Name: "LastName", Direction: expression.Descending},
			{Name: "FirstName", Direction: expression.Ascending},
			{Name: "Age", Direction: expression.Descending},
		},
	}

	sql, err := ansiGenerator().GenerateSQL(&expression.CreateIndex{Index: idx})
	require.NoError(t, err)
	assert.Equal(t, `CREATE UNIQUE INDEX "IX_Users" ON "Users" ("LastName" DESC, "FirstName" ASC, "Age" DESC)`, sql)
}

func TestWhereClauseNullComparisons(t *testing.T) {
	g := ansiGenerator()

	tests := []struct {
		name string
		row  expression.Row
		want string
	}{
		{"nil uses IS", expression.Row{}.Add("A", nil), `"A" IS NULL`},
		{"dbnull uses IS", expression.Row{}.Add("A", expression.DBNull), `"A" IS NULL`},
		{"value uses equals", expression.Row{}.Add("A", "x"), `"A" = 'x'`},
		{"zero is not null", expression.Row{}.Add("A", 0), `"A" = 0`},
		{"mixed", expression.Row{}.Add("A", 1).Add("B", nil), `"A" = 1 AND "B" IS NULL`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.WhereClause(tt.row)
			assert.Equal(t, tt.want, got)
			if strings.Contains(tt.want, "IS NULL") {
				assert.NotContains(t, got, "= NULL")
			}
		})
	}
}

func TestStrictModeUnsupportedFeatures(t *testing.T) {
	col := &expression.Column{Name: "Name", Type: expression.String}
	col.Features.Set("made_up", true)
	col.Features.Set("another", 1)
	ct := &expression.CreateTable{Name: "Users", Columns: []*expression.Column{col}}

	strict := ansiGenerator().WithMode(core.Strict)
	res, err := strict.Generate(ct)
	require.NoError(t, err)
	require.True(t, res.IsCompatibilityError())
	assert.Equal(t,
		"The following database specific additional features are not supported in strict mode [another, made_up]",
		res.Compat.Message)
	assert.Equal(t, expression.KindCreateTable, res.Compat.Kind)
	assert.Equal(t, "test", res.Compat.Dialect)
	assert.Empty(t, res.SQL)

	sql, err := strict.GenerateSQL(ct)
	require.NoError(t, err)
	assert.Equal(t, res.Compat.Message, sql)

	loose := ansiGenerator()
	res, err = loose.Generate(ct)
	require.NoError(t, err)
	assert.False(t, res.IsCompatibilityError())
	assert.NotContains(t, res.SQL, "made_up")
	assert.Equal(t, `CREATE TABLE "Users" ("Name" NVARCHAR(255))`, res.SQL)
}

func TestStrictModeChecksEveryScope(t *testing.T) {
	strict := ansiGenerator().WithMode(core.Strict)

	idx := &expression.Index{Name: "IX", TableName: "T", Columns: []expression.IndexColumn{{Name: "A"}}}
	idx.Features.Set(expression.FeatureIndexFilter, "A > 0")

	ins := &expression.InsertData{TableName: "T", Rows: []expression.Row{expression.Row{}.Add("A", 1)}}
	ins.Features.Set(expression.FeatureIdentityInsert, true)

	col := &expression.Column{Name: "A", Type: expression.Int32}
	col.Features.Set(expression.FeatureIdentitySeed, 5)

	for _, e := range []expression.Expression{
		&expression.CreateIndex{Index: idx},
		ins,
		&expression.CreateColumn{TableName: "T", Column: col},
		&expression.AlterColumn{TableName: "T", Column: col},
	} {
		t.Run(e.Kind().String(), func(t *testing.T) {
			res, err := strict.Generate(e)
			require.NoError(t, err)
			require.True(t, res.IsCompatibilityError())
			assert.Contains(t, res.Compat.Message, UnsupportedFeaturesMessage)
		})
	}
}

func TestSupportedFeaturePassesStrictMode(t *testing.T) {
	g := New(testConfig()).Features(expression.FeatureColumnCollation).Mode(core.Strict).Build()

	col := &expression.Column{Name: "Name", Type: expression.String}
	col.Features.Set(expression.FeatureColumnCollation, "nocase")

	sql, err := g.GenerateSQL(&expression.CreateColumn{TableName: "T", Column: col})
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "T" ADD COLUMN "Name" NVARCHAR(255) COLLATE nocase`, sql)
	assert.True(t, g.IsAdditionalFeatureSupported(expression.FeatureColumnCollation))
	assert.Equal(t, []expression.Feature{expression.FeatureColumnCollation}, g.SupportedFeatures())
}

func TestUnsupportedCapabilities(t *testing.T) {
	exprs := []struct {
		expr expression.Expression
		msg  string
	}{
		{&expression.CreateSchema{Name: "app"}, MsgSchemasNotSupported},
		{&expression.AlterSchema{TableName: "T", DestinationSchema: "app"}, MsgSchemasNotSupported},
		{&expression.DeleteSchema{Name: "app"}, MsgSchemasNotSupported},
		{&expression.CreateSequence{Sequence: &expression.Sequence{Name: "S"}}, MsgSequencesNotSupported},
		{&expression.DeleteSequence{Name: "S"}, MsgSequencesNotSupported},
	}

	for _, tt := range exprs {
		t.Run(tt.expr.Kind().String(), func(t *testing.T) {
			strict := bareGenerator().WithMode(core.Strict)
			res, err := strict.Generate(tt.expr)
			require.NoError(t, err)
			require.NotNil(t, res.Compat)
			assert.Equal(t, tt.msg, res.Compat.Message)

			res, err = bareGenerator().Generate(tt.expr)
			require.NoError(t, err)
			assert.True(t, res.IsEmpty())
		})
	}

	g := bareGenerator()
	assert.False(t, g.Supports(expression.KindCreateSchema))
	assert.False(t, g.Supports(expression.KindCreateSequence))
	assert.True(t, g.Supports(expression.KindCreateTable))
}

func TestReject(t *testing.T) {
	b := New(testConfig()).
		Reject("no renames", expression.KindRenameTable, expression.KindRenameColumn).
		Reject("no schema moves", expression.KindCreateIndex)
	b.Handle(expression.KindCreateIndex, HandleCreateIndex)
	g := b.Build()

	assert.False(t, g.Supports(expression.KindRenameTable))
	assert.False(t, g.Supports(expression.KindRenameColumn))
	assert.True(t, g.Supports(expression.KindCreateIndex), "a later Handle wins")

	res, err := g.WithMode(core.Strict).Generate(&expression.RenameTable{OldName: "a", NewName: "b"})
	require.NoError(t, err)
	require.NotNil(t, res.Compat)
	assert.Equal(t, "no renames", res.Compat.Message)
}

func TestWithModeReturnsCopy(t *testing.T) {
	g := ansiGenerator()
	strict := g.WithMode(core.Strict)

	assert.Equal(t, core.Loose, g.CompatibilityMode())
	assert.Equal(t, core.Strict, strict.CompatibilityMode())
	assert.NotSame(t, g, strict)
}

func TestValidationError(t *testing.T) {
	_, err := ansiGenerator().Generate(&expression.CreateTable{})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, expression.KindCreateTable, verr.Kind)
	assert.Equal(t, []string{expression.ErrTableNameEmpty, expression.ErrNoColumns}, verr.Errors)
	assert.Contains(t, err.Error(), "invalid create_table expression")
}

func TestDeleteForeignKeyWithoutTableIsUsageError(t *testing.T) {
	for _, e := range []*expression.DeleteForeignKey{
		{ForeignKey: &expression.ForeignKey{Name: "FK_Orders_Users"}},
		{},
	} {
		_, err := ansiGenerator().Generate(e)
		var uerr *UsageError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, expression.KindDeleteForeignKey, uerr.Kind)
	}
}

func TestUnsupportedTypeIsError(t *testing.T) {
	g := New(testConfig()).Types(NewTypeMap().Set(expression.Int32, "INT")).Build()

	_, err := g.Generate(&expression.CreateTable{Name: "T", Columns: []*expression.Column{
		{Name: "Doc", Type: expression.Xml},
	}})
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "create table T")
}

func TestGenerateAll(t *testing.T) {
	g := ansiGenerator()
	results, err := g.GenerateAll([]expression.Expression{
		&expression.CreateSchema{Name: "app"},
		&expression.DeleteSchema{Name: "app"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, `DROP SCHEMA "app"`, results[1].SQL)

	_, err = g.GenerateAll([]expression.Expression{&expression.CreateSchema{Name: "app"}, &expression.DeleteTable{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expression 2")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = g.Generate(nil)
	require.Error(t, err)
}

func TestBuilderOverrides(t *testing.T) {
	called := false
	g := New(testConfig()).
		Templates(func(tpl *Templates) { tpl.AddColumn = "ALTER TABLE %s ADD %s" }).
		Handle(expression.KindDeleteTable, func(g *Generator, e expression.Expression) (Result, error) {
			called = true
			res, err := HandleDeleteTable(g, e)
			res.SQL += " CASCADE"
			return res, err
		}).
		IndexTokens(nil, func(*expression.Index) string { return "CLUSTERED " }).
		Build()

	sql, err := g.GenerateSQL(&expression.DeleteTable{Name: "T"})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, `DROP TABLE "T" CASCADE`, sql)

	sql, err = g.GenerateSQL(&expression.CreateColumn{TableName: "T", Column: &expression.Column{Name: "A", Type: expression.Int32}})
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "T" ADD "A" INTEGER`, sql)

	idx := &expression.Index{Name: "IX", TableName: "T", IsUnique: true, Columns: []expression.IndexColumn{{Name: "A"}}}
	sql, err = g.GenerateSQL(&expression.CreateIndex{Index: idx})
	require.NoError(t, err)
	assert.Equal(t, `CREATE UNIQUE CLUSTERED INDEX "IX" ON "T" ("A" ASC)`, sql)
}

func TestDescriptionsAppendedToCreateTable(t *testing.T) {
	ct := &expression.CreateTable{
		Name:        "Users",
		Description: "app users",
		Columns:     []*expression.Column{{Name: "Id", Type: expression.Int32, Description: "key"}},
	}

	sql, err := ansiGenerator().GenerateSQL(ct)
	require.NoError(t, err)
	assert.Equal(t,
		`CREATE TABLE "Users" ("Id" INTEGER); COMMENT ON TABLE "Users" IS 'app users'; COMMENT ON COLUMN "Users"."Id" IS 'key'`,
		sql)

	sql, err = bareGenerator().GenerateSQL(ct)
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "Users" ("Id" INTEGER)`, sql)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "SELECT 1", Result{SQL: "SELECT 1"}.String())
	assert.Equal(t, "nope", Result{Compat: &CompatibilityError{Message: "nope"}}.String())
	assert.True(t, Result{}.IsEmpty())
}

func TestStatementsKeepParts(t *testing.T) {
	g := ansiGenerator()
	res := g.Statements("DROP TABLE a", "", "DROP TABLE b")
	assert.Equal(t, []string{"DROP TABLE a", "DROP TABLE b"}, res.Parts)
	assert.Equal(t, "DROP TABLE a"+g.Separator()+"DROP TABLE b", res.SQL)
}

func TestUnmappedSystemMethodInData(t *testing.T) {
	g := New(testConfig()).Build()
	now := New(&core.DialectConfig{
		Name:   "mapped",
		Values: core.ValueConfig{SystemMethods: map[string]string{string(expression.CurrentDateTime): "now()"}},
	}).Build()

	tests := []struct {
		name string
		expr expression.Expression
	}{
		{"insert", &expression.InsertData{TableName: "T", Rows: []expression.Row{
			expression.Row{}.Add("At", expression.CurrentDateTime),
		}}},
		{"update set", &expression.UpdateData{TableName: "T", Set: expression.Row{}.Add("At", expression.CurrentDateTime), AllRows: true}},
		{"update where", &expression.UpdateData{TableName: "T", Set: expression.Row{}.Add("A", 1), Where: expression.Row{}.Add("At", expression.CurrentDateTime)}},
		{"delete", &expression.DeleteData{TableName: "T", Rows: []expression.Row{expression.Row{}.Add("At", expression.CurrentDateTime)}}},
		{"alter column", &expression.AlterColumn{TableName: "T", Column: &expression.Column{Name: "At", Type: expression.DateTime, Default: expression.CurrentDateTime}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Generate(tt.expr)
			require.ErrorIs(t, err, ErrUnsupportedSystemMethod)

			res, err := now.Generate(tt.expr)
			require.NoError(t, err)
			assert.Contains(t, res.SQL, "now()")
		})
	}
}

func TestCreateColumnAddsInlineForeignKey(t *testing.T) {
	cc := &expression.CreateColumn{TableName: "Orders", Column: &expression.Column{
		Name: "UserId", Type: expression.Int32,
		ForeignKey: &expression.ForeignKey{PrimaryTable: "Users", PrimaryColumns: []string{"Id"}, OnDelete: expression.RuleCascade},
	}}

	res, err := ansiGenerator().Generate(cc)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`ALTER TABLE "Orders" ADD COLUMN "UserId" INTEGER`,
		`ALTER TABLE "Orders" ADD CONSTRAINT "FK_Orders_UserId_Users_Id" FOREIGN KEY ("UserId") REFERENCES "Users" ("Id") ON DELETE CASCADE`,
	}, res.Parts)

	noFK := New(testConfig()).Reject("no foreign keys", expression.KindCreateForeignKey).Build()
	res, err = noFK.WithMode(core.Strict).Generate(cc)
	require.NoError(t, err)
	require.NotNil(t, res.Compat)
	assert.Equal(t, "no foreign keys", res.Compat.Message)
	assert.Equal(t, expression.KindCreateColumn, res.Compat.Kind)

	res, err = noFK.Generate(cc)
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "Orders" ADD COLUMN "UserId" INTEGER`, res.SQL)
}

func TestInlineForeignKeyWithoutPrimaryColumns(t *testing.T) {
	_, err := ansiGenerator().Generate(&expression.CreateTable{Name: "Orders", Columns: []*expression.Column{
		{Name: "UserId", Type: expression.Int32, ForeignKey: &expression.ForeignKey{PrimaryTable: "Users"}},
	}})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{expression.ErrPrimaryColumnsEmpty}, verr.Errors)
}
