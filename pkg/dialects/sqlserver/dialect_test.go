package sqlserver

import (
	"testing"

	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectRegistration(t *testing.T) {
	tests := []struct {
		name string
		want *generator.Generator
	}{
		{"sqlserver2000", SQLServer2000},
		{"SqlServer2005", SQLServer2005},
		{"sqlserver2008", SQLServer2008},
		{"sqlserver2012", SQLServer2012},
		{"sqlserver", SQLServer2012},
		{"mssql", SQLServer2012},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := generator.Resolve(tt.name)
			require.NoError(t, err)
			assert.Same(t, tt.want, g)
		})
	}
}

func TestCapabilities(t *testing.T) {
	assert.False(t, SQLServer2000.Supports(expression.KindCreateSchema))
	assert.True(t, SQLServer2005.Supports(expression.KindCreateSchema))
	assert.False(t, SQLServer2008.Supports(expression.KindCreateSequence))
	assert.True(t, SQLServer2012.Supports(expression.KindCreateSequence))

	assert.False(t, SQLServer2000.IsAdditionalFeatureSupported(expression.FeatureIncludeColumns))
	assert.True(t, SQLServer2005.IsAdditionalFeatureSupported(expression.FeatureIncludeColumns))
	assert.False(t, SQLServer2005.IsAdditionalFeatureSupported(expression.FeatureIndexFilter))
	assert.True(t, SQLServer2008.IsAdditionalFeatureSupported(expression.FeatureIndexFilter))
	assert.True(t, SQLServer2012.IsAdditionalFeatureSupported(expression.FeatureIdentityInsert))
}

func usersTable() *expression.CreateTable {
	id := &expression.Column{Name: "Id", Type: expression.Int32, IsIdentity: true, IsPrimaryKey: true, IsNullable: expression.Nullable(false)}
	id.Features.Set(expression.FeatureIdentitySeed, 100)
	id.Features.Set(expression.FeatureIdentityIncrement, 10)
	return &expression.CreateTable{
		Name:        "Users",
		Schema:      "dbo",
		Description: "people",
		Columns: []*expression.Column{
			id,
			{Name: "Name", Type: expression.String, Size: 100, IsNullable: expression.Nullable(false), Default: "anon"},
			{Name: "Key", Type: expression.Guid, Default: expression.NewGuid},
		},
	}
}

func TestGenerate(t *testing.T) {
	filtered := &expression.Index{
		Name: "IX_Name", TableName: "Users", Schema: "dbo", IsUnique: true,
		Columns: []expression.IndexColumn{{Name: "Name"}},
	}
	filtered.Features.Set(expression.FeatureIncludeColumns, []string{"Email"})
	filtered.Features.Set(expression.FeatureIndexFilter, "[Name] IS NOT NULL")

	identityInsert := &expression.InsertData{
		TableName: "Users",
		Schema:    "dbo",
		Rows: []expression.Row{
			expression.Row{}.Add("Id", 1).Add("Name", "Just'in"),
			expression.Row{}.Add("Id", 2).Add("Name", `Na\te`),
		},
	}
	identityInsert.Features.Set(expression.FeatureIdentityInsert, true)

	tests := []struct {
		name string
		g    *generator.Generator
		expr expression.Expression
		want string
	}{
		{
			name: "create table with identity and description",
			g:    SQLServer2012,
			expr: usersTable(),
			want: "CREATE TABLE [dbo].[Users] ([Id] INT IDENTITY(100,10) NOT NULL PRIMARY KEY, " +
				"[Name] NVARCHAR(100) NOT NULL DEFAULT N'anon', [Key] UNIQUEIDENTIFIER DEFAULT NEWID()); " +
				"EXEC sys.sp_addextendedproperty @name = N'MS_Description', @value = N'people', " +
				"@level0type = N'SCHEMA', @level0name = N'dbo', @level1type = N'TABLE', @level1name = N'Users'",
		},
		{
			name: "sql server 2000 has no descriptions",
			g:    SQLServer2000,
			expr: usersTable(),
			want: "CREATE TABLE [dbo].[Users] ([Id] INT IDENTITY(100,10) NOT NULL PRIMARY KEY, " +
				"[Name] NVARCHAR(100) NOT NULL DEFAULT N'anon', [Key] UNIQUEIDENTIFIER DEFAULT NEWID())",
		},
		{
			name: "delete all rows",
			g:    SQLServer2005,
			expr: &expression.DeleteData{TableName: "TestTable1", AllRows: true},
			want: "DELETE FROM [TestTable1] WHERE 1 = 1",
		},
		{
			name: "identity insert wraps every row",
			g:    SQLServer2012,
			expr: identityInsert,
			want: "SET IDENTITY_INSERT [dbo].[Users] ON; " +
				"INSERT INTO [dbo].[Users] ([Id], [Name]) VALUES (1, N'Just''in'); " +
				`INSERT INTO [dbo].[Users] ([Id], [Name]) VALUES (2, N'Na\te'); ` +
				"SET IDENTITY_INSERT [dbo].[Users] OFF",
		},
		{
			name: "add column without COLUMN keyword",
			g:    SQLServer2000,
			expr: &expression.CreateColumn{TableName: "Users", Column: &expression.Column{Name: "Age", Type: expression.Int32, IsNullable: expression.Nullable(true)}},
			want: "ALTER TABLE [Users] ADD [Age] INT NULL",
		},
		{
			name: "alter column moves default to a constraint",
			g:    SQLServer2008,
			expr: &expression.AlterColumn{TableName: "Users", Column: &expression.Column{
				Name: "Name", Type: expression.String, Size: 200, IsNullable: expression.Nullable(false), Default: "x",
			}},
			want: "ALTER TABLE [Users] ALTER COLUMN [Name] NVARCHAR(200) NOT NULL; " +
				"ALTER TABLE [Users] ADD CONSTRAINT [DF_Users_Name] DEFAULT N'x' FOR [Name]",
		},
		{
			name: "rename table",
			g:    SQLServer2005,
			expr: &expression.RenameTable{OldName: "Users", NewName: "People", Schema: "dbo"},
			want: "EXEC sp_rename N'[dbo].[Users]', N'People'",
		},
		{
			name: "rename column",
			g:    SQLServer2005,
			expr: &expression.RenameColumn{TableName: "Users", OldName: "Name", NewName: "FullName"},
			want: "EXEC sp_rename N'[Users].[Name]', N'FullName', N'COLUMN'",
		},
		{
			name: "clustered index",
			g:    SQLServer2000,
			expr: &expression.CreateIndex{Index: &expression.Index{
				Name: "IX_Id", TableName: "Users", IsClustered: true,
				Columns: []expression.IndexColumn{{Name: "Id", Direction: expression.Descending}},
			}},
			want: "CREATE CLUSTERED INDEX [IX_Id] ON [Users] ([Id] DESC)",
		},
		{
			name: "filtered covering index",
			g:    SQLServer2008,
			expr: &expression.CreateIndex{Index: filtered},
			want: "CREATE UNIQUE NONCLUSTERED INDEX [IX_Name] ON [dbo].[Users] ([Name] ASC) INCLUDE ([Email]) WHERE [Name] IS NOT NULL",
		},
		{
			name: "loose 2005 drops the filter",
			g:    SQLServer2005,
			expr: &expression.CreateIndex{Index: filtered},
			want: "CREATE UNIQUE NONCLUSTERED INDEX [IX_Name] ON [dbo].[Users] ([Name] ASC) INCLUDE ([Email])",
		},
		{
			name: "drop index 2000",
			g:    SQLServer2000,
			expr: &expression.DeleteIndex{Index: &expression.Index{Name: "IX_Name", TableName: "Users"}},
			want: "DROP INDEX [Users].[IX_Name]",
		},
		{
			name: "drop index 2005",
			g:    SQLServer2005,
			expr: &expression.DeleteIndex{Index: &expression.Index{Name: "IX_Name", TableName: "Users", Schema: "dbo"}},
			want: "DROP INDEX [IX_Name] ON [dbo].[Users]",
		},
		{
			name: "transfer schema",
			g:    SQLServer2005,
			expr: &expression.AlterSchema{SourceSchema: "dbo", TableName: "Users", DestinationSchema: "app"},
			want: "ALTER SCHEMA [app] TRANSFER [dbo].[Users]",
		},
		{
			name: "sequence",
			g:    SQLServer2012,
			expr: &expression.CreateSequence{Sequence: &expression.Sequence{Name: "Seq", Schema: "dbo", Increment: expression.Int64Ptr(1), Cycle: true}},
			want: "CREATE SEQUENCE [dbo].[Seq] INCREMENT BY 1 CYCLE",
		},
		{
			name: "update with null filter",
			g:    SQLServer2012,
			expr: &expression.UpdateData{
				TableName: "Users",
				Set:       expression.Row{}.Add("Active", true),
				Where:     expression.Row{}.Add("Name", "x").Add("DeletedAt", expression.DBNull),
			},
			want: "UPDATE [Users] SET [Active] = 1 WHERE [Name] = N'x' AND [DeletedAt] IS NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.g.Generate(tt.expr)
			require.NoError(t, err)
			require.False(t, res.IsCompatibilityError(), res.String())
			assert.Equal(t, tt.want, res.SQL)
		})
	}
}

func TestStrictCompatibility(t *testing.T) {
	idx := &expression.Index{Name: "IX", TableName: "Users", Columns: []expression.IndexColumn{{Name: "A"}}}
	idx.Features.Set(expression.FeatureIndexFilter, "[A] > 0")

	tests := []struct {
		name string
		g    *generator.Generator
		expr expression.Expression
		want string
	}{
		{"filter before 2008", SQLServer2005, &expression.CreateIndex{Index: idx},
			generator.UnsupportedFeaturesMessage + " [index_filter]"},
		{"schemas before 2005", SQLServer2000, &expression.CreateSchema{Name: "app"}, generator.MsgSchemasNotSupported},
		{"sequences before 2012", SQLServer2008, &expression.DeleteSequence{Name: "Seq"}, generator.MsgSequencesNotSupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.g.WithMode(core.Strict).Generate(tt.expr)
			require.NoError(t, err)
			require.True(t, res.IsCompatibilityError())
			assert.Equal(t, tt.want, res.Compat.Message)
			assert.Equal(t, tt.g.Name(), res.Compat.Dialect)
		})
	}
}

func TestTypesByRelease(t *testing.T) {
	col := &expression.Column{Name: "At", Type: expression.DateTimeOffset}

	_, err := SQLServer2000.Generate(&expression.CreateColumn{TableName: "T", Column: col})
	require.ErrorIs(t, err, generator.ErrUnsupportedType)

	sql, err := SQLServer2008.GenerateSQL(&expression.CreateColumn{TableName: "T", Column: col})
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE [T] ADD [At] DATETIMEOFFSET", sql)

	tests := []struct {
		g    *generator.Generator
		size int
		want string
	}{
		{SQLServer2000, 5000, "NTEXT"},
		{SQLServer2005, 5000, "NVARCHAR(MAX)"},
		{SQLServer2005, 4000, "NVARCHAR(4000)"},
	}
	for _, tt := range tests {
		got, err := tt.g.Columns().Type(&expression.Column{Type: expression.String, Size: tt.size})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.g.Name())
	}
}

func TestSystemMethodsByRelease(t *testing.T) {
	assert.Equal(t, "GETDATE()", SQLServer2005.Quoter().QuoteValue(expression.CurrentDateTime))
	assert.Equal(t, "SYSDATETIME()", SQLServer2008.Quoter().QuoteValue(expression.CurrentDateTime))
	assert.Equal(t, "NEWSEQUENTIALID()", SQLServer2012.Quoter().QuoteValue(expression.NewSequentialID))
}
