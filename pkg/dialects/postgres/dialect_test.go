package postgres

import (
	"testing"

	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	g := Postgres

	require.NotNil(t, g)
	assert.Equal(t, "postgres", g.Name())
	assert.Equal(t, "public", Config.DefaultSchema)
	assert.True(t, g.Supports(expression.KindAlterSchema))
	assert.True(t, g.Supports(expression.KindDeleteSequence))
	assert.Equal(t, []expression.Feature{
		expression.FeatureColumnCollation,
		expression.FeatureIdentityGeneration,
		expression.FeatureIncludeColumns,
		expression.FeatureIndexFilter,
		expression.FeatureIndexMethod,
	}, g.SupportedFeatures())
}

func TestDialectRegistration(t *testing.T) {
	for _, name := range []string{"postgres", "PostgreSQL", "pg"} {
		g, err := generator.Resolve(name)
		require.NoError(t, err, name)
		assert.Same(t, Postgres, g)
	}
}

func TestGenerate(t *testing.T) {
	id := &expression.Column{Name: "id", Type: expression.Int64, IsIdentity: true, IsPrimaryKey: true}
	id.Features.Set(expression.FeatureIdentityGeneration, "always")

	idx := &expression.Index{
		Name: "ix_users_tags", TableName: "users", Schema: "app",
		Columns: []expression.IndexColumn{{Name: "tags"}},
	}
	idx.Features.Set(expression.FeatureIndexMethod, "gin")
	idx.Features.Set(expression.FeatureIndexFilter, "deleted_at IS NULL")

	tests := []struct {
		name string
		expr expression.Expression
		want string
	}{
		{
			name: "create table with comments",
			expr: &expression.CreateTable{
				Name: "users", Schema: "app", Description: "accounts",
				Columns: []*expression.Column{
					id,
					{Name: "email", Type: expression.String, Size: 320, IsNullable: expression.Nullable(false), Description: "login"},
					{Name: "created_at", Type: expression.DateTimeOffset, Default: expression.CurrentDateTime},
				},
			},
			want: `CREATE TABLE "app"."users" ("id" BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY, ` +
				`"email" VARCHAR(320) NOT NULL, "created_at" TIMESTAMPTZ DEFAULT now()); ` +
				`COMMENT ON TABLE "app"."users" IS 'accounts'; ` +
				`COMMENT ON COLUMN "app"."users"."email" IS 'login'`,
		},
		{
			name: "alter column",
			expr: &expression.AlterColumn{TableName: "users", Schema: "app", Column: &expression.Column{
				Name: "email", Type: expression.AnsiString, Size: 100, IsNullable: expression.Nullable(true), Default: "n/a",
			}},
			want: `ALTER TABLE "app"."users" ALTER COLUMN "email" TYPE VARCHAR(100), ` +
				`ALTER COLUMN "email" DROP NOT NULL, ALTER COLUMN "email" SET DEFAULT 'n/a'`,
		},
		{
			name: "partial index with method",
			expr: &expression.CreateIndex{Index: idx},
			want: `CREATE INDEX "ix_users_tags" ON "app"."users" USING gin ("tags" ASC) WHERE deleted_at IS NULL`,
		},
		{
			name: "drop index is schema qualified",
			expr: &expression.DeleteIndex{Index: &expression.Index{Name: "ix_users_tags", TableName: "users", Schema: "app"}},
			want: `DROP INDEX "app"."ix_users_tags"`,
		},
		{
			name: "move table to schema",
			expr: &expression.AlterSchema{SourceSchema: "public", TableName: "users", DestinationSchema: "app"},
			want: `ALTER TABLE "public"."users" SET SCHEMA "app"`,
		},
		{
			name: "sequence",
			expr: &expression.CreateSequence{Sequence: &expression.Sequence{
				Name: "order_no", Schema: "app", Increment: expression.Int64Ptr(1), MinValue: expression.Int64Ptr(1),
				MaxValue: expression.Int64Ptr(9999), StartWith: expression.Int64Ptr(1), Cache: expression.Int64Ptr(10), Cycle: true,
			}},
			want: `CREATE SEQUENCE "app"."order_no" INCREMENT 1 MINVALUE 1 MAXVALUE 9999 START WITH 1 CACHE 10 CYCLE`,
		},
		{
			name: "insert booleans and bytea",
			expr: &expression.InsertData{TableName: "files", Rows: []expression.Row{
				expression.Row{}.Add("public", false).Add("body", []byte{0xca, 0xfe}),
			}},
			want: `INSERT INTO "files" ("public", "body") VALUES (FALSE, '\xcafe')`,
		},
		{
			name: "drop foreign key",
			expr: &expression.DeleteForeignKey{ForeignKey: &expression.ForeignKey{
				ForeignTable: "orders", ForeignColumns: []string{"user_id"}, PrimaryTable: "users", PrimaryColumns: []string{"id"},
			}},
			want: `ALTER TABLE "orders" DROP CONSTRAINT "FK_orders_user_id_users_id"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := Postgres.GenerateSQL(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestStrictRejectsForeignFeatures(t *testing.T) {
	ins := &expression.InsertData{TableName: "users", Rows: []expression.Row{expression.Row{}.Add("id", 1)}}
	ins.Features.Set(expression.FeatureIdentityInsert, true)

	res, err := Postgres.WithMode(core.Strict).Generate(ins)
	require.NoError(t, err)
	require.True(t, res.IsCompatibilityError())
	assert.Equal(t, generator.UnsupportedFeaturesMessage+" [identity_insert]", res.Compat.Message)

	res, err = Postgres.Generate(ins)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("id") VALUES (1)`, res.SQL)
}
