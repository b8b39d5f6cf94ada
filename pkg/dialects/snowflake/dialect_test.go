package snowflake

import (
	"testing"

	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectRegistration(t *testing.T) {
	d, err := generator.Resolve("Snowflake")
	require.NoError(t, err)
	assert.Same(t, Snowflake, d)
}

func TestGenerate(t *testing.T) {
	identity := &expression.Column{Name: "ID", Type: expression.Int64, IsIdentity: true, IsPrimaryKey: true}
	identity.Features.Set(expression.FeatureIdentitySeed, 100)
	identity.Features.Set(expression.FeatureIdentityIncrement, 10)

	tests := []struct {
		name string
		expr expression.Expression
		want string
	}{
		{
			name: "autoincrement identity",
			expr: &expression.CreateTable{Name: "ORDERS", Schema: "SALES", Columns: []*expression.Column{
				identity,
				{Name: "TOTAL", Type: expression.Currency, IsNullable: expression.Nullable(false)},
			}},
			want: `CREATE TABLE "SALES"."ORDERS" ("ID" BIGINT AUTOINCREMENT START 100 INCREMENT 10 PRIMARY KEY, "TOTAL" NUMBER(19,4) NOT NULL)`,
		},
		{
			name: "move table between schemas",
			expr: &expression.AlterSchema{SourceSchema: "STAGE", TableName: "ORDERS", DestinationSchema: "SALES"},
			want: `ALTER TABLE "STAGE"."ORDERS" RENAME TO "SALES"."ORDERS"`,
		},
		{
			name: "alter column",
			expr: &expression.AlterColumn{TableName: "ORDERS", Column: &expression.Column{
				Name: "NOTE", Type: expression.String, Size: 500, IsNullable: expression.Nullable(true),
			}},
			want: `ALTER TABLE "ORDERS" ALTER COLUMN "NOTE" SET DATA TYPE VARCHAR(500), ALTER COLUMN "NOTE" DROP NOT NULL`,
		},
		{
			name: "loose mode drops default change",
			expr: &expression.AlterColumn{TableName: "ORDERS", Column: &expression.Column{
				Name: "NOTE", Type: expression.String, Default: "n/a",
			}},
			want: `ALTER TABLE "ORDERS" ALTER COLUMN "NOTE" SET DATA TYPE VARCHAR`,
		},
		{
			name: "sequence",
			expr: &expression.CreateSequence{Sequence: &expression.Sequence{Name: "SEQ", StartWith: expression.Int64Ptr(1), Increment: expression.Int64Ptr(2)}},
			want: `CREATE SEQUENCE "SEQ" INCREMENT BY 2 START WITH 1`,
		},
		{
			name: "column comment",
			expr: &expression.CreateColumn{TableName: "ORDERS", Column: &expression.Column{Name: "REF", Type: expression.Guid, Description: "external ref"}},
			want: `ALTER TABLE "ORDERS" ADD COLUMN "REF" VARCHAR(36); COMMENT ON COLUMN "ORDERS"."REF" IS 'external ref'`,
		},
		{
			name: "binary and guid default",
			expr: &expression.InsertData{TableName: "FILES", Rows: []expression.Row{
				expression.Row{}.Add("DATA", []byte{0x0f}).Add("ID", expression.NewGuid),
			}},
			want: `INSERT INTO "FILES" ("DATA", "ID") VALUES (X'0F', UUID_STRING())`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Snowflake.GenerateSQL(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrictCompatibility(t *testing.T) {
	strict := Snowflake.WithMode(core.Strict)
	tests := []struct {
		name string
		expr expression.Expression
		want string
	}{
		{"create index", &expression.CreateIndex{Index: &expression.Index{Name: "IX", TableName: "T", Columns: []expression.IndexColumn{{Name: "A"}}}}, MsgIndexes},
		{"delete index", &expression.DeleteIndex{Index: &expression.Index{Name: "IX", TableName: "T"}}, MsgIndexes},
		{"sequence cycle", &expression.CreateSequence{Sequence: &expression.Sequence{Name: "S", Cycle: true}}, MsgSequenceOption},
		{"sequence max value", &expression.CreateSequence{Sequence: &expression.Sequence{Name: "S", MaxValue: expression.Int64Ptr(9)}}, MsgSequenceOption},
		{"default change", &expression.AlterColumn{TableName: "T", Column: &expression.Column{Name: "C", Type: expression.Int32, Default: 0}}, MsgAlterDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := strict.Generate(tt.expr)
			require.NoError(t, err)
			require.True(t, res.IsCompatibilityError())
			assert.Equal(t, tt.want, res.Compat.Message)
		})
	}
}
