package sqlserver

import (
	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
)

func init() {
	generator.Register(SQLServer2000)
	generator.Register(SQLServer2005)
	generator.Register(SQLServer2008)
	generator.Register(SQLServer2012)
}

// SQLServer2000 is the SQL Server 2000 generator.
var SQLServer2000 = base(Config2000, Types2000).Build()

// SQLServer2005 is the SQL Server 2005 generator.
var SQLServer2005 = with2005(base(Config2005, Types2005)).Build()

// SQLServer2008 is the SQL Server 2008 generator.
var SQLServer2008 = with2008(with2005(base(Config2008, Types2008))).Build()

// SQLServer2012 is the SQL Server 2012 generator.
// Builder auto-wires sequences from Config2012.
var SQLServer2012 = with2012(with2008(with2005(base(Config2012, Types2008)))).Build()

// base configures what every release shares.
func base(cfg *core.DialectConfig, types *generator.TypeMap) *generator.Builder {
	return generator.New(cfg).
		Templates(func(t *generator.Templates) {
			t.AddColumn = "ALTER TABLE %s ADD %s"
			t.DropIndex = "DROP INDEX %[2]s.%[1]s"
		}).
		Types(types).
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
		IndexTokens(nil, clusterToken).
		Features(
			expression.FeatureIdentitySeed,
			expression.FeatureIdentityIncrement,
			expression.FeatureIdentityInsert,
			expression.FeatureColumnCollation,
		).
		Handle(expression.KindRenameTable, handleRenameTable).
		Handle(expression.KindRenameColumn, handleRenameColumn).
		Handle(expression.KindAlterColumn, handleAlterColumn).
		Handle(expression.KindCreateIndex, handleCreateIndex).
		Handle(expression.KindInsertData, handleInsertData)
}

func with2005(b *generator.Builder) *generator.Builder {
	return b.
		Templates(func(t *generator.Templates) {
			t.DropIndex = "DROP INDEX %[1]s ON %[2]s"
			t.AlterSchema = "ALTER SCHEMA %[2]s TRANSFER %[1]s"
		}).
		Descriptions(generator.ExtendedPropertyDescriptions).
		Features(expression.FeatureIncludeColumns)
}

func with2008(b *generator.Builder) *generator.Builder {
	return b.Features(expression.FeatureIndexFilter)
}

func with2012(b *generator.Builder) *generator.Builder {
	return b.Templates(func(t *generator.Templates) {
		t.SequenceIncrement = " INCREMENT BY %d"
	})
}
