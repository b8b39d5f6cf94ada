package mysql

import (
	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
)

func init() {
	generator.Register(MySQL5)
	generator.Register(MySQL8)
}

// MsgRenameColumn is reported by MySQL 5, whose only rename form is CHANGE COLUMN.
const MsgRenameColumn = "MySQL 5 cannot rename a column without its full definition; use ALTER TABLE .. CHANGE COLUMN"

// Types maps column types to MySQL types.
var Types = generator.NewTypeMap().
	Set(expression.AnsiString, "VARCHAR(255)").
	SetSized(expression.AnsiString, 65535, "VARCHAR($size)").
	SetSized(expression.AnsiString, 16777215, "MEDIUMTEXT").
	SetSized(expression.AnsiString, generator.MaxSize, "LONGTEXT").
	Set(expression.AnsiStringFixedLength, "CHAR(255)").
	SetSized(expression.AnsiStringFixedLength, 255, "CHAR($size)").
	Set(expression.String, "VARCHAR(255)").
	SetSized(expression.String, 65535, "VARCHAR($size)").
	SetSized(expression.String, 16777215, "MEDIUMTEXT").
	SetSized(expression.String, generator.MaxSize, "LONGTEXT").
	Set(expression.StringFixedLength, "CHAR(255)").
	SetSized(expression.StringFixedLength, 255, "CHAR($size)").
	Set(expression.Binary, "LONGBLOB").
	SetSized(expression.Binary, 65535, "VARBINARY($size)").
	Set(expression.Boolean, "TINYINT(1)").
	Set(expression.Byte, "TINYINT UNSIGNED").
	Set(expression.Int16, "SMALLINT").
	Set(expression.Int32, "INTEGER").
	Set(expression.Int64, "BIGINT").
	Set(expression.Decimal, "DECIMAL(19,5)").
	SetSized(expression.Decimal, 65, "DECIMAL($size,$precision)").
	Set(expression.Currency, "DECIMAL(19,4)").
	Set(expression.Double, "DOUBLE").
	Set(expression.Single, "FLOAT").
	Set(expression.Date, "DATE").
	Set(expression.Time, "TIME").
	Set(expression.DateTime, "DATETIME").
	Set(expression.DateTime2, "DATETIME(6)").
	Set(expression.DateTimeOffset, "TIMESTAMP").
	Set(expression.Guid, "CHAR(36)").
	Set(expression.Xml, "LONGTEXT")

// MySQL5 is the MySQL 5 generator.
var MySQL5 = base(Config5).
	Reject(MsgRenameColumn, expression.KindRenameColumn).
	Build()

// MySQL8 is the MySQL 8 generator.
var MySQL8 = base(Config8).Build()

func base(cfg *core.DialectConfig) *generator.Builder {
	return generator.New(cfg).
		Templates(func(t *generator.Templates) {
			t.RenameTable = "RENAME TABLE %s TO %s"
			t.AlterColumn = "ALTER TABLE %s MODIFY COLUMN %s"
			t.DropIndex = "DROP INDEX %[1]s ON %[2]s"
			t.DropForeignKey = "ALTER TABLE %s DROP FOREIGN KEY %s"
		}).
		Types(Types).
		Descriptions(tableComments).
		ColumnClauses(
			generator.ClauseName,
			generator.ClauseType,
			generator.ClauseCollation,
			generator.ClauseNullable,
			generator.ClauseDefault,
			clauseAutoIncrement,
			generator.ClausePrimaryKey,
			generator.ClauseUnique,
			clauseComment,
		).
		Features(expression.FeatureColumnCollation, expression.FeatureTableEngine).
		Handle(expression.KindCreateTable, handleCreateTable).
		Handle(expression.KindAlterColumn, handleAlterColumn).
		Handle(expression.KindDeleteConstraint, handleDeleteConstraint)
}
