package generator

// Templates are the fmt format strings of the baseline handlers.
// Dialects change individual entries through Builder.Templates.
type Templates struct {
	CreateTable  string // table, column list
	DropTable    string // table
	RenameTable  string // table, new name
	AddColumn    string // table, column definition
	AlterColumn  string // table, column definition
	DropColumn   string // table, column
	RenameColumn string // table, old column, new column

	CreateIndex string // unique token, cluster token, index, table, column list
	DropIndex   string // %[1]s index, %[2]s table

	AddConstraint  string // table, name, PRIMARY KEY|UNIQUE, column list
	DropConstraint string // table, name
	AddForeignKey  string // table, foreign key fragment
	DropForeignKey string // table, name

	CreateSchema string // schema
	AlterSchema  string // %[1]s qualified table, %[2]s destination schema
	DropSchema   string // schema

	CreateSequence    string // sequence
	SequenceIncrement string // n
	SequenceMinValue  string // n
	SequenceMaxValue  string // n
	SequenceStartWith string // n
	SequenceCache     string // n
	SequenceCycle     string
	DropSequence      string // sequence

	Insert string // table, columns, values
	Update string // table, set list, predicate
	Delete string // table, predicate
}

// AllRowsPredicate is the WHERE predicate used to touch every row.
const AllRowsPredicate = "1 = 1"

// DefaultTemplates returns the ANSI baseline templates.
func DefaultTemplates() Templates {
	return Templates{
		CreateTable:  "CREATE TABLE %s (%s)",
		DropTable:    "DROP TABLE %s",
		RenameTable:  "ALTER TABLE %s RENAME TO %s",
		AddColumn:    "ALTER TABLE %s ADD COLUMN %s",
		AlterColumn:  "ALTER TABLE %s ALTER COLUMN %s",
		DropColumn:   "ALTER TABLE %s DROP COLUMN %s",
		RenameColumn: "ALTER TABLE %s RENAME COLUMN %s TO %s",

		CreateIndex: "CREATE %s%sINDEX %s ON %s (%s)",
		DropIndex:   "DROP INDEX %[1]s",

		AddConstraint:  "ALTER TABLE %s ADD CONSTRAINT %s %s (%s)",
		DropConstraint: "ALTER TABLE %s DROP CONSTRAINT %s",
		AddForeignKey:  "ALTER TABLE %s ADD %s",
		DropForeignKey: "ALTER TABLE %s DROP CONSTRAINT %s",

		CreateSchema: "CREATE SCHEMA %s",
		AlterSchema:  "ALTER TABLE %[1]s SET SCHEMA %[2]s",
		DropSchema:   "DROP SCHEMA %s",

		CreateSequence:    "CREATE SEQUENCE %s",
		SequenceIncrement: " INCREMENT %d",
		SequenceMinValue:  " MINVALUE %d",
		SequenceMaxValue:  " MAXVALUE %d",
		SequenceStartWith: " START WITH %d",
		SequenceCache:     " CACHE %d",
		SequenceCycle:     " CYCLE",
		DropSequence:      "DROP SEQUENCE %s",

		Insert: "INSERT INTO %s (%s) VALUES (%s)",
		Update: "UPDATE %s SET %s WHERE %s",
		Delete: "DELETE FROM %s WHERE %s",
	}
}
