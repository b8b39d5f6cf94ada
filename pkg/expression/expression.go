// Package expression provides the dialect-neutral model of schema and data changes.
//
// Every supported operation is a concrete type implementing Expression. Expressions
// are plain data: they are built by the caller, validated, handed to a generator
// once, and discarded. Nothing in this package knows how to render SQL.
package expression

import (
	"fmt"
	"strings"
)

// Kind identifies an expression variant.
type Kind int

const (
	// KindUnknown is the zero Kind.
	KindUnknown Kind = iota
	KindCreateTable
	KindDeleteTable
	KindRenameTable
	KindCreateColumn
	KindAlterColumn
	KindDeleteColumn
	KindRenameColumn
	KindCreateIndex
	KindDeleteIndex
	KindCreateConstraint
	KindDeleteConstraint
	KindCreateForeignKey
	KindDeleteForeignKey
	KindCreateSchema
	KindAlterSchema
	KindDeleteSchema
	KindCreateSequence
	KindDeleteSequence
	KindInsertData
	KindUpdateData
	KindDeleteData
)

var kindNames = map[Kind]string{
	KindCreateTable:      "create_table",
	KindDeleteTable:      "delete_table",
	KindRenameTable:      "rename_table",
	KindCreateColumn:     "create_column",
	KindAlterColumn:      "alter_column",
	KindDeleteColumn:     "delete_column",
	KindRenameColumn:     "rename_column",
	KindCreateIndex:      "create_index",
	KindDeleteIndex:      "delete_index",
	KindCreateConstraint: "create_constraint",
	KindDeleteConstraint: "delete_constraint",
	KindCreateForeignKey: "create_foreign_key",
	KindDeleteForeignKey: "delete_foreign_key",
	KindCreateSchema:     "create_schema",
	KindAlterSchema:      "alter_schema",
	KindDeleteSchema:     "delete_schema",
	KindCreateSequence:   "create_sequence",
	KindDeleteSequence:   "delete_sequence",
	KindInsertData:       "insert_data",
	KindUpdateData:       "update_data",
	KindDeleteData:       "delete_data",
}

// String returns the snake_case name of the kind, as used in migration documents.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind returns the Kind for a snake_case name.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindUnknown, false
}

// AllKinds returns every known kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindCreateTable; k <= KindDeleteData; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Expression is a single schema-change or data-change intent.
type Expression interface {
	// Kind returns the variant of this expression.
	Kind() Kind

	// Validate returns every problem found with the expression.
	// An empty result means the expression can be rendered.
	Validate() []string
}

// Validation messages shared across expressions.
const (
	ErrTableNameEmpty       = "table name cannot be empty"
	ErrOldTableNameEmpty    = "old table name cannot be empty"
	ErrNewTableNameEmpty    = "new table name cannot be empty"
	ErrColumnNameEmpty      = "column name cannot be empty"
	ErrOldColumnNameEmpty   = "old column name cannot be empty"
	ErrNewColumnNameEmpty   = "new column name cannot be empty"
	ErrColumnTypeMissing    = "column %q does not have a type defined"
	ErrNoColumns            = "table must have at least one column"
	ErrColumnMissing        = "column definition is required"
	ErrNoColumnNames        = "at least one column name is required"
	ErrIndexNameEmpty       = "index name cannot be empty"
	ErrIndexNoColumns       = "index must have at least one column"
	ErrConstraintNoColumns  = "constraint must have at least one column"
	ErrConstraintIdentity   = "constraint name or columns are required"
	ErrForeignKeyMissing    = "foreign key definition is required"
	ErrPrimaryTableEmpty    = "foreign key must reference a primary table"
	ErrForeignColumnsEmpty  = "foreign key must have at least one foreign column"
	ErrPrimaryColumnsEmpty  = "foreign key must have at least one primary column"
	ErrForeignKeyColumnsLen = "foreign key column count (%d) does not match primary column count (%d)"
	ErrSchemaNameEmpty      = "schema name cannot be empty"
	ErrDestSchemaNameEmpty  = "destination schema name cannot be empty"
	ErrSequenceNameEmpty    = "sequence name cannot be empty"
	ErrNoRows               = "at least one row is required"
	ErrEmptyRow             = "row %d has no columns"
	ErrDuplicateRowColumn   = "row %d sets column %q more than once"
	ErrUpdateNoSet          = "update must set at least one column"
	ErrWhereOrAllRows       = "either all rows or a where clause must be specified"
	ErrWhereAndAllRows      = "all rows and a where clause cannot both be specified"
)

// errorList accumulates validation messages.
type errorList []string

func (l *errorList) add(cond bool, msg string, args ...any) {
	if !cond {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	*l = append(*l, msg)
}
