package expression

import "strings"

// DbType is the semantic, dialect-neutral type of a column.
type DbType int

// Supported semantic types. DbTypeUnset means the column uses CustomType.
const (
	DbTypeUnset DbType = iota
	AnsiString
	AnsiStringFixedLength
	String
	StringFixedLength
	Binary
	Boolean
	Byte
	Int16
	Int32
	Int64
	Decimal
	Currency
	Double
	Single
	Date
	Time
	DateTime
	DateTime2
	DateTimeOffset
	Guid
	Xml
)

var dbTypeNames = map[DbType]string{
	AnsiString:            "ansi_string",
	AnsiStringFixedLength: "ansi_string_fixed",
	String:                "string",
	StringFixedLength:     "string_fixed",
	Binary:                "binary",
	Boolean:               "boolean",
	Byte:                  "byte",
	Int16:                 "int16",
	Int32:                 "int32",
	Int64:                 "int64",
	Decimal:               "decimal",
	Currency:              "currency",
	Double:                "double",
	Single:                "single",
	Date:                  "date",
	Time:                  "time",
	DateTime:              "datetime",
	DateTime2:             "datetime2",
	DateTimeOffset:        "datetimeoffset",
	Guid:                  "guid",
	Xml:                   "xml",
}

// String returns the snake_case name of the type.
func (t DbType) String() string {
	if name, ok := dbTypeNames[t]; ok {
		return name
	}
	return "unset"
}

// ParseDbType returns the DbType for its snake_case name.
// "int" and "bool" are accepted as shorthands.
func ParseDbType(name string) (DbType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "int":
		return Int32, true
	case "bool":
		return Boolean, true
	case "uuid":
		return Guid, true
	}
	for t, n := range dbTypeNames {
		if n == name {
			return t, true
		}
	}
	return DbTypeUnset, false
}

// ModificationType tells whether a column definition creates or alters a column.
type ModificationType int

const (
	ColumnCreate ModificationType = iota
	ColumnAlter
)

// Column is a column definition. It belongs to exactly one expression.
type Column struct {
	Name      string
	TableName string
	Schema    string

	Type       DbType
	CustomType string // raw type text; wins over Type
	Size       int    // length, or numeric precision for Decimal
	Precision  int    // numeric scale for Decimal

	// IsNullable is tri-state: nil emits no nullability token.
	IsNullable *bool
	// Default is nil for no default. RawSQL and SystemMethod render natively.
	Default any

	IsIdentity     bool
	IsPrimaryKey   bool
	PrimaryKeyName string
	IsUnique       bool
	IndexName      string

	// ForeignKey is an inline reference. CREATE TABLE renders it in the
	// table body, CREATE COLUMN as a separate ADD CONSTRAINT statement.
	ForeignKey *ForeignKey

	Description  string
	Features     Features
	Modification ModificationType
}

// Nullable returns a pointer to b, for Column.IsNullable.
func Nullable(b bool) *bool { return &b }

// HasDefault returns true if the column carries a default value.
func (c *Column) HasDefault() bool {
	return c.Default != nil
}

// Validate returns every problem with the column definition.
func (c *Column) Validate() []string {
	var errs errorList
	errs.add(c.Name == "", ErrColumnNameEmpty)
	errs.add(c.Name != "" && c.Type == DbTypeUnset && c.CustomType == "", ErrColumnTypeMissing, c.Name)
	if fk := c.ForeignKey; fk != nil {
		errs.add(fk.PrimaryTable == "", ErrPrimaryTableEmpty)
		errs.add(len(fk.PrimaryColumns) == 0, ErrPrimaryColumnsEmpty)
		// An inline key without foreign columns references from this column alone.
		foreign := len(fk.ForeignColumns)
		if foreign == 0 {
			foreign = 1
		}
		errs.add(len(fk.PrimaryColumns) > 0 && foreign != len(fk.PrimaryColumns),
			ErrForeignKeyColumnsLen, foreign, len(fk.PrimaryColumns))
	}
	return errs
}

// InlineForeignKey returns the column's foreign key completed for table:
// the foreign table defaults to table and the foreign columns to the column
// itself. It returns nil when the column has no foreign key.
func (c *Column) InlineForeignKey(table, schema string) *ForeignKey {
	if c.ForeignKey == nil {
		return nil
	}
	fk := c.ForeignKey.Clone()
	if fk.ForeignTable == "" {
		fk.ForeignTable = table
		fk.ForeignTableSchema = schema
	}
	if len(fk.ForeignColumns) == 0 {
		fk.ForeignColumns = []string{c.Name}
	}
	return fk
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	if c == nil {
		return nil
	}
	out := *c
	if c.IsNullable != nil {
		v := *c.IsNullable
		out.IsNullable = &v
	}
	out.ForeignKey = c.ForeignKey.Clone()
	out.Features = c.Features.clone()
	return &out
}

func (fs Features) clone() Features {
	if fs == nil {
		return nil
	}
	out := make(Features, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// Null is the type of DBNull.
type Null struct{}

// DBNull is an explicit database NULL. It renders the same as a nil value and
// turns WHERE comparisons into IS NULL.
var DBNull = Null{}

// RawSQL is emitted verbatim wherever a value is expected.
type RawSQL string

// SystemMethod is a dialect-native function used as a default value.
type SystemMethod string

// System methods.
const (
	NewGuid               SystemMethod = "new_guid"
	NewSequentialID       SystemMethod = "new_sequential_id"
	CurrentDateTime       SystemMethod = "current_datetime"
	CurrentUTCDateTime    SystemMethod = "current_utc_datetime"
	CurrentDateTimeOffset SystemMethod = "current_datetime_offset"
	CurrentUser           SystemMethod = "current_user"
)

// SystemMethods returns every system method.
func SystemMethods() []SystemMethod {
	return []SystemMethod{
		NewGuid, NewSequentialID, CurrentDateTime,
		CurrentUTCDateTime, CurrentDateTimeOffset, CurrentUser,
	}
}

// IsNull returns true for nil and DBNull.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}
