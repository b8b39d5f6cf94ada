package expression

// CreateTable creates a table with its columns.
type CreateTable struct {
	Name        string
	Schema      string
	Description string
	Columns     []*Column
	Features    Features
}

func (*CreateTable) Kind() Kind { return KindCreateTable }

func (e *CreateTable) Validate() []string {
	var errs errorList
	errs.add(e.Name == "", ErrTableNameEmpty)
	errs.add(len(e.Columns) == 0, ErrNoColumns)
	for _, c := range e.Columns {
		if c == nil {
			errs.add(true, ErrColumnMissing)
			continue
		}
		errs = append(errs, c.Validate()...)
	}
	return errs
}

// Reverse drops the table.
func (e *CreateTable) Reverse() (Expression, error) {
	return &DeleteTable{Name: e.Name, Schema: e.Schema}, nil
}

// DeleteTable drops a table.
type DeleteTable struct {
	Name   string
	Schema string
}

func (*DeleteTable) Kind() Kind { return KindDeleteTable }

func (e *DeleteTable) Validate() []string {
	var errs errorList
	errs.add(e.Name == "", ErrTableNameEmpty)
	return errs
}

// RenameTable renames a table within its schema.
type RenameTable struct {
	OldName string
	NewName string
	Schema  string
}

func (*RenameTable) Kind() Kind { return KindRenameTable }

func (e *RenameTable) Validate() []string {
	var errs errorList
	errs.add(e.OldName == "", ErrOldTableNameEmpty)
	errs.add(e.NewName == "", ErrNewTableNameEmpty)
	return errs
}

// Reverse swaps the names.
func (e *RenameTable) Reverse() (Expression, error) {
	return &RenameTable{OldName: e.NewName, NewName: e.OldName, Schema: e.Schema}, nil
}

// CreateColumn adds a column to an existing table.
type CreateColumn struct {
	TableName string
	Schema    string
	Column    *Column
}

func (*CreateColumn) Kind() Kind { return KindCreateColumn }

func (e *CreateColumn) Validate() []string {
	return validateColumnChange(e.TableName, e.Column)
}

// Reverse drops the column.
func (e *CreateColumn) Reverse() (Expression, error) {
	var name string
	if e.Column != nil {
		name = e.Column.Name
	}
	return &DeleteColumn{TableName: e.TableName, Schema: e.Schema, ColumnNames: []string{name}}, nil
}

// AlterColumn changes the definition of an existing column.
type AlterColumn struct {
	TableName string
	Schema    string
	Column    *Column
}

func (*AlterColumn) Kind() Kind { return KindAlterColumn }

func (e *AlterColumn) Validate() []string {
	return validateColumnChange(e.TableName, e.Column)
}

func validateColumnChange(table string, col *Column) []string {
	var errs errorList
	errs.add(table == "", ErrTableNameEmpty)
	if col == nil {
		errs.add(true, ErrColumnMissing)
		return errs
	}
	errs = append(errs, col.Validate()...)
	return errs
}

// DeleteColumn drops one or more columns. Order is preserved in the output.
type DeleteColumn struct {
	TableName   string
	Schema      string
	ColumnNames []string
}

func (*DeleteColumn) Kind() Kind { return KindDeleteColumn }

func (e *DeleteColumn) Validate() []string {
	var errs errorList
	errs.add(e.TableName == "", ErrTableNameEmpty)
	errs.add(len(e.ColumnNames) == 0, ErrNoColumnNames)
	for _, name := range e.ColumnNames {
		if name == "" {
			errs.add(true, ErrColumnNameEmpty)
			break
		}
	}
	return errs
}

// RenameColumn renames a column.
type RenameColumn struct {
	TableName string
	Schema    string
	OldName   string
	NewName   string
}

func (*RenameColumn) Kind() Kind { return KindRenameColumn }

func (e *RenameColumn) Validate() []string {
	var errs errorList
	errs.add(e.TableName == "", ErrTableNameEmpty)
	errs.add(e.OldName == "", ErrOldColumnNameEmpty)
	errs.add(e.NewName == "", ErrNewColumnNameEmpty)
	return errs
}

// Reverse swaps the names.
func (e *RenameColumn) Reverse() (Expression, error) {
	return &RenameColumn{TableName: e.TableName, Schema: e.Schema, OldName: e.NewName, NewName: e.OldName}, nil
}
