package expression

// Pair is one column/value entry of a Row.
type Pair struct {
	Column string
	Value  any
}

// Row is an ordered column → value mapping. Insertion order is preserved and
// drives the column order of generated VALUES lists.
type Row []Pair

// Add appends a pair and returns the extended row.
func (r Row) Add(column string, value any) Row {
	return append(r, Pair{Column: column, Value: value})
}

// Get returns the value of the first pair for column.
func (r Row) Get(column string) (any, bool) {
	for _, p := range r {
		if p.Column == column {
			return p.Value, true
		}
	}
	return nil, false
}

// Columns returns the column names in insertion order.
func (r Row) Columns() []string {
	cols := make([]string, len(r))
	for i, p := range r {
		cols[i] = p.Column
	}
	return cols
}

// Values returns the values in insertion order.
func (r Row) Values() []any {
	vals := make([]any, len(r))
	for i, p := range r {
		vals[i] = p.Value
	}
	return vals
}

// Len returns the number of pairs.
func (r Row) Len() int { return len(r) }

func (r Row) clone() Row {
	return append(Row(nil), r...)
}

func validateRow(errs *errorList, i int, r Row) {
	if len(r) == 0 {
		errs.add(true, ErrEmptyRow, i)
		return
	}
	seen := make(map[string]bool, len(r))
	for _, p := range r {
		if p.Column == "" {
			errs.add(true, ErrColumnNameEmpty)
			continue
		}
		errs.add(seen[p.Column], ErrDuplicateRowColumn, i, p.Column)
		seen[p.Column] = true
	}
}

// InsertData inserts rows into a table.
type InsertData struct {
	TableName string
	Schema    string
	Rows      []Row
	Features  Features
}

func (*InsertData) Kind() Kind { return KindInsertData }

func (e *InsertData) Validate() []string {
	var errs errorList
	errs.add(e.TableName == "", ErrTableNameEmpty)
	errs.add(len(e.Rows) == 0, ErrNoRows)
	for i, r := range e.Rows {
		validateRow(&errs, i, r)
	}
	return errs
}

// Reverse deletes the inserted rows, matching on every inserted column.
func (e *InsertData) Reverse() (Expression, error) {
	rows := make([]Row, len(e.Rows))
	for i, r := range e.Rows {
		rows[i] = r.clone()
	}
	return &DeleteData{TableName: e.TableName, Schema: e.Schema, Rows: rows}, nil
}

// UpdateData updates rows matching Where, or every row when AllRows is set.
type UpdateData struct {
	TableName string
	Schema    string
	Set       Row
	Where     Row
	AllRows   bool
}

func (*UpdateData) Kind() Kind { return KindUpdateData }

func (e *UpdateData) Validate() []string {
	var errs errorList
	errs.add(e.TableName == "", ErrTableNameEmpty)
	errs.add(len(e.Set) == 0, ErrUpdateNoSet)
	errs.add(!e.AllRows && len(e.Where) == 0, ErrWhereOrAllRows)
	errs.add(e.AllRows && len(e.Where) > 0, ErrWhereAndAllRows)
	return errs
}

// DeleteData deletes the rows matching each filter row, or every row when
// AllRows is set.
type DeleteData struct {
	TableName string
	Schema    string
	Rows      []Row
	AllRows   bool
}

func (*DeleteData) Kind() Kind { return KindDeleteData }

func (e *DeleteData) Validate() []string {
	var errs errorList
	errs.add(e.TableName == "", ErrTableNameEmpty)
	errs.add(!e.AllRows && len(e.Rows) == 0, ErrWhereOrAllRows)
	errs.add(e.AllRows && len(e.Rows) > 0, ErrWhereAndAllRows)
	for i, r := range e.Rows {
		validateRow(&errs, i, r)
	}
	return errs
}
