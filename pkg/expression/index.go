package expression

import "strings"

// Direction is the sort direction of an index column.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns ASC or DESC.
func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// ParseDirection accepts asc/ascending and desc/descending (case-insensitive).
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	default:
		return Ascending, false
	}
}

// IndexColumn is one column of an index. Order within Index.Columns is significant.
type IndexColumn struct {
	Name      string
	Direction Direction
}

// Index is an index definition.
type Index struct {
	Name        string
	TableName   string
	Schema      string
	IsUnique    bool
	IsClustered bool
	Columns     []IndexColumn
	Features    Features
}

// ColumnNames returns the index column names in declared order.
func (i *Index) ColumnNames() []string {
	names := make([]string, len(i.Columns))
	for n, c := range i.Columns {
		names[n] = c.Name
	}
	return names
}

// Clone returns a deep copy of the index.
func (i *Index) Clone() *Index {
	if i == nil {
		return nil
	}
	out := *i
	out.Columns = append([]IndexColumn(nil), i.Columns...)
	out.Features = i.Features.clone()
	return &out
}

// CreateIndex creates an index.
type CreateIndex struct {
	Index *Index
}

func (*CreateIndex) Kind() Kind { return KindCreateIndex }

func (e *CreateIndex) Validate() []string {
	var errs errorList
	if e.Index == nil {
		errs.add(true, ErrIndexNameEmpty)
		return errs
	}
	errs.add(e.Index.Name == "", ErrIndexNameEmpty)
	errs.add(e.Index.TableName == "", ErrTableNameEmpty)
	errs.add(len(e.Index.Columns) == 0, ErrIndexNoColumns)
	for _, c := range e.Index.Columns {
		if c.Name == "" {
			errs.add(true, ErrColumnNameEmpty)
			break
		}
	}
	return errs
}

// Reverse drops the index.
func (e *CreateIndex) Reverse() (Expression, error) {
	return &DeleteIndex{Index: e.Index.Clone()}, nil
}

// DeleteIndex drops an index. Only name, table and schema are used.
type DeleteIndex struct {
	Index *Index
}

func (*DeleteIndex) Kind() Kind { return KindDeleteIndex }

func (e *DeleteIndex) Validate() []string {
	var errs errorList
	if e.Index == nil {
		errs.add(true, ErrIndexNameEmpty)
		return errs
	}
	errs.add(e.Index.Name == "", ErrIndexNameEmpty)
	errs.add(e.Index.TableName == "", ErrTableNameEmpty)
	return errs
}
