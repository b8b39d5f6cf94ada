package expression

// CreateSchema creates a schema.
type CreateSchema struct {
	Name string
}

func (*CreateSchema) Kind() Kind { return KindCreateSchema }

func (e *CreateSchema) Validate() []string {
	var errs errorList
	errs.add(e.Name == "", ErrSchemaNameEmpty)
	return errs
}

// Reverse drops the schema.
func (e *CreateSchema) Reverse() (Expression, error) {
	return &DeleteSchema{Name: e.Name}, nil
}

// AlterSchema moves a table from one schema to another.
type AlterSchema struct {
	SourceSchema      string
	TableName         string
	DestinationSchema string
}

func (*AlterSchema) Kind() Kind { return KindAlterSchema }

func (e *AlterSchema) Validate() []string {
	var errs errorList
	errs.add(e.TableName == "", ErrTableNameEmpty)
	errs.add(e.DestinationSchema == "", ErrDestSchemaNameEmpty)
	return errs
}

// Reverse moves the table back.
func (e *AlterSchema) Reverse() (Expression, error) {
	return &AlterSchema{
		SourceSchema:      e.DestinationSchema,
		TableName:         e.TableName,
		DestinationSchema: e.SourceSchema,
	}, nil
}

// DeleteSchema drops a schema.
type DeleteSchema struct {
	Name string
}

func (*DeleteSchema) Kind() Kind { return KindDeleteSchema }

func (e *DeleteSchema) Validate() []string {
	var errs errorList
	errs.add(e.Name == "", ErrSchemaNameEmpty)
	return errs
}

// Sequence is a sequence definition. Nil numeric fields are omitted.
type Sequence struct {
	Name      string
	Schema    string
	Increment *int64
	MinValue  *int64
	MaxValue  *int64
	StartWith *int64
	Cache     *int64
	Cycle     bool
}

// Int64Ptr returns a pointer to v, for the optional Sequence fields.
func Int64Ptr(v int64) *int64 { return &v }

// CreateSequence creates a sequence.
type CreateSequence struct {
	Sequence *Sequence
}

func (*CreateSequence) Kind() Kind { return KindCreateSequence }

func (e *CreateSequence) Validate() []string {
	var errs errorList
	errs.add(e.Sequence == nil || e.Sequence.Name == "", ErrSequenceNameEmpty)
	return errs
}

// Reverse drops the sequence.
func (e *CreateSequence) Reverse() (Expression, error) {
	if e.Sequence == nil {
		return &DeleteSequence{}, nil
	}
	return &DeleteSequence{Name: e.Sequence.Name, Schema: e.Sequence.Schema}, nil
}

// DeleteSequence drops a sequence.
type DeleteSequence struct {
	Name   string
	Schema string
}

func (*DeleteSequence) Kind() Kind { return KindDeleteSequence }

func (e *DeleteSequence) Validate() []string {
	var errs errorList
	errs.add(e.Name == "", ErrSequenceNameEmpty)
	return errs
}
