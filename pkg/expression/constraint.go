package expression

import "strings"

// ConstraintKind is the kind of a table constraint.
type ConstraintKind int

const (
	PrimaryKey ConstraintKind = iota
	Unique
)

// String returns the string representation of ConstraintKind.
func (k ConstraintKind) String() string {
	if k == Unique {
		return "unique"
	}
	return "primary_key"
}

// Constraint is a primary key or unique constraint.
type Constraint struct {
	Name      string
	TableName string
	Schema    string
	Kind      ConstraintKind
	Columns   []string
}

// IsPrimaryKey reports whether the constraint is a primary key.
func (c *Constraint) IsPrimaryKey() bool { return c.Kind == PrimaryKey }

// DefaultConstraintName derives PK_<table> or UC_<table>_<cols>.
func DefaultConstraintName(c *Constraint) string {
	if c.IsPrimaryKey() {
		return "PK_" + c.TableName
	}
	return "UC_" + c.TableName + "_" + strings.Join(c.Columns, "_")
}

// Clone returns a deep copy of the constraint.
func (c *Constraint) Clone() *Constraint {
	if c == nil {
		return nil
	}
	out := *c
	out.Columns = append([]string(nil), c.Columns...)
	return &out
}

// CreateConstraint adds a constraint to a table.
type CreateConstraint struct {
	Constraint *Constraint
}

func (*CreateConstraint) Kind() Kind { return KindCreateConstraint }

func (e *CreateConstraint) Validate() []string {
	var errs errorList
	if e.Constraint == nil {
		errs.add(true, ErrConstraintNoColumns)
		return errs
	}
	errs.add(e.Constraint.TableName == "", ErrTableNameEmpty)
	errs.add(len(e.Constraint.Columns) == 0, ErrConstraintNoColumns)
	return errs
}

// Reverse drops the constraint. An unnamed constraint gets its derived name.
func (e *CreateConstraint) Reverse() (Expression, error) {
	c := e.Constraint.Clone()
	if c != nil && c.Name == "" {
		c.Name = DefaultConstraintName(c)
	}
	return &DeleteConstraint{Constraint: c}, nil
}

// DeleteConstraint drops a constraint.
type DeleteConstraint struct {
	Constraint *Constraint
}

func (*DeleteConstraint) Kind() Kind { return KindDeleteConstraint }

func (e *DeleteConstraint) Validate() []string {
	var errs errorList
	if e.Constraint == nil {
		errs.add(true, ErrConstraintIdentity)
		return errs
	}
	errs.add(e.Constraint.TableName == "", ErrTableNameEmpty)
	errs.add(e.Constraint.Name == "" && len(e.Constraint.Columns) == 0, ErrConstraintIdentity)
	return errs
}

// Rule is a referential action.
type Rule int

const (
	RuleNone Rule = iota
	RuleCascade
	RuleSetNull
	RuleSetDefault
	RuleRestrict
)

// SQL returns the referential action keyword. RuleNone returns "".
func (r Rule) SQL() string {
	switch r {
	case RuleCascade:
		return "CASCADE"
	case RuleSetNull:
		return "SET NULL"
	case RuleSetDefault:
		return "SET DEFAULT"
	case RuleRestrict:
		return "RESTRICT"
	default:
		return ""
	}
}

// ParseRule accepts cascade, set_null, set_default, restrict and none.
func ParseRule(s string) (Rule, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_")) {
	case "", "none", "no_action":
		return RuleNone, true
	case "cascade":
		return RuleCascade, true
	case "set_null":
		return RuleSetNull, true
	case "set_default":
		return RuleSetDefault, true
	case "restrict":
		return RuleRestrict, true
	default:
		return RuleNone, false
	}
}

// ForeignKey is a foreign key definition. The foreign table owns the constraint;
// the primary table is the referenced one.
type ForeignKey struct {
	Name               string
	ForeignTable       string
	ForeignTableSchema string
	ForeignColumns     []string
	PrimaryTable       string
	PrimaryTableSchema string
	PrimaryColumns     []string
	OnDelete           Rule
	OnUpdate           Rule
}

// DefaultForeignKeyName derives FK_<foreignTable>_<foreignCols>_<primaryTable>_<primaryCols>.
func DefaultForeignKeyName(fk *ForeignKey) string {
	var sb strings.Builder
	sb.WriteString("FK_")
	sb.WriteString(fk.ForeignTable)
	for _, c := range fk.ForeignColumns {
		sb.WriteString("_")
		sb.WriteString(c)
	}
	sb.WriteString("_")
	sb.WriteString(fk.PrimaryTable)
	for _, c := range fk.PrimaryColumns {
		sb.WriteString("_")
		sb.WriteString(c)
	}
	return sb.String()
}

// Clone returns a deep copy of the foreign key.
func (fk *ForeignKey) Clone() *ForeignKey {
	if fk == nil {
		return nil
	}
	out := *fk
	out.ForeignColumns = append([]string(nil), fk.ForeignColumns...)
	out.PrimaryColumns = append([]string(nil), fk.PrimaryColumns...)
	return &out
}

// CreateForeignKey adds a foreign key to the foreign table.
type CreateForeignKey struct {
	ForeignKey *ForeignKey
}

func (*CreateForeignKey) Kind() Kind { return KindCreateForeignKey }

func (e *CreateForeignKey) Validate() []string {
	var errs errorList
	fk := e.ForeignKey
	if fk == nil {
		errs.add(true, ErrForeignKeyMissing)
		return errs
	}
	errs.add(fk.ForeignTable == "", ErrTableNameEmpty)
	errs.add(fk.PrimaryTable == "", ErrPrimaryTableEmpty)
	errs.add(len(fk.ForeignColumns) == 0, ErrForeignColumnsEmpty)
	errs.add(len(fk.PrimaryColumns) == 0, ErrPrimaryColumnsEmpty)
	errs.add(len(fk.ForeignColumns) > 0 && len(fk.PrimaryColumns) > 0 &&
		len(fk.ForeignColumns) != len(fk.PrimaryColumns),
		ErrForeignKeyColumnsLen, len(fk.ForeignColumns), len(fk.PrimaryColumns))
	return errs
}

// Reverse drops the foreign key, keeping the full definition.
func (e *CreateForeignKey) Reverse() (Expression, error) {
	return &DeleteForeignKey{ForeignKey: e.ForeignKey.Clone()}, nil
}

// DeleteForeignKey drops a foreign key. The foreign table is required at
// generation time; a missing one is a usage error, not a validation failure.
type DeleteForeignKey struct {
	ForeignKey *ForeignKey
}

func (*DeleteForeignKey) Kind() Kind { return KindDeleteForeignKey }

func (e *DeleteForeignKey) Validate() []string {
	var errs errorList
	fk := e.ForeignKey
	if fk == nil {
		return nil
	}
	errs.add(fk.Name == "" && len(fk.ForeignColumns) == 0, ErrConstraintIdentity)
	return errs
}
