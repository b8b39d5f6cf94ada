package migration

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"gopkg.in/yaml.v3"
)

// Custom value tags.
const (
	TagGUID   = "!guid"
	TagRaw    = "!raw"
	TagSystem = "!system"
)

// decoder walks a yaml.Node tree and collects every problem instead of
// stopping at the first one.
type decoder struct {
	file string
	errs DecodeErrors
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) {
	line := 0
	if n != nil {
		line = n.Line
	}
	d.errs = append(d.errs, &DecodeError{File: d.file, Line: line, Msg: fmt.Sprintf(format, args...)})
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// ---------- Mappings ----------

// fields is a mapping node indexed by key.
type fields struct {
	d    *decoder
	vals map[string]*yaml.Node
}

// fields indexes a mapping, reporting keys outside allowed.
func (d *decoder) fields(n *yaml.Node, what string, allowed ...string) fields {
	f := fields{d: d, vals: map[string]*yaml.Node{}}
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		d.errorf(n, "%s must be a mapping", what)
		return f
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if !slices.Contains(allowed, key.Value) {
			d.errorf(key, "unknown field %q in %s", key.Value, what)
			continue
		}
		f.vals[key.Value] = resolve(val)
	}
	return f
}

func (f fields) has(key string) bool {
	_, ok := f.vals[key]
	return ok
}

func (f fields) scalar(key string) (*yaml.Node, bool) {
	n, ok := f.vals[key]
	if !ok {
		return nil, false
	}
	if n.Kind != yaml.ScalarNode {
		f.d.errorf(n, "%s must be a scalar", key)
		return nil, false
	}
	return n, true
}

func (f fields) str(key string) string {
	n, ok := f.scalar(key)
	if !ok {
		return ""
	}
	return n.Value
}

func (f fields) integer(key string) int {
	n, ok := f.scalar(key)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(n.Value)
	if err != nil {
		f.d.errorf(n, "%s must be an integer, got %q", key, n.Value)
	}
	return v
}

func (f fields) int64Ptr(key string) *int64 {
	n, ok := f.scalar(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		f.d.errorf(n, "%s must be an integer, got %q", key, n.Value)
		return nil
	}
	return &v
}

func (f fields) boolPtr(key string) *bool {
	n, ok := f.scalar(key)
	if !ok {
		return nil
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		f.d.errorf(n, "%s must be true or false, got %q", key, n.Value)
		return nil
	}
	return &b
}

func (f fields) flag(key string) bool {
	b := f.boolPtr(key)
	return b != nil && *b
}

// names accepts a single scalar or a sequence of scalars.
func (f fields) names(key string) []string {
	n, ok := f.vals[key]
	if !ok {
		return nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return []string{n.Value}
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			item = resolve(item)
			if item.Kind != yaml.ScalarNode {
				f.d.errorf(item, "%s entries must be scalars", key)
				continue
			}
			out = append(out, item.Value)
		}
		return out
	default:
		f.d.errorf(n, "%s must be a name or a list of names", key)
		return nil
	}
}

// ---------- Values ----------

// value converts a scalar into the Go value the quoter renders.
func (d *decoder) value(n *yaml.Node) any {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode {
		d.errorf(n, "values must be scalars")
		return nil
	}
	switch tag := n.ShortTag(); tag {
	case "!!null":
		return nil
	case "!!str":
		return n.Value
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			d.errorf(n, "invalid boolean %q", n.Value)
		}
		return b
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil {
			d.errorf(n, "invalid integer %q", n.Value)
		}
		return v
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			d.errorf(n, "invalid number %q", n.Value)
		}
		return v
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			d.errorf(n, "invalid timestamp %q", n.Value)
		}
		return t
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			d.errorf(n, "invalid base64 binary: %v", err)
		}
		return b
	case TagGUID:
		id, err := uuid.Parse(n.Value)
		if err != nil {
			d.errorf(n, "invalid guid %q: %v", n.Value, err)
		}
		return id
	case TagRaw:
		return expression.RawSQL(n.Value)
	case TagSystem:
		m := expression.SystemMethod(strings.ToLower(n.Value))
		if !slices.Contains(expression.SystemMethods(), m) {
			d.errorf(n, "unknown system method %q", n.Value)
		}
		return m
	default:
		d.errorf(n, "unsupported value tag %s", tag)
		return nil
	}
}

// row decodes a mapping into a Row, keeping key order.
func (d *decoder) row(n *yaml.Node, what string) expression.Row {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		d.errorf(n, "%s must be a mapping of column to value", what)
		return nil
	}
	row := make(expression.Row, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		row = row.Add(n.Content[i].Value, d.value(n.Content[i+1]))
	}
	return row
}

func (d *decoder) rows(n *yaml.Node) []expression.Row {
	if n == nil {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.errorf(n, "rows must be a list")
		return nil
	}
	out := make([]expression.Row, 0, len(n.Content))
	for _, item := range n.Content {
		out = append(out, d.row(item, "row"))
	}
	return out
}

// features decodes an additional-features bag. Keys must be registered.
func (d *decoder) features(n *yaml.Node) expression.Features {
	if n == nil {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		d.errorf(n, "features must be a mapping")
		return nil
	}
	var fs expression.Features
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], resolve(n.Content[i+1])
		f := expression.Feature(key.Value)
		if !expression.Known(f) {
			d.errorf(key, "unknown feature %q", key.Value)
			continue
		}
		switch val.Kind {
		case yaml.SequenceNode:
			names := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				names = append(names, resolve(item).Value)
			}
			fs.Set(f, names)
		default:
			fs.Set(f, d.value(val))
		}
	}
	return fs
}

// ---------- Definitions ----------

var columnFields = []string{
	"name", "type", "custom_type", "size", "precision", "nullable", "default",
	"identity", "primary_key", "primary_key_name", "unique", "index_name",
	"foreign_key", "description", "features",
}

func (d *decoder) column(n *yaml.Node, mod expression.ModificationType) *expression.Column {
	f := d.fields(n, "column", columnFields...)
	col := &expression.Column{
		Name:           f.str("name"),
		CustomType:     f.str("custom_type"),
		Size:           f.integer("size"),
		Precision:      f.integer("precision"),
		IsNullable:     f.boolPtr("nullable"),
		IsIdentity:     f.flag("identity"),
		IsPrimaryKey:   f.flag("primary_key"),
		PrimaryKeyName: f.str("primary_key_name"),
		IsUnique:       f.flag("unique"),
		IndexName:      f.str("index_name"),
		Description:    f.str("description"),
		Features:       d.features(f.vals["features"]),
		Modification:   mod,
	}
	if f.has("type") {
		name := f.str("type")
		t, ok := expression.ParseDbType(name)
		if !ok {
			d.errorf(f.vals["type"], "unknown column type %q", name)
		}
		col.Type = t
	}
	if dv, ok := f.vals["default"]; ok {
		col.Default = d.value(dv)
	}
	if fk, ok := f.vals["foreign_key"]; ok {
		col.ForeignKey = d.inlineForeignKey(fk)
	}
	return col
}

func (d *decoder) columns(n *yaml.Node, mod expression.ModificationType) []*expression.Column {
	if n == nil {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.errorf(n, "columns must be a list")
		return nil
	}
	out := make([]*expression.Column, 0, len(n.Content))
	for _, item := range n.Content {
		out = append(out, d.column(item, mod))
	}
	return out
}

func (d *decoder) rule(f fields, key string) expression.Rule {
	if !f.has(key) {
		return expression.RuleNone
	}
	s := f.str(key)
	r, ok := expression.ParseRule(s)
	if !ok {
		d.errorf(f.vals[key], "unknown referential action %q", s)
	}
	return r
}

func (d *decoder) inlineForeignKey(n *yaml.Node) *expression.ForeignKey {
	f := d.fields(n, "foreign_key", "name", "table", "schema", "columns", "on_delete", "on_update")
	return &expression.ForeignKey{
		Name:               f.str("name"),
		PrimaryTable:       f.str("table"),
		PrimaryTableSchema: f.str("schema"),
		PrimaryColumns:     f.names("columns"),
		OnDelete:           d.rule(f, "on_delete"),
		OnUpdate:           d.rule(f, "on_update"),
	}
}

func (d *decoder) foreignKey(n *yaml.Node) *expression.ForeignKey {
	f := d.fields(n, "foreign key", "name", "table", "schema", "columns",
		"primary_table", "primary_schema", "primary_columns", "on_delete", "on_update")
	return &expression.ForeignKey{
		Name:               f.str("name"),
		ForeignTable:       f.str("table"),
		ForeignTableSchema: f.str("schema"),
		ForeignColumns:     f.names("columns"),
		PrimaryTable:       f.str("primary_table"),
		PrimaryTableSchema: f.str("primary_schema"),
		PrimaryColumns:     f.names("primary_columns"),
		OnDelete:           d.rule(f, "on_delete"),
		OnUpdate:           d.rule(f, "on_update"),
	}
}

func (d *decoder) index(n *yaml.Node) *expression.Index {
	f := d.fields(n, "index", "name", "table", "schema", "unique", "clustered", "columns", "features")
	idx := &expression.Index{
		Name:        f.str("name"),
		TableName:   f.str("table"),
		Schema:      f.str("schema"),
		IsUnique:    f.flag("unique"),
		IsClustered: f.flag("clustered"),
		Features:    d.features(f.vals["features"]),
	}
	cols, ok := f.vals["columns"]
	if !ok {
		return idx
	}
	if cols.Kind != yaml.SequenceNode {
		d.errorf(cols, "index columns must be a list")
		return idx
	}
	for _, item := range cols.Content {
		item = resolve(item)
		if item.Kind == yaml.ScalarNode {
			idx.Columns = append(idx.Columns, expression.IndexColumn{Name: item.Value})
			continue
		}
		cf := d.fields(item, "index column", "name", "direction")
		dir, ok := expression.ParseDirection(cf.str("direction"))
		if !ok {
			d.errorf(cf.vals["direction"], "unknown sort direction %q", cf.str("direction"))
		}
		idx.Columns = append(idx.Columns, expression.IndexColumn{Name: cf.str("name"), Direction: dir})
	}
	return idx
}

func (d *decoder) constraint(n *yaml.Node) *expression.Constraint {
	f := d.fields(n, "constraint", "name", "table", "schema", "kind", "columns")
	c := &expression.Constraint{
		Name:      f.str("name"),
		TableName: f.str("table"),
		Schema:    f.str("schema"),
		Columns:   f.names("columns"),
	}
	switch kind := f.str("kind"); strings.ToLower(kind) {
	case "", "primary_key", "primary key":
		c.Kind = expression.PrimaryKey
	case "unique":
		c.Kind = expression.Unique
	default:
		d.errorf(f.vals["kind"], "unknown constraint kind %q", kind)
	}
	return c
}

func (d *decoder) sequence(n *yaml.Node) *expression.Sequence {
	f := d.fields(n, "sequence", "name", "schema", "increment", "min_value", "max_value", "start_with", "cache", "cycle")
	return &expression.Sequence{
		Name:      f.str("name"),
		Schema:    f.str("schema"),
		Increment: f.int64Ptr("increment"),
		MinValue:  f.int64Ptr("min_value"),
		MaxValue:  f.int64Ptr("max_value"),
		StartWith: f.int64Ptr("start_with"),
		Cache:     f.int64Ptr("cache"),
		Cycle:     f.flag("cycle"),
	}
}

// ---------- Expressions ----------

// step decodes a single-key mapping {kind: body}.
func (d *decoder) step(n *yaml.Node) expression.Expression {
	n = resolve(n)
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		d.errorf(n, "each step must be a mapping with exactly one operation")
		return nil
	}
	key, body := n.Content[0], resolve(n.Content[1])
	kind, ok := expression.ParseKind(key.Value)
	if !ok {
		d.errorf(key, "unknown operation %q", key.Value)
		return nil
	}

	switch kind {
	case expression.KindCreateTable:
		f := d.fields(body, kind.String(), "name", "schema", "description", "columns", "features")
		return &expression.CreateTable{
			Name:        f.str("name"),
			Schema:      f.str("schema"),
			Description: f.str("description"),
			Columns:     d.columns(f.vals["columns"], expression.ColumnCreate),
			Features:    d.features(f.vals["features"]),
		}
	case expression.KindDeleteTable:
		f := d.fields(body, kind.String(), "name", "schema")
		return &expression.DeleteTable{Name: f.str("name"), Schema: f.str("schema")}
	case expression.KindRenameTable:
		f := d.fields(body, kind.String(), "old_name", "new_name", "schema")
		return &expression.RenameTable{OldName: f.str("old_name"), NewName: f.str("new_name"), Schema: f.str("schema")}
	case expression.KindCreateColumn, expression.KindAlterColumn:
		f := d.fields(body, kind.String(), "table", "schema", "column")
		mod := expression.ColumnCreate
		if kind == expression.KindAlterColumn {
			mod = expression.ColumnAlter
		}
		var col *expression.Column
		if n, ok := f.vals["column"]; ok {
			col = d.column(n, mod)
		}
		if kind == expression.KindAlterColumn {
			return &expression.AlterColumn{TableName: f.str("table"), Schema: f.str("schema"), Column: col}
		}
		return &expression.CreateColumn{TableName: f.str("table"), Schema: f.str("schema"), Column: col}
	case expression.KindDeleteColumn:
		f := d.fields(body, kind.String(), "table", "schema", "columns", "column")
		names := f.names("columns")
		names = append(names, f.names("column")...)
		return &expression.DeleteColumn{TableName: f.str("table"), Schema: f.str("schema"), ColumnNames: names}
	case expression.KindRenameColumn:
		f := d.fields(body, kind.String(), "table", "schema", "old_name", "new_name")
		return &expression.RenameColumn{
			TableName: f.str("table"), Schema: f.str("schema"),
			OldName: f.str("old_name"), NewName: f.str("new_name"),
		}
	case expression.KindCreateIndex:
		return &expression.CreateIndex{Index: d.index(body)}
	case expression.KindDeleteIndex:
		return &expression.DeleteIndex{Index: d.index(body)}
	case expression.KindCreateConstraint:
		return &expression.CreateConstraint{Constraint: d.constraint(body)}
	case expression.KindDeleteConstraint:
		return &expression.DeleteConstraint{Constraint: d.constraint(body)}
	case expression.KindCreateForeignKey:
		return &expression.CreateForeignKey{ForeignKey: d.foreignKey(body)}
	case expression.KindDeleteForeignKey:
		return &expression.DeleteForeignKey{ForeignKey: d.foreignKey(body)}
	case expression.KindCreateSchema:
		f := d.fields(body, kind.String(), "name")
		return &expression.CreateSchema{Name: f.str("name")}
	case expression.KindAlterSchema:
		f := d.fields(body, kind.String(), "table", "source_schema", "destination_schema")
		return &expression.AlterSchema{
			TableName:         f.str("table"),
			SourceSchema:      f.str("source_schema"),
			DestinationSchema: f.str("destination_schema"),
		}
	case expression.KindDeleteSchema:
		f := d.fields(body, kind.String(), "name")
		return &expression.DeleteSchema{Name: f.str("name")}
	case expression.KindCreateSequence:
		return &expression.CreateSequence{Sequence: d.sequence(body)}
	case expression.KindDeleteSequence:
		f := d.fields(body, kind.String(), "name", "schema")
		return &expression.DeleteSequence{Name: f.str("name"), Schema: f.str("schema")}
	case expression.KindInsertData:
		f := d.fields(body, kind.String(), "table", "schema", "rows", "features")
		return &expression.InsertData{
			TableName: f.str("table"),
			Schema:    f.str("schema"),
			Rows:      d.rows(f.vals["rows"]),
			Features:  d.features(f.vals["features"]),
		}
	case expression.KindUpdateData:
		f := d.fields(body, kind.String(), "table", "schema", "set", "where", "all_rows")
		up := &expression.UpdateData{TableName: f.str("table"), Schema: f.str("schema"), AllRows: f.flag("all_rows")}
		if n, ok := f.vals["set"]; ok {
			up.Set = d.row(n, "set")
		}
		if n, ok := f.vals["where"]; ok {
			up.Where = d.row(n, "where")
		}
		return up
	case expression.KindDeleteData:
		f := d.fields(body, kind.String(), "table", "schema", "rows", "all_rows")
		return &expression.DeleteData{
			TableName: f.str("table"),
			Schema:    f.str("schema"),
			Rows:      d.rows(f.vals["rows"]),
			AllRows:   f.flag("all_rows"),
		}
	}
	d.errorf(key, "unsupported operation %q", key.Value)
	return nil
}

func (d *decoder) steps(n *yaml.Node, section string) []Step {
	if n.Kind != yaml.SequenceNode {
		d.errorf(n, "%s must be a list of operations", section)
		return nil
	}
	out := make([]Step, 0, len(n.Content))
	for _, item := range n.Content {
		if e := d.step(item); e != nil {
			out = append(out, Step{Expr: e, Line: item.Line})
		}
	}
	return out
}

// document decodes the root mapping of a migration file.
func (d *decoder) document(root *yaml.Node) *Document {
	doc := &Document{File: d.file}
	f := d.fields(root, "migration", "version", "description", "up", "down")

	if !f.has("version") {
		d.errorf(root, "version is required")
	} else if v := f.int64Ptr("version"); v != nil {
		if *v <= 0 {
			d.errorf(f.vals["version"], "version must be positive")
		}
		doc.Version = *v
	}
	doc.Description = f.str("description")

	if up, ok := f.vals["up"]; ok {
		doc.Up = d.steps(up, "up")
	} else {
		d.errorf(root, "up is required")
	}
	if down, ok := f.vals["down"]; ok {
		doc.Down = d.steps(down, "down")
		if doc.Down == nil {
			doc.Down = []Step{}
		}
	}
	return doc
}
