package generator

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
)

// Placeholders substituted in sized type templates.
const (
	SizePlaceholder      = "$size"
	PrecisionPlaceholder = "$precision"
)

// MaxSize is the capacity of an unbounded sized template.
const MaxSize = math.MaxInt32

type sizedTemplate struct {
	capacity int
	template string
}

type typeEntry struct {
	def   string
	sized []sizedTemplate // ascending capacity
}

// TypeMap maps semantic column types to dialect type names.
//
// A type has a default template used when no size is given, and any number of
// sized templates: the smallest capacity that fits the requested size wins.
type TypeMap struct {
	entries map[expression.DbType]*typeEntry
}

// NewTypeMap returns an empty type map.
func NewTypeMap() *TypeMap {
	return &TypeMap{entries: make(map[expression.DbType]*typeEntry)}
}

func (m *TypeMap) entry(t expression.DbType) *typeEntry {
	e, ok := m.entries[t]
	if !ok {
		e = &typeEntry{}
		m.entries[t] = e
	}
	return e
}

// Set sets the default template of t.
func (m *TypeMap) Set(t expression.DbType, template string) *TypeMap {
	m.entry(t).def = template
	return m
}

// SetSized sets the template of t for sizes up to capacity.
func (m *TypeMap) SetSized(t expression.DbType, capacity int, template string) *TypeMap {
	e := m.entry(t)
	for i := range e.sized {
		if e.sized[i].capacity == capacity {
			e.sized[i].template = template
			return m
		}
	}
	e.sized = append(e.sized, sizedTemplate{capacity: capacity, template: template})
	sort.Slice(e.sized, func(i, j int) bool { return e.sized[i].capacity < e.sized[j].capacity })
	return m
}

// Clone returns an independent copy, for dialect versions that extend a base map.
func (m *TypeMap) Clone() *TypeMap {
	out := NewTypeMap()
	for t, e := range m.entries {
		out.entries[t] = &typeEntry{def: e.def, sized: append([]sizedTemplate(nil), e.sized...)}
	}
	return out
}

// Has reports whether t has any mapping.
func (m *TypeMap) Has(t expression.DbType) bool {
	_, ok := m.entries[t]
	return ok
}

// Lookup renders the dialect type for t with the given size and precision.
// A zero size selects the default template.
func (m *TypeMap) Lookup(t expression.DbType, size, precision int) (string, error) {
	e, ok := m.entries[t]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	if size > 0 {
		for _, s := range e.sized {
			if size <= s.capacity {
				return expand(s.template, size, precision), nil
			}
		}
	}
	if e.def != "" {
		return expand(e.def, size, precision), nil
	}
	return "", fmt.Errorf("%w: %s with size %d", ErrUnsupportedType, t, size)
}

func expand(template string, size, precision int) string {
	if !strings.Contains(template, "$") {
		return template
	}
	return strings.NewReplacer(
		SizePlaceholder, strconv.Itoa(size),
		PrecisionPlaceholder, strconv.Itoa(precision),
	).Replace(template)
}

// DefaultTypeMap returns the ANSI baseline type map.
func DefaultTypeMap() *TypeMap {
	return NewTypeMap().
		Set(expression.AnsiString, "VARCHAR(255)").
		SetSized(expression.AnsiString, MaxSize, "VARCHAR($size)").
		Set(expression.AnsiStringFixedLength, "CHAR(255)").
		SetSized(expression.AnsiStringFixedLength, MaxSize, "CHAR($size)").
		Set(expression.String, "NVARCHAR(255)").
		SetSized(expression.String, MaxSize, "NVARCHAR($size)").
		Set(expression.StringFixedLength, "NCHAR(255)").
		SetSized(expression.StringFixedLength, MaxSize, "NCHAR($size)").
		Set(expression.Binary, "VARBINARY(8000)").
		SetSized(expression.Binary, MaxSize, "VARBINARY($size)").
		Set(expression.Boolean, "BOOLEAN").
		Set(expression.Byte, "SMALLINT").
		Set(expression.Int16, "SMALLINT").
		Set(expression.Int32, "INTEGER").
		Set(expression.Int64, "BIGINT").
		Set(expression.Decimal, "DECIMAL(19,5)").
		SetSized(expression.Decimal, 38, "DECIMAL($size,$precision)").
		Set(expression.Currency, "DECIMAL(19,4)").
		Set(expression.Double, "DOUBLE PRECISION").
		Set(expression.Single, "REAL").
		Set(expression.Date, "DATE").
		Set(expression.Time, "TIME").
		Set(expression.DateTime, "TIMESTAMP").
		Set(expression.DateTime2, "TIMESTAMP").
		Set(expression.DateTimeOffset, "TIMESTAMP WITH TIME ZONE").
		Set(expression.Guid, "CHAR(36)").
		Set(expression.Xml, "XML")
}
