// Package quote renders identifiers and literal values for a SQL dialect.
//
// A Quoter is pure and stateless once built; it is safe for concurrent use.
package quote

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leapmigrate/pkg/core"
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
)

// DefaultTimeLayout is used when ValueConfig.TimeLayout is empty.
const DefaultTimeLayout = "2006-01-02T15:04:05"

// Quoter quotes identifiers and values according to a dialect configuration.
type Quoter struct {
	ids  core.IdentifierConfig
	vals core.ValueConfig
}

// New creates a Quoter. Zero-valued config fields fall back to ANSI behavior:
// double-quoted identifiers, single-quoted strings and 1/0 booleans.
func New(ids core.IdentifierConfig, vals core.ValueConfig) *Quoter {
	if ids.Quote == "" {
		ids.Quote = `"`
	}
	if ids.QuoteEnd == "" {
		ids.QuoteEnd = ids.Quote
	}
	if ids.Escape == "" {
		ids.Escape = ids.QuoteEnd + ids.QuoteEnd
	}
	if vals.Quote == "" {
		vals.Quote = "'"
	}
	if vals.TrueLiteral == "" {
		vals.TrueLiteral = "1"
	}
	if vals.FalseLiteral == "" {
		vals.FalseLiteral = "0"
	}
	if vals.TimeLayout == "" {
		vals.TimeLayout = DefaultTimeLayout
	}
	return &Quoter{ids: ids, vals: vals}
}

// ---------- Identifiers ----------

// Quote wraps name in the identifier delimiters, escaping embedded end delimiters.
// Empty names and names that are already quoted are returned unchanged. A name
// only counts as quoted when every end delimiter inside it is escaped, so a
// name cannot close its own quoting early.
func (q *Quoter) Quote(name string) string {
	if name == "" || q.IsQuoted(name) {
		return name
	}
	escaped := strings.ReplaceAll(name, q.ids.QuoteEnd, q.ids.Escape)
	return q.ids.Quote + escaped + q.ids.QuoteEnd
}

// IsQuoted reports whether name is a single identifier wrapped in the
// delimiters, with every embedded end delimiter escaped.
func (q *Quoter) IsQuoted(name string) bool {
	if len(name) < len(q.ids.Quote)+len(q.ids.QuoteEnd) {
		return false
	}
	if !strings.HasPrefix(name, q.ids.Quote) || !strings.HasSuffix(name, q.ids.QuoteEnd) {
		return false
	}
	inner := name[len(q.ids.Quote) : len(name)-len(q.ids.QuoteEnd)]
	return !strings.Contains(strings.ReplaceAll(inner, q.ids.Escape, ""), q.ids.QuoteEnd)
}

// UnQuote strips the delimiter pair and unescapes embedded delimiters.
// Names that are not quoted are returned unchanged.
func (q *Quoter) UnQuote(name string) string {
	if !q.IsQuoted(name) {
		return name
	}
	inner := name[len(q.ids.Quote) : len(name)-len(q.ids.QuoteEnd)]
	return strings.ReplaceAll(inner, q.ids.Escape, q.ids.QuoteEnd)
}

// QuoteColumnName quotes a column name.
func (q *Quoter) QuoteColumnName(name string) string {
	return q.Quote(name)
}

// QuoteColumnNames quotes and comma-joins column names, preserving order.
func (q *Quoter) QuoteColumnNames(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = q.Quote(n)
	}
	return strings.Join(quoted, ", ")
}

// QuoteSchemaName quotes a schema name.
func (q *Quoter) QuoteSchemaName(name string) string {
	return q.Quote(name)
}

// QuoteTableName quotes a table name, prefixed by its schema when one is given.
func (q *Quoter) QuoteTableName(name, schema string) string {
	return q.qualify(schema, name)
}

// QuoteSequenceName quotes a sequence name, prefixed by its schema when one is given.
func (q *Quoter) QuoteSequenceName(name, schema string) string {
	return q.qualify(schema, name)
}

// QuoteIndexName quotes an index name. The schema is only used when the
// dialect qualifies index names.
func (q *Quoter) QuoteIndexName(name, schema string) string {
	if !q.ids.QualifyIndexNames {
		return q.Quote(name)
	}
	return q.qualify(schema, name)
}

// QuoteConstraintName quotes a constraint name, following the index rule.
func (q *Quoter) QuoteConstraintName(name, schema string) string {
	return q.QuoteIndexName(name, schema)
}

func (q *Quoter) qualify(schema, name string) string {
	if schema == "" {
		return q.Quote(name)
	}
	return q.Quote(schema) + "." + q.Quote(name)
}

// ---------- Values ----------

// QuoteValue renders v as a SQL literal.
func (q *Quoter) QuoteValue(v any) string {
	switch v := v.(type) {
	case nil, expression.Null:
		return "NULL"
	case expression.RawSQL:
		return string(v)
	case expression.SystemMethod:
		// Generators reject unmapped methods before rendering.
		if fn, ok := q.SystemMethod(v); ok {
			return fn
		}
		return q.QuoteString(string(v))
	case bool:
		if v {
			return q.vals.TrueLiteral
		}
		return q.vals.FalseLiteral
	case string:
		return q.QuoteString(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return q.quoteRaw(v.Format(q.vals.TimeLayout))
	case uuid.UUID:
		return q.quoteRaw(v.String())
	case []byte:
		return q.QuoteBinary(v)
	case fmt.Stringer:
		return q.QuoteString(v.String())
	default:
		return q.QuoteString(fmt.Sprint(v))
	}
}

// QuoteString renders a string literal with the dialect's unicode prefix.
func (q *Quoter) QuoteString(s string) string {
	return q.vals.UnicodePrefix + q.quoteRaw(s)
}

func (q *Quoter) quoteRaw(s string) string {
	if q.vals.EscapeBackslash {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	s = strings.ReplaceAll(s, q.vals.Quote, q.vals.Quote+q.vals.Quote)
	return q.vals.Quote + s + q.vals.Quote
}

// UnquoteString reverses QuoteString. Input that is not a string literal is
// returned unchanged.
func (q *Quoter) UnquoteString(literal string) string {
	s := strings.TrimPrefix(literal, q.vals.UnicodePrefix)
	if len(s) < 2*len(q.vals.Quote) || !strings.HasPrefix(s, q.vals.Quote) || !strings.HasSuffix(s, q.vals.Quote) {
		return literal
	}
	s = s[len(q.vals.Quote) : len(s)-len(q.vals.Quote)]
	s = strings.ReplaceAll(s, q.vals.Quote+q.vals.Quote, q.vals.Quote)
	if q.vals.EscapeBackslash {
		s = strings.ReplaceAll(s, `\\`, `\`)
	}
	return s
}

// QuoteBinary renders a byte slice in the dialect's binary literal style.
func (q *Quoter) QuoteBinary(b []byte) string {
	switch q.vals.Binary {
	case core.BinaryXQuoted:
		return "X'" + strings.ToUpper(hex.EncodeToString(b)) + "'"
	case core.BinaryEscapedHex:
		return `'\x` + hex.EncodeToString(b) + "'"
	case core.BinaryBlobCast:
		var sb strings.Builder
		sb.WriteString("'")
		for _, c := range b {
			fmt.Fprintf(&sb, `\x%02X`, c)
		}
		sb.WriteString("'::BLOB")
		return sb.String()
	default:
		return "0x" + strings.ToUpper(hex.EncodeToString(b))
	}
}

// SystemMethod returns the native SQL for a system method, if the dialect maps it.
func (q *Quoter) SystemMethod(m expression.SystemMethod) (string, bool) {
	fn, ok := q.vals.SystemMethods[string(m)]
	return fn, ok
}
