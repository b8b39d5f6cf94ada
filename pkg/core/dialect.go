package core

import (
	"fmt"
	"strings"
)

// DialectConfig holds the static configuration for a SQL dialect.
// It is pure data with no handler functions.
//
// The runtime behavior (expression handlers, column clauses, type maps) lives in
// pkg/generator.Generator, which is built from this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "sqlserver2005", "postgres")
	Name string

	// Aliases are additional names the dialect can be selected by
	Aliases []string

	// Identifiers defines quoting rules for tables, columns, indexes, etc.
	Identifiers IdentifierConfig

	// Values defines how literal values are rendered
	Values ValueConfig

	// DefaultSchema is the schema implied when none is given ("dbo", "public").
	// Informational only; generators never inject it into names.
	DefaultSchema string

	// Separator joins multiple statements produced by one expression.
	// Empty means DefaultSeparator.
	Separator string

	// Capability flags (auto-wired by generator.Builder)
	SupportsSchemas      bool // CREATE/ALTER/DROP SCHEMA
	SupportsSequences    bool // CREATE/DROP SEQUENCE
	SupportsDescriptions bool // table/column descriptions
}

// DefaultSeparator joins statements rendered from a single expression.
const DefaultSeparator = "; "

// StatementSeparator returns the configured separator or DefaultSeparator.
func (c *DialectConfig) StatementSeparator() string {
	if c.Separator == "" {
		return DefaultSeparator
	}
	return c.Separator
}

// IdentifierConfig defines how identifiers are quoted.
type IdentifierConfig struct {
	Quote    string // Quote character: ", `, [
	QuoteEnd string // End quote character (usually same as Quote, ] for [)
	Escape   string // Escape sequence for an embedded QuoteEnd: "", ``, ]]

	// QualifyIndexNames prefixes index and constraint names with their schema.
	// Postgres indexes live in a schema; SQL Server index names are table-scoped.
	QualifyIndexNames bool
}

// BinaryStyle selects how byte slices are rendered as literals.
type BinaryStyle int

const (
	// BinaryHex renders 0x0A0B (SQL Server, generic).
	BinaryHex BinaryStyle = iota
	// BinaryXQuoted renders X'0A0B' (SQLite, MySQL, DuckDB).
	BinaryXQuoted
	// BinaryEscapedHex renders '\x0a0b' (PostgreSQL bytea hex format).
	BinaryEscapedHex
	// BinaryBlobCast renders '\x0A\x0B'::BLOB (DuckDB).
	BinaryBlobCast
)

// ValueConfig defines how literal values are rendered.
type ValueConfig struct {
	Quote           string // String literal delimiter, normally '
	UnicodePrefix   string // Prefix for unicode string literals (N for SQL Server)
	EscapeBackslash bool   // Double backslashes inside string literals (MySQL)
	TrueLiteral     string
	FalseLiteral    string
	TimeLayout      string // Go layout used for time.Time values
	Binary          BinaryStyle

	// SystemMethods maps system method names (see expression.SystemMethod)
	// to the dialect-native SQL function call.
	SystemMethods map[string]string
}

// CompatibilityMode governs how unsupported dialect features are handled.
type CompatibilityMode int

const (
	// Loose silently ignores unsupported features.
	Loose CompatibilityMode = iota
	// Strict aborts generation of the whole statement and reports why.
	Strict
)

// String returns the string representation of CompatibilityMode.
func (m CompatibilityMode) String() string {
	switch m {
	case Loose:
		return "loose"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseCompatibilityMode parses "loose" or "strict" (case-insensitive).
// An empty string yields Loose.
func ParseCompatibilityMode(s string) (CompatibilityMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "loose":
		return Loose, nil
	case "strict":
		return Strict, nil
	default:
		return Loose, fmt.Errorf("unknown compatibility mode %q (expected loose or strict)", s)
	}
}
