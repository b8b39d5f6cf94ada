// Package postgres provides the PostgreSQL migration dialect.
// This package is pure Go with no database driver dependencies.
package postgres

import "github.com/leapstack-labs/leapmigrate/pkg/core"

// Config is the PostgreSQL dialect configuration.
// The Builder reads the capability flags and auto-wires schemas, sequences
// and COMMENT ON descriptions.
var Config = &core.DialectConfig{
	Name:          "postgres",
	Aliases:       []string{"postgresql", "pg"},
	DefaultSchema: "public",
	Identifiers: core.IdentifierConfig{
		Quote:    `"`,
		QuoteEnd: `"`,
		Escape:   `""`,
		// Indexes live in the table's schema, so DROP INDEX needs the qualified name.
		QualifyIndexNames: true,
	},
	Values: core.ValueConfig{
		Quote:        "'",
		TrueLiteral:  "TRUE",
		FalseLiteral: "FALSE",
		Binary:       core.BinaryEscapedHex,
		SystemMethods: map[string]string{
			"new_guid":                "gen_random_uuid()",
			"current_datetime":        "now()",
			"current_utc_datetime":    "(now() at time zone 'utc')",
			"current_datetime_offset": "current_timestamp",
			"current_user":            "current_user",
		},
	},

	SupportsSchemas:      true,
	SupportsSequences:    true,
	SupportsDescriptions: true,
}
