// Package duckdb provides the DuckDB migration dialect.
// This package is pure Go with no database driver dependencies.
package duckdb

import "github.com/leapstack-labs/leapmigrate/pkg/core"

// Config is the DuckDB dialect configuration.
// The Builder reads the capability flags and auto-wires schemas, sequences
// and COMMENT ON descriptions.
var Config = &core.DialectConfig{
	Name:          "duckdb",
	DefaultSchema: "main",
	Identifiers: core.IdentifierConfig{
		Quote:    `"`,
		QuoteEnd: `"`,
		Escape:   `""`,
	},
	Values: core.ValueConfig{
		Quote:        "'",
		TrueLiteral:  "TRUE",
		FalseLiteral: "FALSE",
		Binary:       core.BinaryBlobCast,
		SystemMethods: map[string]string{
			"new_guid":                "gen_random_uuid()",
			"current_datetime":        "current_localtimestamp()",
			"current_utc_datetime":    "now()",
			"current_datetime_offset": "current_timestamp",
		},
	},

	SupportsSchemas:      true,
	SupportsSequences:    true,
	SupportsDescriptions: true,
}
