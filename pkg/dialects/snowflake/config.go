// Package snowflake provides the Snowflake migration dialect.
// This package is pure Go with no database driver dependencies.
package snowflake

import "github.com/leapstack-labs/leapmigrate/pkg/core"

// Config is the Snowflake dialect configuration.
// Snowflake has schemas and sequences but no secondary indexes.
var Config = &core.DialectConfig{
	Name:          "snowflake",
	DefaultSchema: "PUBLIC",
	Identifiers: core.IdentifierConfig{
		Quote:    `"`,
		QuoteEnd: `"`,
		Escape:   `""`,
	},
	Values: core.ValueConfig{
		Quote:        "'",
		TrueLiteral:  "TRUE",
		FalseLiteral: "FALSE",
		Binary:       core.BinaryXQuoted,
		SystemMethods: map[string]string{
			"new_guid":                "UUID_STRING()",
			"current_datetime":        "CURRENT_TIMESTAMP()",
			"current_utc_datetime":    "SYSDATE()",
			"current_datetime_offset": "CURRENT_TIMESTAMP()",
			"current_user":            "CURRENT_USER()",
		},
	},

	SupportsSchemas:      true,
	SupportsSequences:    true,
	SupportsDescriptions: true,
}
