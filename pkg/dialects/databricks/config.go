// Package databricks provides the Databricks SQL migration dialect.
// This package is pure Go with no database driver dependencies.
package databricks

import "github.com/leapstack-labs/leapmigrate/pkg/core"

// Config is the Databricks SQL dialect configuration.
// Unity Catalog has schemas but no sequences or secondary indexes.
var Config = &core.DialectConfig{
	Name:          "databricks",
	DefaultSchema: "default",
	Identifiers: core.IdentifierConfig{
		Quote:    "`",
		QuoteEnd: "`",
		Escape:   "``",
	},
	Values: core.ValueConfig{
		Quote:        "'",
		TrueLiteral:  "TRUE",
		FalseLiteral: "FALSE",
		Binary:       core.BinaryXQuoted,
		SystemMethods: map[string]string{
			"new_guid":                "uuid()",
			"current_datetime":        "current_timestamp()",
			"current_utc_datetime":    "current_timestamp()",
			"current_datetime_offset": "current_timestamp()",
			"current_user":            "current_user()",
		},
	},

	SupportsSchemas:      true,
	SupportsDescriptions: true,
}
