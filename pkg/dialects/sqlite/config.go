// Package sqlite provides the SQLite migration dialect.
//
// SQLite cannot alter columns or add constraints to an existing table; those
// operations are reported through the compatibility mode.
package sqlite

import "github.com/leapstack-labs/leapmigrate/pkg/core"

// Config is the SQLite dialect configuration.
var Config = &core.DialectConfig{
	Name:          "sqlite",
	Aliases:       []string{"sqlite3"},
	DefaultSchema: "main",
	Identifiers: core.IdentifierConfig{
		Quote:    `"`,
		QuoteEnd: `"`,
		Escape:   `""`,
	},
	Values: core.ValueConfig{
		Quote:        "'",
		TrueLiteral:  "1",
		FalseLiteral: "0",
		TimeLayout:   "2006-01-02 15:04:05",
		Binary:       core.BinaryXQuoted,
		SystemMethods: map[string]string{
			"current_datetime":     "CURRENT_TIMESTAMP",
			"current_utc_datetime": "CURRENT_TIMESTAMP",
		},
	},
}
