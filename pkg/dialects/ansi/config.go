// Package ansi provides the generic ANSI SQL dialect.
//
// It renders the baseline templates unchanged and serves as the reference the
// product dialects diverge from.
package ansi

import "github.com/leapstack-labs/leapmigrate/pkg/core"

// Config is the generic dialect configuration.
var Config = &core.DialectConfig{
	Name:    "generic",
	Aliases: []string{"ansi"},
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
			"current_datetime": "CURRENT_TIMESTAMP",
			"current_user":     "CURRENT_USER",
		},
	},

	// No schemas; sequences are part of SQL:2003.
	SupportsSequences: true,
}
