// Package mysql provides the MySQL 5 and MySQL 8 migration dialects.
package mysql

import "github.com/leapstack-labs/leapmigrate/pkg/core"

var identifiers = core.IdentifierConfig{
	Quote:    "`",
	QuoteEnd: "`",
	Escape:   "``",
}

func values(methods map[string]string) core.ValueConfig {
	return core.ValueConfig{
		Quote:           "'",
		EscapeBackslash: true,
		TrueLiteral:     "1",
		FalseLiteral:    "0",
		TimeLayout:      "2006-01-02 15:04:05",
		Binary:          core.BinaryXQuoted,
		SystemMethods:   methods,
	}
}

// Config5 is the MySQL 5 configuration. Only CURRENT_TIMESTAMP is a valid
// function default before 8.0.13.
var Config5 = &core.DialectConfig{
	Name:        "mysql5",
	Identifiers: identifiers,
	Values: values(map[string]string{
		"current_datetime": "CURRENT_TIMESTAMP",
		"current_user":     "CURRENT_USER()",
	}),
	SupportsDescriptions: true,
}

// Config8 is the MySQL 8 configuration; expression defaults are parenthesized.
// The bare name "mysql" selects it.
var Config8 = &core.DialectConfig{
	Name:        "mysql8",
	Aliases:     []string{"mysql"},
	Identifiers: identifiers,
	Values: values(map[string]string{
		"new_guid":             "(UUID())",
		"current_datetime":     "CURRENT_TIMESTAMP",
		"current_utc_datetime": "(UTC_TIMESTAMP())",
		"current_user":         "(CURRENT_USER())",
	}),
	SupportsDescriptions: true,
}
