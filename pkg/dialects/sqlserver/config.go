// Package sqlserver provides the Microsoft SQL Server dialects.
//
// Each release is a separate generator built on its predecessor: 2005 adds
// schemas, descriptions and covering indexes, 2008 filtered indexes and the
// newer date types, 2012 sequences.
package sqlserver

import "github.com/leapstack-labs/leapmigrate/pkg/core"

var identifiers = core.IdentifierConfig{
	Quote:    "[",
	QuoteEnd: "]",
	Escape:   "]]",
}

func values(methods map[string]string) core.ValueConfig {
	return core.ValueConfig{
		Quote:         "'",
		UnicodePrefix: "N",
		TrueLiteral:   "1",
		FalseLiteral:  "0",
		TimeLayout:    "2006-01-02T15:04:05",
		Binary:        core.BinaryHex,
		SystemMethods: methods,
	}
}

var methods2000 = map[string]string{
	"new_guid":             "NEWID()",
	"current_datetime":     "GETDATE()",
	"current_utc_datetime": "GETUTCDATE()",
	"current_user":         "CURRENT_USER",
}

var methods2005 = extend(methods2000, map[string]string{
	"new_sequential_id": "NEWSEQUENTIALID()",
})

var methods2008 = extend(methods2005, map[string]string{
	"current_datetime":        "SYSDATETIME()",
	"current_utc_datetime":    "SYSUTCDATETIME()",
	"current_datetime_offset": "SYSDATETIMEOFFSET()",
})

func extend(base, add map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(add))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range add {
		out[k] = v
	}
	return out
}

// Config2000 is the SQL Server 2000 configuration: no schemas, no sequences.
var Config2000 = &core.DialectConfig{
	Name:          "sqlserver2000",
	DefaultSchema: "dbo",
	Identifiers:   identifiers,
	Values:        values(methods2000),
}

// Config2005 adds user schemas and extended-property descriptions.
var Config2005 = &core.DialectConfig{
	Name:                 "sqlserver2005",
	DefaultSchema:        "dbo",
	Identifiers:          identifiers,
	Values:               values(methods2005),
	SupportsSchemas:      true,
	SupportsDescriptions: true,
}

// Config2008 is the SQL Server 2008 configuration.
var Config2008 = &core.DialectConfig{
	Name:                 "sqlserver2008",
	DefaultSchema:        "dbo",
	Identifiers:          identifiers,
	Values:               values(methods2008),
	SupportsSchemas:      true,
	SupportsDescriptions: true,
}

// Config2012 adds sequences. The bare name "sqlserver" selects it.
var Config2012 = &core.DialectConfig{
	Name:                 "sqlserver2012",
	Aliases:              []string{"sqlserver", "mssql"},
	DefaultSchema:        "dbo",
	Identifiers:          identifiers,
	Values:               values(methods2008),
	SupportsSchemas:      true,
	SupportsSequences:    true,
	SupportsDescriptions: true,
}
