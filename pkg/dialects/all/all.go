// Package all registers every built-in dialect with the generator registry.
//
//	import _ "github.com/leapstack-labs/leapmigrate/pkg/dialects/all"
package all

import (
	// Each dialect registers itself in init.
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/databricks"
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/duckdb"
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/snowflake"
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/sqlite"
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/sqlserver"
)
