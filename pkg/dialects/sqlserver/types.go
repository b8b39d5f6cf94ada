package sqlserver

import (
	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
)

// Types2000 has no MAX types; oversized text falls back to TEXT/NTEXT/IMAGE.
var Types2000 = generator.NewTypeMap().
	Set(expression.AnsiString, "VARCHAR(255)").
	SetSized(expression.AnsiString, 8000, "VARCHAR($size)").
	SetSized(expression.AnsiString, generator.MaxSize, "TEXT").
	Set(expression.AnsiStringFixedLength, "CHAR(255)").
	SetSized(expression.AnsiStringFixedLength, 8000, "CHAR($size)").
	Set(expression.String, "NVARCHAR(255)").
	SetSized(expression.String, 4000, "NVARCHAR($size)").
	SetSized(expression.String, generator.MaxSize, "NTEXT").
	Set(expression.StringFixedLength, "NCHAR(255)").
	SetSized(expression.StringFixedLength, 4000, "NCHAR($size)").
	Set(expression.Binary, "VARBINARY(8000)").
	SetSized(expression.Binary, 8000, "VARBINARY($size)").
	SetSized(expression.Binary, generator.MaxSize, "IMAGE").
	Set(expression.Boolean, "BIT").
	Set(expression.Byte, "TINYINT").
	Set(expression.Int16, "SMALLINT").
	Set(expression.Int32, "INT").
	Set(expression.Int64, "BIGINT").
	Set(expression.Decimal, "DECIMAL(19,5)").
	SetSized(expression.Decimal, 38, "DECIMAL($size,$precision)").
	Set(expression.Currency, "MONEY").
	Set(expression.Double, "DOUBLE PRECISION").
	Set(expression.Single, "REAL").
	Set(expression.Date, "DATETIME").
	Set(expression.Time, "DATETIME").
	Set(expression.DateTime, "DATETIME").
	Set(expression.DateTime2, "DATETIME").
	Set(expression.Guid, "UNIQUEIDENTIFIER").
	Set(expression.Xml, "NTEXT")

// Types2005 replaces the legacy large-object types with MAX and adds XML.
var Types2005 = Types2000.Clone().
	SetSized(expression.AnsiString, generator.MaxSize, "VARCHAR(MAX)").
	SetSized(expression.String, generator.MaxSize, "NVARCHAR(MAX)").
	SetSized(expression.Binary, generator.MaxSize, "VARBINARY(MAX)").
	Set(expression.Xml, "XML")

// Types2008 adds DATE, TIME, DATETIME2 and DATETIMEOFFSET.
var Types2008 = Types2005.Clone().
	Set(expression.Date, "DATE").
	Set(expression.Time, "TIME").
	Set(expression.DateTime2, "DATETIME2").
	Set(expression.DateTimeOffset, "DATETIMEOFFSET")
