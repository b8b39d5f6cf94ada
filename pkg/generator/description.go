package generator

import (
	"fmt"

	"github.com/leapstack-labs/leapmigrate/pkg/quote"
)

// DescriptionGenerator renders table and column description statements.
type DescriptionGenerator interface {
	TableDescription(table, schema, text string) []string
	ColumnDescription(table, schema, column, text string) []string
}

// DescriptionFactory builds a DescriptionGenerator for a dialect's quoter.
type DescriptionFactory func(q *quote.Quoter) DescriptionGenerator

// NoopDescriptions drops descriptions.
type NoopDescriptions struct{}

func (NoopDescriptions) TableDescription(string, string, string) []string          { return nil }
func (NoopDescriptions) ColumnDescription(string, string, string, string) []string { return nil }

// NoDescriptions is the factory for NoopDescriptions.
func NoDescriptions(*quote.Quoter) DescriptionGenerator { return NoopDescriptions{} }

// CommentOn renders COMMENT ON TABLE / COMMENT ON COLUMN statements.
type CommentOn struct {
	q *quote.Quoter
}

// CommentOnDescriptions is the factory for CommentOn.
func CommentOnDescriptions(q *quote.Quoter) DescriptionGenerator { return &CommentOn{q: q} }

func (c *CommentOn) TableDescription(table, schema, text string) []string {
	return []string{fmt.Sprintf("COMMENT ON TABLE %s IS %s",
		c.q.QuoteTableName(table, schema), c.q.QuoteString(text))}
}

func (c *CommentOn) ColumnDescription(table, schema, column, text string) []string {
	return []string{fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s",
		c.q.QuoteTableName(table, schema), c.q.QuoteColumnName(column), c.q.QuoteString(text))}
}

// ExtendedProperties renders sp_addextendedproperty calls with the
// MS_Description property. An empty schema means dbo.
type ExtendedProperties struct {
	q *quote.Quoter
}

// ExtendedPropertyDescriptions is the factory for ExtendedProperties.
func ExtendedPropertyDescriptions(q *quote.Quoter) DescriptionGenerator {
	return &ExtendedProperties{q: q}
}

const extendedProperty = "EXEC sys.sp_addextendedproperty @name = N'MS_Description', @value = %s, " +
	"@level0type = N'SCHEMA', @level0name = %s, @level1type = N'TABLE', @level1name = %s"

func (x *ExtendedProperties) TableDescription(table, schema, text string) []string {
	return []string{fmt.Sprintf(extendedProperty,
		x.q.QuoteString(text), x.q.QuoteString(x.schema(schema)), x.q.QuoteString(table))}
}

func (x *ExtendedProperties) ColumnDescription(table, schema, column, text string) []string {
	return []string{fmt.Sprintf(extendedProperty+", @level2type = N'COLUMN', @level2name = %s",
		x.q.QuoteString(text), x.q.QuoteString(x.schema(schema)), x.q.QuoteString(table), x.q.QuoteString(column))}
}

func (x *ExtendedProperties) schema(s string) string {
	if s == "" {
		return "dbo"
	}
	return s
}
