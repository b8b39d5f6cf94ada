package generator

import (
	"testing"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeMapLookup(t *testing.T) {
	m := NewTypeMap().
		Set(expression.String, "NVARCHAR(255)").
		SetSized(expression.String, 4000, "NVARCHAR($size)").
		SetSized(expression.String, MaxSize, "NVARCHAR(MAX)").
		Set(expression.Decimal, "DECIMAL(19,5)").
		SetSized(expression.Decimal, 38, "DECIMAL($size,$precision)").
		SetSized(expression.Binary, 8000, "VARBINARY($size)")

	tests := []struct {
		name      string
		typ       expression.DbType
		size      int
		precision int
		want      string
		wantErr   bool
	}{
		{"default", expression.String, 0, 0, "NVARCHAR(255)", false},
		{"sized", expression.String, 100, 0, "NVARCHAR(100)", false},
		{"at capacity", expression.String, 4000, 0, "NVARCHAR(4000)", false},
		{"next bucket", expression.String, 4001, 0, "NVARCHAR(MAX)", false},
		{"precision", expression.Decimal, 12, 4, "DECIMAL(12,4)", false},
		{"too large falls back to default", expression.Decimal, 50, 0, "DECIMAL(19,5)", false},
		{"sized only without size", expression.Binary, 0, 0, "", true},
		{"sized only too large", expression.Binary, 9000, 0, "", true},
		{"unmapped", expression.Xml, 0, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Lookup(tt.typ, tt.size, tt.precision)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeMapCloneIsIndependent(t *testing.T) {
	base := NewTypeMap().Set(expression.Int32, "INT")
	derived := base.Clone().Set(expression.Int32, "INTEGER").Set(expression.Date, "DATE")

	got, err := base.Lookup(expression.Int32, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "INT", got)
	assert.False(t, base.Has(expression.Date))
	assert.True(t, derived.Has(expression.Date))
}

func TestSetSizedReplacesCapacity(t *testing.T) {
	m := NewTypeMap().
		SetSized(expression.AnsiString, 8000, "VARCHAR($size)").
		SetSized(expression.AnsiString, 8000, "CHARACTER VARYING($size)")

	got, err := m.Lookup(expression.AnsiString, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "CHARACTER VARYING(10)", got)
}

func TestDefaultTypeMapCoversEveryType(t *testing.T) {
	m := DefaultTypeMap()
	for typ := expression.AnsiString; typ <= expression.Xml; typ++ {
		assert.True(t, m.Has(typ), typ.String())
	}
}
