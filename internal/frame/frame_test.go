package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Dataset {
	t.Helper()
	ds := New(
		Column{Name: "country", Kind: String},
		Column{Name: "year", Kind: Year},
		Column{Name: "value", Kind: Number},
	)
	ds.MustAppendRow(Str("NOR"), Num(2019), Num(5347896))
	ds.MustAppendRow(Str("NOR"), Num(2020), Num(5379475))
	ds.MustAppendRow(Str("IND"), Num(2019), Num(1366417754))
	ds.MustAppendRow(Str("IND"), Num(2020), Null())
	return ds
}

func TestValue(t *testing.T) {
	v := Num(1.5)
	f, ok := v.Float()
	require.True(t, ok)
	assert.Equal(t, 1.5, f)
	assert.False(t, v.IsNull())
	assert.Equal(t, 1.5, v.Any())

	s := Str("hi")
	text, ok := s.Text()
	require.True(t, ok)
	assert.Equal(t, "hi", text)
	_, ok = s.Float()
	assert.False(t, ok)

	n := Null()
	assert.True(t, n.IsNull())
	_, ok = n.Float()
	assert.False(t, ok)
	_, ok = n.Text()
	assert.False(t, ok)
	assert.Nil(t, n.Any())

	// Numeric cells still render as text for key lookups.
	text, ok = Num(2020).Text()
	require.True(t, ok)
	assert.Equal(t, "2020", text)
}

func TestNumPtr(t *testing.T) {
	assert.True(t, NumPtr(nil).IsNull())

	v := 3.5
	f, ok := NumPtr(&v).Float()
	require.True(t, ok)
	assert.Equal(t, 3.5, f)
}

func TestDataset_Basics(t *testing.T) {
	ds := sample(t)

	assert.Equal(t, 4, ds.Len())
	assert.True(t, ds.HasColumn("year"))
	assert.False(t, ds.HasColumn("nope"))

	col, ok := ds.Column("value")
	require.True(t, ok)
	assert.Equal(t, Number, col.Kind)

	v, ok := ds.Value(1, "value")
	require.True(t, ok)
	f, _ := v.Float()
	assert.Equal(t, 5379475.0, f)

	_, ok = ds.Value(1, "nope")
	assert.False(t, ok)

	row := ds.Row(3)
	assert.Equal(t, 3, row.Index())
	v, ok = row.Value("value")
	require.True(t, ok)
	assert.True(t, v.IsNull())
}

func TestAppendRow_ArityChecked(t *testing.T) {
	ds := New(Column{Name: "a", Kind: Number})
	err := ds.AppendRow(Num(1), Num(2))
	assert.Error(t, err)
	assert.Equal(t, 0, ds.Len())

	require.NoError(t, ds.AppendRow(Num(1)))
	assert.Equal(t, 1, ds.Len())
}
