package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(t *testing.T, ds *Dataset, row int, column string) float64 {
	t.Helper()
	v, ok := ds.Value(row, column)
	require.True(t, ok, "column %q", column)
	f, ok := v.Float()
	require.True(t, ok, "row %d column %q is not numeric", row, column)
	return f
}

func text(t *testing.T, ds *Dataset, row int, column string) string {
	t.Helper()
	v, ok := ds.Value(row, column)
	require.True(t, ok, "column %q", column)
	s, ok := v.Text()
	require.True(t, ok, "row %d column %q has no text", row, column)
	return s
}

func TestSelect(t *testing.T) {
	ds := sample(t)

	out, err := ds.Select("value", "country")
	require.NoError(t, err)
	cols := out.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "value", cols[0].Name)
	assert.Equal(t, "country", cols[1].Name)
	assert.Equal(t, 4, out.Len())

	_, err = ds.Select("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestFilter(t *testing.T) {
	ds := sample(t)

	out := ds.Filter(func(r Row) bool {
		s, _ := r.Value("country")
		c, _ := s.Text()
		return c == "NOR"
	})
	assert.Equal(t, 2, out.Len())
	// The source is untouched.
	assert.Equal(t, 4, ds.Len())
}

func TestDropNull(t *testing.T) {
	ds := sample(t)

	out, err := ds.DropNull("value")
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())

	_, err = ds.DropNull("nope")
	assert.Error(t, err)
}

func TestRename(t *testing.T) {
	ds := sample(t)

	out, err := ds.Rename("value", "population")
	require.NoError(t, err)
	assert.True(t, out.HasColumn("population"))
	assert.False(t, out.HasColumn("value"))
	assert.Equal(t, 4, out.Len())

	_, err = ds.Rename("value", "year")
	assert.Error(t, err, "rename onto an existing column")

	_, err = ds.Rename("nope", "x")
	assert.Error(t, err)
}

func joinFixtures(t *testing.T) (*Dataset, *Dataset) {
	t.Helper()
	left := New(
		Column{Name: "code", Kind: String},
		Column{Name: "value", Kind: Number},
	)
	left.MustAppendRow(Str("NOR"), Num(1))
	left.MustAppendRow(Str("IND"), Num(2))
	left.MustAppendRow(Str("XXX"), Num(3))

	right := New(
		Column{Name: "code", Kind: String},
		Column{Name: "region", Kind: String},
	)
	right.MustAppendRow(Str("NOR"), Str("Europe"))
	right.MustAppendRow(Str("IND"), Str("South Asia"))
	return left, right
}

func TestJoinInner(t *testing.T) {
	left, right := joinFixtures(t)

	out, err := left.JoinInner(right, "code")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, "Europe", text(t, out, 0, "region"))
	assert.Equal(t, "South Asia", text(t, out, 1, "region"))
}

func TestJoinLeft(t *testing.T) {
	left, right := joinFixtures(t)

	out, err := left.JoinLeft(right, "code")
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	v, ok := out.Value(2, "region")
	require.True(t, ok)
	assert.True(t, v.IsNull(), "unmatched row fills with null")
}

func TestJoin_DuplicateColumn(t *testing.T) {
	left, _ := joinFixtures(t)
	dup := New(
		Column{Name: "code", Kind: String},
		Column{Name: "value", Kind: Number},
	)
	_, err := left.JoinInner(dup, "code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"value"`)
}

func TestPivotWide(t *testing.T) {
	ds := sample(t)

	out, err := ds.PivotWide("country", "year", "value")
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	cols := out.Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, "country", cols[0].Name)
	assert.Equal(t, "2019", cols[1].Name)
	assert.Equal(t, "2020", cols[2].Name)

	assert.Equal(t, 5347896.0, num(t, out, 0, "2019"))
	v, ok := out.Value(1, "2020")
	require.True(t, ok)
	assert.True(t, v.IsNull(), "missing combination pivots to null")
}

func TestGrowthRate(t *testing.T) {
	ds := sample(t)

	out, err := ds.GrowthRate("value", 1, "country")
	require.NoError(t, err)
	require.Equal(t, 4, out.Len())

	// First row of each group has no base.
	v, _ := out.Value(0, "growth_rate")
	assert.True(t, v.IsNull())
	v, _ = out.Value(2, "growth_rate")
	assert.True(t, v.IsNull())

	got := num(t, out, 1, "growth_rate")
	assert.InDelta(t, (5379475.0-5347896.0)/5347896.0*100, got, 1e-9)

	// Null current value stays null.
	v, _ = out.Value(3, "growth_rate")
	assert.True(t, v.IsNull())

	_, err = ds.GrowthRate("value", 0, "country")
	assert.Error(t, err)
}

func TestRank(t *testing.T) {
	ds := New(
		Column{Name: "name", Kind: String},
		Column{Name: "score", Kind: Number},
	)
	ds.MustAppendRow(Str("b"), Num(20))
	ds.MustAppendRow(Str("a"), Num(10))
	ds.MustAppendRow(Str("c"), Null())
	ds.MustAppendRow(Str("d"), Num(30))

	out, err := ds.Rank("score", true)
	require.NoError(t, err)
	assert.Equal(t, 2.0, num(t, out, 0, "rank"))
	assert.Equal(t, 3.0, num(t, out, 1, "rank"))
	assert.Equal(t, 1.0, num(t, out, 3, "rank"))

	v, _ := out.Value(2, "rank")
	assert.True(t, v.IsNull(), "null score gets a null rank")

	asc, err := ds.Rank("score", false)
	require.NoError(t, err)
	assert.Equal(t, 1.0, num(t, asc, 1, "rank"))
}

func TestAggregateBy(t *testing.T) {
	ds := sample(t)

	out, err := ds.AggregateBy("country", "value", AggMean)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "NOR", text(t, out, 0, "country"))
	assert.InDelta(t, (5347896.0+5379475.0)/2, num(t, out, 0, "value_mean"), 1e-9)

	// IND has one null; the mean skips it.
	assert.InDelta(t, 1366417754.0, num(t, out, 1, "value_mean"), 1e-9)

	count, err := ds.AggregateBy("country", "value", AggCount)
	require.NoError(t, err)
	assert.Equal(t, 2.0, num(t, count, 0, "value_count"))
	assert.Equal(t, 1.0, num(t, count, 1, "value_count"), "null values are not counted")

	med, err := ds.AggregateBy("country", "value", AggMedian)
	require.NoError(t, err)
	assert.InDelta(t, (5347896.0+5379475.0)/2, num(t, med, 0, "value_median"), 1e-9)

	min, err := ds.AggregateBy("country", "value", AggMin)
	require.NoError(t, err)
	assert.Equal(t, 5347896.0, num(t, min, 0, "value_min"))

	max, err := ds.AggregateBy("country", "value", AggMax)
	require.NoError(t, err)
	assert.Equal(t, 5379475.0, num(t, max, 0, "value_max"))
}

func TestLatestYear(t *testing.T) {
	ds := sample(t)

	out, err := ds.LatestYear("country", "year")
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 2020.0, num(t, out, 0, "year"))
	assert.Equal(t, 2020.0, num(t, out, 1, "year"))

	_, err = ds.LatestYear("country", "nope")
	assert.Error(t, err)
}
