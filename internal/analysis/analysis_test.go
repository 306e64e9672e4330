package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wdikit/internal/frame"
	"wdikit/internal/store"
)

func ptr(v float64) *float64 { return &v }

type fakeStore struct {
	countries []store.Country
	values    map[string][]store.Observation

	valueFilters []store.ValueFilter
}

func (f *fakeStore) Close(ctx context.Context) error { return nil }

func (f *fakeStore) EnsureSchema(ctx context.Context) error { return nil }

func (f *fakeStore) Countries(ctx context.Context, filter store.CountryFilter) ([]store.Country, error) {
	var out []store.Country
	for _, c := range f.countries {
		if filter.Region != "" && c.Region != filter.Region {
			continue
		}
		if filter.IncomeGroup != "" && c.IncomeGroup != filter.IncomeGroup {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) Indicators(ctx context.Context, filter store.IndicatorFilter) ([]store.Indicator, error) {
	return nil, nil
}

func (f *fakeStore) Values(ctx context.Context, filter store.ValueFilter) ([]store.Observation, error) {
	f.valueFilters = append(f.valueFilters, filter)
	var out []store.Observation
	for _, o := range f.values[filter.IndicatorCode] {
		if filter.CountryCode != "" && o.CountryCode != filter.CountryCode {
			continue
		}
		if filter.Year != 0 && o.Year != filter.Year {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeStore) ImportCountries(ctx context.Context, rows []store.Country) error { return nil }

func (f *fakeStore) ImportIndicators(ctx context.Context, rows []store.Indicator) error { return nil }

func (f *fakeStore) ImportValues(ctx context.Context, rows []store.Observation) error { return nil }
func (f *fakeStore) RunSQL(ctx context.Context, q string, p map[string]any) ([]map[string]any, error) {
	return nil, nil
}

func testStore() *fakeStore {
	return &fakeStore{
		countries: []store.Country{
			{Code: "NOR", Name: "Norway", Region: "Europe & Central Asia", IncomeGroup: "High income"},
			{Code: "IND", Name: "India", Region: "South Asia", IncomeGroup: "Lower middle income"},
			{Code: "TCD", Name: "Chad", Region: "Sub-Saharan Africa", IncomeGroup: "Low income"},
		},
		values: map[string][]store.Observation{
			"GDP": {
				{CountryCode: "NOR", CountryName: "Norway", IndicatorCode: "GDP", IndicatorName: "GDP per capita", Year: 2020, Value: ptr(67000)},
				{CountryCode: "IND", CountryName: "India", IndicatorCode: "GDP", IndicatorName: "GDP per capita", Year: 2020, Value: ptr(1900)},
				{CountryCode: "TCD", CountryName: "Chad", IndicatorCode: "GDP", IndicatorName: "GDP per capita", Year: 2020, Value: nil},
				{CountryCode: "NOR", CountryName: "Norway", IndicatorCode: "GDP", IndicatorName: "GDP per capita", Year: 2019, Value: ptr(66000)},
			},
			"LIFE": {
				{CountryCode: "NOR", CountryName: "Norway", IndicatorCode: "LIFE", IndicatorName: "Life expectancy", Year: 2020, Value: ptr(83.2)},
				{CountryCode: "IND", CountryName: "India", IndicatorCode: "LIFE", IndicatorName: "Life expectancy", Year: 2020, Value: ptr(70.1)},
				{CountryCode: "TCD", CountryName: "Chad", IndicatorCode: "LIFE", IndicatorName: "Life expectancy", Year: 2020, Value: ptr(54.2)},
			},
		},
	}
}

func TestObservations(t *testing.T) {
	ds := Observations(testStore().values["GDP"])

	require.Equal(t, 4, ds.Len())
	for _, name := range []string{"country_code", "country_name", "indicator_code", "indicator_name", "year", "value"} {
		assert.True(t, ds.HasColumn(name), "missing column %q", name)
	}

	col, _ := ds.Column("year")
	assert.Equal(t, frame.Year, col.Kind)

	v, ok := ds.Value(2, "value")
	require.True(t, ok)
	assert.True(t, v.IsNull(), "missing observation stays null")
}

func TestIndicatorData(t *testing.T) {
	st := testStore()

	ds, err := IndicatorData(context.Background(), st, "GDP", store.ValueFilter{Year: 2020}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.False(t, ds.HasColumn("region"), "no metadata without opts")

	withMeta, err := IndicatorData(context.Background(), st, "GDP", store.ValueFilter{Year: 2020}, Options{Metadata: true})
	require.NoError(t, err)
	assert.Equal(t, 3, withMeta.Len())
	assert.True(t, withMeta.HasColumn("region"))
	assert.True(t, withMeta.HasColumn("income_group"))

	filtered, err := IndicatorData(context.Background(), st, "GDP", store.ValueFilter{Year: 2020}, Options{Region: "South Asia"})
	require.NoError(t, err)
	require.Equal(t, 1, filtered.Len())
	v, _ := filtered.Value(0, "country_code")
	code, _ := v.Text()
	assert.Equal(t, "IND", code)
}

func TestIndicatorPairs(t *testing.T) {
	st := testStore()

	ds, err := IndicatorPairs(context.Background(), st, "GDP", "LIFE", 2020, Options{})
	require.NoError(t, err)

	// Chad's GDP is null, so the pair drops it.
	require.Equal(t, 2, ds.Len())
	assert.True(t, ds.HasColumn("x_value"))
	assert.True(t, ds.HasColumn("y_value"))
	assert.False(t, ds.HasColumn("value"))

	v, _ := ds.Value(0, "x_value")
	x, _ := v.Float()
	assert.Equal(t, 67000.0, x)
	v, _ = ds.Value(0, "y_value")
	y, _ := v.Float()
	assert.Equal(t, 83.2, y)
}

func TestIndicatorPairs_MetadataFilter(t *testing.T) {
	st := testStore()

	ds, err := IndicatorPairs(context.Background(), st, "GDP", "LIFE", 2020, Options{IncomeGroup: "High income"})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	v, _ := ds.Value(0, "country_name")
	name, _ := v.Text()
	assert.Equal(t, "Norway", name)
	assert.True(t, ds.HasColumn("income_group"))
}

func TestTimeSeries(t *testing.T) {
	st := testStore()

	ds, err := TimeSeries(context.Background(), st, "GDP", []string{"NOR"}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())

	// Single country goes through the server-side filter.
	last := st.valueFilters[len(st.valueFilters)-1]
	assert.Equal(t, "NOR", last.CountryCode)

	multi, err := TimeSeries(context.Background(), st, "GDP", []string{"NOR", "IND"}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, multi.Len())

	all, err := TimeSeries(context.Background(), st, "GDP", nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, all.Len())
}
