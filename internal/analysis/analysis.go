// Package analysis bridges the store layer and the frame package:
// it runs indicator queries and shapes the results into datasets the
// chart builder can consume directly.
package analysis

import (
	"context"
	"fmt"

	"wdikit/internal/frame"
	"wdikit/internal/store"
)

// Options narrows indicator queries to a region or income group. The
// filters apply to the countries table, so observations for aggregates
// that have no country row are dropped when either is set.
type Options struct {
	Region      string
	IncomeGroup string

	// Metadata joins region and income_group columns even when no
	// filter is set, for charts that color by them.
	Metadata bool
}

// Observations shapes store rows into a Dataset. Missing values stay
// null rather than zero.
func Observations(obs []store.Observation) *frame.Dataset {
	ds := frame.New(
		frame.Column{Name: "country_code", Kind: frame.String},
		frame.Column{Name: "country_name", Kind: frame.String},
		frame.Column{Name: "indicator_code", Kind: frame.String},
		frame.Column{Name: "indicator_name", Kind: frame.String},
		frame.Column{Name: "year", Kind: frame.Year},
		frame.Column{Name: "value", Kind: frame.Number},
	)
	for _, o := range obs {
		ds.MustAppendRow(
			frame.Str(o.CountryCode),
			frame.Str(o.CountryName),
			frame.Str(o.IndicatorCode),
			frame.Str(o.IndicatorName),
			frame.Num(float64(o.Year)),
			frame.NumPtr(o.Value),
		)
	}
	return ds
}

// IndicatorData fetches one indicator and, when opts narrows by region
// or income group, inner-joins country metadata so the result carries
// region and income_group columns.
func IndicatorData(ctx context.Context, st store.Store, code string, f store.ValueFilter, opts Options) (*frame.Dataset, error) {
	f.IndicatorCode = code
	obs, err := st.Values(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("fetching values for %s: %w", code, err)
	}
	ds := Observations(obs)

	if opts.Region == "" && opts.IncomeGroup == "" && !opts.Metadata {
		return ds, nil
	}

	countries, err := st.Countries(ctx, store.CountryFilter{
		Region:      opts.Region,
		IncomeGroup: opts.IncomeGroup,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching countries: %w", err)
	}
	meta := countryMeta(countries)

	joined, err := ds.JoinInner(meta, "country_code")
	if err != nil {
		return nil, fmt.Errorf("joining country metadata: %w", err)
	}
	return joined, nil
}

// IndicatorPairs builds a scatter-ready dataset for two indicators in a
// single year: one row per country present in both, with x_value and
// y_value columns. Rows where either side is null are dropped.
func IndicatorPairs(ctx context.Context, st store.Store, codeX, codeY string, year int, opts Options) (*frame.Dataset, error) {
	x, err := IndicatorData(ctx, st, codeX, store.ValueFilter{Year: year}, opts)
	if err != nil {
		return nil, err
	}
	y, err := IndicatorData(ctx, st, codeY, store.ValueFilter{Year: year}, Options{})
	if err != nil {
		return nil, err
	}

	x, err = x.Rename("value", "x_value")
	if err != nil {
		return nil, err
	}
	y, err = y.Select("country_code", "value")
	if err != nil {
		return nil, err
	}
	y, err = y.Rename("value", "y_value")
	if err != nil {
		return nil, err
	}

	joined, err := x.JoinInner(y, "country_code")
	if err != nil {
		return nil, fmt.Errorf("joining indicator pair: %w", err)
	}
	return joined.DropNull("x_value", "y_value")
}

// TimeSeries fetches one indicator over a year range for a fixed set of
// countries, ordered by country then year.
func TimeSeries(ctx context.Context, st store.Store, code string, countryCodes []string, startYear, endYear int) (*frame.Dataset, error) {
	f := store.ValueFilter{IndicatorCode: code, StartYear: startYear, EndYear: endYear}

	if len(countryCodes) == 1 {
		// Single country filters server-side.
		f.CountryCode = countryCodes[0]
		obs, err := st.Values(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("fetching series for %s: %w", code, err)
		}
		return Observations(obs), nil
	}

	obs, err := st.Values(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("fetching series for %s: %w", code, err)
	}
	ds := Observations(obs)
	if len(countryCodes) == 0 {
		return ds, nil
	}

	want := make(map[string]bool, len(countryCodes))
	for _, c := range countryCodes {
		want[c] = true
	}
	return ds.Filter(func(r frame.Row) bool {
		code, _ := r.Value("country_code")
		text, ok := code.Text()
		return ok && want[text]
	}), nil
}

func countryMeta(countries []store.Country) *frame.Dataset {
	meta := frame.New(
		frame.Column{Name: "country_code", Kind: frame.String},
		frame.Column{Name: "region", Kind: frame.String},
		frame.Column{Name: "income_group", Kind: frame.String},
	)
	for _, c := range countries {
		meta.MustAppendRow(frame.Str(c.Code), frame.Str(c.Region), frame.Str(c.IncomeGroup))
	}
	return meta
}
