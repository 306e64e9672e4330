// Package ingest loads development-indicator CSV exports into a store.
// Files are header-checked, value cells may be empty (kept as NULL),
// and observation rows referencing countries absent from a provided
// countries file are skipped rather than failing the run.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"wdikit/internal/store"
)

type Paths struct {
	Countries  string
	Indicators string
	Values     string
}

type Result struct {
	Countries  int
	Indicators int
	Values     int
	Skipped    int
	Errors     []error
}

// Run imports every provided CSV into db, ensuring the schema first.
// At least one path must be set.
func Run(ctx context.Context, db store.Store, p Paths) (*Result, error) {
	if p.Countries == "" && p.Indicators == "" && p.Values == "" {
		return nil, fmt.Errorf("no input files provided")
	}

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	result := &Result{}
	var known map[string]bool

	if p.Countries != "" {
		rows, err := ReadCountries(p.Countries)
		if err != nil {
			return nil, err
		}
		if err := db.ImportCountries(ctx, rows); err != nil {
			return nil, err
		}
		result.Countries = len(rows)
		known = make(map[string]bool, len(rows))
		for _, row := range rows {
			known[row.Code] = true
		}
	}

	if p.Indicators != "" {
		rows, err := ReadIndicators(p.Indicators)
		if err != nil {
			return nil, err
		}
		if err := db.ImportIndicators(ctx, rows); err != nil {
			return nil, err
		}
		result.Indicators = len(rows)
	}

	if p.Values != "" {
		rows, err := ReadValues(p.Values)
		if err != nil {
			return nil, err
		}
		if known != nil {
			kept := rows[:0]
			for _, row := range rows {
				if !known[row.CountryCode] {
					result.Skipped++
					result.Errors = append(result.Errors, fmt.Errorf("unknown country %s for %s/%d", row.CountryCode, row.IndicatorCode, row.Year))
					continue
				}
				kept = append(kept, row)
			}
			rows = kept
		}
		if err := db.ImportValues(ctx, rows); err != nil {
			return nil, err
		}
		result.Values = len(rows)
	}

	return result, nil
}

func ReadCountries(path string) ([]store.Country, error) {
	records, err := readCSV(path, []string{"country_code", "country_name", "region", "income_group"})
	if err != nil {
		return nil, err
	}
	out := make([]store.Country, 0, len(records))
	for _, rec := range records {
		out = append(out, store.Country{Code: rec[0], Name: rec[1], Region: rec[2], IncomeGroup: rec[3]})
	}
	return out, nil
}

func ReadIndicators(path string) ([]store.Indicator, error) {
	records, err := readCSV(path, []string{"indicator_code", "indicator_name", "topic", "definition"})
	if err != nil {
		return nil, err
	}
	out := make([]store.Indicator, 0, len(records))
	for _, rec := range records {
		out = append(out, store.Indicator{Code: rec[0], Name: rec[1], Topic: rec[2], Definition: rec[3]})
	}
	return out, nil
}

func ReadValues(path string) ([]store.Observation, error) {
	records, err := readCSV(path, []string{"country_code", "country_name", "indicator_code", "indicator_name", "year", "value"})
	if err != nil {
		return nil, err
	}
	out := make([]store.Observation, 0, len(records))
	for i, rec := range records {
		year, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid year %q", path, i+2, rec[4])
		}
		obs := store.Observation{
			CountryCode:   rec[0],
			CountryName:   rec[1],
			IndicatorCode: rec[2],
			IndicatorName: rec[3],
			Year:          year,
		}
		// Empty cells stay NULL rather than zero.
		if rec[5] != "" {
			v, err := strconv.ParseFloat(rec[5], 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: invalid value %q", path, i+2, rec[5])
			}
			obs.Value = &v
		}
		out = append(out, obs)
	}
	return out, nil
}

func readCSV(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	first, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", path, err)
	}
	if len(first) != len(header) {
		return nil, fmt.Errorf("%s: expected %d columns, got %d", path, len(header), len(first))
	}
	for i, name := range header {
		if first[i] != name {
			return nil, fmt.Errorf("%s: expected column %q, got %q", path, name, first[i])
		}
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
