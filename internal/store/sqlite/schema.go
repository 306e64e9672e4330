package sqlite

import (
	"context"
	"fmt"

	"wdikit/internal/store"
)

// The values table name is a SQLite keyword and stays quoted everywhere.
func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS countries (
	country_code TEXT PRIMARY KEY,
	country_name TEXT NOT NULL,
	region       TEXT NOT NULL DEFAULT '',
	income_group TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS indicators (
	indicator_code TEXT PRIMARY KEY,
	indicator_name TEXT NOT NULL,
	topic          TEXT NOT NULL DEFAULT '',
	definition     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS "values" (
	country_code   TEXT NOT NULL,
	country_name   TEXT NOT NULL,
	indicator_code TEXT NOT NULL,
	indicator_name TEXT NOT NULL,
	year           INTEGER NOT NULL,
	value          REAL,
	UNIQUE (country_code, indicator_code, year)
);

CREATE INDEX IF NOT EXISTS idx_values_indicator ON "values" (indicator_code);
CREATE INDEX IF NOT EXISTS idx_values_indicator_year ON "values" (indicator_code, year);
CREATE INDEX IF NOT EXISTS idx_countries_region ON countries (region);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}

func (c *Client) ImportCountries(ctx context.Context, rows []store.Country) error {
	query := `
INSERT INTO countries (country_code, country_name, region, income_group)
VALUES (?, ?, ?, ?)
ON CONFLICT (country_code) DO UPDATE SET
	country_name = excluded.country_name,
	region = excluded.region,
	income_group = excluded.income_group
`
	for _, row := range rows {
		if _, err := c.db.ExecContext(ctx, query, row.Code, row.Name, row.Region, row.IncomeGroup); err != nil {
			return fmt.Errorf("importing country %s: %w", row.Code, err)
		}
	}
	return nil
}

func (c *Client) ImportIndicators(ctx context.Context, rows []store.Indicator) error {
	query := `
INSERT INTO indicators (indicator_code, indicator_name, topic, definition)
VALUES (?, ?, ?, ?)
ON CONFLICT (indicator_code) DO UPDATE SET
	indicator_name = excluded.indicator_name,
	topic = excluded.topic,
	definition = excluded.definition
`
	for _, row := range rows {
		if _, err := c.db.ExecContext(ctx, query, row.Code, row.Name, row.Topic, row.Definition); err != nil {
			return fmt.Errorf("importing indicator %s: %w", row.Code, err)
		}
	}
	return nil
}

func (c *Client) ImportValues(ctx context.Context, rows []store.Observation) error {
	query := `
INSERT INTO "values" (country_code, country_name, indicator_code, indicator_name, year, value)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (country_code, indicator_code, year) DO UPDATE SET
	country_name = excluded.country_name,
	indicator_name = excluded.indicator_name,
	value = excluded.value
`
	for _, row := range rows {
		if _, err := c.db.ExecContext(ctx, query,
			row.CountryCode, row.CountryName, row.IndicatorCode, row.IndicatorName, row.Year, row.Value,
		); err != nil {
			return fmt.Errorf("importing value %s/%s/%d: %w", row.CountryCode, row.IndicatorCode, row.Year, err)
		}
	}
	return nil
}
