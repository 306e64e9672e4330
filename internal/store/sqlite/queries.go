package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"wdikit/internal/store"
)

func (c *Client) Countries(ctx context.Context, f store.CountryFilter) ([]store.Country, error) {
	var sb strings.Builder
	sb.WriteString("SELECT country_code, country_name, region, income_group FROM countries WHERE 1=1")
	var params []any

	if f.Region != "" {
		sb.WriteString(" AND region = ?")
		params = append(params, f.Region)
	}
	if f.IncomeGroup != "" {
		sb.WriteString(" AND income_group = ?")
		params = append(params, f.IncomeGroup)
	}
	sb.WriteString(" ORDER BY country_name")

	rows, err := c.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("querying countries: %w", err)
	}
	defer rows.Close()

	var out []store.Country
	for rows.Next() {
		var country store.Country
		if err := rows.Scan(&country.Code, &country.Name, &country.Region, &country.IncomeGroup); err != nil {
			return nil, fmt.Errorf("scanning country: %w", err)
		}
		out = append(out, country)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating countries: %w", err)
	}
	return out, nil
}

func (c *Client) Indicators(ctx context.Context, f store.IndicatorFilter) ([]store.Indicator, error) {
	var sb strings.Builder
	sb.WriteString("SELECT indicator_code, indicator_name, topic, definition FROM indicators WHERE 1=1")
	var params []any

	if f.Topic != "" {
		sb.WriteString(" AND topic = ?")
		params = append(params, f.Topic)
	}
	if f.Search != "" {
		sb.WriteString(" AND LOWER(indicator_name) LIKE LOWER(?)")
		params = append(params, "%"+f.Search+"%")
	}
	sb.WriteString(" ORDER BY indicator_name")

	rows, err := c.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("querying indicators: %w", err)
	}
	defer rows.Close()

	var out []store.Indicator
	for rows.Next() {
		var ind store.Indicator
		if err := rows.Scan(&ind.Code, &ind.Name, &ind.Topic, &ind.Definition); err != nil {
			return nil, fmt.Errorf("scanning indicator: %w", err)
		}
		out = append(out, ind)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating indicators: %w", err)
	}
	return out, nil
}

func (c *Client) Values(ctx context.Context, f store.ValueFilter) ([]store.Observation, error) {
	if f.IndicatorCode == "" {
		return nil, fmt.Errorf("indicator code is required")
	}

	var sb strings.Builder
	sb.WriteString(`SELECT country_code, country_name, indicator_code, indicator_name, year, value FROM "values" WHERE indicator_code = ?`)
	params := []any{f.IndicatorCode}

	if f.Year != 0 {
		sb.WriteString(" AND year = ?")
		params = append(params, f.Year)
	} else {
		if f.StartYear != 0 {
			sb.WriteString(" AND year >= ?")
			params = append(params, f.StartYear)
		}
		if f.EndYear != 0 {
			sb.WriteString(" AND year <= ?")
			params = append(params, f.EndYear)
		}
	}
	if f.CountryCode != "" {
		sb.WriteString(" AND country_code = ?")
		params = append(params, f.CountryCode)
	}
	sb.WriteString(" ORDER BY country_name, year")

	rows, err := c.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("querying values: %w", err)
	}
	defer rows.Close()

	var out []store.Observation
	for rows.Next() {
		var obs store.Observation
		if err := rows.Scan(&obs.CountryCode, &obs.CountryName, &obs.IndicatorCode, &obs.IndicatorName, &obs.Year, &obs.Value); err != nil {
			return nil, fmt.Errorf("scanning value: %w", err)
		}
		out = append(out, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating values: %w", err)
	}
	return out, nil
}

func (c *Client) RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	args := make([]any, 0, len(params))
	for i := 1; i <= len(params); i++ {
		key := strconv.Itoa(i)
		if val, ok := params[key]; ok {
			args = append(args, val)
		}
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running sql: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("getting columns: %w", err)
	}

	results := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning sql row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sql rows: %w", err)
	}

	return results, nil
}
