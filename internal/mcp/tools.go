package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"wdikit/internal/analysis"
	"wdikit/internal/chart"
	"wdikit/internal/store"
)

// valueRowCap bounds get_values responses so a broad query cannot flood
// the model context.
const valueRowCap = 500

type SearchIndicatorsInput struct {
	Search string `json:"search" jsonschema:"substring match on indicator name"`
	Topic  string `json:"topic,omitempty" jsonschema:"restrict to a topic"`
}

type ListCountriesInput struct {
	Region      string `json:"region,omitempty" jsonschema:"region filter"`
	IncomeGroup string `json:"income_group,omitempty" jsonschema:"income group filter"`
}

type GetValuesInput struct {
	Indicator string `json:"indicator" jsonschema:"indicator code"`
	Country   string `json:"country,omitempty" jsonschema:"country code filter"`
	Year      int    `json:"year,omitempty" jsonschema:"single year, overrides start and end"`
	StartYear int    `json:"start_year,omitempty" jsonschema:"first year of range"`
	EndYear   int    `json:"end_year,omitempty" jsonschema:"last year of range"`
}

type BuildReportInput struct {
	IndicatorX string `json:"indicator_x" jsonschema:"indicator code for the x axis"`
	IndicatorY string `json:"indicator_y" jsonschema:"indicator code for the y axis"`
	Year       int    `json:"year" jsonschema:"observation year"`
	Region     string `json:"region,omitempty" jsonschema:"restrict to one region"`
	Color      string `json:"color,omitempty" jsonschema:"column to color points by, default income_group"`
	LogX       bool   `json:"log_x,omitempty" jsonschema:"log-scale the x axis"`
	Title      string `json:"title,omitempty" jsonschema:"report title"`
	Out        string `json:"out,omitempty" jsonschema:"output file name, default report.html"`
}

type IndicatorOutput struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Topic      string `json:"topic"`
	Definition string `json:"definition,omitempty"`
}

type SearchIndicatorsOutput struct {
	Indicators []IndicatorOutput `json:"indicators"`
}

type CountryOutput struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Region      string `json:"region"`
	IncomeGroup string `json:"income_group"`
}

type ListCountriesOutput struct {
	Countries []CountryOutput `json:"countries"`
}

type ValueOutput struct {
	CountryCode string   `json:"country_code"`
	CountryName string   `json:"country_name"`
	Year        int      `json:"year"`
	Value       *float64 `json:"value"`
}

type GetValuesOutput struct {
	Values    []ValueOutput `json:"values"`
	Truncated bool          `json:"truncated,omitempty"`
}

type BuildReportOutput struct {
	Path      string `json:"path"`
	Countries int    `json:"countries"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_indicators",
		Description: "Search indicators by name with an optional topic filter",
	}, s.handleSearchIndicators)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_countries",
		Description: "List countries with optional region and income-group filters",
	}, s.handleListCountries)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_values",
		Description: "Fetch observations for one indicator",
	}, s.handleGetValues)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "build_report",
		Description: "Build a linked scatter and distribution report as HTML",
	}, s.handleBuildReport)
}

func (s *Server) handleSearchIndicators(ctx context.Context, req *sdk.CallToolRequest, input SearchIndicatorsInput) (*sdk.CallToolResult, SearchIndicatorsOutput, error) {
	if input.Search == "" && input.Topic == "" {
		return nil, SearchIndicatorsOutput{}, fmt.Errorf("search or topic is required")
	}
	indicators, err := s.db.Indicators(ctx, store.IndicatorFilter{Topic: input.Topic, Search: input.Search})
	if err != nil {
		return nil, SearchIndicatorsOutput{}, err
	}

	output := make([]IndicatorOutput, 0, len(indicators))
	for _, ind := range indicators {
		output = append(output, IndicatorOutput{
			Code:       ind.Code,
			Name:       ind.Name,
			Topic:      ind.Topic,
			Definition: ind.Definition,
		})
	}
	return nil, SearchIndicatorsOutput{Indicators: output}, nil
}

func (s *Server) handleListCountries(ctx context.Context, req *sdk.CallToolRequest, input ListCountriesInput) (*sdk.CallToolResult, ListCountriesOutput, error) {
	countries, err := s.db.Countries(ctx, store.CountryFilter{Region: input.Region, IncomeGroup: input.IncomeGroup})
	if err != nil {
		return nil, ListCountriesOutput{}, err
	}

	output := make([]CountryOutput, 0, len(countries))
	for _, country := range countries {
		output = append(output, CountryOutput{
			Code:        country.Code,
			Name:        country.Name,
			Region:      country.Region,
			IncomeGroup: country.IncomeGroup,
		})
	}
	return nil, ListCountriesOutput{Countries: output}, nil
}

func (s *Server) handleGetValues(ctx context.Context, req *sdk.CallToolRequest, input GetValuesInput) (*sdk.CallToolResult, GetValuesOutput, error) {
	if input.Indicator == "" {
		return nil, GetValuesOutput{}, fmt.Errorf("indicator is required")
	}
	obs, err := s.db.Values(ctx, store.ValueFilter{
		IndicatorCode: input.Indicator,
		CountryCode:   input.Country,
		Year:          input.Year,
		StartYear:     input.StartYear,
		EndYear:       input.EndYear,
	})
	if err != nil {
		return nil, GetValuesOutput{}, err
	}

	out := GetValuesOutput{}
	if len(obs) > valueRowCap {
		obs = obs[:valueRowCap]
		out.Truncated = true
	}
	out.Values = make([]ValueOutput, 0, len(obs))
	for _, o := range obs {
		out.Values = append(out.Values, ValueOutput{
			CountryCode: o.CountryCode,
			CountryName: o.CountryName,
			Year:        o.Year,
			Value:       o.Value,
		})
	}
	return nil, out, nil
}

func (s *Server) handleBuildReport(ctx context.Context, req *sdk.CallToolRequest, input BuildReportInput) (*sdk.CallToolResult, BuildReportOutput, error) {
	if input.IndicatorX == "" || input.IndicatorY == "" {
		return nil, BuildReportOutput{}, fmt.Errorf("indicator_x and indicator_y are required")
	}
	if input.Year == 0 {
		return nil, BuildReportOutput{}, fmt.Errorf("year is required")
	}
	color := input.Color
	if color == "" {
		color = "income_group"
	}
	name := input.Out
	if name == "" {
		name = "report.html"
	}

	ds, err := analysis.IndicatorPairs(ctx, s.db, input.IndicatorX, input.IndicatorY, input.Year,
		analysis.Options{Region: input.Region, Metadata: true})
	if err != nil {
		return nil, BuildReportOutput{}, err
	}
	if ds.Len() == 0 {
		return nil, BuildReportOutput{}, fmt.Errorf("no paired observations for %s / %s in %d", input.IndicatorX, input.IndicatorY, input.Year)
	}

	title := input.Title
	if title == "" {
		title = fmt.Sprintf("%s vs %s, %d", chart.Humanize(input.IndicatorY), chart.Humanize(input.IndicatorX), input.Year)
	}

	scatter, err := chart.Build(ds, chart.Params{
		Mark:    chart.MarkPoint,
		X:       chart.Channel{Column: "x_value", Log: input.LogX, Title: chart.Humanize(input.IndicatorX)},
		Y:       chart.Channel{Column: "y_value", Title: chart.Humanize(input.IndicatorY)},
		Color:   color,
		Tooltip: []string{"country_name", "x_value", "y_value"},
		Title:   title,
		Role:    chart.RoleSource,
	})
	if err != nil {
		return nil, BuildReportOutput{}, err
	}

	bar, err := chart.Build(ds, chart.Params{
		Mark:   chart.MarkBar,
		X:      chart.Channel{Column: color, Title: chart.Humanize(color)},
		CountY: true,
		Color:  color,
		Title:  "Countries in selection",
		Role:   chart.RoleFilter,
		Filter: scatter.Selection(),
	})
	if err != nil {
		return nil, BuildReportOutput{}, err
	}

	art, err := chart.ComposeLinked(scatter, bar, chart.WithTitle(title, ""))
	if err != nil {
		return nil, BuildReportOutput{}, err
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, BuildReportOutput{}, fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(s.outputDir, name)
	if err := art.Save(path); err != nil {
		return nil, BuildReportOutput{}, err
	}
	return nil, BuildReportOutput{Path: path, Countries: ds.Len()}, nil
}
