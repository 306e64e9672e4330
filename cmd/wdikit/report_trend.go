package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wdikit/internal/analysis"
	"wdikit/internal/chart"
	"wdikit/internal/config"
)

func reportTrendCmd() *cobra.Command {
	var indicator string
	var countries []string
	var startYear int
	var endYear int
	var format string
	var bins int
	var title string
	var subtitle string
	var out string
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Linked time-series line with a brush-filtered histogram",
		RunE: func(cmd *cobra.Command, args []string) error {
			if indicator == "" {
				return fmt.Errorf("--indicator is required")
			}
			return runReportTrend(cmd, trendParams{
				indicator: indicator,
				countries: countries,
				startYear: startYear,
				endYear:   endYear,
				format:    format,
				bins:      bins,
				title:     title,
				subtitle:  subtitle,
				out:       out,
			})
		},
	}
	cmd.Flags().StringVar(&indicator, "indicator", "", "Indicator code")
	cmd.Flags().StringSliceVar(&countries, "countries", nil, "Country codes to include (all when empty)")
	cmd.Flags().IntVar(&startYear, "start", 0, "First year of range")
	cmd.Flags().IntVar(&endYear, "end", 0, "Last year of range")
	cmd.Flags().StringVar(&format, "format", "auto", "Value format")
	cmd.Flags().IntVar(&bins, "bins", 0, "Histogram bin cap")
	cmd.Flags().StringVar(&title, "title", "", "Report title")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Report subtitle")
	cmd.Flags().StringVar(&out, "out", "trend.html", "Output file name")
	return cmd
}

type trendParams struct {
	indicator string
	countries []string
	startYear int
	endYear   int
	format    string
	bins      int
	title     string
	subtitle  string
	out       string
}

func runReportTrend(cmd *cobra.Command, p trendParams) error {
	ctx := context.Background()

	kind, err := chart.ParseKind(p.format)
	if err != nil {
		return err
	}

	cfg, err := config.LoadProjectConfig(config.DefaultPath)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	ds, err := analysis.TimeSeries(ctx, db, p.indicator, p.countries, p.startYear, p.endYear)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return fmt.Errorf("no observations for %s", p.indicator)
	}

	title := p.title
	if title == "" {
		title = fmt.Sprintf("%s over time", chart.Humanize(p.indicator))
	}

	line, err := chart.Build(ds, chart.Params{
		Mark:    chart.MarkLine,
		X:       chart.Channel{Column: "year"},
		Y:       chart.Channel{Column: "value", Kind: kind, Title: chart.Humanize(p.indicator)},
		Color:   "country_name",
		Tooltip: []string{"country_name", "year", "value"},
		Title:   title,
		Role:    chart.RoleSource,
	})
	if err != nil {
		return err
	}

	hist, err := chart.Build(ds, chart.Params{
		Mark:   chart.MarkHistogram,
		X:      chart.Channel{Column: "value", Kind: kind, Title: chart.Humanize(p.indicator)},
		Bins:   p.bins,
		Title:  "Distribution of selected values",
		Role:   chart.RoleFilter,
		Filter: line.Selection(),
	})
	if err != nil {
		return err
	}

	art, err := chart.ComposeLinked(line, hist, chart.WithTitle(title, p.subtitle))
	if err != nil {
		return err
	}
	return saveArtifact(cfg, art, p.out)
}
