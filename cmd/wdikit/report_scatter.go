package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wdikit/internal/analysis"
	"wdikit/internal/chart"
	"wdikit/internal/config"
)

func reportScatterCmd() *cobra.Command {
	var indicatorX string
	var indicatorY string
	var year int
	var region string
	var color string
	var logX bool
	var formatX string
	var formatY string
	var title string
	var subtitle string
	var out string
	cmd := &cobra.Command{
		Use:   "scatter",
		Short: "Linked scatter with a brush-filtered distribution bar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if indicatorX == "" || indicatorY == "" {
				return fmt.Errorf("--indicator-x and --indicator-y are required")
			}
			if year == 0 {
				return fmt.Errorf("--year is required")
			}
			return runReportScatter(cmd, scatterParams{
				indicatorX: indicatorX,
				indicatorY: indicatorY,
				year:       year,
				region:     region,
				color:      color,
				logX:       logX,
				formatX:    formatX,
				formatY:    formatY,
				title:      title,
				subtitle:   subtitle,
				out:        out,
			})
		},
	}
	cmd.Flags().StringVar(&indicatorX, "indicator-x", "", "Indicator code for the x axis")
	cmd.Flags().StringVar(&indicatorY, "indicator-y", "", "Indicator code for the y axis")
	cmd.Flags().IntVar(&year, "year", 0, "Observation year")
	cmd.Flags().StringVar(&region, "region", "", "Restrict to one region")
	cmd.Flags().StringVar(&color, "color", "income_group", "Column to color points by")
	cmd.Flags().BoolVar(&logX, "log-x", false, "Log-scale the x axis")
	cmd.Flags().StringVar(&formatX, "format-x", "auto", "X value format")
	cmd.Flags().StringVar(&formatY, "format-y", "auto", "Y value format")
	cmd.Flags().StringVar(&title, "title", "", "Report title")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Report subtitle")
	cmd.Flags().StringVar(&out, "out", "scatter.html", "Output file name")
	return cmd
}

type scatterParams struct {
	indicatorX string
	indicatorY string
	year       int
	region     string
	color      string
	logX       bool
	formatX    string
	formatY    string
	title      string
	subtitle   string
	out        string
}

func runReportScatter(cmd *cobra.Command, p scatterParams) error {
	ctx := context.Background()

	kindX, err := chart.ParseKind(p.formatX)
	if err != nil {
		return err
	}
	kindY, err := chart.ParseKind(p.formatY)
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

	ds, err := analysis.IndicatorPairs(ctx, db, p.indicatorX, p.indicatorY, p.year,
		analysis.Options{Region: p.region, Metadata: true})
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return fmt.Errorf("no paired observations for %s / %s in %d", p.indicatorX, p.indicatorY, p.year)
	}

	title := p.title
	if title == "" {
		title = fmt.Sprintf("%s vs %s, %d", chart.Humanize(p.indicatorY), chart.Humanize(p.indicatorX), p.year)
	}

	scatter, err := chart.Build(ds, chart.Params{
		Mark:    chart.MarkPoint,
		X:       chart.Channel{Column: "x_value", Kind: kindX, Log: p.logX, Title: chart.Humanize(p.indicatorX)},
		Y:       chart.Channel{Column: "y_value", Kind: kindY, Title: chart.Humanize(p.indicatorY)},
		Color:   p.color,
		Tooltip: []string{"country_name", "x_value", "y_value"},
		Title:   title,
		Role:    chart.RoleSource,
	})
	if err != nil {
		return err
	}

	bar, err := chart.Build(ds, chart.Params{
		Mark:   chart.MarkBar,
		X:      chart.Channel{Column: p.color, Title: chart.Humanize(p.color)},
		CountY: true,
		Color:  p.color,
		Title:  "Countries in selection",
		Role:   chart.RoleFilter,
		Filter: scatter.Selection(),
	})
	if err != nil {
		return err
	}

	art, err := chart.ComposeLinked(scatter, bar, chart.WithTitle(title, p.subtitle))
	if err != nil {
		return err
	}
	return saveArtifact(cfg, art, p.out)
}
