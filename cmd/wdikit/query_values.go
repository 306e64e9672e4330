package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wdikit/internal/chart"
	"wdikit/internal/config"
	"wdikit/internal/store"
)

func queryValuesCmd() *cobra.Command {
	var country string
	var year int
	var startYear int
	var endYear int
	var format string
	cmd := &cobra.Command{
		Use:   "values <indicator-code>",
		Short: "List observations for one indicator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryValues(cmd, args[0], country, year, startYear, endYear, format)
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "Country code to filter")
	cmd.Flags().IntVar(&year, "year", 0, "Single year (overrides start/end)")
	cmd.Flags().IntVar(&startYear, "start", 0, "First year of range")
	cmd.Flags().IntVar(&endYear, "end", 0, "Last year of range")
	cmd.Flags().StringVar(&format, "format", "auto", "Value format (auto, currency, percent, large, decimal, integer)")
	return cmd
}

func runQueryValues(cmd *cobra.Command, code, country string, year, startYear, endYear int, format string) error {
	ctx := context.Background()

	kind, err := chart.ParseKind(format)
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

	obs, err := db.Values(ctx, store.ValueFilter{
		IndicatorCode: code,
		CountryCode:   country,
		Year:          year,
		StartYear:     startYear,
		EndYear:       endYear,
	})
	if err != nil {
		return err
	}
	if len(obs) == 0 {
		fmt.Fprintln(os.Stdout, "No observations found.")
		return nil
	}

	// Format inference keys off the indicator name when no explicit
	// kind is given, so gdp-like indicators render as currency.
	rule := chart.ResolveFormat(obs[0].IndicatorName, kind)
	for _, o := range obs {
		rendered := "null"
		if o.Value != nil {
			rendered = rule.Render(*o.Value)
		}
		fmt.Fprintf(os.Stdout, "%s  %d  %s\n", o.CountryName, o.Year, rendered)
	}
	return nil
}
