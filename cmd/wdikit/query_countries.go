package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wdikit/internal/config"
	"wdikit/internal/store"
)

func queryCountriesCmd() *cobra.Command {
	var region string
	var incomeGroup string
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List countries in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryCountries(cmd, region, incomeGroup)
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "Region to filter")
	cmd.Flags().StringVar(&incomeGroup, "income-group", "", "Income group to filter")
	return cmd
}

func runQueryCountries(cmd *cobra.Command, region, incomeGroup string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(config.DefaultPath)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	countries, err := db.Countries(ctx, store.CountryFilter{Region: region, IncomeGroup: incomeGroup})
	if err != nil {
		return err
	}
	if len(countries) == 0 {
		fmt.Fprintln(os.Stdout, "No countries found.")
		return nil
	}

	for _, country := range countries {
		fmt.Fprintf(os.Stdout, "%s  %s (%s, %s)\n", country.Code, country.Name, country.Region, country.IncomeGroup)
	}
	return nil
}
