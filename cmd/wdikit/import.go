package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wdikit/internal/config"
	"wdikit/internal/ingest"
)

func importCmd() *cobra.Command {
	var countriesPath string
	var indicatorsPath string
	var valuesPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import CSV data into the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if countriesPath == "" && indicatorsPath == "" && valuesPath == "" {
				return fmt.Errorf("at least one of --countries, --indicators, --values is required")
			}
			return runImport(cmd, ingest.Paths{
				Countries:  countriesPath,
				Indicators: indicatorsPath,
				Values:     valuesPath,
			})
		},
	}
	cmd.Flags().StringVar(&countriesPath, "countries", "", "Countries CSV path")
	cmd.Flags().StringVar(&indicatorsPath, "indicators", "", "Indicators CSV path")
	cmd.Flags().StringVar(&valuesPath, "values", "", "Values CSV path")
	return cmd
}

func runImport(cmd *cobra.Command, paths ingest.Paths) error {
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

	result, err := ingest.Run(ctx, db, paths)
	if err != nil {
		return err
	}

	if result.Countries > 0 {
		fmt.Fprintf(os.Stdout, "Imported %d countries\n", result.Countries)
	}
	if result.Indicators > 0 {
		fmt.Fprintf(os.Stdout, "Imported %d indicators\n", result.Indicators)
	}
	if result.Values > 0 {
		fmt.Fprintf(os.Stdout, "Imported %d observations\n", result.Values)
	}
	for _, importErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "skipped: %v\n", importErr)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(os.Stdout, "Skipped %d observations\n", result.Skipped)
	}
	return nil
}
