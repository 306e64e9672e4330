package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wdikit/internal/config"
	"wdikit/internal/store"
)

func queryIndicatorsCmd() *cobra.Command {
	var topic string
	var search string
	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "List indicators in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryIndicators(cmd, topic, search)
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "Topic to filter")
	cmd.Flags().StringVar(&search, "search", "", "Substring match on indicator name")
	return cmd
}

func runQueryIndicators(cmd *cobra.Command, topic, search string) error {
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

	indicators, err := db.Indicators(ctx, store.IndicatorFilter{Topic: topic, Search: search})
	if err != nil {
		return err
	}
	if len(indicators) == 0 {
		fmt.Fprintln(os.Stdout, "No indicators found.")
		return nil
	}

	for _, ind := range indicators {
		fmt.Fprintf(os.Stdout, "%s  %s [%s]\n", ind.Code, ind.Name, ind.Topic)
	}
	return nil
}
