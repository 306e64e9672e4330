package main

import "github.com/spf13/cobra"

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the indicator database from the CLI",
	}
	cmd.AddCommand(queryCountriesCmd())
	cmd.AddCommand(queryIndicatorsCmd())
	cmd.AddCommand(queryValuesCmd())
	cmd.AddCommand(querySQLCmd())
	return cmd
}
