package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wdikit/internal/config"
)

func initCmd() *cobra.Command {
	var projectName string
	var driver string
	var dsn string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new wdikit project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName, driver, dsn)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&driver, "driver", "sqlite", "Database driver (postgres or sqlite)")
	cmd.Flags().StringVar(&dsn, "dsn", "sqlite://wdi.db", "Database DSN")
	return cmd
}

func runInit(projectName, driver, dsn string) error {
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return fmt.Errorf("%s already exists", config.DefaultPath)
	}

	contents := fmt.Sprintf("project: %s\nversion: 1\n\ndatabase:\n  driver: %s\n  dsn: %s\n\noutput:\n  dir: reports\n", projectName, driver, dsn)
	if err := os.WriteFile(config.DefaultPath, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", config.DefaultPath, err)
	}
	return nil
}
