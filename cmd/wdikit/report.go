package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wdikit/internal/chart"
	"wdikit/internal/config"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build linked chart reports as self-contained HTML",
	}
	cmd.AddCommand(reportScatterCmd())
	cmd.AddCommand(reportTrendCmd())
	return cmd
}

// saveArtifact writes the artifact under the configured output dir and
// echoes the final path.
func saveArtifact(cfg *config.ProjectConfig, art *chart.Artifact, name string) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(cfg.Output.Dir, name)
	if err := art.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", path)
	return nil
}
