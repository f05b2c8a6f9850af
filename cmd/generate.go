package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachdehooge/phenology-viewer/internal/config"
	"github.com/Zachdehooge/phenology-viewer/internal/fetcher"
	"github.com/Zachdehooge/phenology-viewer/internal/generator"
)

// newGenerateCmd writes a static copy of the viewer for hosting without the
// server.
func newGenerateCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a static viewer page and its image metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			meta, err := fetcher.LoadMetadata(cmd.Context(), cfg.Metadata)
			if err != nil {
				return fmt.Errorf("failed to load image metadata: %w", err)
			}
			if err := meta.Validate(); err != nil {
				return fmt.Errorf("invalid image metadata: %w", err)
			}

			if verbose {
				cmd.Println(fmt.Sprintf("Generating viewer in %s...", outputDir))
			}
			if err := generator.GenerateSite(outputDir, cfg, meta); err != nil {
				return fmt.Errorf("failed to generate viewer: %w", err)
			}

			cmd.Println(fmt.Sprintf("Forecast viewer saved to %s", outputDir))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "html", "Output directory")

	return cmd
}
