package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachdehooge/phenology-viewer/internal/metadata"
)

func newMetadataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Manage image_metadata.json",
	}
	cmd.AddCommand(newMetadataBuildCmd())
	return cmd
}

func newMetadataBuildCmd() *cobra.Command {
	var (
		figuresPath string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build image_metadata.json from the forecast figure metadata CSV",
		Example: `  phenology-viewer metadata build --figures forecast_figure_metadata.csv --output html/image_metadata.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(figuresPath)
			if err != nil {
				return fmt.Errorf("failed to open figure metadata: %w", err)
			}
			defer f.Close()

			meta, err := metadata.BuildFromFigures(f)
			if err != nil {
				return fmt.Errorf("%s: %w", figuresPath, err)
			}
			if err := meta.Write(outputPath); err != nil {
				return err
			}

			cmd.Println(fmt.Sprintf("Wrote %d issue dates, %d species and %d images to %s",
				len(meta.AvailableIssueDates), len(meta.AvailableSpecies), len(meta.AvailableImages), outputPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&figuresPath, "figures", "f", "forecast_figure_metadata.csv", "Figure metadata CSV")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "image_metadata.json", "Output JSON path")

	return cmd
}
