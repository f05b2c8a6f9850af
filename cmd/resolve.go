package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Zachdehooge/phenology-viewer/internal/config"
	"github.com/Zachdehooge/phenology-viewer/internal/fetcher"
	"github.com/Zachdehooge/phenology-viewer/internal/metadata"
	"github.com/Zachdehooge/phenology-viewer/internal/selection"
	"github.com/Zachdehooge/phenology-viewer/internal/viewer"
)

// newResolveCmd prints what the viewer would show for a selection without
// starting the server. Empty selections fall back to the menu defaults.
func newResolveCmd() *cobra.Command {
	var sel selection.Selection

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show the forecast images for a selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			meta, err := fetcher.LoadMetadata(cmd.Context(), cfg.Metadata)
			if err != nil {
				return fmt.Errorf("failed to load image metadata: %w", err)
			}

			sel = withDefaults(sel, meta)
			resolver := viewer.NewResolver(metadata.NewStore(meta), cfg.ImageBaseURL)
			resolver.Bounds = cfg.OverlayBounds
			resolver.Opacity = cfg.OverlayOpacity

			view, err := resolver.Resolve(viewer.NewDisplay(), sel)
			if err != nil {
				return err
			}
			printView(cmd, sel, view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sel.MapType, "map-type", "m", selection.Static.String(), "Map type (interactive or static)")
	cmd.Flags().StringVarP(&sel.IssueDate, "issue-date", "d", "", "Forecast issue date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&sel.Species, "species", "s", "", "Species code, e.g. acer_rubrum")
	cmd.Flags().StringVarP(&sel.Phenophase, "phenophase", "p", "", "Phenophase code, e.g. 371")

	return cmd
}

func withDefaults(sel selection.Selection, meta *metadata.ImageMetadata) selection.Selection {
	pick := func(current string, items []metadata.MenuItem) string {
		if current != "" || len(items) == 0 {
			return current
		}
		return items[metadata.DefaultIndex(items)].Value
	}
	sel.IssueDate = pick(sel.IssueDate, meta.AvailableIssueDates)
	sel.Species = pick(sel.Species, meta.AvailableSpecies)
	sel.Phenophase = pick(sel.Phenophase, meta.AvailablePhenophase)
	return sel
}

func printView(cmd *cobra.Command, sel selection.Selection, view viewer.View) {
	cmd.Println(fmt.Sprintf("Species: %s", sel.Species))
	cmd.Println(fmt.Sprintf("Phenophase: %s", sel.Phenophase))
	cmd.Println(fmt.Sprintf("Issue date: %s", sel.IssueDate))
	cmd.Println(fmt.Sprintf("Map type: %s", view.MapType))

	if view.Available {
		cmd.Println(color.GreenString("Forecast available"))
	} else {
		cmd.Println(color.New(color.FgYellow, color.Bold).Sprint(view.ForecastInfo))
	}

	if view.Overlay != nil {
		cmd.Println(fmt.Sprintf("Overlay: %s (opacity %.1f)", view.Overlay.URL, view.Overlay.Opacity))
	}
	if view.PredictionSrc != "" {
		cmd.Println(fmt.Sprintf("Prediction: %s", view.PredictionSrc))
		cmd.Println(fmt.Sprintf("Uncertainty: %s", view.UncertaintySrc))
	}
}
