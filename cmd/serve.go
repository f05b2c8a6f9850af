package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Zachdehooge/phenology-viewer/internal/config"
	"github.com/Zachdehooge/phenology-viewer/internal/fetcher"
	"github.com/Zachdehooge/phenology-viewer/internal/metadata"
	"github.com/Zachdehooge/phenology-viewer/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		port  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the forecast viewer web server",
		Example: `  # Serve on the configured port
  phenology-viewer serve

  # Reload pages whenever image_metadata.json is rewritten
  phenology-viewer serve --watch --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			// Metadata is loaded before the first request can be served.
			meta, err := fetcher.LoadMetadata(cmd.Context(), cfg.Metadata)
			if err != nil {
				return fmt.Errorf("failed to load image metadata: %w", err)
			}
			if err := meta.Validate(); err != nil {
				return fmt.Errorf("invalid image metadata: %w", err)
			}
			slog.Info("Loaded image metadata",
				"source", cfg.Metadata,
				"issue_dates", len(meta.AvailableIssueDates),
				"species", len(meta.AvailableSpecies),
				"images", len(meta.AvailableImages))

			store := metadata.NewStore(meta)
			srv := server.New(cfg, store)
			srv.Debug = verbose

			if watch {
				if fetcher.IsRemote(cfg.Metadata) {
					return fmt.Errorf("--watch needs a local metadata file, got %s", cfg.Metadata)
				}
				srv.LiveReload = true
				go func() {
					if err := server.WatchMetadata(cmd.Context(), cfg.Metadata, store, srv.NotifyReload); err != nil {
						slog.Error("Metadata watcher stopped", "error", err)
					}
				}()
			}

			return srv.Run(cmd.Context(), fmt.Sprintf(":%d", cfg.Port))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload metadata and open pages when the metadata file changes")

	return cmd
}
