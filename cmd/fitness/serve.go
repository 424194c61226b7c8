// ABOUTME: CLI command for serving the JSON HTTP API.
// ABOUTME: Persists changes as they happen and exposes Prometheus metrics.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/api"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API over HTTP",
	Long: `Serve activities, goals, stats, the dashboard and calendar as a JSON API.

ENDPOINTS:

  GET    /api/activities          POST   /api/activities
  DELETE /api/activities/{id}
  GET    /api/goals               POST   /api/goals
  PATCH  /api/goals/{id}          POST   /api/goals/{id}/complete
  DELETE /api/goals/{id}
  GET    /api/stats               PATCH  /api/stats
  GET    /api/dashboard           GET    /api/calendar/{year}/{month}
  GET    /metrics                 Prometheus metrics

The listen address defaults to http_addr in the config, FITNESS_HTTP_ADDR,
or :8080.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetHTTPAddr()
		}

		persister := storage.NewPersister(repo, logger.Logger)
		trk.Subscribe(persister.Save)

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		server := api.NewServer(trk, logger.Logger, reg)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		color.Green("✓ Serving fitness API on %s", addr)
		err := server.ListenAndServe(ctx, addr)
		if persister.Err() == nil {
			dirty.Store(false)
		}
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
	rootCmd.AddCommand(serveCmd)
}
