package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/catalog"
	"github.com/jonathan/course-compass/internal/observability"
	"github.com/jonathan/course-compass/internal/server"
	"github.com/jonathan/course-compass/internal/server/ratelimit"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that serves the course graph, the course advisor chat, timeline planning and study materials.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "Reload the graph file when it changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewCollector()
	b, err := newBackend(ctx, cfg, metrics, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}
	defer b.Close()

	if serveWatch {
		go func() {
			if err := b.Catalog.Watch(ctx, cfg.GraphFile, catalog.DefaultDebounce); err != nil {
				logger.Warn("graph file watcher stopped", zap.Error(err))
			}
		}()
	}

	deps := server.Deps{
		Graph:     b.Providers.Graph,
		Chat:      b.Providers.Chat,
		Timeline:  b.Providers.Timeline,
		Materials: b.Providers.Materials,
	}
	if b.DB != nil {
		deps.Ready = b.DB.Ping
	}

	srv := server.New(server.Config{
		Port:        cfg.Port,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   ratelimit.NewConfig(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}, deps, logger, metrics)

	return srv.Start(ctx)
}

