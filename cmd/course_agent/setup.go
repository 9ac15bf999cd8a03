package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/advisor"
	"github.com/jonathan/course-compass/internal/catalog"
	"github.com/jonathan/course-compass/internal/client"
	"github.com/jonathan/course-compass/internal/config"
	"github.com/jonathan/course-compass/internal/db"
	"github.com/jonathan/course-compass/internal/graph"
	"github.com/jonathan/course-compass/internal/llm"
	"github.com/jonathan/course-compass/internal/materials"
	"github.com/jonathan/course-compass/internal/observability"
	"github.com/jonathan/course-compass/internal/session"
	"github.com/jonathan/course-compass/internal/timeline"
)

// loadSettings resolves the config file, environment and defaults and builds
// the logger every command shares.
func loadSettings() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	logger, err := observability.NewLogger(cfg.Verbose)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

// newLLMClient builds a provider client wrapped in a circuit breaker and,
// when metrics is set, call observation. An empty key yields a nil client.
func newLLMClient(ctx context.Context, provider llm.Provider, apiKey string, metrics *observability.Collector, logger *zap.Logger) (llm.Client, error) {
	if apiKey == "" {
		logger.Info("no API key configured", zap.String("provider", string(provider)))
		return nil, nil
	}
	inner, err := llm.NewClient(ctx, llm.ConfigFor(provider), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", provider, err)
	}
	var c llm.Client = llm.NewBreakerClient(inner, llm.DefaultBreakerConfig(string(provider)), logger)
	if metrics != nil {
		c = llm.NewObservedClient(c, metrics)
	}
	return c, nil
}

// backend holds the in-process providers and what must be released with them.
type backend struct {
	Catalog   *catalog.Catalog
	Providers client.Providers
	DB        *db.DB

	closers []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// newBackend loads the course graph and wires the advisor, planner and
// materials service. The database is optional; when configured it is the
// materials cache and, if the graph file is missing, the graph source.
func newBackend(ctx context.Context, cfg config.Config, metrics *observability.Collector, logger *zap.Logger) (*backend, error) {
	b := &backend{Catalog: catalog.New(logger)}
	if metrics != nil {
		b.Catalog.OnReload(func(g *graph.Graph) { metrics.ObserveGraphReload(g.Len()) })
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, database.Close)
		if err := database.Migrate(ctx); err != nil {
			b.Close()
			return nil, err
		}
		b.DB = database
	}

	if err := b.Catalog.LoadFile(cfg.GraphFile); err != nil {
		if b.DB == nil {
			logger.Warn("course graph not loaded", zap.String("path", cfg.GraphFile), zap.Error(err))
		} else if serr := b.Catalog.LoadStore(ctx, b.DB); serr != nil {
			logger.Warn("course graph not loaded", zap.NamedError("file", err), zap.NamedError("store", serr))
		}
	}

	gemini, err := newLLMClient(ctx, llm.ProviderGemini, cfg.GeminiAPIKey, metrics, logger)
	if err != nil {
		b.Close()
		return nil, err
	}
	if gemini != nil {
		b.closers = append(b.closers, func() { _ = gemini.Close() })
	}
	openai, err := newLLMClient(ctx, llm.ProviderOpenAI, cfg.OpenAIAPIKey, metrics, logger)
	if err != nil {
		b.Close()
		return nil, err
	}

	ttl, err := cfg.CacheTTL()
	if err != nil {
		b.Close()
		return nil, err
	}
	matOpts := []materials.Option{materials.WithLogger(logger)}
	if b.DB != nil {
		matOpts = append(matOpts, materials.WithCache(b.DB, ttl))
	}
	if metrics != nil {
		matOpts = append(matOpts, materials.WithObserver(metrics))
	}

	b.Providers = client.Providers{
		Graph: b.Catalog,
		Chat:  advisor.New(gemini, b.Catalog, logger),
		Timeline: timeline.NewPlanner(gemini,
			timeline.WithCatalog(b.Catalog.Courses),
			timeline.WithLogger(logger)),
		Materials: materials.NewService(openai, matOpts...),
	}
	return b, nil
}

// remoteProviders returns the providers of a running API server.
func remoteProviders(baseURL string, logger *zap.Logger) client.Providers {
	return client.New(baseURL, client.WithLogger(logger)).Providers()
}

// withTimeout is the deadline applied to one-shot CLI commands.
func withTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}

// newSession returns a session backed by the server at --api or, when unset,
// by in-process providers. The returned func releases them.
func newSession(ctx context.Context, cfg config.Config, logger *zap.Logger) (*session.Session, func(), error) {
	if apiURL != "" {
		return session.New(remoteProviders(apiURL, logger), session.WithLogger(logger)), func() {}, nil
	}
	b, err := newBackend(ctx, cfg, nil, logger)
	if err != nil {
		return nil, nil, err
	}
	return session.New(b.Providers, session.WithLogger(logger)), b.Close, nil
}
