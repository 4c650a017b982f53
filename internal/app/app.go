package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/barkeep-app/search/pkg/health"
	pkgkafka "github.com/barkeep-app/search/pkg/kafka"

	"github.com/barkeep-app/search/internal/config"
	"github.com/barkeep-app/search/internal/engine"
	esengine "github.com/barkeep-app/search/internal/engine/elasticsearch"
	"github.com/barkeep-app/search/internal/engine/memory"
	"github.com/barkeep-app/search/internal/event"
	handler "github.com/barkeep-app/search/internal/handler/http"
	"github.com/barkeep-app/search/internal/indexer"
	"github.com/barkeep-app/search/internal/relation"
	"github.com/barkeep-app/search/internal/service"
	"github.com/barkeep-app/search/internal/store/mongo"
)

// App wires together all dependencies and runs the search service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	mongo      *mongo.Client
	consumers  []*pkgkafka.Consumer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// MongoDB is the source of truth for cocktails and their relations.
	mongoClient, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	logger.Info("mongodb connected", slog.String("database", cfg.MongoDatabase))

	cocktails := mongo.NewCocktailStore(mongoClient)
	resolver := relation.NewResolver(
		mongo.NewIngredientStore(mongoClient),
		mongo.NewEquipmentStore(mongoClient),
	)

	// Initialize search engine based on configuration.
	var eng engine.SearchEngine
	var esEng *esengine.Engine
	switch cfg.SearchEngine {
	case "elasticsearch":
		esEng, err = esengine.New(esengine.Config{
			Addresses: []string{cfg.ElasticNode},
			APIKey:    cfg.ElasticAPIKey,
			Stage:     cfg.Stage,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("init elasticsearch engine: %w", err)
		}
		eng = esEng
		logger.Info("elasticsearch search engine initialized",
			slog.String("node", cfg.ElasticNode),
			slog.String("stage", cfg.Stage),
		)
	default:
		eng = memory.New()
		logger.Info("in-memory search engine initialized")
	}

	ix := indexer.New(resolver, eng, logger)

	searchService := service.NewSearchService(eng, logger)
	reindexer := service.NewReindexer(cocktails, ix, eng, logger,
		service.WithBatchSize(cfg.ReindexBatchSize),
		service.WithBatchPause(time.Duration(cfg.ReindexPauseMs)*time.Millisecond),
	)

	// Kafka consumers for cocktail change events.
	reactor := event.NewReactor(ix, logger)

	var consumers []*pkgkafka.Consumer
	for _, topic := range event.Topics() {
		consumerCfg := pkgkafka.ConsumerConfig{
			Brokers:  cfg.KafkaBrokers,
			GroupID:  "cocktail-search",
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6, // 10 MB
		}
		c := pkgkafka.NewConsumer(consumerCfg, reactor.Handle, logger)
		consumers = append(consumers, c)
	}
	logger.Info("kafka consumers initialized",
		slog.Any("brokers", cfg.KafkaBrokers),
		slog.Int("topic_count", len(event.Topics())),
	)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("mongodb", mongoClient.Ping)
	if esEng != nil {
		healthHandler.Register("elasticsearch", esEng.Ping)
	}
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
	})

	router := handler.NewRouter(handler.RouterConfig{
		SearchService: searchService,
		Reindexer:     reindexer,
		HealthHandler: healthHandler,
		Environment:   cfg.Environment,
		Logger:        logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		mongo:      mongoClient,
		consumers:  consumers,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and Kafka consumers, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1+len(a.consumers))

	// Start Kafka consumers in background goroutines.
	for _, c := range a.consumers {
		c := c
		go func() {
			if err := c.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	// Start HTTP server.
	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// Close Kafka consumers.
	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.mongo.Close(shutdownCtx); err != nil {
		a.logger.Error("mongodb close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
