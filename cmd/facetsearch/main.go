package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetsearch/internal/config"
	dbElastic "github.com/kailas-cloud/facetsearch/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/facetsearch/internal/db/redis"
	"github.com/kailas-cloud/facetsearch/internal/domain"
	logpkg "github.com/kailas-cloud/facetsearch/internal/logger"
	"github.com/kailas-cloud/facetsearch/internal/metrics"
	"github.com/kailas-cloud/facetsearch/internal/registry/dataset"
	"github.com/kailas-cloud/facetsearch/internal/registry/occurrence"
	"github.com/kailas-cloud/facetsearch/internal/repository/embcache"
	searchrepo "github.com/kailas-cloud/facetsearch/internal/repository/search"
	chiTransport "github.com/kailas-cloud/facetsearch/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/facetsearch/internal/transport/openai"
	healthuc "github.com/kailas-cloud/facetsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/facetsearch/internal/usecase/search"
	"github.com/kailas-cloud/facetsearch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting facetsearch API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("es_addrs", cfg.Elasticsearch.Addrs),
		zap.Bool("facets_enabled", cfg.Search.FacetsEnabled),
	)

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	ctx := context.Background()

	es, err := dbElastic.NewStore(dbElastic.Config{
		Addrs:      cfg.Elasticsearch.Addrs,
		Username:   cfg.Elasticsearch.Username,
		Password:   cfg.Elasticsearch.Password,
		APIKey:     cfg.Elasticsearch.APIKey,
		MaxRetries: cfg.Elasticsearch.MaxRetries,
	})
	if err != nil {
		logger.Fatal("Failed to create search backend client", zap.Error(err))
	}
	if err := es.WaitForReady(ctx, time.Duration(cfg.Elasticsearch.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search backend not ready", zap.Error(err))
	}
	logger.Info("Connected to search backend")

	// Pass nil interfaces (not typed nil pointers) for absent optional components.
	var cacheStore *dbRedis.Store
	var cachePinger healthuc.Pinger
	if cfg.Cache.Enabled() {
		cacheStore, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cacheStore.Close()
		cachePinger = cacheStore
	}

	queryEmbedder := buildEmbedder(cfg, cacheStore, logger)
	var embedHealth healthuc.EmbeddingChecker
	var searchEmbedder searchuc.Embedder
	if queryEmbedder != nil {
		embedHealth = queryEmbedder
		searchEmbedder = queryEmbedder
	}

	repo := searchrepo.New(es, cfg.Indexes.Prefix)

	datasets := searchuc.NewService(repo, searchEmbedder, searchuc.Domain[dataset.Result, dataset.Suggestion]{
		Name:         "dataset",
		Index:        cfg.Indexes.Dataset,
		Parameters:   dataset.Parameters,
		Mapper:       dataset.Mapper,
		ToResult:     dataset.ToResult,
		ToSuggestion: dataset.ToSuggestion,
	}, cfg.Search.FacetsEnabled)

	occurrences := searchuc.NewService(repo, searchEmbedder, searchuc.Domain[occurrence.Result, occurrence.Suggestion]{
		Name:         "occurrence",
		Index:        cfg.Indexes.Occurrence,
		Parameters:   occurrence.Parameters,
		Mapper:       occurrence.Mapper,
		ToResult:     occurrence.ToResult,
		ToSuggestion: occurrence.ToSuggestion,
	}, cfg.Search.FacetsEnabled)

	healthSvc := healthuc.New(es, cachePinger, embedHealth)

	server := chiTransport.NewServer(
		[]chiTransport.Domain{
			chiTransport.Bind(datasets, dataset.Title),
			chiTransport.Bind(occurrences, occurrence.ScientificName),
		},
		healthSvc,
		chiTransport.Options{
			Paging: chiTransport.Paging{
				DefaultLimit: cfg.Search.DefaultLimit,
				MaxLimit:     cfg.Search.MaxLimit,
				MaxOffset:    cfg.Search.MaxOffset,
			},
			APIKeys: cfg.Auth.APIKeys,
		},
		logger,
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Handler(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// queryEmbedder embeds search text and reports provider health.
type queryEmbedder interface {
	domain.Embedder
	domain.HealthChecker
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instruction.
// Returns nil when semantic search is not configured.
func buildEmbedder(cfg config.Config, cache *dbRedis.Store, logger *zap.Logger) queryEmbedder {
	if !cfg.Embedding.Enabled() {
		logger.Info("Semantic search disabled: no embedding model configured")
		return nil
	}

	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	var embedder queryEmbedder = base
	if cache != nil {
		embedder = embcache.New(base, cache, embcache.Config{
			Model: cfg.Embedding.Model,
			TTL:   time.Duration(cfg.Cache.TTLSec) * time.Second,
		}, metrics.EmbeddingCacheTotal, logger)
	}

	// Outermost so the cache key covers the instruction.
	if cfg.Embedding.QueryInstruction != "" {
		embedder = domain.NewInstructionEmbedder(embedder, cfg.Embedding.QueryInstruction)
	}

	logger.Info("Query embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cached", cache != nil),
	)
	return embedder
}
