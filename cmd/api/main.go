// ABOUTME: Main entry point for the Course Finder API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coursefinder-api/api"
	"coursefinder-api/api/handlers"
	"coursefinder-api/api/middleware"
	coreconfig "coursefinder-api/core/config"
	"coursefinder-api/core/fetch"
	"coursefinder-api/core/interfaces"
	"coursefinder-api/core/workers"
	"coursefinder-api/coursefinder"
	"coursefinder-api/infrastructure/browser/playwright"
	"coursefinder-api/infrastructure/browser/static"
	"coursefinder-api/infrastructure/cache/memory"
	"coursefinder-api/infrastructure/cache/redis"
	"coursefinder-api/infrastructure/embedding/hashing"
	"coursefinder-api/infrastructure/embedding/ollama"
	"coursefinder-api/infrastructure/embedding/openai"
	stdhttp "coursefinder-api/infrastructure/http/standard"
	"coursefinder-api/infrastructure/logger/logrus"
	"coursefinder-api/pkg/config"
	"coursefinder-api/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logrus.New(logrus.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})

	flags := featureflags.NewEnvManager("FEATURE_", featureflags.Defaults())
	ctx := context.Background()

	logger.Info("Starting Course Finder API", map[string]interface{}{
		"port":             cfg.Server.Port,
		"browser":          cfg.Fetch.Browser,
		"embedder":         cfg.Embedding.Provider,
		"corpus_ttl":       cfg.Corpus.TTL.String(),
		"refresh_interval": cfg.Corpus.RefreshInterval.String(),
		"cache":            cfg.Cache.Type,
		"features":         flags.GetAllFlags(),
	})

	platforms := coursefinder.DefaultPlatforms()
	if cfg.Corpus.PlatformsFile != "" {
		platforms, err = config.LoadPlatforms(cfg.Corpus.PlatformsFile)
		if err != nil {
			log.Fatalf("Failed to load platforms: %v", err)
		}
		logger.Info("Loaded platforms from file", map[string]interface{}{
			"file":      cfg.Corpus.PlatformsFile,
			"platforms": len(platforms),
		})
	}

	browser := newBrowser(cfg, logger)
	embedder := newEmbedder(cfg, logger)

	cache, closeCache := newCache(ctx, cfg, logger)
	defer closeCache()

	var matchOpts []coreconfig.MatchOption
	if !flags.IsEnabled(ctx, featureflags.VectorCache) {
		matchOpts = append(matchOpts, coreconfig.WithoutVectorCache())
	}

	workerConfig := workers.WorkerConfig{Interval: cfg.Corpus.RefreshInterval, WarmUp: true}
	if !flags.IsEnabled(ctx, featureflags.BackgroundRefresh) {
		workerConfig.Interval = 0
	}

	client, err := coursefinder.NewClient(
		coursefinder.WithLogger(logger),
		coursefinder.WithCache(cache),
		coursefinder.WithBrowser(browser),
		coursefinder.WithEmbedder(embedder),
		coursefinder.WithPlatforms(platforms),
		coursefinder.WithFetchOptions(fetch.Options{
			MaxRetries:     cfg.Fetch.MaxRetries,
			RetryDelay:     cfg.Fetch.RetryDelay,
			ScrollRounds:   cfg.Fetch.ScrollRounds,
			ScrollAttempts: cfg.Fetch.ScrollAttempts,
			ScrollDelay:    cfg.Fetch.ScrollDelay,
		}),
		coursefinder.WithCorpusTTL(cfg.Corpus.TTL),
		coursefinder.WithScrapeWorkers(cfg.Corpus.Workers),
		coursefinder.WithMatchOptions(matchOpts...),
		coursefinder.WithResultCache(flags.IsEnabled(ctx, featureflags.ResultCache)),
		coursefinder.WithWorkerConfig(workerConfig),
		coursefinder.WithBackgroundRefresh(true),
	)
	if err != nil {
		log.Fatalf("Failed to create course finder: %v", err)
	}

	apiConfig := api.APIConfig{Logger: logger}
	if flags.IsEnabled(ctx, featureflags.RateLimit) {
		apiConfig.RateLimit = cfg.Server.RateLimit
		apiConfig.RateBurst = cfg.Server.RateBurst
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	handlers.NewSearchHandler(client.SearchService(), logger).RegisterRoutes(humaAPI)
	var trigger handlers.RefreshTrigger
	if worker := client.RefreshWorker(); worker != nil {
		trigger = worker
	}
	handlers.NewCourseHandler(client.CorpusProvider(), trigger, flags, logger).RegisterRoutes(humaAPI)
	handlers.NewStatusHandler(client.CorpusProvider(), flags).RegisterRoutes(humaAPI)

	// Rebuilds can outlast a typical write timeout when a search finds the corpus stale
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := client.Close(); err != nil {
		logger.Error("Failed to close course finder", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

func newCache(ctx context.Context, cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	if cfg.Cache.Type == "redis" {
		cache, err := redis.NewRedisCache(ctx, cfg.Cache.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
			"db":      cfg.Cache.Redis.DB,
		})
		return cache, func() { cache.Close() }
	}
	return memory.NewMemoryCache(), func() {}
}

func newBrowser(cfg *config.Config, logger interfaces.Logger) interfaces.Browser {
	if cfg.Fetch.Browser == "static" {
		return static.New(cfg.Fetch.NavigationTimeout)
	}
	return playwright.New(playwright.Options{
		ExecutablePath:    cfg.Fetch.ChromiumPath,
		InstallDriver:     cfg.Fetch.InstallDriver,
		NavigationTimeout: float64(cfg.Fetch.NavigationTimeout.Milliseconds()),
	}, logger)
}

func newEmbedder(cfg *config.Config, logger interfaces.Logger) interfaces.Embedder {
	transport := &middleware.LoggingRoundTripper{Transport: http.DefaultTransport, Logger: logger}

	switch cfg.Embedding.Provider {
	case "ollama":
		client := stdhttp.NewStandardHTTPClient(cfg.Embedding.Timeout).WithTransport(transport)
		return ollama.New(cfg.Embedding.OllamaURL, cfg.Embedding.OllamaModel, client)
	case "openai":
		return openai.New(openai.Config{
			APIKey:     cfg.Embedding.OpenAIKey,
			BaseURL:    cfg.Embedding.OpenAIBaseURL,
			Model:      cfg.Embedding.OpenAIModel,
			HTTPClient: &http.Client{Timeout: cfg.Embedding.Timeout, Transport: transport},
		})
	default:
		return hashing.New(cfg.Embedding.Dimensions)
	}
}

func init() {
	fmt.Println(`
   ______                              _______           __
  / ____/___  __  _______________     / ____(_)___  ____/ /__  _____
 / /   / __ \/ / / / ___/ ___/ _ \   / /_  / / __ \/ __  / _ \/ ___/
/ /___/ /_/ / /_/ / /  (__  )  __/  / __/ / / / / / /_/ /  __/ /
\____/\____/\__,_/_/  /____/\___/  /_/   /_/_/ /_/\__,_/\___/_/
	`)
}
