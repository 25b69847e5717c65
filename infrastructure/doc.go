// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as page rendering, caching, embeddings, HTTP communication and logging.
//
// The infrastructure package is organized by technical concern:
//
// - browser/playwright: Headless Chromium sessions through playwright-go
// - browser/static: Non-rendering sessions backed by colly
// - cache/memory: In-memory cache backed by go-cache
// - cache/redis: Redis-based cache shared between replicas
// - embedding/hashing: Local feature-hashing embedder
// - embedding/ollama: Ollama embeddings over HTTP
// - embedding/openai: OpenAI-compatible embeddings through go-openai
// - http/standard: Standard library HTTP client with retry logic
// - logger/logrus: Structured logger on logrus with optional file rotation
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(ctx, config.RedisConfig{
//	    Address:   "localhost:6379",
//	    KeyPrefix: "coursefinder:",
//	})
//
// # HTTP Client
//
// The HTTP client includes automatic retry logic for transient failures:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logrus.New(logrus.Options{Level: "info", Format: "json"})
//	logger.Info("Scrape finished", map[string]interface{}{
//	    "platform": "Coursera",
//	    "courses":  42,
//	})
package infrastructure
