// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, corpus, fetching and embedding settings

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Log contains logging configuration
	Log LogConfig

	// Corpus contains aggregation and caching configuration
	Corpus CorpusConfig

	// Fetch contains page fetching configuration
	Fetch FetchConfig

	// Embedding contains semantic search backend configuration
	Embedding EmbeddingConfig

	// Cache contains search result and title vector cache configuration
	Cache CacheConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the sustained requests per second allowed per client IP; zero disables limiting
	RateLimit float64

	// RateBurst is the number of requests a client may burst above RateLimit
	RateBurst int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string

	// File enables rotating file output when set
	File string
}

// CorpusConfig holds corpus cache configuration
type CorpusConfig struct {
	// TTL is how long a built corpus is served before it is rebuilt
	TTL time.Duration

	// RefreshInterval is the background refresh period; zero disables it
	RefreshInterval time.Duration

	// Workers bounds how many platforms are scraped concurrently
	Workers int

	// PlatformsFile optionally replaces the built-in platform table
	PlatformsFile string
}

// FetchConfig holds page fetching configuration
type FetchConfig struct {
	// Browser selects the page backend (playwright/static)
	Browser string

	ChromiumPath      string
	InstallDriver     bool
	NavigationTimeout time.Duration

	MaxRetries     int
	RetryDelay     time.Duration
	ScrollRounds   int
	ScrollAttempts int
	ScrollDelay    time.Duration
}

// EmbeddingConfig holds embedding backend configuration
type EmbeddingConfig struct {
	// Provider selects the embedder (hashing/ollama/openai). The default hashing
	// embedder ranks lexically; semantic ranking needs ollama or openai.
	Provider string

	// Dimensions is the vector size of the hashing embedder
	Dimensions int

	OllamaURL   string
	OllamaModel string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	// Timeout bounds each embedding request
	Timeout time.Duration
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key so several deployments can share one server
	KeyPrefix string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			RateLimit: getEnvAsFloatOrDefault("RATE_LIMIT", 5),
			RateBurst: getEnvAsIntOrDefault("RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
		Corpus: CorpusConfig{
			TTL:             seconds(getEnvAsIntOrDefault("CORPUS_TTL", 3600)),
			RefreshInterval: seconds(getEnvAsIntOrDefault("REFRESH_INTERVAL", 3000)),
			Workers:         getEnvAsIntOrDefault("SCRAPE_WORKERS", 4),
			PlatformsFile:   getEnvOrDefault("PLATFORMS_FILE", ""),
		},
		Fetch: FetchConfig{
			Browser:           strings.ToLower(getEnvOrDefault("BROWSER", "playwright")),
			ChromiumPath:      getEnvOrDefault("CHROMIUM_PATH", ""),
			InstallDriver:     getEnvAsBoolOrDefault("PLAYWRIGHT_INSTALL", false),
			NavigationTimeout: millis(getEnvAsIntOrDefault("NAVIGATION_TIMEOUT_MS", 30000)),
			MaxRetries:        getEnvAsIntOrDefault("FETCH_MAX_RETRIES", 3),
			RetryDelay:        millis(getEnvAsIntOrDefault("FETCH_RETRY_DELAY_MS", 2000)),
			ScrollRounds:      getEnvAsIntOrDefault("SCROLL_ROUNDS", 5),
			ScrollAttempts:    getEnvAsIntOrDefault("SCROLL_ATTEMPTS", 10),
			ScrollDelay:       millis(getEnvAsIntOrDefault("SCROLL_DELAY_MS", 2000)),
		},
		Embedding: EmbeddingConfig{
			Provider:      strings.ToLower(getEnvOrDefault("EMBEDDER", "hashing")),
			Dimensions:    getEnvAsIntOrDefault("EMBEDDING_DIMENSIONS", 512),
			OllamaURL:     getEnvOrDefault("OLLAMA_URL", "http://localhost:11434"),
			OllamaModel:   getEnvOrDefault("OLLAMA_MODEL", "nomic-embed-text"),
			OpenAIKey:     getEnvOrDefault("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
			OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "text-embedding-3-small"),
			Timeout:       seconds(getEnvAsIntOrDefault("EMBEDDING_TIMEOUT", 30)),
		},
		Cache: CacheConfig{
			Type: strings.ToLower(getEnvOrDefault("CACHE_TYPE", "memory")),
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "coursefinder:"),
			},
		},
	}

	return cfg, nil
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func millis(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns the environment variable as bool or a default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return errors.New("rate limit and burst cannot be negative")
	}

	if c.Corpus.TTL < time.Second {
		return errors.New("corpus TTL must be at least 1 second")
	}

	if c.Corpus.RefreshInterval < 0 {
		return errors.New("refresh interval cannot be negative")
	}

	if c.Corpus.Workers < 1 {
		return errors.New("scrape workers must be at least 1")
	}

	if c.Fetch.Browser != "playwright" && c.Fetch.Browser != "static" {
		return fmt.Errorf("browser must be 'playwright' or 'static', got %q", c.Fetch.Browser)
	}

	if c.Fetch.MaxRetries < 1 {
		return errors.New("fetch max retries must be at least 1")
	}

	if c.Fetch.ScrollRounds < 0 || c.Fetch.ScrollAttempts < 1 {
		return errors.New("scroll rounds cannot be negative and scroll attempts must be at least 1")
	}

	switch c.Embedding.Provider {
	case "hashing":
		if c.Embedding.Dimensions < 1 {
			return errors.New("embedding dimensions must be at least 1")
		}
	case "ollama":
		if c.Embedding.OllamaURL == "" {
			return errors.New("ollama URL cannot be empty when using the ollama embedder")
		}
	case "openai":
		if c.Embedding.OpenAIKey == "" && c.Embedding.OpenAIBaseURL == "" {
			return errors.New("openai embedder needs OPENAI_API_KEY or OPENAI_BASE_URL")
		}
	default:
		return fmt.Errorf("embedder must be 'hashing', 'ollama' or 'openai', got %q", c.Embedding.Provider)
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	return nil
}
