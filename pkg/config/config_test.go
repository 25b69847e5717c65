package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name            string
		envVars         map[string]string
		expectedPort    string
		expectedTTL     time.Duration
		expectedWorkers int
	}{
		{
			name:            "defaults when nothing is set",
			envVars:         map[string]string{},
			expectedPort:    "8000",
			expectedTTL:     time.Hour,
			expectedWorkers: 4,
		},
		{
			name:            "uses PORT env var when set",
			envVars:         map[string]string{"PORT": "3000"},
			expectedPort:    "3000",
			expectedTTL:     time.Hour,
			expectedWorkers: 4,
		},
		{
			name:            "uses CORPUS_TTL env var when set",
			envVars:         map[string]string{"CORPUS_TTL": "120"},
			expectedPort:    "8000",
			expectedTTL:     2 * time.Minute,
			expectedWorkers: 4,
		},
		{
			name:            "uses SCRAPE_WORKERS env var when set",
			envVars:         map[string]string{"SCRAPE_WORKERS": "8"},
			expectedPort:    "8000",
			expectedTTL:     time.Hour,
			expectedWorkers: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := LoadFromEnv()
			if err != nil {
				t.Fatalf("LoadFromEnv() error = %v", err)
			}

			if cfg.Server.Port != tt.expectedPort {
				t.Errorf("Port = %v, want %v", cfg.Server.Port, tt.expectedPort)
			}

			if cfg.Corpus.TTL != tt.expectedTTL {
				t.Errorf("TTL = %v, want %v", cfg.Corpus.TTL, tt.expectedTTL)
			}

			if cfg.Corpus.Workers != tt.expectedWorkers {
				t.Errorf("Workers = %v, want %v", cfg.Corpus.Workers, tt.expectedWorkers)
			}
		})
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Corpus.RefreshInterval != 50*time.Minute {
		t.Errorf("RefreshInterval = %v, want 50m", cfg.Corpus.RefreshInterval)
	}
	if cfg.Fetch.Browser != "playwright" {
		t.Errorf("Browser = %v, want playwright", cfg.Fetch.Browser)
	}
	if cfg.Fetch.MaxRetries != 3 || cfg.Fetch.RetryDelay != 2*time.Second {
		t.Errorf("retry policy = %d/%v, want 3/2s", cfg.Fetch.MaxRetries, cfg.Fetch.RetryDelay)
	}
	if cfg.Fetch.ScrollRounds != 5 || cfg.Fetch.ScrollAttempts != 10 || cfg.Fetch.ScrollDelay != 2*time.Second {
		t.Errorf("scroll policy = %d/%d/%v, want 5/10/2s", cfg.Fetch.ScrollRounds, cfg.Fetch.ScrollAttempts, cfg.Fetch.ScrollDelay)
	}
	if cfg.Embedding.Provider != "hashing" {
		t.Errorf("Provider = %v, want hashing", cfg.Embedding.Provider)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnv_InvalidNumber(t *testing.T) {
	os.Clearenv()
	os.Setenv("CORPUS_TTL", "not-a-number")
	os.Setenv("RATE_LIMIT", "fast")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	// Should use default values when parsing fails
	if cfg.Corpus.TTL != time.Hour {
		t.Errorf("TTL = %v, want %v (default)", cfg.Corpus.TTL, time.Hour)
	}
	if cfg.Server.RateLimit != 5 {
		t.Errorf("RateLimit = %v, want 5 (default)", cfg.Server.RateLimit)
	}
}

func TestLoadFromEnv_NormalizesSelectors(t *testing.T) {
	os.Clearenv()
	os.Setenv("BROWSER", "Static")
	os.Setenv("EMBEDDER", "OLLAMA")
	os.Setenv("PLAYWRIGHT_INSTALL", "true")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Fetch.Browser != "static" {
		t.Errorf("Browser = %v, want static", cfg.Fetch.Browser)
	}
	if cfg.Embedding.Provider != "ollama" {
		t.Errorf("Provider = %v, want ollama", cfg.Embedding.Provider)
	}
	if !cfg.Fetch.InstallDriver {
		t.Error("InstallDriver should be true")
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: "8000", RateLimit: 5, RateBurst: 10},
		Corpus: CorpusConfig{TTL: time.Hour, RefreshInterval: 50 * time.Minute, Workers: 4},
		Fetch: FetchConfig{
			Browser:        "static",
			MaxRetries:     3,
			ScrollRounds:   5,
			ScrollAttempts: 10,
		},
		Embedding: EmbeddingConfig{Provider: "hashing", Dimensions: 512},
		Cache:     CacheConfig{Type: "memory"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: true,
			errMsg:  "port cannot be empty",
		},
		{
			name:    "corpus TTL less than 1 second",
			mutate:  func(c *Config) { c.Corpus.TTL = 0 },
			wantErr: true,
			errMsg:  "corpus TTL must be at least 1 second",
		},
		{
			name:    "no workers",
			mutate:  func(c *Config) { c.Corpus.Workers = 0 },
			wantErr: true,
			errMsg:  "scrape workers must be at least 1",
		},
		{
			name:    "invalid browser",
			mutate:  func(c *Config) { c.Fetch.Browser = "firefox" },
			wantErr: true,
			errMsg:  `browser must be 'playwright' or 'static', got "firefox"`,
		},
		{
			name:    "invalid embedder",
			mutate:  func(c *Config) { c.Embedding.Provider = "invalid" },
			wantErr: true,
			errMsg:  `embedder must be 'hashing', 'ollama' or 'openai', got "invalid"`,
		},
		{
			name: "openai without credentials",
			mutate: func(c *Config) {
				c.Embedding.Provider = "openai"
			},
			wantErr: true,
			errMsg:  "openai embedder needs OPENAI_API_KEY or OPENAI_BASE_URL",
		},
		{
			name: "ollama with url",
			mutate: func(c *Config) {
				c.Embedding.Provider = "ollama"
				c.Embedding.OllamaURL = "http://localhost:11434"
			},
			wantErr: false,
		},
		{
			name:    "invalid cache type",
			mutate:  func(c *Config) { c.Cache.Type = "memcached" },
			wantErr: true,
			errMsg:  "cache type must be 'redis' or 'memory'",
		},
		{
			name:    "redis without address",
			mutate:  func(c *Config) { c.Cache.Type = "redis" },
			wantErr: true,
			errMsg:  "redis address cannot be empty when using redis cache",
		},
		{
			name: "redis with address",
			mutate: func(c *Config) {
				c.Cache.Type = "redis"
				c.Cache.Redis.Address = "localhost:6379"
			},
			wantErr: false,
		},
		{
			name:    "refresh disabled",
			mutate:  func(c *Config) { c.Corpus.RefreshInterval = 0 },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMsg != "" && err.Error() != tt.errMsg {
				t.Errorf("Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestParsePlatforms(t *testing.T) {
	data := []byte(`
platforms:
  - name: Coursera
    listing_url: https://www.coursera.org/courses?query=free
    base_url: https://www.coursera.org
    hint_sets:
      - tag: li
        classes: [cds-9, css-0]
      - tag: div
        classes: [course-card]
  - name: Custom
    listing_url: https://example.com/free
    hint_sets:
      - tag: article
`)

	platforms, err := ParsePlatforms(data)
	if err != nil {
		t.Fatalf("ParsePlatforms() error = %v", err)
	}
	if len(platforms) != 2 {
		t.Fatalf("len = %d, want 2", len(platforms))
	}
	if platforms[0].BaseURL != "https://www.coursera.org" {
		t.Errorf("BaseURL = %q", platforms[0].BaseURL)
	}
	if len(platforms[0].HintSets) != 2 || platforms[0].HintSets[0].Classes[1] != "css-0" {
		t.Errorf("HintSets = %+v", platforms[0].HintSets)
	}
	if platforms[1].HintSets[0].Tag != "article" || len(platforms[1].HintSets[0].Classes) != 0 {
		t.Errorf("bare tag rule decoded as %+v", platforms[1].HintSets[0])
	}
}

func TestParsePlatforms_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		errMsg string
	}{
		{"malformed yaml", "platforms: [", "parsing platforms file"},
		{"empty table", "platforms: []", "defines no platforms"},
		{"missing name", "platforms:\n  - listing_url: https://x.org\n    hint_sets: [{tag: div}]", "name cannot be empty"},
		{"missing url", "platforms:\n  - name: X\n    hint_sets: [{tag: div}]", "listing_url cannot be empty"},
		{"no hint sets", "platforms:\n  - name: X\n    listing_url: https://x.org", "at least one hint set"},
		{"empty tag", "platforms:\n  - name: X\n    listing_url: https://x.org\n    hint_sets: [{classes: [a]}]", "has no tag"},
		{
			"duplicate name",
			"platforms:\n  - name: X\n    listing_url: https://x.org\n    hint_sets: [{tag: div}]\n  - name: X\n    listing_url: https://y.org\n    hint_sets: [{tag: div}]",
			"defined twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlatforms([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want it to contain %q", err, tt.errMsg)
			}
		})
	}
}

func TestLoadPlatforms_MissingFile(t *testing.T) {
	if _, err := LoadPlatforms(t.TempDir() + "/missing.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
