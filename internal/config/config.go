// Package config holds the application configuration for the news
// aggregator service.
package config

import (
	"log/slog"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/cache"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/scheduler"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/sources"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/pkg/config"
)

// Config is the full service configuration. Every field can come from the
// YAML file or be overridden through the tagged environment variable.
type Config struct {
	Server struct {
		Port      string `yaml:"port" env:"API_PORT"`
		JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path" env:"NEWS_DB"`
	} `yaml:"database"`

	Cache struct {
		TTL             config.Duration `yaml:"ttl" env:"CACHE_TTL"`
		RefreshInterval config.Duration `yaml:"refresh_interval" env:"CACHE_REFRESH_INTERVAL"`
	} `yaml:"cache"`

	Providers struct {
		NewsAPIKey     string   `yaml:"newsapi_key" env:"NEWS_API_KEY"`
		NewsCatcherKey string   `yaml:"newscatcher_key" env:"NEWSCATCHER_API_KEY"`
		GNewsKey       string   `yaml:"gnews_key" env:"GNEWS_API_KEY"`
		NewsAPIAIKey   string   `yaml:"newsapi_ai_key" env:"NEWSAPI_AI_KEY"`
		RSSFeeds       []string `yaml:"rss_feeds" env:"RSS_FEEDS"`
	} `yaml:"providers"`
}

// Default returns the configuration used when no file or overrides exist.
func Default() Config {
	var cfg Config
	cfg.Server.Port = "3000"
	cfg.Server.JWTSecret = "dev-only-news-aggregator-secret"
	cfg.Database.Path = "data/news.db"
	cfg.Cache.TTL = config.Duration(cache.DefaultTTL)
	cfg.Cache.RefreshInterval = config.Duration(scheduler.DefaultInterval)
	return cfg
}

// Load reads the config file at path (missing file is fine) and applies
// environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := config.LoadOrDefault(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTL returns the cache TTL as a time.Duration.
func (c Config) TTL() time.Duration { return c.Cache.TTL.Std() }

// RefreshInterval returns the scheduler period as a time.Duration.
func (c Config) RefreshInterval() time.Duration { return c.Cache.RefreshInterval.Std() }

// NewsSources builds the provider adapters that have credentials
// configured. A provider without a key is skipped with a warning; it never
// aborts startup.
func (c Config) NewsSources(logger *slog.Logger) []sources.Source {
	if logger == nil {
		logger = slog.Default()
	}

	var srcs []sources.Source
	add := func(name, key string, build func() sources.Source) {
		if key == "" {
			logger.Warn("provider disabled, no credential configured", "source", name)
			return
		}
		srcs = append(srcs, build())
	}

	add("NewsAPI.org", c.Providers.NewsAPIKey, func() sources.Source {
		return sources.NewNewsAPI(c.Providers.NewsAPIKey)
	})
	add("NewsCatcher", c.Providers.NewsCatcherKey, func() sources.Source {
		return sources.NewNewsCatcher(c.Providers.NewsCatcherKey)
	})
	add("GNews", c.Providers.GNewsKey, func() sources.Source {
		return sources.NewGNews(c.Providers.GNewsKey)
	})
	add("NewsAPI.ai", c.Providers.NewsAPIAIKey, func() sources.Source {
		return sources.NewNewsAPIAI(c.Providers.NewsAPIAIKey)
	})
	if len(c.Providers.RSSFeeds) > 0 {
		srcs = append(srcs, sources.NewRSS("RSS", c.Providers.RSSFeeds))
	}
	return srcs
}
