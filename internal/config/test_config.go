package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:0/api/v1",
			SiteURL:     "http://localhost:0",
			HTTPTimeout: 5 * time.Second,
			PerPage:     10,
			Strategy:    "relevant",
		},
		Feed: FeedConfig{
			Source: "api",
			RSSURL: "http://localhost:0/recentes/rss",
		},
		Database: DatabaseConfig{
			Path:    ":memory:",
			Timeout: 1 * time.Second,
		},
		UI:   defaultConfig().UI,
		Keys: defaultConfig().Keys,
	}
}
