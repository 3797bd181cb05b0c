package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Keys     KeyConfig      `mapstructure:"keys"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	SiteURL     string        `mapstructure:"site_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	PerPage     int           `mapstructure:"per_page"`
	Strategy    string        `mapstructure:"strategy"`
}

type FeedConfig struct {
	// Source selects where the feed view loads from: "api" or "rss".
	Source string `mapstructure:"source"`
	RSSURL string `mapstructure:"rss_url"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type UIConfig struct {
	Browser string `mapstructure:"browser"`
	Theme   string `mapstructure:"theme"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit       string `mapstructure:"quit"`
	Comments   string `mapstructure:"comments"`
	AuthorFeed string `mapstructure:"author_feed"`
	Search     string `mapstructure:"search"`
	Login      string `mapstructure:"login"`
	Open       string `mapstructure:"open"`
	Back       string `mapstructure:"back"`
}

type AuthConfig struct {
	// Token is only ever sourced from the environment, never written to the
	// config file.
	Token string `mapstructure:"token"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".tn.db")

	return &Config{
		API: APIConfig{
			BaseURL:     "https://www.tabnews.com.br/api/v1",
			SiteURL:     "https://www.tabnews.com.br",
			HTTPTimeout: 30 * time.Second,
			PerPage:     10,
			Strategy:    "relevant",
		},
		Feed: FeedConfig{
			Source: "api",
			RSSURL: "https://www.tabnews.com.br/recentes/rss",
		},
		Database: DatabaseConfig{
			Path:    dbPath,
			Timeout: 1 * time.Second,
		},
		UI: UIConfig{},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:       "q",
				Comments:   "c",
				AuthorFeed: "a",
				Search:     "s",
				Login:      "l",
				Open:       "o",
				Back:       "esc",
			},
		},
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("api", cfg.API)
	v.SetDefault("feed", cfg.Feed)
	v.SetDefault("database", cfg.Database)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("keys", cfg.Keys)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "tn")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TN")
	v.AutomaticEnv()

	// The session token comes from the environment only; TABNEWS_TOKEN is
	// what the site's own docs use, TN_TOKEN matches our prefix.
	_ = v.BindEnv("auth.token", "TN_TOKEN", "TABNEWS_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.UI.Theme = expandPath(cfg.UI.Theme)
}

func Save(config *Config, path string) error {
	v := viper.New()

	apiCfg := map[string]interface{}{
		"base_url":     config.API.BaseURL,
		"site_url":     config.API.SiteURL,
		"http_timeout": config.API.HTTPTimeout.String(),
		"per_page":     config.API.PerPage,
		"strategy":     config.API.Strategy,
	}

	dbCfg := map[string]interface{}{
		"path":    config.Database.Path,
		"timeout": config.Database.Timeout.String(),
	}

	v.Set("api", apiCfg)
	v.Set("feed", config.Feed)
	v.Set("database", dbCfg)
	v.Set("ui", config.UI)
	v.Set("keys", config.Keys)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
