package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tabnews-cli/tn/internal/api"
	"github.com/tabnews-cli/tn/internal/config"
	"github.com/tabnews-cli/tn/internal/debuglog"
	"github.com/tabnews-cli/tn/internal/storage"
	"github.com/tabnews-cli/tn/internal/tui"
	"github.com/tabnews-cli/tn/internal/validation"
)

var version = "dev"

func main() {
	var (
		configPath     = flag.String("config", "", "path to the config file")
		dbPath         = flag.String("db", "", "path to the local database (overrides config)")
		generateConfig = flag.Bool("generate-config", false, "write a default config file and exit")
		showVersion    = flag.Bool("version", false, "print the version and exit")
		quiet          = flag.Bool("quiet", false, "skip the startup banner")
		user           = flag.String("user", "", "start on this author's posts")
		strategy       = flag.String("strategy", "", "feed ordering: relevant, new or old")
		logLevel       = flag.String("log-level", "", "debug log level: debug, info, warn, error or off")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", tui.AppName, version)
		return
	}

	if *generateConfig {
		path := *configPath
		if path == "" {
			home, _ := os.UserHomeDir()
			path = filepath.Join(home, ".config", "tn", "config.toml")
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			fail("generating config: %v", err)
		}
		fmt.Printf("wrote %s\n", path)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail("loading config: %v", err)
	}

	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *strategy != "" {
		cfg.API.Strategy = *strategy
	}
	if *user != "" {
		if err := validation.ValidateUsername(*user); err != nil {
			fail("invalid --user: %v", err)
		}
	}

	if *logLevel != "" {
		if err := debuglog.Setup(debuglog.ParseLogLevel(*logLevel)); err != nil {
			fail("setting up logging: %v", err)
		}
		defer debuglog.Close()
	}

	if err := tui.LoadTheme(cfg.UI.Theme); err != nil {
		fail("loading theme: %v", err)
	}

	store, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		fail("opening database %s: %v", cfg.Database.Path, err)
	}
	defer store.Close()

	// Environment token wins; otherwise reuse the token from the last login.
	token := cfg.Auth.Token
	if token == "" {
		if stored, tokenErr := store.Token(); tokenErr == nil {
			token = stored
		}
	}

	client := api.NewClient(cfg.API.BaseURL, token, nil)

	if !*quiet {
		showBanner()
	}

	app := tui.NewApp(client, store, cfg)
	if *user != "" {
		app.SetAuthorFilter(*user)
	}

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fail("running ui: %v", err)
	}
}

func showBanner() {
	banner := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7AA2F7")).
		Bold(true).
		Render(tui.AppName) +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8B95A7")).
			Render(" › TabNews in your terminal")
	fmt.Println(banner)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, tui.AppName+": "+format+"\n", args...)
	os.Exit(1)
}
