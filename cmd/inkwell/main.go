package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/marcus/inkwell/internal/ai"
	"github.com/marcus/inkwell/internal/app"
	"github.com/marcus/inkwell/internal/capture"
	"github.com/marcus/inkwell/internal/config"
	"github.com/marcus/inkwell/internal/store"
	"github.com/marcus/inkwell/internal/vault"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	configPath  = flag.String("config", "", "path to config file")
	debugFlag   = flag.Bool("debug", false, "enable debug logging")
	versionFlag = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("inkwell version %s\n", Version)
		os.Exit(0)
	}

	// A .env next to the binary is the easiest place for the API key.
	_ = godotenv.Load()

	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	dataDir := config.ExpandPath(cfg.Storage.DataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data dir: %v\n", err)
		os.Exit(1)
	}

	var port store.Port
	var watcher *store.Watcher
	switch cfg.Storage.Backend {
	case "sqlite":
		sq, err := store.OpenSQL(filepath.Join(dataDir, "inkwell.db"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
			os.Exit(1)
		}
		defer sq.Close()
		port = sq
	default:
		fp, err := store.NewFilePort(dataDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open data dir: %v\n", err)
			os.Exit(1)
		}
		port = fp
		// External edits to the JSON files reload the list live.
		if w, err := store.Watch(dataDir); err != nil {
			logger.Warn("file watching disabled", "error", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	st, err := store.Open(port, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load notes: %v\n", err)
		os.Exit(1)
	}

	vlt, err := vault.Open(port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load vault state: %v\n", err)
		os.Exit(1)
	}

	svc := ai.NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout, logger)

	model := app.New(app.Options{
		Config:      cfg,
		Store:       st,
		Vault:       vlt,
		Service:     svc,
		Watcher:     watcher,
		Transcriber: capture.Unsupported{},
		Locator:     capture.Unsupported{},
		Logger:      logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}
