package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sd2k/recipes/internal/api"
	"github.com/sd2k/recipes/internal/config"
	"github.com/sd2k/recipes/internal/httpx"
	"github.com/sd2k/recipes/internal/scraper"
	"github.com/sd2k/recipes/internal/store"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	sites, err := config.LoadSites(cfg.SitesPath)
	if err != nil {
		slog.Error("failed to load sites", "path", cfg.SitesPath, "error", err)
		os.Exit(1)
	}

	registry, err := scraper.DefaultRegistry(config.Hosts(sites)...)
	if err != nil {
		slog.Error("failed to build adapter registry", "error", err)
		os.Exit(1)
	}

	fetcher := httpx.NewCollyFetcher(httpx.DefaultUserAgent,
		httpx.WithTimeout(cfg.ScrapeTimeout),
		httpx.WithRobots(cfg.RespectRobots),
	)
	recipeScraper := scraper.New(fetcher, registry, logger)

	var recipeStore api.RecipeStore
	if cfg.DatabaseURL != "" {
		dbStore, err := store.NewStore(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to store", "error", err)
			os.Exit(1)
		}
		defer dbStore.Close()

		if err := dbStore.RunMigrations(context.Background()); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		recipeStore = dbStore
	} else {
		slog.Info("DATABASE_URL not set, scraped recipes will not be persisted")
	}

	srv := api.NewServer(recipeScraper, registry.Hosts(), recipeStore, logger)

	slog.Info("starting server", "port", cfg.Port, "adapters", registry.Hosts())
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
