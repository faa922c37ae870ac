package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sd2k/recipes/internal/config"
	"github.com/sd2k/recipes/internal/httpx"
	"github.com/sd2k/recipes/internal/scraper"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:           "recipectl",
	Short:         "Scrape recipes and normalize ingredient lines",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
}

// newScraper wires the pipeline from the environment, the same way the server
// does. Logs go to stderr so stdout stays clean for --json.
func newScraper() (*scraper.RecipeScraper, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	sites, err := config.LoadSites(cfg.SitesPath)
	if err != nil {
		return nil, err
	}
	registry, err := scraper.DefaultRegistry(config.Hosts(sites)...)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	fetcher := httpx.NewCollyFetcher(httpx.DefaultUserAgent,
		httpx.WithTimeout(cfg.ScrapeTimeout),
		httpx.WithRobots(cfg.RespectRobots),
	)
	return scraper.New(fetcher, registry, logger), nil
}
