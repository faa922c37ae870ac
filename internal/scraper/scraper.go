package scraper

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/sd2k/recipes/internal/ingredient"
	"github.com/sd2k/recipes/internal/observability"
	"github.com/sd2k/recipes/internal/urlutil"
)

// RecipeScraper runs the fetch, locate and adapt pipeline. It holds no
// mutable state of its own and may be shared between goroutines.
type RecipeScraper struct {
	fetcher  Fetcher
	registry *Registry
	logger   *slog.Logger
}

func New(fetcher Fetcher, registry *Registry, logger *slog.Logger) *RecipeScraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeScraper{fetcher: fetcher, registry: registry, logger: logger}
}

func (s *RecipeScraper) Registry() *Registry {
	return s.registry
}

// Scrape fetches rawURL and returns its recipe. The host is checked against
// the registry before any network access. Errors are *ScrapeError.
func (s *RecipeScraper) Scrape(ctx context.Context, rawURL string) (ScrapedRecipe, error) {
	u, err := urlutil.Parse(rawURL)
	if err != nil {
		return ScrapedRecipe{}, s.fail(rawURL, &ScrapeError{Stage: StageResolve, Err: err})
	}
	host := urlutil.HostKey(u)
	observability.IncScrapeStarted(host)

	adapter, ok := s.registry.Lookup(host)
	if !ok {
		return ScrapedRecipe{}, s.fail(rawURL, &ScrapeError{Stage: StageDispatch, Host: host})
	}

	start := time.Now()
	body, _, err := s.fetcher.FetchBytes(ctx, u.String())
	observability.ObserveFetchDuration(time.Since(start).Seconds())
	if err != nil {
		return ScrapedRecipe{}, s.fail(rawURL, &ScrapeError{Stage: StageFetch, Host: host, Err: err})
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ScrapedRecipe{}, s.fail(rawURL, &ScrapeError{Stage: StageParse, Host: host, Err: err})
	}

	data, ok := findRecipe(doc)
	if !ok {
		return ScrapedRecipe{}, s.fail(rawURL, &ScrapeError{Stage: StageLocate, Host: host})
	}

	recipe, err := adapter.Adapt(u, data)
	if err != nil {
		return ScrapedRecipe{}, s.fail(rawURL, &ScrapeError{Stage: StageAdapt, Host: host, Err: err})
	}
	if err := ctx.Err(); err != nil {
		return ScrapedRecipe{}, s.fail(rawURL, &ScrapeError{Stage: StageFetch, Host: host, Err: err})
	}

	observability.IncScrapeSucceeded()
	observability.IncIngredients(len(recipe.Ingredients), countFallbacks(recipe.Ingredients))
	s.logger.Debug("recipe scraped",
		"url", rawURL,
		"host", host,
		"ingredients", len(recipe.Ingredients),
	)
	return recipe, nil
}

func (s *RecipeScraper) fail(rawURL string, err *ScrapeError) error {
	kind := observability.ClassifyScrapeError(err)
	observability.IncScrapeFailed(kind)

	level := slog.LevelWarn
	if err.Stage == StageResolve || err.Stage == StageDispatch {
		level = slog.LevelDebug
	}
	s.logger.Log(context.Background(), level, "scrape failed",
		"url", rawURL,
		"host", err.Host,
		"stage", string(err.Stage),
		"kind", kind,
		"error", err.Error(),
	)
	return err
}

// Result is the outcome of one URL in a batch.
type Result struct {
	URL    string
	Recipe ScrapedRecipe
	Err    error
}

// ScrapeAll scrapes urls with at most workers in flight. Results keep the
// input order; one failure does not affect the others.
func (s *RecipeScraper) ScrapeAll(ctx context.Context, urls []string, workers int) []Result {
	if workers <= 0 {
		workers = 4
	}
	results := make([]Result, len(urls))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, raw := range urls {
		g.Go(func() error {
			recipe, err := s.Scrape(ctx, raw)
			results[i] = Result{URL: raw, Recipe: recipe, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func countFallbacks(ings []ingredient.ScrapedIngredient) int {
	n := 0
	for _, ing := range ings {
		if !ing.Formattable() {
			n++
		}
	}
	return n
}
