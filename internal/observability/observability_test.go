package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sd2k/recipes/internal/httpx"
)

type stageErr struct{ kind string }

func (e stageErr) Error() string { return "stage failed" }
func (e stageErr) Kind() string  { return e.kind }

func TestClassifyScrapeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ErrorUnknown},
		{"canceled wins", fmt.Errorf("fetch: %w", context.Canceled), ErrorCanceled},
		{"stage kind", fmt.Errorf("scrape: %w", stageErr{kind: ErrorNotARecipe}), ErrorNotARecipe},
		{"empty kind falls through", stageErr{}, ErrorUnknown},
		{"rate limited", &httpx.FetchError{Status: http.StatusTooManyRequests}, ErrorRateLimit},
		{"server error", &httpx.FetchError{Status: http.StatusBadGateway}, ErrorNetwork},
		{"deadline", context.DeadlineExceeded, ErrorNetwork},
		{"other", errors.New("boom"), ErrorUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ClassifyScrapeError(tc.err))
		})
	}
}

func TestSnapshotCounters(t *testing.T) {
	before := Snapshot()

	IncScrapeStarted("www.bbcgoodfood.com")
	IncScrapeStarted("")
	IncScrapeSucceeded()
	IncScrapeFailed(ErrorAdapter)
	IncIngredients(5, 2)
	IncIngredients(0, 0)
	ObserveFetchDuration(0.5)
	ObserveFetchDuration(0)

	after := Snapshot()
	assert.Equal(t, before.ScrapesStarted+2, after.ScrapesStarted)
	assert.Equal(t, before.ScrapesSucceeded+1, after.ScrapesSucceeded)
	assert.Equal(t, before.ScrapesFailed+1, after.ScrapesFailed)
	assert.Equal(t, before.IngredientsParsed+5, after.IngredientsParsed)
	assert.Equal(t, before.IngredientsRaw+2, after.IngredientsRaw)
	assert.Equal(t, before.ScrapesByHost["www.bbcgoodfood.com"]+1, after.ScrapesByHost["www.bbcgoodfood.com"])
	assert.Equal(t, before.ScrapesByHost["unknown"]+1, after.ScrapesByHost["unknown"])
	assert.Equal(t, before.ErrorsByType[ErrorAdapter]+1, after.ErrorsByType[ErrorAdapter])
	assert.Equal(t, before.ErrorsByComponent["scraper"]+1, after.ErrorsByComponent["scraper"])
	assert.Greater(t, after.FetchSecondsAvg, 0.0)

	// Snapshots are copies.
	after.ErrorsByType[ErrorAdapter] = 999
	assert.NotEqual(t, uint64(999), Snapshot().ErrorsByType[ErrorAdapter])
}
