package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sd2k/recipes/internal/scraper"
	"github.com/sd2k/recipes/internal/store"
)

type mockScraper struct {
	mock.Mock
}

func (m *mockScraper) Scrape(ctx context.Context, rawURL string) (scraper.ScrapedRecipe, error) {
	args := m.Called(ctx, rawURL)
	return args.Get(0).(scraper.ScrapedRecipe), args.Error(1)
}

func (m *mockScraper) ScrapeAll(ctx context.Context, urls []string, workers int) []scraper.Result {
	args := m.Called(ctx, urls, workers)
	return args.Get(0).([]scraper.Result)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveRecipe(ctx context.Context, r scraper.ScrapedRecipe) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) GetRecipe(ctx context.Context, id int64) (store.StoredRecipe, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.StoredRecipe), args.Error(1)
}

func (m *mockStore) ListRecipes(ctx context.Context, limit, offset int) ([]store.StoredRecipe, error) {
	args := m.Called(ctx, limit, offset)
	recipes, _ := args.Get(0).([]store.StoredRecipe)
	return recipes, args.Error(1)
}
