//go:build integration

package store

import (
	"context"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sd2k/recipes/internal/ingredient"
	"github.com/sd2k/recipes/internal/scraper"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	require.NoError(t, s.RunMigrations(ctx))
	_, err = s.db.ExecContext(ctx, `TRUNCATE recipes CASCADE`)
	require.NoError(t, err)
	return s
}

func testRecipe(t *testing.T, name string, lines ...string) scraper.ScrapedRecipe {
	t.Helper()
	source, err := url.Parse("https://www.bbcgoodfood.com/recipes/sausage-pasta-bake?utm_source=feed#method")
	require.NoError(t, err)
	ings, err := ingredient.ParseLines(lines)
	require.NoError(t, err)
	servings := 4
	return scraper.ScrapedRecipe{
		Name:        name,
		Source:      source,
		Servings:    &servings,
		Ingredients: ings,
	}
}

func TestIntegrationSaveAndGetRecipe(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	r := testRecipe(t, "Sausage pasta bake", "300g penne", "1 tbsp olive oil", "6 pork sausages")
	id, err := s.SaveRecipe(ctx, r)
	require.NoError(t, err)

	got, err := s.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, r.Name, got.Recipe.Name)
	assert.Equal(t, r.Source.String(), got.Recipe.Source.String())
	assert.Equal(t, r.Servings, got.Recipe.Servings)
	assert.Equal(t, r.Ingredients, got.Recipe.Ingredients)
}

func TestIntegrationSaveRecipe_UpsertsOnSource(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	first, err := s.SaveRecipe(ctx, testRecipe(t, "Old name", "1 egg", "2 eggs"))
	require.NoError(t, err)
	second, err := s.SaveRecipe(ctx, testRecipe(t, "New name", "3 eggs"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := s.GetRecipe(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "New name", got.Recipe.Name)
	require.Len(t, got.Recipe.Ingredients, 1)
	assert.Equal(t, "3 eggs", got.Recipe.Ingredients[0].Raw)

	list, err := s.ListRecipes(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestIntegrationGetRecipe_NotFound(t *testing.T) {
	s := setupStore(t)

	_, err := s.GetRecipe(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrNotFound)
}
