package scraper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const bbcGoodFoodHost = "www.bbcgoodfood.com"

// BBCGoodFood adapts recipes from BBC Good Food.
type BBCGoodFood struct{}

type bbcGoodFoodRecipe struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	CookTime         string          `json:"cookTime"`
	PrepTime         string          `json:"prepTime"`
	RecipeYield      json.RawMessage `json:"recipeYield"`
	Ingredients      []string        `json:"ingredients"`
	RecipeIngredient []string        `json:"recipeIngredient"`
	Image            json.RawMessage `json:"image"`
}

func (BBCGoodFood) Host() string {
	return bbcGoodFoodHost
}

func (BBCGoodFood) Adapt(source *url.URL, data json.RawMessage) (ScrapedRecipe, error) {
	var raw bbcGoodFoodRecipe
	if err := json.Unmarshal(data, &raw); err != nil {
		return ScrapedRecipe{}, fmt.Errorf("bbcgoodfood decode failed: %w", err)
	}
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return ScrapedRecipe{}, errors.New("bbcgoodfood recipe has no name")
	}

	lines := raw.Ingredients
	if lines == nil {
		lines = raw.RecipeIngredient
	}
	if lines == nil {
		return ScrapedRecipe{}, errors.New("bbcgoodfood recipe has no ingredients")
	}

	prep, err := parseMinutes("prepTime", raw.PrepTime)
	if err != nil {
		return ScrapedRecipe{}, err
	}
	cook, err := parseMinutes("cookTime", raw.CookTime)
	if err != nil {
		return ScrapedRecipe{}, err
	}
	ingredients, err := parseIngredients(lines)
	if err != nil {
		return ScrapedRecipe{}, err
	}

	return ScrapedRecipe{
		Name:               name,
		Source:             source,
		Description:        cleanText(raw.Description),
		PrepTimeMinutes:    prep,
		CookingTimeMinutes: cook,
		Servings:           parseServings(raw.RecipeYield),
		Ingredients:        ingredients,
		ImageURL:           parseImage(raw.Image),
	}, nil
}
