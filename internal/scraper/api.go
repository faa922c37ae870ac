// Package scraper fetches recipe pages, locates their schema.org Recipe data
// and hands it to the adapter registered for the page's host.
package scraper

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/sd2k/recipes/internal/ingredient"
)

// ScrapedRecipe is the canonical record produced by a successful scrape.
type ScrapedRecipe struct {
	Name               string
	Source             *url.URL
	Description        *string
	Notes              *string
	PrepTimeMinutes    *int
	CookingTimeMinutes *int
	Servings           *int
	Ingredients        []ingredient.ScrapedIngredient
	ImageURL           *string
}

type recipeJSON struct {
	Name               string                         `json:"name"`
	Source             string                         `json:"source"`
	Description        *string                        `json:"description,omitempty"`
	Notes              *string                        `json:"notes,omitempty"`
	PrepTimeMinutes    *int                           `json:"prep_time_minutes,omitempty"`
	CookingTimeMinutes *int                           `json:"cooking_time_minutes,omitempty"`
	Servings           *int                           `json:"servings,omitempty"`
	Ingredients        []ingredient.ScrapedIngredient `json:"ingredients"`
	ImageURL           *string                        `json:"image_url,omitempty"`
}

func (r ScrapedRecipe) MarshalJSON() ([]byte, error) {
	out := recipeJSON{
		Name:               r.Name,
		Description:        r.Description,
		Notes:              r.Notes,
		PrepTimeMinutes:    r.PrepTimeMinutes,
		CookingTimeMinutes: r.CookingTimeMinutes,
		Servings:           r.Servings,
		Ingredients:        r.Ingredients,
		ImageURL:           r.ImageURL,
	}
	if r.Source != nil {
		out.Source = r.Source.String()
	}
	if out.Ingredients == nil {
		out.Ingredients = []ingredient.ScrapedIngredient{}
	}
	return json.Marshal(out)
}

func (r *ScrapedRecipe) UnmarshalJSON(data []byte) error {
	var in recipeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var source *url.URL
	if in.Source != "" {
		u, err := url.Parse(in.Source)
		if err != nil {
			return err
		}
		source = u
	}
	*r = ScrapedRecipe{
		Name:               in.Name,
		Source:             source,
		Description:        in.Description,
		Notes:              in.Notes,
		PrepTimeMinutes:    in.PrepTimeMinutes,
		CookingTimeMinutes: in.CookingTimeMinutes,
		Servings:           in.Servings,
		Ingredients:        in.Ingredients,
		ImageURL:           in.ImageURL,
	}
	return nil
}

// Adapter maps one publisher's schema.org Recipe object onto ScrapedRecipe.
// Implementations hold no mutable state.
type Adapter interface {
	Host() string
	Adapt(source *url.URL, data json.RawMessage) (ScrapedRecipe, error)
}

// Fetcher performs the single GET of a scrape.
type Fetcher interface {
	FetchBytes(ctx context.Context, rawURL string) ([]byte, int, error)
}
