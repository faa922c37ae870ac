package scraper

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// SchemaOrg is a generic adapter for publishers that embed a plain
// schema.org Recipe. It is bound to one host at construction.
type SchemaOrg struct {
	host string
}

func NewSchemaOrg(host string) SchemaOrg {
	return SchemaOrg{host: strings.ToLower(strings.TrimSpace(host))}
}

type schemaOrgRecipe struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	PrepTime         string          `json:"prepTime"`
	CookTime         string          `json:"cookTime"`
	TotalTime        string          `json:"totalTime"`
	RecipeYield      json.RawMessage `json:"recipeYield"`
	RecipeIngredient []string        `json:"recipeIngredient"`
	Ingredients      []string        `json:"ingredients"`
	Image            json.RawMessage `json:"image"`
}

func (s SchemaOrg) Host() string {
	return s.host
}

func (s SchemaOrg) Adapt(source *url.URL, data json.RawMessage) (ScrapedRecipe, error) {
	var raw schemaOrgRecipe
	if err := json.Unmarshal(data, &raw); err != nil {
		return ScrapedRecipe{}, fmt.Errorf("schema.org decode failed: %w", err)
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = titleFromPath(source)
	}
	if name == "" {
		return ScrapedRecipe{}, fmt.Errorf("schema.org recipe on %s has no name", s.host)
	}

	lines := raw.RecipeIngredient
	if lines == nil {
		lines = raw.Ingredients
	}

	prep, err := parseMinutes("prepTime", raw.PrepTime)
	if err != nil {
		return ScrapedRecipe{}, err
	}
	cookValue := raw.CookTime
	if strings.TrimSpace(cookValue) == "" {
		cookValue = raw.TotalTime
	}
	cook, err := parseMinutes("cookTime", cookValue)
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
