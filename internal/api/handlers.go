package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sd2k/recipes/internal/ingredient"
	"github.com/sd2k/recipes/internal/observability"
	"github.com/sd2k/recipes/internal/scraper"
	"github.com/sd2k/recipes/internal/store"
)

const (
	maxParseLines = 500
	maxBatchURLs  = 20
	batchWorkers  = 4
)

type ParseRequest struct {
	Lines []string `json:"lines"`
}

type ParsedLine struct {
	Ingredient ingredient.ScrapedIngredient `json:"ingredient"`
	Formatted  string                       `json:"formatted"`
	Error      string                       `json:"error,omitempty"`
}

type ScrapeRequest struct {
	URL string `json:"url"`
}

type ScrapeResponse struct {
	ID        *int64                `json:"id,omitempty"`
	Recipe    scraper.ScrapedRecipe `json:"recipe"`
	Formatted []string              `json:"formatted"`
}

type BatchRequest struct {
	URLs []string `json:"urls"`
}

type BatchItem struct {
	URL       string                 `json:"url"`
	ID        *int64                 `json:"id,omitempty"`
	Recipe    *scraper.ScrapedRecipe `json:"recipe,omitempty"`
	Formatted []string               `json:"formatted,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

func (s *Server) handleParseIngredients(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Lines) > maxParseLines {
		respondError(w, http.StatusBadRequest, "Too many lines")
		return
	}

	items := make([]ParsedLine, 0, len(req.Lines))
	fallbacks := 0
	for _, line := range req.Lines {
		ing, err := ingredient.ParseLine(line)
		item := ParsedLine{Ingredient: ing, Formatted: ingredient.Format(ing)}
		if err != nil {
			item.Error = err.Error()
		}
		if !ing.Formattable() {
			fallbacks++
		}
		items = append(items, item)
	}
	observability.IncIngredients(len(items), fallbacks)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	recipe, err := s.scraper.Scrape(r.Context(), req.URL)
	if err != nil {
		respondError(w, scrapeStatus(err), scraper.UserMessage(err))
		return
	}

	resp := ScrapeResponse{Recipe: recipe, Formatted: formatIngredients(recipe.Ingredients)}
	if s.store != nil {
		id, err := s.store.SaveRecipe(r.Context(), recipe)
		if err != nil {
			s.logger.Error("failed to save recipe", "url", req.URL, "error", err)
			observability.IncError(observability.ErrorStore, "api")
			respondError(w, http.StatusInternalServerError, "Failed to save recipe")
			return
		}
		resp.ID = &id
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScrapeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.URLs) == 0 {
		respondError(w, http.StatusBadRequest, "URLs are required")
		return
	}
	if len(req.URLs) > maxBatchURLs {
		respondError(w, http.StatusBadRequest, "Too many URLs")
		return
	}

	results := s.scraper.ScrapeAll(r.Context(), req.URLs, batchWorkers)
	items := make([]BatchItem, 0, len(results))
	for _, res := range results {
		item := BatchItem{URL: res.URL}
		if res.Err != nil {
			item.Error = scraper.UserMessage(res.Err)
			items = append(items, item)
			continue
		}
		recipe := res.Recipe
		item.Recipe = &recipe
		item.Formatted = formatIngredients(recipe.Ingredients)
		if s.store != nil {
			id, err := s.store.SaveRecipe(r.Context(), recipe)
			if err != nil {
				s.logger.Error("failed to save recipe", "url", res.URL, "error", err)
				observability.IncError(observability.ErrorStore, "api")
				item.Error = "Failed to save recipe"
			} else {
				item.ID = &id
			}
		}
		items = append(items, item)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

func (s *Server) handleAdapters(w http.ResponseWriter, r *http.Request) {
	hosts := s.hosts
	if hosts == nil {
		hosts = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"hosts": hosts,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 20)

	recipes, err := s.store.ListRecipes(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch recipes: "+err.Error())
		return
	}
	if recipes == nil {
		recipes = []store.StoredRecipe{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":  recipes,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	rec, err := s.store.GetRecipe(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch recipe: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recipe":    rec,
		"formatted": formatIngredients(rec.Recipe.Ingredients),
	})
}

func scrapeStatus(err error) int {
	switch {
	case errors.Is(err, scraper.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, scraper.ErrUnrecognisedHost),
		errors.Is(err, scraper.ErrNotARecipe),
		errors.Is(err, scraper.ErrAdapter):
		return http.StatusUnprocessableEntity
	case errors.Is(err, scraper.ErrNetwork), errors.Is(err, scraper.ErrHTML):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func formatIngredients(ings []ingredient.ScrapedIngredient) []string {
	out := make([]string, 0, len(ings))
	for _, ing := range ings {
		out = append(out, ingredient.Format(ing))
	}
	return out
}

func parsePagination(r *http.Request, defaultLimit int) (int, int) {
	q := r.URL.Query()
	limit := defaultLimit
	offset := 0

	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
