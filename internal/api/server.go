package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sd2k/recipes/internal/scraper"
	"github.com/sd2k/recipes/internal/store"
)

// RecipeScraper is the part of scraper.RecipeScraper the API uses.
type RecipeScraper interface {
	Scrape(ctx context.Context, rawURL string) (scraper.ScrapedRecipe, error)
	ScrapeAll(ctx context.Context, urls []string, workers int) []scraper.Result
}

// RecipeStore persists scraped recipes. It is optional.
type RecipeStore interface {
	SaveRecipe(ctx context.Context, r scraper.ScrapedRecipe) (int64, error)
	GetRecipe(ctx context.Context, id int64) (store.StoredRecipe, error)
	ListRecipes(ctx context.Context, limit, offset int) ([]store.StoredRecipe, error)
}

type Server struct {
	router  *chi.Mux
	scraper RecipeScraper
	hosts   []string
	store   RecipeStore
	logger  *slog.Logger
}

// NewServer builds the router. st may be nil, in which case scraped recipes
// are not persisted and the /recipes routes are not mounted.
func NewServer(scr RecipeScraper, hosts []string, st RecipeStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:  chi.NewRouter(),
		scraper: scr,
		hosts:   hosts,
		store:   st,
		logger:  logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/adapters", s.handleAdapters)
	s.router.Get("/stats", s.handleStats)
	s.router.Post("/ingredients/parse", s.handleParseIngredients)
	s.router.Post("/scrape", s.handleScrape)
	s.router.Post("/scrape/batch", s.handleScrapeBatch)

	if s.store != nil {
		s.router.Get("/recipes", s.handleListRecipes)
		s.router.Get("/recipes/{id}", s.handleGetRecipe)
	}
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
