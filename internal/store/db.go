package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/lib/pq"

	"github.com/sd2k/recipes/internal/ingredient"
	"github.com/sd2k/recipes/internal/scraper"
	"github.com/sd2k/recipes/internal/urlutil"
)

//go:embed schema.sql
var schemaSQL string

var ErrNotFound = errors.New("recipe not found")

type Store struct {
	db *sql.DB
}

func NewStore(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RunMigrations applies the embedded schema. It is idempotent.
func (s *Store) RunMigrations(ctx context.Context) error {
	return s.ExecSchema(ctx, schemaSQL)
}

func (s *Store) ExecSchema(ctx context.Context, schema string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func clampLimit(limit int, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

type StoredRecipe struct {
	ID        int64                 `json:"id"`
	Recipe    scraper.ScrapedRecipe `json:"recipe"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// SaveRecipe upserts r keyed on its normalized source URL and replaces its
// ingredient rows, all in one transaction.
func (s *Store) SaveRecipe(ctx context.Context, r scraper.ScrapedRecipe) (int64, error) {
	if r.Source == nil {
		return 0, errors.New("recipe has no source url")
	}
	key, host, err := urlutil.Normalize(r.Source.String())
	if err != nil {
		return 0, fmt.Errorf("normalize source: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
INSERT INTO recipes (source, source_url, host, name, description, notes, prep_time_minutes, cooking_time_minutes, servings, image_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
ON CONFLICT (source) DO UPDATE SET
    source_url = EXCLUDED.source_url,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    notes = EXCLUDED.notes,
    prep_time_minutes = EXCLUDED.prep_time_minutes,
    cooking_time_minutes = EXCLUDED.cooking_time_minutes,
    servings = EXCLUDED.servings,
    image_url = EXCLUDED.image_url,
    updated_at = NOW()
RETURNING id
`, key, r.Source.String(), host, r.Name, nullString(r.Description), nullString(r.Notes),
		nullInt(r.PrepTimeMinutes), nullInt(r.CookingTimeMinutes), nullInt(r.Servings), nullString(r.ImageURL)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert recipe: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
		return 0, fmt.Errorf("clear ingredients: %w", err)
	}
	for pos, ing := range r.Ingredients {
		row := ingredientToRow(ing)
		_, err := tx.ExecContext(ctx, `
INSERT INTO recipe_ingredients (recipe_id, position, raw, name, amount, unit_kind, unit_name, instructions)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, id, pos, row.Raw, row.Name, row.Amount, row.UnitKind, row.UnitName, row.Instructions)
		if err != nil {
			return 0, fmt.Errorf("insert ingredient %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

const recipeColumns = `id, source_url, name, description, notes, prep_time_minutes, cooking_time_minutes, servings, image_url, created_at, updated_at`

func (s *Store) GetRecipe(ctx context.Context, id int64) (StoredRecipe, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id)
	rec, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredRecipe{}, ErrNotFound
	}
	if err != nil {
		return StoredRecipe{}, err
	}

	byRecipe, err := s.loadIngredients(ctx, []int64{id})
	if err != nil {
		return StoredRecipe{}, err
	}
	rec.Recipe.Ingredients = byRecipe[id]
	return rec, nil
}

// ListRecipes returns recipes newest first, with their ingredients.
func (s *Store) ListRecipes(ctx context.Context, limit, offset int) ([]StoredRecipe, error) {
	limit = clampLimit(limit, 20, 200)
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT `+recipeColumns+`
FROM recipes
ORDER BY updated_at DESC, id DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		recipes []StoredRecipe
		ids     []int64
	)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
		ids = append(ids, rec.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []StoredRecipe{}, nil
	}

	byRecipe, err := s.loadIngredients(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].Recipe.Ingredients = byRecipe[recipes[i].ID]
	}
	return recipes, nil
}

func (s *Store) loadIngredients(ctx context.Context, ids []int64) (map[int64][]ingredient.ScrapedIngredient, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT recipe_id, raw, name, amount, unit_kind, unit_name, instructions
FROM recipe_ingredients
WHERE recipe_id = ANY($1)
ORDER BY recipe_id, position
`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]ingredient.ScrapedIngredient, len(ids))
	for _, id := range ids {
		out[id] = []ingredient.ScrapedIngredient{}
	}
	for rows.Next() {
		var (
			recipeID int64
			row      ingredientRow
		)
		if err := rows.Scan(&recipeID, &row.Raw, &row.Name, &row.Amount, &row.UnitKind, &row.UnitName, &row.Instructions); err != nil {
			return nil, err
		}
		ing, err := row.toIngredient()
		if err != nil {
			return nil, fmt.Errorf("recipe %d: %w", recipeID, err)
		}
		out[recipeID] = append(out[recipeID], ing)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (StoredRecipe, error) {
	var (
		rec         StoredRecipe
		sourceURL   string
		description sql.NullString
		notes       sql.NullString
		prep        sql.NullInt64
		cook        sql.NullInt64
		servings    sql.NullInt64
		imageURL    sql.NullString
	)
	if err := row.Scan(&rec.ID, &sourceURL, &rec.Recipe.Name, &description, &notes,
		&prep, &cook, &servings, &imageURL, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return StoredRecipe{}, err
	}
	source, err := url.Parse(sourceURL)
	if err != nil {
		return StoredRecipe{}, fmt.Errorf("recipe %d source: %w", rec.ID, err)
	}
	rec.Recipe.Source = source
	rec.Recipe.Description = stringPtr(description)
	rec.Recipe.Notes = stringPtr(notes)
	rec.Recipe.PrepTimeMinutes = intPtr(prep)
	rec.Recipe.CookingTimeMinutes = intPtr(cook)
	rec.Recipe.Servings = intPtr(servings)
	rec.Recipe.ImageURL = stringPtr(imageURL)
	return rec, nil
}
