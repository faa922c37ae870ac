package store

import (
	"database/sql"

	"github.com/sd2k/recipes/internal/ingredient"
)

// ingredientRow is the column form of one recipe_ingredients row. Units are
// stored as their family and display name.
type ingredientRow struct {
	Raw          string
	Name         sql.NullString
	Amount       sql.NullFloat64
	UnitKind     sql.NullString
	UnitName     sql.NullString
	Instructions sql.NullString
}

func ingredientToRow(ing ingredient.ScrapedIngredient) ingredientRow {
	row := ingredientRow{
		Raw:          ing.Raw,
		Name:         nullString(ing.Name),
		Instructions: nullString(ing.Instructions),
	}
	if ing.Amount != nil {
		row.Amount = sql.NullFloat64{Float64: *ing.Amount, Valid: true}
	}
	if ing.Unit != nil {
		row.UnitKind = sql.NullString{String: ing.Unit.Kind.String(), Valid: true}
		row.UnitName = sql.NullString{String: ing.Unit.String(), Valid: true}
	}
	return row
}

func (r ingredientRow) toIngredient() (ingredient.ScrapedIngredient, error) {
	ing := ingredient.ScrapedIngredient{
		Raw:          r.Raw,
		Name:         stringPtr(r.Name),
		Instructions: stringPtr(r.Instructions),
	}
	if r.Amount.Valid {
		v := r.Amount.Float64
		ing.Amount = &v
	}
	if r.UnitKind.Valid {
		u, err := ingredient.UnitFromParts(r.UnitKind.String, r.UnitName.String)
		if err != nil {
			return ingredient.ScrapedIngredient{}, err
		}
		ing.Unit = &u
	}
	return ing, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
