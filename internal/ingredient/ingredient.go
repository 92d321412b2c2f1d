package ingredient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	db "foodgram/internal/ingredient/db"
)

// ErrNotFound is returned when an ingredient does not exist.
var ErrNotFound = errors.New("ingredient not found")

// Ingredient is a catalogue entry. Name and unit are unique together.
type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// Repository is a database-backed repository for ingredients.
type Repository struct {
	queries *db.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: db.New(d),
		db:      d,
	}
}

// Get retrieves an ingredient by its ID.
func (r *Repository) Get(ctx context.Context, id int64) (*Ingredient, error) {
	row, err := r.queries.GetIngredient(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient by ID: %w", err)
	}
	ing := fromRow(row)
	return &ing, nil
}

// List returns ingredients whose name starts with prefix, ignoring case.
// An empty prefix lists the whole catalogue.
func (r *Repository) List(ctx context.Context, prefix string) ([]Ingredient, error) {
	rows, err := r.queries.ListIngredients(ctx, strings.TrimSpace(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	ingredients := make([]Ingredient, 0, len(rows))
	for _, row := range rows {
		ingredients = append(ingredients, fromRow(row))
	}
	return ingredients, nil
}

// Upsert inserts the (name, unit) pair unless it already exists.
func (r *Repository) Upsert(ctx context.Context, name, unit string) (bool, error) {
	return upsert(ctx, r.queries, name, unit)
}

func upsert(ctx context.Context, q *db.Queries, name, unit string) (bool, error) {
	_, err := q.GetIngredientByNameAndUnit(ctx, db.GetIngredientByNameAndUnitParams{
		Name:            name,
		MeasurementUnit: unit,
	})
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to look up ingredient %q: %w", name, err)
	}

	if _, err := q.InsertIngredient(ctx, db.InsertIngredientParams{
		Name:            name,
		MeasurementUnit: unit,
	}); err != nil {
		return false, fmt.Errorf("failed to insert ingredient %q: %w", name, err)
	}
	return true, nil
}

func fromRow(row db.Ingredient) Ingredient {
	return Ingredient{
		ID:              row.ID,
		Name:            row.Name,
		MeasurementUnit: row.MeasurementUnit,
	}
}
