package shopping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	shoppingdb "foodgram/internal/shopping/db"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrAlreadyInCart  = errors.New("recipe is already in the shopping cart")
	ErrNotInCart      = errors.New("recipe is not in the shopping cart")
)

// CartRecipe is the short form of a recipe in a cart listing.
type CartRecipe struct {
	ID          int64
	Name        string
	Image       string
	CookingTime int
}

// CartRepository handles shopping cart membership.
type CartRepository struct {
	queries *shoppingdb.Queries
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(d *sql.DB) *CartRepository {
	return &CartRepository{queries: shoppingdb.New(d)}
}

// Add puts a recipe into userID's cart.
func (r *CartRepository) Add(ctx context.Context, userID, recipeID int64) error {
	if err := r.recipeExists(ctx, recipeID); err != nil {
		return err
	}
	n, err := r.queries.InsertCartItem(ctx, shoppingdb.InsertCartItemParams{UserID: userID, RecipeID: recipeID})
	if err != nil {
		return fmt.Errorf("failed to add recipe to cart: %w", err)
	}
	if n == 0 {
		return ErrAlreadyInCart
	}
	return nil
}

// Remove takes a recipe out of userID's cart.
func (r *CartRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	if err := r.recipeExists(ctx, recipeID); err != nil {
		return err
	}
	n, err := r.queries.DeleteCartItem(ctx, shoppingdb.DeleteCartItemParams{UserID: userID, RecipeID: recipeID})
	if err != nil {
		return fmt.Errorf("failed to remove recipe from cart: %w", err)
	}
	if n == 0 {
		return ErrNotInCart
	}
	return nil
}

// Contains reports whether the recipe is in userID's cart.
func (r *CartRepository) Contains(ctx context.Context, userID, recipeID int64) (bool, error) {
	ok, err := r.queries.CartItemExists(ctx, shoppingdb.CartItemExistsParams{UserID: userID, RecipeID: recipeID})
	if err != nil {
		return false, fmt.Errorf("failed to check cart: %w", err)
	}
	return ok != 0, nil
}

// Recipes returns one page of the recipes in userID's cart, in the order
// they were added, and the total count.
func (r *CartRepository) Recipes(ctx context.Context, userID int64, limit, offset int) ([]CartRecipe, int, error) {
	rows, err := r.queries.ListCartRecipes(ctx, shoppingdb.ListCartRecipesParams{
		UserID: userID,
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cart recipes: %w", err)
	}
	total, err := r.queries.CountCartRecipes(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cart recipes: %w", err)
	}

	recipes := make([]CartRecipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, CartRecipe{
			ID:          row.ID,
			Name:        row.Name,
			Image:       row.Image,
			CookingTime: int(row.CookingTime),
		})
	}
	return recipes, int(total), nil
}

// Lines returns one CartLine per recipe ingredient across the whole cart.
func (r *CartRepository) Lines(ctx context.Context, userID int64) ([]CartLine, error) {
	rows, err := r.queries.ListCartLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}

	lines := make([]CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, CartLine{
			IngredientName:  row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          int(row.Amount),
		})
	}
	return lines, nil
}

func (r *CartRepository) recipeExists(ctx context.Context, recipeID int64) error {
	ok, err := r.queries.RecipeExists(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("failed to check recipe: %w", err)
	}
	if ok == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
