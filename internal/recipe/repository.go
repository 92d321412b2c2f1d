package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foodgram/internal/logging"
	"foodgram/internal/media"
	db "foodgram/internal/recipe/db"
	"foodgram/internal/validation"
)

// Repository is a database-backed repository for recipes and favorites.
type Repository struct {
	queries *db.Queries
	db      *sql.DB // Direct database access for transactions
	media   *media.Store
}

// NewRepository creates a new Repository. Images are written to store.
func NewRepository(d *sql.DB, store *media.Store) *Repository {
	return &Repository{
		queries: db.New(d),
		db:      d,
		media:   store,
	}
}

// Create validates p and stores a new recipe owned by authorID.
func (r *Repository) Create(ctx context.Context, authorID int64, p Params) (*Recipe, error) {
	if err := r.validate(ctx, &p, true); err != nil {
		return nil, err
	}

	image, err := r.media.SaveDataURI("recipes", p.Image)
	if err != nil {
		return nil, err
	}

	var id int64
	err = r.inTx(ctx, func(q *db.Queries) error {
		id, err = q.InsertRecipe(ctx, db.InsertRecipeParams{
			AuthorID:    authorID,
			Name:        p.Name,
			Image:       image,
			Text:        p.Text,
			CookingTime: int64(p.CookingTime),
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to insert recipe: %w", err)
		}
		return insertIngredients(ctx, q, id, p.Ingredients)
	})
	if err != nil {
		r.media.Remove(image)
		return nil, err
	}

	logging.Ctx(ctx).Info().Int64("recipe_id", id).Int64("author_id", authorID).Msg("recipe created")
	return r.Get(ctx, authorID, id)
}

// Update replaces the recipe's fields and ingredient list. Only the
// author may update; an empty Image keeps the current one.
func (r *Repository) Update(ctx context.Context, actorID, id int64, p Params) (*Recipe, error) {
	current, err := r.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if err := r.validate(ctx, &p, false); err != nil {
		return nil, err
	}

	image := current.Image
	if p.Image != "" {
		if image, err = r.media.SaveDataURI("recipes", p.Image); err != nil {
			return nil, err
		}
	}

	err = r.inTx(ctx, func(q *db.Queries) error {
		if err := q.UpdateRecipe(ctx, db.UpdateRecipeParams{
			Name:        p.Name,
			Image:       image,
			Text:        p.Text,
			CookingTime: int64(p.CookingTime),
			ID:          id,
		}); err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if err := q.DeleteRecipeIngredients(ctx, id); err != nil {
			return fmt.Errorf("failed to clear recipe ingredients: %w", err)
		}
		return insertIngredients(ctx, q, id, p.Ingredients)
	})
	if err != nil {
		if image != current.Image {
			r.media.Remove(image)
		}
		return nil, err
	}

	if image != current.Image {
		if err := r.media.Remove(current.Image); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("path", current.Image).Msg("failed to remove replaced recipe image")
		}
	}
	return r.Get(ctx, actorID, id)
}

// Delete removes a recipe. Only the author may delete.
func (r *Repository) Delete(ctx context.Context, actorID, id int64) error {
	current, err := r.owned(ctx, actorID, id)
	if err != nil {
		return err
	}
	if err := r.queries.DeleteRecipe(ctx, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if err := r.media.Remove(current.Image); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("path", current.Image).Msg("failed to remove recipe image")
	}
	return nil
}

// Get retrieves a recipe with its ingredients. Flags are computed for
// viewerID; an anonymous viewer (0) gets false for both.
func (r *Repository) Get(ctx context.Context, viewerID, id int64) (*Recipe, error) {
	row, err := r.queries.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}
	return r.hydrate(ctx, viewerID, row)
}

// List returns one page of recipes matching f, newest first, and the
// total number of matches.
func (r *Repository) List(ctx context.Context, viewerID int64, f Filter, limit, offset int) ([]Recipe, int, error) {
	var params db.CountRecipesParams
	if f.AuthorID != 0 {
		params.AuthorID = sql.NullInt64{Int64: f.AuthorID, Valid: true}
	}

	viewer := sql.NullInt64{Int64: viewerID, Valid: viewerID != 0}
	if f.IsFavorited != nil {
		if !viewer.Valid {
			if *f.IsFavorited {
				return []Recipe{}, 0, nil
			}
		} else if *f.IsFavorited {
			params.FavoritedBy = viewer
		} else {
			params.NotFavoritedBy = viewer
		}
	}
	if f.IsInShoppingCart != nil {
		if !viewer.Valid {
			if *f.IsInShoppingCart {
				return []Recipe{}, 0, nil
			}
		} else if *f.IsInShoppingCart {
			params.InCartOf = viewer
		} else {
			params.NotInCartOf = viewer
		}
	}

	rows, err := r.queries.ListRecipes(ctx, db.ListRecipesParams{
		AuthorID:       params.AuthorID,
		FavoritedBy:    params.FavoritedBy,
		NotFavoritedBy: params.NotFavoritedBy,
		InCartOf:       params.InCartOf,
		NotInCartOf:    params.NotInCartOf,
		Limit:          int64(limit),
		Offset:         int64(offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	total, err := r.queries.CountRecipes(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	recipes := make([]Recipe, 0, len(rows))
	for _, row := range rows {
		rec, err := r.hydrate(ctx, viewerID, row)
		if err != nil {
			return nil, 0, err
		}
		recipes = append(recipes, *rec)
	}
	return recipes, int(total), nil
}

// AddFavorite marks a recipe as a favorite of userID.
func (r *Repository) AddFavorite(ctx context.Context, userID, recipeID int64) (*Recipe, error) {
	rec, err := r.Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	n, err := r.queries.InsertFavorite(ctx, db.InsertFavoriteParams{UserID: userID, RecipeID: recipeID})
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	if n == 0 {
		return nil, ErrAlreadyFavorited
	}
	rec.IsFavorited = true
	return rec, nil
}

// RemoveFavorite removes a recipe from userID's favorites.
func (r *Repository) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	if err := r.mustExist(ctx, recipeID); err != nil {
		return err
	}
	n, err := r.queries.DeleteFavorite(ctx, db.DeleteFavoriteParams{UserID: userID, RecipeID: recipeID})
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if n == 0 {
		return ErrNotFavorited
	}
	return nil
}

// Favorites returns one page of userID's favorite recipes.
func (r *Repository) Favorites(ctx context.Context, userID int64, limit, offset int) ([]Recipe, int, error) {
	yes := true
	return r.List(ctx, userID, Filter{IsFavorited: &yes}, limit, offset)
}

func (r *Repository) mustExist(ctx context.Context, id int64) error {
	ok, err := r.queries.RecipeExists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check recipe: %w", err)
	}
	if ok == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) owned(ctx context.Context, actorID, id int64) (*db.Recipe, error) {
	row, err := r.queries.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}
	if row.AuthorID != actorID {
		return nil, ErrForbidden
	}
	return &row, nil
}

func (r *Repository) validate(ctx context.Context, p *Params, requireImage bool) error {
	text, err := PlainText(p.Text)
	if err != nil {
		return err
	}
	p.Text = text

	errs := validation.Errors{}
	if err := validation.Struct(p); err != nil {
		if !errors.As(err, &errs) {
			return err
		}
	}
	if requireImage && p.Image == "" {
		errs.Add("image", "This field is required.")
	}
	if len(errs) > 0 {
		return errs
	}

	ids := make([]int64, 0, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		ids = append(ids, ing.ID)
	}
	n, err := r.queries.CountIngredientsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check ingredients: %w", err)
	}
	if int(n) != len(ids) {
		return ErrUnknownIngredient
	}
	return nil
}

func (r *Repository) inTx(ctx context.Context, fn func(q *db.Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(r.queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *Repository) hydrate(ctx context.Context, viewerID int64, row db.Recipe) (*Recipe, error) {
	ingRows, err := r.queries.ListRecipeIngredients(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe ingredients: %w", err)
	}

	rec := &Recipe{
		ID:          row.ID,
		AuthorID:    row.AuthorID,
		Name:        row.Name,
		Image:       row.Image,
		Text:        row.Text,
		CookingTime: int(row.CookingTime),
		CreatedAt:   row.CreatedAt,
		Ingredients: make([]IngredientLine, 0, len(ingRows)),
	}
	for _, ing := range ingRows {
		rec.Ingredients = append(rec.Ingredients, IngredientLine{
			ID:              ing.ID,
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
			Amount:          int(ing.Amount),
		})
	}

	if viewerID != 0 {
		flags, err := r.queries.GetRecipeFlags(ctx, db.GetRecipeFlagsParams{UserID: viewerID, RecipeID: row.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to get recipe flags: %w", err)
		}
		rec.IsFavorited = flags.IsFavorited != 0
		rec.IsInShoppingCart = flags.IsInShoppingCart != 0
	}
	return rec, nil
}

func insertIngredients(ctx context.Context, q *db.Queries, recipeID int64, items []IngredientAmount) error {
	for _, item := range items {
		if err := q.InsertRecipeIngredient(ctx, db.InsertRecipeIngredientParams{
			RecipeID:     recipeID,
			IngredientID: item.ID,
			Amount:       int64(item.Amount),
		}); err != nil {
			return fmt.Errorf("failed to insert recipe ingredient %d: %w", item.ID, err)
		}
	}
	return nil
}
