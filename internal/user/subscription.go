package user

import (
	"context"
	"fmt"

	db "foodgram/internal/user/db"
)

// RecipeSummary is the short form of a recipe shown under an author.
type RecipeSummary struct {
	ID          int64
	Name        string
	Image       string
	CookingTime int
}

// Author is a user together with a preview of their recipes.
type Author struct {
	User
	IsSubscribed bool
	Recipes      []RecipeSummary
	RecipesCount int
}

// IsSubscribed reports whether userID follows authorID. An anonymous
// viewer (userID 0) is never subscribed.
func (r *Repository) IsSubscribed(ctx context.Context, userID, authorID int64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	ok, err := r.queries.SubscriptionExists(ctx, db.SubscriptionExistsParams{UserID: userID, AuthorID: authorID})
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return ok != 0, nil
}

// Subscribe makes userID follow authorID.
func (r *Repository) Subscribe(ctx context.Context, userID, authorID int64) error {
	if userID == authorID {
		return ErrSelfSubscription
	}
	if _, err := r.Get(ctx, authorID); err != nil {
		return err
	}

	n, err := r.queries.InsertSubscription(ctx, db.InsertSubscriptionParams{UserID: userID, AuthorID: authorID})
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	if n == 0 {
		return ErrAlreadySubscribed
	}
	return nil
}

// Unsubscribe removes the subscription of userID to authorID.
func (r *Repository) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if _, err := r.Get(ctx, authorID); err != nil {
		return err
	}

	n, err := r.queries.DeleteSubscription(ctx, db.DeleteSubscriptionParams{UserID: userID, AuthorID: authorID})
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	if n == 0 {
		return ErrNotSubscribed
	}
	return nil
}

// Author loads authorID as seen by viewerID with at most recipesLimit
// recipe previews. A negative recipesLimit means no limit.
func (r *Repository) Author(ctx context.Context, viewerID, authorID int64, recipesLimit int) (*Author, error) {
	u, err := r.Get(ctx, authorID)
	if err != nil {
		return nil, err
	}
	subscribed, err := r.IsSubscribed(ctx, viewerID, authorID)
	if err != nil {
		return nil, err
	}
	return r.withRecipes(ctx, *u, subscribed, recipesLimit)
}

// Subscriptions returns one page of the authors userID follows and
// the total number of subscriptions.
func (r *Repository) Subscriptions(ctx context.Context, userID int64, limit, offset, recipesLimit int) ([]Author, int, error) {
	rows, err := r.queries.ListSubscribedAuthors(ctx, db.ListSubscribedAuthorsParams{
		UserID: userID,
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	total, err := r.queries.CountSubscriptions(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	authors := make([]Author, 0, len(rows))
	for _, row := range rows {
		a, err := r.withRecipes(ctx, fromRow(row), true, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		authors = append(authors, *a)
	}
	return authors, int(total), nil
}

func (r *Repository) withRecipes(ctx context.Context, u User, subscribed bool, recipesLimit int) (*Author, error) {
	rows, err := r.queries.ListAuthorRecipes(ctx, db.ListAuthorRecipesParams{
		AuthorID: u.ID,
		Limit:    int64(recipesLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list author recipes: %w", err)
	}
	count, err := r.queries.CountAuthorRecipes(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count author recipes: %w", err)
	}

	recipes := make([]RecipeSummary, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, RecipeSummary{
			ID:          row.ID,
			Name:        row.Name,
			Image:       row.Image,
			CookingTime: int(row.CookingTime),
		})
	}

	return &Author{
		User:         u,
		IsSubscribed: subscribed,
		Recipes:      recipes,
		RecipesCount: int(count),
	}, nil
}
