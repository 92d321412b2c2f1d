package shopping

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"foodgram/internal/database"
)

// seedCart creates two users, an ingredient catalogue and two recipes:
// A uses sugar 100g, B uses sugar 50g and salt 5g.
func seedCart(t *testing.T) (*sql.DB, int64, int64, int64) {
	t.Helper()
	d, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	exec := func(query string, args ...any) int64 {
		t.Helper()
		res, err := d.SQL.Exec(query, args...)
		if err != nil {
			t.Fatalf("seed %q failed: %v", query, err)
		}
		id, _ := res.LastInsertId()
		return id
	}

	now := time.Now().UTC()
	user := exec(`INSERT INTO users (email, username, first_name, last_name, password_hash, created_at) VALUES ('u@x.test', 'u', 'U', 'U', 'x', ?)`, now)
	sugar := exec(`INSERT INTO ingredients (name, measurement_unit) VALUES ('Sugar', 'g')`)
	salt := exec(`INSERT INTO ingredients (name, measurement_unit) VALUES ('Salt', 'g')`)
	a := exec(`INSERT INTO recipes (author_id, name, text, cooking_time, created_at) VALUES (?, 'A', '', 5, ?)`, user, now)
	b := exec(`INSERT INTO recipes (author_id, name, text, cooking_time, created_at) VALUES (?, 'B', '', 5, ?)`, user, now)
	exec(`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES (?, ?, 100)`, a, sugar)
	exec(`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES (?, ?, 50)`, b, sugar)
	exec(`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES (?, ?, 5)`, b, salt)
	return d.SQL, user, a, b
}

func TestCartRepository(t *testing.T) {
	ctx := context.Background()
	d, user, a, b := seedCart(t)
	cart := NewCartRepository(d)

	t.Run("Add", func(t *testing.T) {
		if err := cart.Add(ctx, user, a); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if err := cart.Add(ctx, user, b); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if err := cart.Add(ctx, user, a); !errors.Is(err, ErrAlreadyInCart) {
			t.Errorf("Expected ErrAlreadyInCart, got %v", err)
		}
		if err := cart.Add(ctx, user, 999); !errors.Is(err, ErrRecipeNotFound) {
			t.Errorf("Expected ErrRecipeNotFound, got %v", err)
		}
	})

	t.Run("Recipes", func(t *testing.T) {
		recipes, total, err := cart.Recipes(ctx, user, 6, 0)
		if err != nil {
			t.Fatalf("Recipes failed: %v", err)
		}
		if total != 2 || len(recipes) != 2 || recipes[0].ID != a {
			t.Errorf("Unexpected cart recipes %+v (total %d)", recipes, total)
		}
	})

	t.Run("ShoppingList", func(t *testing.T) {
		lines, err := NewService(cart, nil, nil).ShoppingList(ctx, user)
		if err != nil {
			t.Fatalf("ShoppingList failed: %v", err)
		}
		if got := FormatText(lines); got != "Salt (g) — 5\nSugar (g) — 150\n" {
			t.Errorf("Unexpected shopping list %q", got)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		if err := cart.Remove(ctx, user, a); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if err := cart.Remove(ctx, user, a); !errors.Is(err, ErrNotInCart) {
			t.Errorf("Expected ErrNotInCart, got %v", err)
		}
		in, err := cart.Contains(ctx, user, b)
		if err != nil || !in {
			t.Errorf("Expected recipe B to stay in the cart, got %v, %v", in, err)
		}
	})

	t.Run("EmptyCart", func(t *testing.T) {
		if err := cart.Remove(ctx, user, b); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if _, err := NewService(cart, nil, nil).ShoppingList(ctx, user); !errors.Is(err, ErrEmptyCart) {
			t.Errorf("Expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("ConcurrentAdd", func(t *testing.T) {
		const workers = 8
		errs := make(chan error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- cart.Add(ctx, user, a)
			}()
		}
		wg.Wait()
		close(errs)

		added := 0
		for err := range errs {
			switch {
			case err == nil:
				added++
			case !errors.Is(err, ErrAlreadyInCart):
				t.Errorf("Expected ErrAlreadyInCart, got %v", err)
			}
		}
		if added != 1 {
			t.Errorf("Expected exactly one add to succeed, got %d", added)
		}
	})
}
