package api

import (
	"net/http"

	"foodgram/internal/recipe"
	"foodgram/internal/shopping"
	"foodgram/internal/user"
)

type userResponse struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	IsSubscribed bool    `json:"is_subscribed"`
	Avatar       *string `json:"avatar"`
}

type minifiedRecipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

type authorResponse struct {
	userResponse
	Recipes      []minifiedRecipe `json:"recipes"`
	RecipesCount int              `json:"recipes_count"`
}

type ingredientLineResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type recipeResponse struct {
	ID               int64                    `json:"id"`
	Author           userResponse             `json:"author"`
	Ingredients      []ingredientLineResponse `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
}

func (s *Server) userJSON(r *http.Request, u user.User, subscribed bool) userResponse {
	out := userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
	if u.Avatar != "" {
		avatar := absoluteURL(r, s.media.URL(u.Avatar))
		out.Avatar = &avatar
	}
	return out
}

func (s *Server) authorJSON(r *http.Request, a user.Author) authorResponse {
	recipes := make([]minifiedRecipe, 0, len(a.Recipes))
	for _, rs := range a.Recipes {
		recipes = append(recipes, minifiedRecipe{
			ID:          rs.ID,
			Name:        rs.Name,
			Image:       absoluteURL(r, s.media.URL(rs.Image)),
			CookingTime: rs.CookingTime,
		})
	}
	return authorResponse{
		userResponse: s.userJSON(r, a.User, a.IsSubscribed),
		Recipes:      recipes,
		RecipesCount: a.RecipesCount,
	}
}

func (s *Server) minifiedJSON(r *http.Request, rec recipe.Recipe) minifiedRecipe {
	return minifiedRecipe{
		ID:          rec.ID,
		Name:        rec.Name,
		Image:       absoluteURL(r, s.media.URL(rec.Image)),
		CookingTime: rec.CookingTime,
	}
}

func (s *Server) cartRecipeJSON(r *http.Request, rec shopping.CartRecipe) minifiedRecipe {
	return minifiedRecipe{
		ID:          rec.ID,
		Name:        rec.Name,
		Image:       absoluteURL(r, s.media.URL(rec.Image)),
		CookingTime: rec.CookingTime,
	}
}

// authorCache memoizes author lookups while serializing one response.
type authorCache map[int64]userResponse

func (s *Server) recipeJSON(r *http.Request, viewerID int64, rec recipe.Recipe, cache authorCache) (recipeResponse, error) {
	author, ok := cache[rec.AuthorID]
	if !ok {
		a, err := s.users.Author(r.Context(), viewerID, rec.AuthorID, 0)
		if err != nil {
			return recipeResponse{}, err
		}
		author = s.userJSON(r, a.User, a.IsSubscribed)
		cache[rec.AuthorID] = author
	}

	ingredients := make([]ingredientLineResponse, 0, len(rec.Ingredients))
	for _, l := range rec.Ingredients {
		ingredients = append(ingredients, ingredientLineResponse{
			ID:              l.ID,
			Name:            l.Name,
			MeasurementUnit: l.MeasurementUnit,
			Amount:          l.Amount,
		})
	}

	return recipeResponse{
		ID:               rec.ID,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      rec.IsFavorited,
		IsInShoppingCart: rec.IsInShoppingCart,
		Name:             rec.Name,
		Image:            absoluteURL(r, s.media.URL(rec.Image)),
		Text:             rec.Text,
		CookingTime:      rec.CookingTime,
	}, nil
}

func (s *Server) recipesJSON(r *http.Request, viewerID int64, recipes []recipe.Recipe) ([]recipeResponse, error) {
	cache := authorCache{}
	out := make([]recipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		resp, err := s.recipeJSON(r, viewerID, rec, cache)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
