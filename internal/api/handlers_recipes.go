package api

import (
	"net/http"
	"strconv"

	"foodgram/internal/auth"
	"foodgram/internal/recipe"
)

func (s *Server) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := s.ingredients.List(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ingredients)
}

func (s *Server) handleGetIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	ing, err := s.ingredients.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ing)
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	viewer := auth.UserIDFromContext(r.Context())
	p := parsePage(r)

	f := recipe.Filter{
		IsFavorited:      getFlagParam(r, "is_favorited"),
		IsInShoppingCart: getFlagParam(r, "is_in_shopping_cart"),
	}
	if author := r.URL.Query().Get("author"); author != "" {
		id, err := strconv.ParseInt(author, 10, 64)
		if err != nil || id <= 0 {
			respondJSON(w, http.StatusBadRequest, map[string][]string{"author": {"Select a valid choice."}})
			return
		}
		f.AuthorID = id
	}

	recipes, total, err := s.recipes.List(r.Context(), viewer, f, p.limit, p.offset())
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.respondRecipePage(w, r, viewer, p, total, recipes)
}

func (s *Server) respondRecipePage(w http.ResponseWriter, r *http.Request, viewer int64, p page, total int, recipes []recipe.Recipe) {
	if p.outOfRange(total) {
		respondDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}
	results, err := s.recipesJSON(r, viewer, recipes)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newPaginated(r, p, total, results))
}

func (s *Server) respondRecipe(w http.ResponseWriter, r *http.Request, status int, viewer int64, rec *recipe.Recipe) {
	resp, err := s.recipeJSON(r, viewer, *rec, authorCache{})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, status, resp)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	viewer := auth.UserIDFromContext(r.Context())
	rec, err := s.recipes.Get(r.Context(), viewer, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.respondRecipe(w, r, http.StatusOK, viewer, rec)
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var p recipe.Params
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, r, err)
		return
	}
	viewer := auth.UserIDFromContext(r.Context())
	rec, err := s.recipes.Create(r.Context(), viewer, p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.respondRecipe(w, r, http.StatusCreated, viewer, rec)
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var p recipe.Params
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, r, err)
		return
	}
	viewer := auth.UserIDFromContext(r.Context())
	rec, err := s.recipes.Update(r.Context(), viewer, id, p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.respondRecipe(w, r, http.StatusOK, viewer, rec)
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.recipes.Delete(r.Context(), auth.UserIDFromContext(r.Context()), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShortLink(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if _, err := s.recipes.Get(r.Context(), 0, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"short-link": recipe.ShortLink(baseURL(r), id)})
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	viewer := auth.UserIDFromContext(r.Context())
	p := parsePage(r)
	recipes, total, err := s.recipes.Favorites(r.Context(), viewer, p.limit, p.offset())
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.respondRecipePage(w, r, viewer, p, total, recipes)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	rec, err := s.recipes.AddFavorite(r.Context(), auth.UserIDFromContext(r.Context()), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.minifiedJSON(r, *rec))
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.recipes.RemoveFavorite(r.Context(), auth.UserIDFromContext(r.Context()), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
