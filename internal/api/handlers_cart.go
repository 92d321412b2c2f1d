package api

import (
	"fmt"
	"net/http"
	"strconv"

	"foodgram/internal/auth"
	"foodgram/internal/shopping"
)

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	recipes, total, err := s.cart.Recipes(r.Context(), auth.UserIDFromContext(r.Context()), p.limit, p.offset())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if p.outOfRange(total) {
		respondDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}
	results := make([]minifiedRecipe, 0, len(recipes))
	for _, rec := range recipes {
		results = append(results, s.cartRecipeJSON(r, rec))
	}
	respondJSON(w, http.StatusOK, newPaginated(r, p, total, results))
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	viewer := auth.UserIDFromContext(r.Context())
	if err := s.cart.Add(r.Context(), viewer, id); err != nil {
		respondError(w, r, err)
		return
	}
	rec, err := s.recipes.Get(r.Context(), viewer, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.minifiedJSON(r, *rec))
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.cart.Remove(r.Context(), auth.UserIDFromContext(r.Context()), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDownloadCart streams the aggregated shopping list as an
// attachment. ?format= selects pdf (default) or txt.
func (s *Server) handleDownloadCart(w http.ResponseWriter, r *http.Request) {
	format, err := shopping.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	doc, err := s.shopping.Export(r.Context(), auth.UserIDFromContext(r.Context()), format)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}
