package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"foodgram/internal/ingredient"
	"foodgram/internal/logging"
	"foodgram/internal/media"
	"foodgram/internal/recipe"
	"foodgram/internal/shopping"
	"foodgram/internal/user"
	"foodgram/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// errNotFound answers routes whose target does not exist.
var errNotFound = errors.New("not found")

// errMalformedBody is returned when a request body is not valid JSON.
var errMalformedBody = errors.New("malformed JSON body")

var errBodyTooLarge = errors.New("request body is too large")

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

func respondErrors(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"errors": msg})
}

// respondError maps domain errors onto HTTP responses.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		respondJSON(w, http.StatusBadRequest, verrs)

	case errors.Is(err, shopping.ErrEmptyCart):
		respondErrors(w, http.StatusBadRequest, shopping.ErrEmptyCart.Error())

	case errors.Is(err, shopping.ErrMissingFontResource):
		logging.Ctx(r.Context()).Error().Err(err).Msg("shopping list rendering failed")
		respondErrors(w, http.StatusInternalServerError, "shopping list rendering is unavailable")

	case errors.Is(err, errMalformedBody):
		respondDetail(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, errBodyTooLarge):
		respondDetail(w, http.StatusRequestEntityTooLarge, "Request body is too large.")

	case errors.Is(err, errNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, recipe.ErrNotFound),
		errors.Is(err, ingredient.ErrNotFound),
		errors.Is(err, shopping.ErrRecipeNotFound):
		respondDetail(w, http.StatusNotFound, "Not found.")

	case errors.Is(err, recipe.ErrForbidden):
		respondDetail(w, http.StatusForbidden, err.Error())

	case errors.Is(err, recipe.ErrUnknownIngredient):
		respondJSON(w, http.StatusBadRequest, validation.Errors{"ingredients": {err.Error()}})

	case errors.Is(err, user.ErrWrongPassword):
		respondJSON(w, http.StatusBadRequest, validation.Errors{"current_password": {err.Error()}})

	case errors.Is(err, user.ErrSamePassword):
		respondJSON(w, http.StatusBadRequest, validation.Errors{"new_password": {err.Error()}})

	case errors.Is(err, shopping.ErrUnknownFormat),
		errors.Is(err, media.ErrInvalidImage),
		errors.Is(err, user.ErrDuplicate),
		errors.Is(err, user.ErrTelegramTaken),
		errors.Is(err, user.ErrSelfSubscription),
		errors.Is(err, user.ErrAlreadySubscribed),
		errors.Is(err, user.ErrNotSubscribed),
		errors.Is(err, recipe.ErrAlreadyFavorited),
		errors.Is(err, recipe.ErrNotFavorited),
		errors.Is(err, shopping.ErrAlreadyInCart),
		errors.Is(err, shopping.ErrNotInCart):
		respondErrors(w, http.StatusBadRequest, rootCause(err))

	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
	}
}

// rootCause returns the innermost error message so wrapping context
// does not leak into client responses.
func rootCause(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// decodeJSON reads the whole body first so a size limit set by
// RequestSize surfaces as errBodyTooLarge.
func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

// idParam parses the {id} URL parameter. Non-numeric ids are treated as
// missing resources.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errNotFound
	}
	return id, nil
}

func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getFlagParam reads a 0/1 query flag. Any other value is ignored.
func getFlagParam(r *http.Request, key string) *bool {
	var v bool
	switch r.URL.Query().Get(key) {
	case "1":
		v = true
	case "0":
		v = false
	default:
		return nil
	}
	return &v
}

// absoluteURL prefixes p with the scheme and host the request came in on.
func absoluteURL(r *http.Request, p string) string {
	if p == "" {
		return ""
	}
	return baseURL(r) + p
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
