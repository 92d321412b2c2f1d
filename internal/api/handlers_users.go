package api

import (
	"errors"
	"net/http"
	"strings"

	"foodgram/internal/auth"
	"foodgram/internal/logging"
	"foodgram/internal/user"
	"foodgram/internal/validation"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	u, err := s.users.GetByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		respondError(w, r, err)
		return
	}
	if u == nil || !u.CheckPassword(req.Password) {
		respondJSON(w, http.StatusBadRequest, validation.Errors{
			"non_field_errors": {"Unable to log in with provided credentials."},
		})
		return
	}

	token, err := s.auth.Issue(u.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Int64("user_id", u.ID).Msg("token issued")
	respondJSON(w, http.StatusOK, map[string]string{"auth_token": token})
}

// handleLogout acknowledges the logout. Tokens are stateless and expire
// on their own.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var p user.CreateParams
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, r, err)
		return
	}
	u, err := s.users.Create(r.Context(), p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	viewer := auth.UserIDFromContext(r.Context())
	p := parsePage(r)

	users, total, err := s.users.List(r.Context(), p.limit, p.offset())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if p.outOfRange(total) {
		respondDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}

	results := make([]userResponse, 0, len(users))
	for _, u := range users {
		subscribed, err := s.users.IsSubscribed(r.Context(), viewer, u.ID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		results = append(results, s.userJSON(r, u, subscribed))
	}
	respondJSON(w, http.StatusOK, newPaginated(r, p, total, results))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	subscribed, err := s.users.IsSubscribed(r.Context(), auth.UserIDFromContext(r.Context()), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.userJSON(r, *u, subscribed))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.userJSON(r, *u, false))
}

type setPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *Server) handleSetPassword(w http.ResponseWriter, r *http.Request) {
	var req setPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.users.SetPassword(r.Context(), auth.UserIDFromContext(r.Context()), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

func (s *Server) handleSetAvatar(w http.ResponseWriter, r *http.Request) {
	var req avatarRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Avatar == "" {
		respondJSON(w, http.StatusBadRequest, validation.Errors{"avatar": {"This field is required."}})
		return
	}
	rel, err := s.users.SetAvatar(r.Context(), auth.UserIDFromContext(r.Context()), req.Avatar)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"avatar": absoluteURL(r, s.media.URL(rel))})
}

func (s *Server) handleDeleteAvatar(w http.ResponseWriter, r *http.Request) {
	if err := s.users.DeleteAvatar(r.Context(), auth.UserIDFromContext(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type telegramRequest struct {
	TelegramID int64 `json:"telegram_id"`
}

// handleLinkTelegram links the caller to a Telegram account. A zero id
// unlinks it.
func (s *Server) handleLinkTelegram(w http.ResponseWriter, r *http.Request) {
	var req telegramRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.TelegramID < 0 {
		respondJSON(w, http.StatusBadRequest, validation.Errors{"telegram_id": {"Ensure this value is greater than or equal to 0."}})
		return
	}
	if err := s.users.LinkTelegram(r.Context(), auth.UserIDFromContext(r.Context()), req.TelegramID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	authors, total, err := s.users.Subscriptions(r.Context(), auth.UserIDFromContext(r.Context()),
		p.limit, p.offset(), recipesLimit(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if p.outOfRange(total) {
		respondDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}

	results := make([]authorResponse, 0, len(authors))
	for _, a := range authors {
		results = append(results, s.authorJSON(r, a))
	}
	respondJSON(w, http.StatusOK, newPaginated(r, p, total, results))
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	viewer := auth.UserIDFromContext(r.Context())
	if err := s.users.Subscribe(r.Context(), viewer, id); err != nil {
		respondError(w, r, err)
		return
	}
	a, err := s.users.Author(r.Context(), viewer, id, recipesLimit(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.authorJSON(r, *a))
}

func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.users.Unsubscribe(r.Context(), auth.UserIDFromContext(r.Context()), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recipesLimit reads ?recipes_limit=; absent or invalid means no limit.
func recipesLimit(r *http.Request) int {
	n := getIntParam(r, "recipes_limit", -1)
	if n < 0 {
		return -1
	}
	return n
}
