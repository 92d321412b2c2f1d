// Package api exposes the foodgram REST API over chi.
package api

import (
	"database/sql"
	"net/http"
	"time"

	"foodgram/internal/auth"
	"foodgram/internal/ingredient"
	"foodgram/internal/media"
	"foodgram/internal/metrics"
	"foodgram/internal/recipe"
	"foodgram/internal/shopping"
	"foodgram/internal/user"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options tunes the HTTP surface.
type Options struct {
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	// DownloadRateLimit caps shopping list downloads per client per window.
	DownloadRateLimit int
	// MaxBodyBytes caps request bodies, base64 images included.
	MaxBodyBytes int64
}

const defaultMaxBodyBytes = 10 << 20

// Deps are the collaborators the handlers call into.
type Deps struct {
	DB          *sql.DB
	Auth        *auth.Manager
	Users       *user.Repository
	Recipes     *recipe.Repository
	Ingredients *ingredient.Repository
	Cart        *shopping.CartRepository
	Shopping    *shopping.Service
	Media       *media.Store
	// Telegram is mounted at /telegram/webhook when set.
	Telegram http.Handler
}

// Server holds the HTTP handlers.
type Server struct {
	db          *sql.DB
	auth        *auth.Manager
	users       *user.Repository
	recipes     *recipe.Repository
	ingredients *ingredient.Repository
	cart        *shopping.CartRepository
	shopping    *shopping.Service
	media       *media.Store
	telegram    http.Handler
	opts        Options
}

// NewServer creates a Server.
func NewServer(deps Deps, opts Options) *Server {
	if opts.RateLimitWindow <= 0 {
		opts.RateLimitWindow = time.Minute
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Server{
		db:          deps.DB,
		auth:        deps.Auth,
		users:       deps.Users,
		recipes:     deps.Recipes,
		ingredients: deps.Ingredients,
		cart:        deps.Cart,
		shopping:    deps.Shopping,
		media:       deps.Media,
		telegram:    deps.Telegram,
		opts:        opts,
	}
}

// Router builds the chi router with middleware and every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(prometheusMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         86400,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(s.media.Root()))))
	if s.telegram != nil {
		r.With(chimiddleware.RequestSize(s.opts.MaxBodyBytes)).Method(http.MethodPost, "/telegram/webhook", s.telegram)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimit(s.opts.RateLimitRequests, s.opts.RateLimitWindow))
		r.Use(chimiddleware.RequestSize(s.opts.MaxBodyBytes))

		r.Route("/auth/token", func(r chi.Router) {
			r.Post("/login/", s.handleLogin)
			r.With(s.auth.Required).Post("/logout/", s.handleLogout)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", s.handleListIngredients)
			r.Get("/{id}/", s.handleGetIngredient)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(s.auth.Optional).Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)

			r.Group(func(r chi.Router) {
				r.Use(s.auth.Required)
				r.Get("/me/", s.handleMe)
				r.Post("/set_password/", s.handleSetPassword)
				r.Put("/me/avatar/", s.handleSetAvatar)
				r.Delete("/me/avatar/", s.handleDeleteAvatar)
				r.Put("/me/telegram/", s.handleLinkTelegram)
				r.Get("/subscriptions/", s.handleSubscriptions)
				r.Post("/{id}/subscribe/", s.handleSubscribe)
				r.Delete("/{id}/subscribe/", s.handleUnsubscribe)
			})

			r.With(s.auth.Optional).Get("/{id}/", s.handleGetUser)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.With(s.auth.Optional).Get("/", s.handleListRecipes)
			r.Get("/{id}/get-link/", s.handleShortLink)

			r.Group(func(r chi.Router) {
				r.Use(s.auth.Required)
				r.Post("/", s.handleCreateRecipe)
				r.Patch("/{id}/", s.handleUpdateRecipe)
				r.Delete("/{id}/", s.handleDeleteRecipe)

				r.Get("/favorite/", s.handleFavorites)
				r.Post("/{id}/favorite/", s.handleAddFavorite)
				r.Delete("/{id}/favorite/", s.handleRemoveFavorite)

				r.Get("/shopping_cart/", s.handleCart)
				r.Post("/{id}/shopping_cart/", s.handleAddToCart)
				r.Delete("/{id}/shopping_cart/", s.handleRemoveFromCart)

				r.With(rateLimit(s.opts.DownloadRateLimit, s.opts.RateLimitWindow)).
					Get("/download_shopping_cart/", s.handleDownloadCart)
			})

			r.With(s.auth.Optional).Get("/{id}/", s.handleGetRecipe)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]any{
		"status": status,
		"system": metrics.GetSysHealth(s.media.Root()),
	})
}
