package app

import (
	"context"
	"fmt"
	"net/http"

	"foodgram/internal/api"
	"foodgram/internal/auth"
	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/ingredient"
	"foodgram/internal/logging"
	"foodgram/internal/media"
	"foodgram/internal/metrics"
	"foodgram/internal/recipe"
	"foodgram/internal/shopping"
	"foodgram/internal/user"
)

// App holds the application's dependencies.
type App struct {
	cfg *config.Config
	db  *database.DB

	auth         *auth.Manager
	media        *media.Store
	users        *user.Repository
	recipes      *recipe.Repository
	ingredients  *ingredient.Repository
	cart         *shopping.CartRepository
	shopping     *shopping.Service
	metricsStore *metrics.Store
}

// NewApp opens the database and media store and wires every repository.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store, err := media.NewStore(cfg.MediaDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize media store: %w", err)
	}

	manager, err := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	cart := shopping.NewCartRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	return &App{
		cfg:          cfg,
		db:           db,
		auth:         manager,
		media:        store,
		users:        user.NewRepository(db.SQL, store),
		recipes:      recipe.NewRepository(db.SQL, store),
		ingredients:  ingredient.NewRepository(db.SQL),
		cart:         cart,
		shopping:     shopping.NewService(cart, shopping.NewRenderer(Layout(cfg)), metricsStore),
		metricsStore: metricsStore,
	}, nil
}

// Layout returns the default PDF layout adjusted by configuration.
func Layout(cfg *config.Config) shopping.Layout {
	layout := shopping.DefaultLayout()
	if cfg.PDFFontPath != "" {
		layout.FontPath = cfg.PDFFontPath
	}
	if cfg.PDFFontSize > 0 {
		layout.FontSize = cfg.PDFFontSize
	}
	if cfg.PDFLineHeight > 0 {
		layout.LineHeight = cfg.PDFLineHeight
	}
	return layout
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.db.Close()
}

// Users exposes the user repository to the Telegram bot.
func (a *App) Users() *user.Repository { return a.users }

// Shopping exposes the shopping list service.
func (a *App) Shopping() *shopping.Service { return a.shopping }

// Metrics exposes the export metrics store.
func (a *App) Metrics() *metrics.Store { return a.metricsStore }

// Handler builds the HTTP API. telegram is mounted when non-nil.
func (a *App) Handler(telegram http.Handler) http.Handler {
	srv := api.NewServer(api.Deps{
		DB:          a.db.SQL,
		Auth:        a.auth,
		Users:       a.users,
		Recipes:     a.recipes,
		Ingredients: a.ingredients,
		Cart:        a.cart,
		Shopping:    a.shopping,
		Media:       a.media,
		Telegram:    telegram,
	}, api.Options{
		CORSOrigins:       a.cfg.CORSOrigins,
		RateLimitRequests: a.cfg.RateLimitRequests,
		RateLimitWindow:   a.cfg.RateLimitWindow,
		DownloadRateLimit: a.cfg.DownloadRateLimit,
		MaxBodyBytes:      a.cfg.MaxBodyBytes,
	})
	return srv.Router()
}

// LoadIngredients imports the ingredient catalogue from a JSON file.
func (a *App) LoadIngredients(ctx context.Context, path string) (ingredient.LoadResult, error) {
	res, err := a.ingredients.LoadFile(ctx, path)
	if err != nil {
		return res, err
	}
	logging.Info().
		Str("path", path).
		Int("processed", res.Processed).
		Int("created", res.Created).
		Int("existing", res.Existing).
		Int("skipped", res.Skipped).
		Msg("ingredients loaded")
	return res, nil
}

// ExportShoppingList renders userID's shopping list.
func (a *App) ExportShoppingList(ctx context.Context, userID int64, format shopping.Format) (*shopping.Document, error) {
	if _, err := a.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	return a.shopping.Export(ctx, userID, format)
}

// IssueToken creates a bearer token for an existing user.
func (a *App) IssueToken(ctx context.Context, userID int64) (string, error) {
	if _, err := a.users.Get(ctx, userID); err != nil {
		return "", err
	}
	return a.auth.Issue(userID)
}

// CleanupMetrics removes export metrics older than days.
func (a *App) CleanupMetrics(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = a.cfg.MetricsRetentionDays
	}
	affected, err := a.metricsStore.Cleanup(ctx, days)
	if err != nil {
		return 0, err
	}
	logging.Info().Int("days", days).Int64("removed", affected).Msg("export metrics cleaned up")
	return affected, nil
}
