package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string `koanf:"database_path"`
	MediaDir     string `koanf:"media_dir"`

	// HTTP
	HTTPPort          int           `koanf:"http_port"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	DownloadRateLimit int           `koanf:"download_rate_limit"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`

	// Auth
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`

	// Shopping list PDF
	PDFFontPath   string  `koanf:"pdf_font_path"`
	PDFFontSize   float64 `koanf:"pdf_font_size"`
	PDFLineHeight float64 `koanf:"pdf_line_height"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	MetricsRetentionDays int `koanf:"metrics_retention_days"`

	// Telegram Config (optional, bot disabled without a token)
	TelegramBotToken      string `koanf:"telegram_bot_token"`
	TelegramWebhookURL    string `koanf:"telegram_webhook_url"`
	TelegramWebhookSecret string `koanf:"telegram_webhook_secret"`
	TelegramAdminID       int64  `koanf:"telegram_admin_id"`
}

func defaults() Config {
	return Config{
		DatabasePath:         "data/foodgram.db",
		MediaDir:             "data/media",
		HTTPPort:             8080,
		CORSOrigins:          []string{},
		RateLimitRequests:    100,
		RateLimitWindow:      time.Minute,
		DownloadRateLimit:    20,
		MaxBodyBytes:         10 << 20,
		TokenTTL:             24 * time.Hour,
		PDFFontPath:          "assets/fonts/DejaVuSansCondensed.ttf",
		PDFFontSize:          14,
		PDFLineHeight:        25,
		LogLevel:             "info",
		LogFormat:            "json",
		MetricsRetentionDays: 30,
	}
}

// NewFromEnv creates a new Config object from defaults, an optional .env file
// and environment variables, in increasing order of precedence.
func NewFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := splitListKeys(k); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("DATABASE_PATH environment variable not set")
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", cfg.HTTPPort)
	}
	if cfg.PDFLineHeight <= 0 {
		return nil, fmt.Errorf("PDF_LINE_HEIGHT must be positive, got %v", cfg.PDFLineHeight)
	}
	if cfg.TelegramEnabled() && cfg.TelegramWebhookSecret == "" {
		return nil, fmt.Errorf("TELEGRAM_WEBHOOK_SECRET must be set when the Telegram bot is enabled")
	}

	return &cfg, nil
}

// listKeys are loaded from the environment as comma-separated strings.
var listKeys = []string{"cors_origins"}

func splitListKeys(k *koanf.Koanf) error {
	for _, key := range listKeys {
		raw, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		items := []string{}
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if err := k.Set(key, items); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}

// TelegramEnabled reports whether the Telegram bot should be started.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != ""
}
