package config

import (
	"os"
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	// Helper function to set environment variables for a test
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	// Keep a developer's .env out of the picture.
	t.Chdir(t.TempDir())

	t.Run("Defaults", func(t *testing.T) {
		setEnv("JWT_SECRET", "secret")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/foodgram.db" {
			t.Errorf("Expected default DatabasePath, got '%s'", cfg.DatabasePath)
		}
		if cfg.HTTPPort != 8080 {
			t.Errorf("Expected default HTTPPort 8080, got %d", cfg.HTTPPort)
		}
		if cfg.TokenTTL != 24*time.Hour {
			t.Errorf("Expected default TokenTTL 24h, got %v", cfg.TokenTTL)
		}
		if cfg.MaxBodyBytes != 10<<20 {
			t.Errorf("Expected default MaxBodyBytes 10MiB, got %d", cfg.MaxBodyBytes)
		}
		if cfg.DownloadRateLimit != 20 {
			t.Errorf("Expected default DownloadRateLimit 20, got %d", cfg.DownloadRateLimit)
		}
		if cfg.PDFLineHeight != 25 {
			t.Errorf("Expected default PDFLineHeight 25, got %v", cfg.PDFLineHeight)
		}
		if cfg.TelegramEnabled() {
			t.Error("Expected Telegram to be disabled without a token")
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		setEnv("JWT_SECRET", "secret")
		setEnv("DATABASE_PATH", "/tmp/other.db")
		setEnv("HTTP_PORT", "9090")
		setEnv("TOKEN_TTL", "90m")
		setEnv("CORS_ORIGINS", "http://a.test,http://b.test")
		setEnv("PDF_FONT_SIZE", "12.5")
		setEnv("TELEGRAM_BOT_TOKEN", "tg")
		setEnv("TELEGRAM_WEBHOOK_SECRET", "hook-secret")
		setEnv("TELEGRAM_ADMIN_ID", "123456")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/tmp/other.db" {
			t.Errorf("Expected DatabasePath '/tmp/other.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.HTTPPort != 9090 {
			t.Errorf("Expected HTTPPort 9090, got %d", cfg.HTTPPort)
		}
		if cfg.TokenTTL != 90*time.Minute {
			t.Errorf("Expected TokenTTL 90m, got %v", cfg.TokenTTL)
		}
		if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
			t.Errorf("Expected two CORS origins, got %v", cfg.CORSOrigins)
		}
		if cfg.PDFFontSize != 12.5 {
			t.Errorf("Expected PDFFontSize 12.5, got %v", cfg.PDFFontSize)
		}
		if !cfg.TelegramEnabled() {
			t.Error("Expected Telegram to be enabled")
		}
		if cfg.TelegramAdminID != 123456 {
			t.Errorf("Expected TelegramAdminID 123456, got %d", cfg.TelegramAdminID)
		}
		if cfg.TelegramWebhookSecret != "hook-secret" {
			t.Errorf("Expected TelegramWebhookSecret 'hook-secret', got '%s'", cfg.TelegramWebhookSecret)
		}
	})

	t.Run("CORSOriginsList", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", " http://a.test , http://b.test,,http://c.test ")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		want := []string{"http://a.test", "http://b.test", "http://c.test"}
		if len(cfg.CORSOrigins) != len(want) {
			t.Fatalf("Expected %v, got %v", want, cfg.CORSOrigins)
		}
		for i := range want {
			if cfg.CORSOrigins[i] != want[i] {
				t.Errorf("Expected origin %d to be %q, got %q", i, want[i], cfg.CORSOrigins[i])
			}
		}
	})

	t.Run("TelegramWithoutWebhookSecret", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "tg")
		t.Setenv("TELEGRAM_WEBHOOK_SECRET", "")

		if _, err := NewFromEnv(); err == nil {
			t.Error("Expected an error when the webhook secret is missing")
		}
	})

	t.Run("DotEnvFile", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		if err := os.WriteFile(".env", []byte("JWT_SECRET=from-dotenv\nHTTP_PORT=7070\n"), 0644); err != nil {
			t.Fatal(err)
		}
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("HTTP_PORT")
		t.Cleanup(func() {
			os.Unsetenv("JWT_SECRET")
			os.Unsetenv("HTTP_PORT")
		})

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.JWTSecret != "from-dotenv" {
			t.Errorf("Expected JWTSecret from .env, got '%s'", cfg.JWTSecret)
		}
		if cfg.HTTPPort != 7070 {
			t.Errorf("Expected HTTPPort 7070, got %d", cfg.HTTPPort)
		}
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		setEnv("JWT_SECRET", "")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing JWT_SECRET, got nil")
		}
		expectedError := "JWT_SECRET environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("InvalidPort", func(t *testing.T) {
		setEnv("JWT_SECRET", "secret")
		setEnv("HTTP_PORT", "70000")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for an out of range port, got nil")
		}
	})
}
