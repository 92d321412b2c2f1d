package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodgram/internal/app"
	"foodgram/internal/config"
	"foodgram/internal/logging"
	"foodgram/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// 2. Initialize repositories and services
	application, err := app.NewApp(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer application.Close()

	// 3. Initialize Telegram Bot (optional)
	var (
		bot     *telegram.Bot
		webhook http.Handler
	)
	if cfg.TelegramEnabled() {
		bot, err = telegram.NewBot(cfg, application.Users(), application.Shopping(), application.Metrics())
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		webhook = bot
	}

	// 4. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           application.Handler(webhook),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Int("port", cfg.HTTPPort).Bool("telegram", webhook != nil).Msg("foodgram API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Msg("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logging.Error().Err(err).Msg("server forced to shutdown")
	}
	if bot != nil {
		if err := bot.Shutdown(ctxShutdown); err != nil {
			logging.Error().Err(err).Msg("telegram updates still in flight at shutdown")
		}
	}

	logging.Info().Msg("server exiting")
}
