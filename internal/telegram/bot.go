package telegram

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"foodgram/internal/config"
	"foodgram/internal/logging"
	"foodgram/internal/metrics"
	"foodgram/internal/shopping"
	"foodgram/internal/user"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/goccy/go-json"
)

const (
	processTimeout = time.Minute

	// secretHeader carries the secret_token registered with setWebhook.
	secretHeader = "X-Telegram-Bot-Api-Secret-Token"
)

// Sender delivers outgoing messages. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// UserFinder resolves the foodgram account linked to a Telegram user.
type UserFinder interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*user.User, error)
}

// Exporter renders a user's shopping list.
type Exporter interface {
	Export(ctx context.Context, userID int64, format shopping.Format) (*shopping.Document, error)
}

// UsageReporter summarizes recent exports for the admin report.
type UsageReporter interface {
	GetDailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error)
}

// Bot serves shopping lists to Telegram users linked to a foodgram account.
type Bot struct {
	api      Sender
	users    UserFinder
	exporter Exporter
	usage    UsageReporter
	adminID  int64
	mediaDir string
	secret   string

	// inflight tracks updates still being processed.
	inflight sync.WaitGroup
}

// NewBot initializes the Telegram API client and sets the webhook.
func NewBot(cfg *config.Config, users UserFinder, exporter Exporter, usage UsageReporter) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logging.Info().Str("account", api.Self.UserName).Msg("telegram bot authorized")

	if cfg.TelegramWebhookURL != "" {
		// WebhookConfig has no secret_token field, so the call is made directly.
		resp, err := api.MakeRequest("setWebhook", tgbotapi.Params{
			"url":          cfg.TelegramWebhookURL,
			"secret_token": cfg.TelegramWebhookSecret,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
		}
		logging.Info().Str("description", resp.Description).Msg("telegram webhook set")
	}

	b := newBot(api, users, exporter, usage, cfg.TelegramAdminID, cfg.MediaDir)
	b.secret = cfg.TelegramWebhookSecret
	return b, nil
}

func newBot(api Sender, users UserFinder, exporter Exporter, usage UsageReporter, adminID int64, mediaDir string) *Bot {
	return &Bot{
		api:      api,
		users:    users,
		exporter: exporter,
		usage:    usage,
		adminID:  adminID,
		mediaDir: mediaDir,
	}
}

// authorized reports whether the request carries the webhook secret.
// A bot without a secret accepts nothing.
func (b *Bot) authorized(r *http.Request) bool {
	got := r.Header.Get(secretHeader)
	return b.secret != "" && subtle.ConstantTimeCompare([]byte(got), []byte(b.secret)) == 1
}

// ServeHTTP accepts webhook updates. Messages are processed in the
// background so Telegram gets its 200 immediately.
func (b *Bot) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !b.authorized(r) {
		logging.Ctx(r.Context()).Warn().Msg("rejected telegram update with a bad secret token")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("failed to parse telegram update")
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)

	if update.Message == nil || update.Message.From == nil {
		return
	}

	b.inflight.Add(1)
	go func(msg *tgbotapi.Message) {
		defer b.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()
		b.processMessage(ctx, msg)
	}(update.Message)
}

// Shutdown waits for in-flight updates to finish or ctx to expire.
func (b *Bot) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		b.reply(msg.Chat.ID, helpText(msg.From.ID), "Markdown")
	case "list":
		b.handleList(ctx, msg)
	case "pdf":
		b.handlePDF(ctx, msg)
	case "stats":
		b.handleStats(ctx, msg)
	default:
		b.reply(msg.Chat.ID, "Unknown command. Send /help to see what I can do.", "")
	}
}

func helpText(telegramID int64) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Foodgram shopping list*\n\n")
	sb.WriteString("/list - shopping list as text\n")
	sb.WriteString("/pdf - shopping list as a PDF file\n\n")
	sb.WriteString(fmt.Sprintf("Your Telegram ID is `%d`. Link it in your profile to use the commands above.", telegramID))
	return sb.String()
}

// account returns the foodgram user linked to the sender, replying with
// a hint when there is none.
func (b *Bot) account(ctx context.Context, msg *tgbotapi.Message) (*user.User, bool) {
	u, err := b.users.GetByTelegramID(ctx, msg.From.ID)
	if errors.Is(err, user.ErrNotFound) {
		b.reply(msg.Chat.ID, fmt.Sprintf(
			"This Telegram account is not linked yet. Save telegram_id %d in your foodgram profile first.", msg.From.ID), "")
		return nil, false
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("telegram_id", msg.From.ID).Msg("failed to look up telegram user")
		b.reply(msg.Chat.ID, "❌ Something went wrong, please try again later.", "")
		return nil, false
	}
	return u, true
}

func (b *Bot) handleList(ctx context.Context, msg *tgbotapi.Message) {
	u, ok := b.account(ctx, msg)
	if !ok {
		return
	}
	doc, err := b.exporter.Export(ctx, u.ID, shopping.FormatTXT)
	if err != nil {
		b.replyExportError(ctx, msg.Chat.ID, u.ID, err)
		return
	}
	b.reply(msg.Chat.ID, "🛒 Shopping list\n\n"+string(doc.Body), "")
}

func (b *Bot) handlePDF(ctx context.Context, msg *tgbotapi.Message) {
	u, ok := b.account(ctx, msg)
	if !ok {
		return
	}
	doc, err := b.exporter.Export(ctx, u.ID, shopping.FormatPDF)
	if err != nil {
		b.replyExportError(ctx, msg.Chat.ID, u.ID, err)
		return
	}
	upload := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{Name: doc.Filename, Bytes: doc.Body})
	if _, err := b.api.Send(upload); err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("user_id", u.ID).Msg("failed to send shopping list document")
	}
}

func (b *Bot) replyExportError(ctx context.Context, chatID, userID int64, err error) {
	switch {
	case errors.Is(err, shopping.ErrEmptyCart):
		b.reply(chatID, "Your shopping cart is empty. Add recipes to it first.", "")
	case errors.Is(err, shopping.ErrMissingFontResource):
		logging.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("shopping list rendering failed")
		b.reply(chatID, "PDF rendering is unavailable right now. Try /list instead.", "")
	default:
		logging.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("shopping list export failed")
		b.reply(chatID, "❌ Could not build your shopping list, please try again later.", "")
	}
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	if b.adminID == 0 || msg.From.ID != b.adminID {
		b.reply(msg.Chat.ID, "⛔ *Access Denied*: Admin only.", "Markdown")
		return
	}
	usage, err := b.usage.GetDailyUsage(ctx, 7)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("failed to load export usage")
		b.reply(msg.Chat.ID, "❌ Error fetching metrics.", "")
		return
	}
	b.reply(msg.Chat.ID, formatStats(usage, metrics.GetSysHealth(b.mediaDir)), "Markdown")
}

func formatStats(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Shopping list exports*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d exports, %d lines, %d pages, avg %.0fms\n",
			d.Date, d.Exports, d.TotalLines, d.TotalPages, d.AvgLatencyMS))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Media: %s\n", health.MediaDiskSize))
	sb.WriteString(fmt.Sprintf("• Uptime: %s\n", health.Uptime))
	return sb.String()
}

func (b *Bot) reply(chatID int64, text, parseMode string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	if _, err := b.api.Send(msg); err != nil {
		logging.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to send telegram message")
	}
}
