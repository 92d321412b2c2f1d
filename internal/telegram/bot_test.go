package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodgram/internal/metrics"
	"foodgram/internal/shopping"
	"foodgram/internal/user"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) lastText(t *testing.T) string {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatal("Expected a message to be sent")
	}
	msg, ok := f.sent[len(f.sent)-1].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("Expected a text message, got %T", f.sent[len(f.sent)-1])
	}
	return msg.Text
}

type fakeUsers map[int64]*user.User

func (f fakeUsers) GetByTelegramID(ctx context.Context, telegramID int64) (*user.User, error) {
	if u, ok := f[telegramID]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

type fakeExporter struct {
	err     error
	formats []shopping.Format
}

func (f *fakeExporter) Export(ctx context.Context, userID int64, format shopping.Format) (*shopping.Document, error) {
	f.formats = append(f.formats, format)
	if f.err != nil {
		return nil, f.err
	}
	if format == shopping.FormatTXT {
		return &shopping.Document{Filename: "shopping_list.txt", Body: []byte("Salt (g) — 5\n")}, nil
	}
	return &shopping.Document{Filename: "shopping_list.pdf", Body: []byte("%PDF-")}, nil
}

type fakeUsage []metrics.DailyUsage

func (f fakeUsage) GetDailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error) {
	return f, nil
}

func command(fromID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: fromID},
		Chat: &tgbotapi.Chat{ID: fromID},
		Text: text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])},
		},
	}
}

func TestProcessMessage(t *testing.T) {
	ctx := context.Background()
	users := fakeUsers{100: {ID: 7, Username: "cook"}}
	usage := fakeUsage{{Date: "2025-03-10", Exports: 2, TotalLines: 14, TotalPages: 1, AvgLatencyMS: 11}}

	t.Run("Start", func(t *testing.T) {
		sender := &fakeSender{}
		newBot(sender, users, &fakeExporter{}, usage, 1, t.TempDir()).processMessage(ctx, command(555, "/start"))
		if text := sender.lastText(t); !strings.Contains(text, "`555`") {
			t.Errorf("Expected the telegram id in the help text, got %q", text)
		}
	})

	t.Run("ListUnlinked", func(t *testing.T) {
		sender, exporter := &fakeSender{}, &fakeExporter{}
		newBot(sender, users, exporter, usage, 1, t.TempDir()).processMessage(ctx, command(555, "/list"))
		if text := sender.lastText(t); !strings.Contains(text, "not linked") {
			t.Errorf("Expected a link hint, got %q", text)
		}
		if len(exporter.formats) != 0 {
			t.Errorf("Expected no export, got %v", exporter.formats)
		}
	})

	t.Run("List", func(t *testing.T) {
		sender, exporter := &fakeSender{}, &fakeExporter{}
		newBot(sender, users, exporter, usage, 1, t.TempDir()).processMessage(ctx, command(100, "/list"))
		if text := sender.lastText(t); !strings.HasSuffix(text, "Salt (g) — 5\n") {
			t.Errorf("Expected the shopping list, got %q", text)
		}
		if len(exporter.formats) != 1 || exporter.formats[0] != shopping.FormatTXT {
			t.Errorf("Expected a txt export, got %v", exporter.formats)
		}
	})

	t.Run("PDF", func(t *testing.T) {
		sender := &fakeSender{}
		newBot(sender, users, &fakeExporter{}, usage, 1, t.TempDir()).processMessage(ctx, command(100, "/pdf"))
		if len(sender.sent) != 1 {
			t.Fatalf("Expected one upload, got %d", len(sender.sent))
		}
		doc, ok := sender.sent[0].(tgbotapi.DocumentConfig)
		if !ok {
			t.Fatalf("Expected a document, got %T", sender.sent[0])
		}
		if file, ok := doc.File.(tgbotapi.FileBytes); !ok || file.Name != "shopping_list.pdf" {
			t.Errorf("Unexpected document file %+v", doc.File)
		}
	})

	t.Run("EmptyCart", func(t *testing.T) {
		sender := &fakeSender{}
		exporter := &fakeExporter{err: shopping.ErrEmptyCart}
		newBot(sender, users, exporter, usage, 1, t.TempDir()).processMessage(ctx, command(100, "/pdf"))
		if text := sender.lastText(t); !strings.Contains(text, "cart is empty") {
			t.Errorf("Expected an empty cart message, got %q", text)
		}
	})

	t.Run("MissingFont", func(t *testing.T) {
		sender := &fakeSender{}
		exporter := &fakeExporter{err: shopping.ErrMissingFontResource}
		newBot(sender, users, exporter, usage, 1, t.TempDir()).processMessage(ctx, command(100, "/pdf"))
		if text := sender.lastText(t); !strings.Contains(text, "/list") {
			t.Errorf("Expected a fallback hint, got %q", text)
		}
	})

	t.Run("StatsAdminOnly", func(t *testing.T) {
		sender := &fakeSender{}
		newBot(sender, users, &fakeExporter{}, usage, 1, t.TempDir()).processMessage(ctx, command(100, "/stats"))
		if text := sender.lastText(t); !strings.Contains(text, "Admin only") {
			t.Errorf("Expected access denied, got %q", text)
		}
	})

	t.Run("Stats", func(t *testing.T) {
		sender := &fakeSender{}
		newBot(sender, users, &fakeExporter{}, usage, 1, t.TempDir()).processMessage(ctx, command(1, "/stats"))
		if text := sender.lastText(t); !strings.Contains(text, "*2025-03-10*: 2 exports, 14 lines, 1 pages, avg 11ms") {
			t.Errorf("Unexpected report %q", text)
		}
	})
}

func webhookRequest(body, secret string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	if secret != "" {
		req.Header.Set(secretHeader, secret)
	}
	return req
}

func TestServeHTTP(t *testing.T) {
	const listUpdate = `{"update_id":1,"message":{"message_id":1,"from":{"id":100},"chat":{"id":999},` +
		`"text":"/list","entities":[{"type":"bot_command","offset":0,"length":5}]}}`

	newTestBot := func() (*Bot, *fakeSender) {
		sender := &fakeSender{}
		bot := newBot(sender, fakeUsers{100: {ID: 7}}, &fakeExporter{}, fakeUsage{}, 0, t.TempDir())
		bot.secret = "hook-secret"
		return bot, sender
	}

	t.Run("Malformed", func(t *testing.T) {
		bot, _ := newTestBot()
		rec := httptest.NewRecorder()
		bot.ServeHTTP(rec, webhookRequest("{", "hook-secret"))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("NonMessageUpdate", func(t *testing.T) {
		bot, _ := newTestBot()
		rec := httptest.NewRecorder()
		bot.ServeHTTP(rec, webhookRequest(`{"update_id":1}`, "hook-secret"))
		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
	})

	for name, secret := range map[string]string{"MissingSecret": "", "WrongSecret": "guess"} {
		t.Run(name, func(t *testing.T) {
			bot, sender := newTestBot()
			rec := httptest.NewRecorder()
			bot.ServeHTTP(rec, webhookRequest(listUpdate, secret))
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", rec.Code)
			}
			if err := bot.Shutdown(context.Background()); err != nil {
				t.Fatalf("Shutdown failed: %v", err)
			}
			if len(sender.sent) != 0 {
				t.Errorf("Expected nothing sent for a forged update, got %d messages", len(sender.sent))
			}
		})
	}

	t.Run("NoSecretConfigured", func(t *testing.T) {
		sender := &fakeSender{}
		bot := newBot(sender, fakeUsers{100: {ID: 7}}, &fakeExporter{}, fakeUsage{}, 0, t.TempDir())
		rec := httptest.NewRecorder()
		bot.ServeHTTP(rec, webhookRequest(listUpdate, ""))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
	})

	t.Run("ShutdownWaitsForUpdates", func(t *testing.T) {
		bot, sender := newTestBot()
		rec := httptest.NewRecorder()
		bot.ServeHTTP(rec, webhookRequest(listUpdate, "hook-secret"))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := bot.Shutdown(ctx); err != nil {
			t.Fatalf("Shutdown failed: %v", err)
		}
		if text := sender.lastText(t); !strings.HasSuffix(text, "Salt (g) — 5\n") {
			t.Errorf("Expected the shopping list, got %q", text)
		}
	})
}

func TestFormatStats(t *testing.T) {
	out := formatStats(nil, metrics.SysHealth{AllocMB: 3, SysMB: 10, Goroutines: 4, MediaDiskSize: "2.0 KB", Uptime: "1m0s"})
	for _, want := range []string{"_No data yet_", "RAM: 3MB (Alloc) / 10MB (Sys)", "Media: 2.0 KB"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in report, got %q", want, out)
		}
	}
}
