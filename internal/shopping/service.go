package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodgram/internal/logging"
)

// ErrUnknownFormat is returned for export formats other than pdf and txt.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is a shopping list export format.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatTXT Format = "txt"
)

// ParseFormat maps a user supplied format name to a Format. An empty
// name selects PDF.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "txt", "text":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// CartLineSource supplies the un-aggregated ingredient lines of a cart.
type CartLineSource interface {
	Lines(ctx context.Context, userID int64) ([]CartLine, error)
}

// ExportEvent describes one successful export.
type ExportEvent struct {
	UserID  int64
	Format  Format
	Lines   int
	Pages   int
	Latency time.Duration
}

// ExportRecorder records completed exports.
type ExportRecorder interface {
	RecordExport(ctx context.Context, e ExportEvent) error
}

// Document is a rendered shopping list ready for download.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Service builds shopping lists from a user's cart.
type Service struct {
	source   CartLineSource
	renderer *Renderer
	recorder ExportRecorder
}

// NewService creates a Service. recorder may be nil.
func NewService(source CartLineSource, renderer *Renderer, recorder ExportRecorder) *Service {
	return &Service{
		source:   source,
		renderer: renderer,
		recorder: recorder,
	}
}

// ShoppingList returns the aggregated lines of userID's cart.
func (s *Service) ShoppingList(ctx context.Context, userID int64) ([]AggregatedLine, error) {
	lines, err := s.source.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Aggregate(lines)
}

// Export renders userID's shopping list in the requested format.
func (s *Service) Export(ctx context.Context, userID int64, format Format) (*Document, error) {
	start := time.Now()

	lines, err := s.ShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		doc   *Document
		pages int
	)
	switch format {
	case FormatTXT:
		doc = &Document{
			Filename:    "shopping_list.txt",
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(FormatText(lines)),
		}
	case FormatPDF:
		body, n, err := s.renderer.render(lines)
		if err != nil {
			return nil, err
		}
		pages = n
		doc = &Document{
			Filename:    "shopping_list.pdf",
			ContentType: "application/pdf",
			Body:        body,
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	event := ExportEvent{
		UserID:  userID,
		Format:  format,
		Lines:   len(lines),
		Pages:   pages,
		Latency: time.Since(start),
	}
	logging.Ctx(ctx).Info().
		Int64("user_id", userID).
		Str("format", string(format)).
		Int("lines", event.Lines).
		Int("pages", pages).
		Dur("latency", event.Latency).
		Msg("shopping list exported")

	if s.recorder != nil {
		if err := s.recorder.RecordExport(ctx, event); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("user_id", userID).Msg("failed to record export")
		}
	}
	return doc, nil
}
