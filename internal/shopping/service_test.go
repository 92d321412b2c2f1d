package shopping

import (
	"context"
	"errors"
	"testing"
)

type fakeSource struct {
	lines []CartLine
	err   error
}

func (f *fakeSource) Lines(ctx context.Context, userID int64) ([]CartLine, error) {
	return f.lines, f.err
}

type fakeRecorder struct {
	events []ExportEvent
	err    error
}

func (f *fakeRecorder) RecordExport(ctx context.Context, e ExportEvent) error {
	f.events = append(f.events, e)
	return f.err
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPDF, false},
		{"pdf", FormatPDF, false},
		{"TXT", FormatTXT, false},
		{"text", FormatTXT, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ParseFormat(%q): expected ErrUnknownFormat, got %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{lines: []CartLine{
		{"Sugar", "g", 100},
		{"Sugar", "g", 50},
		{"Salt", "g", 5},
	}}
	renderer, _ := newRecordingRenderer(DefaultLayout())

	t.Run("Text", func(t *testing.T) {
		rec := &fakeRecorder{}
		doc, err := NewService(source, renderer, rec).Export(ctx, 7, FormatTXT)
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if doc.Filename != "shopping_list.txt" || doc.ContentType != "text/plain; charset=utf-8" {
			t.Errorf("Unexpected document metadata %+v", doc)
		}
		if string(doc.Body) != "Salt (g) — 5\nSugar (g) — 150\n" {
			t.Errorf("Unexpected body %q", doc.Body)
		}
		if len(rec.events) != 1 || rec.events[0].UserID != 7 || rec.events[0].Lines != 2 || rec.events[0].Format != FormatTXT {
			t.Errorf("Unexpected recorded events %+v", rec.events)
		}
	})

	t.Run("PDF", func(t *testing.T) {
		rec := &fakeRecorder{}
		doc, err := NewService(source, renderer, rec).Export(ctx, 7, FormatPDF)
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if doc.Filename != "shopping_list.pdf" || doc.ContentType != "application/pdf" {
			t.Errorf("Unexpected document metadata %+v", doc)
		}
		if len(rec.events) != 1 || rec.events[0].Pages != 1 {
			t.Errorf("Unexpected recorded events %+v", rec.events)
		}
	})

	t.Run("RecorderFailureIgnored", func(t *testing.T) {
		rec := &fakeRecorder{err: errors.New("disk full")}
		if _, err := NewService(source, renderer, rec).Export(ctx, 7, FormatTXT); err != nil {
			t.Errorf("Expected export to succeed, got %v", err)
		}
	})

	t.Run("NilRecorder", func(t *testing.T) {
		if _, err := NewService(source, renderer, nil).Export(ctx, 7, FormatTXT); err != nil {
			t.Errorf("Expected export to succeed, got %v", err)
		}
	})

	t.Run("EmptyCart", func(t *testing.T) {
		rec := &fakeRecorder{}
		doc, err := NewService(&fakeSource{}, renderer, rec).Export(ctx, 7, FormatPDF)
		if !errors.Is(err, ErrEmptyCart) || doc != nil {
			t.Errorf("Expected ErrEmptyCart and no document, got %v, %v", doc, err)
		}
		if len(rec.events) != 0 {
			t.Errorf("Expected no recorded events, got %+v", rec.events)
		}
	})

	t.Run("SourceError", func(t *testing.T) {
		boom := errors.New("boom")
		if _, err := NewService(&fakeSource{err: boom}, renderer, nil).Export(ctx, 7, FormatTXT); !errors.Is(err, boom) {
			t.Errorf("Expected source error, got %v", err)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		if _, err := NewService(source, renderer, nil).Export(ctx, 7, Format("docx")); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Expected ErrUnknownFormat, got %v", err)
		}
	})
}
