package shopping

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

type drawCall struct {
	page int
	x, y float64
	text string
}

// recordingCanvas captures drawing operations instead of producing a PDF.
type recordingCanvas struct {
	page  int
	calls []drawCall
	font  string
	size  float64
}

func (c *recordingCanvas) SetFont(name string, size float64) { c.font, c.size = name, size }
func (c *recordingCanvas) DrawText(x, y float64, s string) {
	c.calls = append(c.calls, drawCall{page: c.page, x: x, y: y, text: s})
}
func (c *recordingCanvas) NewPage()                  { c.page++ }
func (c *recordingCanvas) Finalize() ([]byte, error) { return []byte(fmt.Sprintf("pages=%d", c.page+1)), nil }

func newRecordingRenderer(layout Layout) (*Renderer, *recordingCanvas) {
	canvas := &recordingCanvas{}
	return NewRendererWithCanvas(layout, func(Layout) (Canvas, error) { return canvas, nil }), canvas
}

func distinctLines(n int) []AggregatedLine {
	lines := make([]AggregatedLine, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, AggregatedLine{
			IngredientName:  fmt.Sprintf("Ingredient %02d", i),
			MeasurementUnit: "g",
			TotalAmount:     i + 1,
		})
	}
	return lines
}

func TestRenderer_Pagination(t *testing.T) {
	layout := DefaultLayout()

	t.Run("FortyLinesTwoPages", func(t *testing.T) {
		r, canvas := newRecordingRenderer(layout)
		body, pages, err := r.render(distinctLines(40))
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		if pages != 2 || string(body) != "pages=2" {
			t.Fatalf("Expected 2 pages, got %d (%s)", pages, body)
		}

		// Title plus 40 lines.
		if len(canvas.calls) != 41 {
			t.Fatalf("Expected 41 draw calls, got %d", len(canvas.calls))
		}
		title := canvas.calls[0]
		if title.text != layout.Title || title.y != layout.MarginTop || title.x != layout.MarginLeft {
			t.Errorf("Unexpected title call %+v", title)
		}
		if first := canvas.calls[1]; first.y != layout.MarginTop+2*layout.LineHeight {
			t.Errorf("Expected first line at %v, got %v", layout.MarginTop+2*layout.LineHeight, first.y)
		}

		firstOnPageTwo := -1
		for i, c := range canvas.calls {
			if c.page == 1 {
				firstOnPageTwo = i
				break
			}
		}
		if firstOnPageTwo != 29 {
			t.Fatalf("Expected 28 lines on page one, page two starts at call %d", firstOnPageTwo)
		}
		if y := canvas.calls[firstOnPageTwo].y; y != layout.MarginTop {
			t.Errorf("Expected page two to start at the top margin, got %v", y)
		}
		for _, c := range canvas.calls {
			if c.y > layout.PageHeight-layout.MarginBottom {
				t.Errorf("Line %q drawn below the bottom margin at %v", c.text, c.y)
			}
		}
	})

	t.Run("LongListNeverTruncated", func(t *testing.T) {
		r, canvas := newRecordingRenderer(layout)
		_, pages, err := r.render(distinctLines(200))
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		// 28 on the first page, 30 on each following page.
		if pages != 7 {
			t.Errorf("Expected 7 pages, got %d", pages)
		}
		if len(canvas.calls) != 201 {
			t.Errorf("Expected every line to be drawn, got %d calls", len(canvas.calls))
		}
	})

	t.Run("FontFromLayout", func(t *testing.T) {
		custom := layout
		custom.FontFamily, custom.FontSize = "Custom", 9
		r, canvas := newRecordingRenderer(custom)
		if _, err := r.Render(distinctLines(1)); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if canvas.font != "Custom" || canvas.size != 9 {
			t.Errorf("Expected Custom 9, got %s %v", canvas.font, canvas.size)
		}
	})

	t.Run("EmptyCart", func(t *testing.T) {
		r, _ := newRecordingRenderer(layout)
		if _, err := r.Render(nil); !errors.Is(err, ErrEmptyCart) {
			t.Errorf("Expected ErrEmptyCart, got %v", err)
		}
	})
}

func TestNewPDFCanvas(t *testing.T) {
	t.Run("MissingFont", func(t *testing.T) {
		layout := DefaultLayout()
		layout.FontPath = filepath.Join(t.TempDir(), "missing.ttf")

		_, err := NewRenderer(layout).Render(distinctLines(3))
		if !errors.Is(err, ErrMissingFontResource) {
			t.Errorf("Expected ErrMissingFontResource, got %v", err)
		}
	})

	layout := DefaultLayout()
	layout.FontPath = filepath.Join("..", "..", layout.FontPath)

	t.Run("RendersPDF", func(t *testing.T) {
		body, err := NewRenderer(layout).Render([]AggregatedLine{{"Сахар", "г", 150}})
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !bytes.HasPrefix(body, []byte("%PDF-")) {
			t.Errorf("Expected a PDF document, got %q", body[:min(len(body), 16)])
		}
		if n := bytes.Count(body, []byte("<</Type /Page\n")); n != 1 {
			t.Errorf("Expected 1 page, got %d", n)
		}
	})

	t.Run("PagesLongList", func(t *testing.T) {
		body, err := NewRenderer(layout).Render(distinctLines(40))
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if n := bytes.Count(body, []byte("<</Type /Page\n")); n != 2 {
			t.Errorf("Expected 2 pages, got %d", n)
		}
	})
}
