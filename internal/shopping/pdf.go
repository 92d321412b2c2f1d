package shopping

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

// ErrMissingFontResource is returned when the configured TTF font file
// cannot be found.
var ErrMissingFontResource = errors.New("pdf font resource is missing")

// Layout describes the page geometry and typography of a PDF shopping
// list. Units are PostScript points with the origin at the top left.
type Layout struct {
	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	LineHeight   float64
	FontFamily   string
	FontSize     float64
	FontPath     string
	Title        string
}

// DefaultLayout returns an A4 layout with 50pt margins and a 25pt pitch.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:    595.28,
		PageHeight:   841.89,
		MarginTop:    50,
		MarginBottom: 50,
		MarginLeft:   50,
		LineHeight:   25,
		FontFamily:   "DejaVuSans",
		FontSize:     14,
		FontPath:     "assets/fonts/DejaVuSansCondensed.ttf",
		Title:        "Список покупок",
	}
}

// Canvas is the drawing surface a Renderer writes to.
type Canvas interface {
	SetFont(name string, size float64)
	DrawText(x, y float64, s string)
	NewPage()
	Finalize() ([]byte, error)
}

// CanvasFactory opens a canvas with its first page ready.
type CanvasFactory func(Layout) (Canvas, error)

// Renderer lays out aggregated lines on paginated pages.
type Renderer struct {
	layout    Layout
	newCanvas CanvasFactory
}

// NewRenderer returns a Renderer producing PDF documents.
func NewRenderer(layout Layout) *Renderer {
	return NewRendererWithCanvas(layout, NewPDFCanvas)
}

// NewRendererWithCanvas returns a Renderer drawing on canvases made by factory.
func NewRendererWithCanvas(layout Layout, factory CanvasFactory) *Renderer {
	return &Renderer{layout: layout, newCanvas: factory}
}

// Layout returns the renderer's layout.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render draws the title followed by one line per entry and returns the
// finished document.
func (r *Renderer) Render(lines []AggregatedLine) ([]byte, error) {
	body, _, err := r.render(lines)
	return body, err
}

func (r *Renderer) render(lines []AggregatedLine) ([]byte, int, error) {
	if len(lines) == 0 {
		return nil, 0, ErrEmptyCart
	}

	l := r.layout
	c, err := r.newCanvas(l)
	if err != nil {
		return nil, 0, err
	}

	pages := 1
	c.SetFont(l.FontFamily, l.FontSize)
	c.DrawText(l.MarginLeft, l.MarginTop, l.Title)

	y := l.MarginTop + 2*l.LineHeight
	for _, line := range lines {
		if y > l.PageHeight-l.MarginBottom {
			c.NewPage()
			c.SetFont(l.FontFamily, l.FontSize)
			pages++
			y = l.MarginTop
		}
		c.DrawText(l.MarginLeft, y, line.String())
		y += l.LineHeight
	}

	body, err := c.Finalize()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to finalize document: %w", err)
	}
	return body, pages, nil
}

type pdfCanvas struct {
	pdf *fpdf.Fpdf
}

// NewPDFCanvas opens an fpdf document with the layout's page size and
// registers the layout's UTF-8 font.
func NewPDFCanvas(l Layout) (Canvas, error) {
	font, err := os.ReadFile(l.FontPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFontResource, l.FontPath)
		}
		return nil, fmt.Errorf("failed to read font %s: %w", l.FontPath, err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(l.FontFamily, "", font)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to register font %s: %w", l.FontPath, err)
	}
	pdf.AddPage()

	return &pdfCanvas{pdf: pdf}, nil
}

func (c *pdfCanvas) SetFont(name string, size float64) {
	c.pdf.SetFont(name, "", size)
}

func (c *pdfCanvas) DrawText(x, y float64, s string) {
	c.pdf.Text(x, y, s)
}

func (c *pdfCanvas) NewPage() {
	c.pdf.AddPage()
}

func (c *pdfCanvas) Finalize() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
