package recipe

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrNotFound          = errors.New("recipe not found")
	ErrForbidden         = errors.New("only the author can change this recipe")
	ErrUnknownIngredient = errors.New("unknown ingredient")
	ErrAlreadyFavorited  = errors.New("recipe is already in favorites")
	ErrNotFavorited      = errors.New("recipe is not in favorites")
)

// Recipe is a recipe as seen by a particular viewer.
type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	Image       string // path relative to the media root
	Text        string
	CookingTime int
	CreatedAt   time.Time
	Ingredients []IngredientLine

	IsFavorited      bool
	IsInShoppingCart bool
}

// IngredientLine is one ingredient of a recipe with its amount.
type IngredientLine struct {
	ID              int64
	Name            string
	MeasurementUnit string
	Amount          int
}

// IngredientAmount references a catalogue ingredient in a write request.
type IngredientAmount struct {
	ID     int64 `json:"id" validate:"required"`
	Amount int   `json:"amount" validate:"required,gte=1,max=32000"`
}

// Params holds the writable fields of a recipe. Image is a base64 data
// URI; it is mandatory on create and optional on update.
type Params struct {
	Name        string             `json:"name" validate:"required,max=256"`
	Text        string             `json:"text" validate:"required"`
	Image       string             `json:"image"`
	CookingTime int                `json:"cooking_time" validate:"required,gte=1,max=32000"`
	Ingredients []IngredientAmount `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
}

// Filter narrows a recipe listing. Nil flags are not applied.
type Filter struct {
	AuthorID         int64
	IsFavorited      *bool
	IsInShoppingCart *bool
}

// ShortLink returns the public link to a recipe page.
func ShortLink(host string, id int64) string {
	return fmt.Sprintf("%s/recipes/%d", strings.TrimRight(host, "/"), id)
}

// PlainText strips markup from rich-editor input, keeping one line per
// block element.
func PlainText(s string) (string, error) {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("failed to parse recipe text: %w", err)
	}

	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
