package shopping

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyCart is returned when there is nothing to put on a shopping list.
var ErrEmptyCart = errors.New("cart is empty")

// CartLine is one ingredient line of one recipe in a cart.
type CartLine struct {
	IngredientName  string
	MeasurementUnit string
	Amount          int
}

// AggregatedLine is the total amount of one ingredient across a cart.
type AggregatedLine struct {
	IngredientName  string
	MeasurementUnit string
	TotalAmount     int
}

type lineKey struct {
	name string
	unit string
}

// Aggregate sums amounts per (ingredient name, measurement unit) and
// returns the totals sorted by name, then unit. The result does not
// depend on the order of lines.
func Aggregate(lines []CartLine) ([]AggregatedLine, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	totals := make(map[lineKey]int, len(lines))
	for _, l := range lines {
		totals[lineKey{l.IngredientName, l.MeasurementUnit}] += l.Amount
	}

	out := make([]AggregatedLine, 0, len(totals))
	for k, total := range totals {
		out = append(out, AggregatedLine{
			IngredientName:  k.name,
			MeasurementUnit: k.unit,
			TotalAmount:     total,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IngredientName != out[j].IngredientName {
			return out[i].IngredientName < out[j].IngredientName
		}
		return out[i].MeasurementUnit < out[j].MeasurementUnit
	})
	return out, nil
}

// String renders the line as "name (unit) — amount".
func (l AggregatedLine) String() string {
	return fmt.Sprintf("%s (%s) — %d", l.IngredientName, l.MeasurementUnit, l.TotalAmount)
}

// FormatText renders lines as a plain-text list, one newline-terminated
// line per ingredient.
func FormatText(lines []AggregatedLine) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
