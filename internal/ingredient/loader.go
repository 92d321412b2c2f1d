package ingredient

import (
	"context"
	"fmt"
	"os"

	"foodgram/internal/logging"

	"github.com/goccy/go-json"
)

// LoadResult summarises a catalogue import.
type LoadResult struct {
	Processed int
	Created   int
	Existing  int
	Skipped   int
}

// LoadFile imports a JSON array of {"name", "measurement_unit"} objects.
// Malformed entries are skipped; the rest is applied in one transaction.
func (r *Repository) LoadFile(ctx context.Context, path string) (LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("failed to read ingredients file: %w", err)
	}
	return r.Load(ctx, data)
}

// Load imports ingredients from raw JSON.
func (r *Repository) Load(ctx context.Context, data []byte) (LoadResult, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return LoadResult{}, fmt.Errorf("invalid ingredients data, expected a JSON array: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return LoadResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)

	var res LoadResult
	for _, raw := range items {
		res.Processed++

		var item struct {
			Name            *string `json:"name"`
			MeasurementUnit *string `json:"measurement_unit"`
		}
		if err := json.Unmarshal(raw, &item); err != nil || item.Name == nil || item.MeasurementUnit == nil || *item.Name == "" {
			logging.Warn().RawJSON("item", raw).Msg("skipping malformed ingredient")
			res.Skipped++
			continue
		}

		created, err := upsert(ctx, q, *item.Name, *item.MeasurementUnit)
		if err != nil {
			return LoadResult{}, err
		}
		if created {
			res.Created++
		} else {
			res.Existing++
		}
	}

	if err := tx.Commit(); err != nil {
		return LoadResult{}, fmt.Errorf("failed to commit ingredients: %w", err)
	}
	return res, nil
}
