// Package repository defines the scored-city ranking store and errors.
package repository

import (
	"context"

	"github.com/okian/riskradar/internal/domain/model"
)

// Store provides read access to the latest scenario's scored records.
// Writes happen only as wholesale snapshot replacement.
type Store interface {
	// Replace swaps in a full set of scored records, assigning ranks by
	// composite score descending.
	Replace(ctx context.Context, records []model.CompositeScoreRecord)

	// City returns the scored record for a city id.
	// Returns ErrNotFound if the city is unknown.
	City(ctx context.Context, id string) (model.CompositeScoreRecord, error)

	// TopN returns the n highest-risk records in rank order.
	TopN(ctx context.Context, n int) ([]model.CompositeScoreRecord, error)

	// Count returns the number of cities in the current snapshot.
	Count(ctx context.Context) int
}
