// Package types contains common types used across the application
package types

import "github.com/okian/riskradar/internal/domain/weights"

// Scenario identifies one applied weighting. The ID is informational; score
// equality depends only on the weights.
type Scenario struct {
	ID      string                `json:"id"`
	Weights weights.Configuration `json:"weights"`
}
