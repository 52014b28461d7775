package normalize

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrValidation is the umbrella kind for malformed or degenerate
	// indicator data.
	ErrValidation = errors.New("indicator validation failed")

	// ErrDegenerateBounds marks a reference range that collapses to a
	// single point, leaving the gap undefined.
	ErrDegenerateBounds = fmt.Errorf("%w: degenerate reference range", ErrValidation)

	// ErrMissingValue marks a raw value that is absent or non-numeric
	// (NaN or infinite).
	ErrMissingValue = fmt.Errorf("%w: missing or non-numeric value", ErrValidation)
)
