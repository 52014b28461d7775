package weights

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrConfiguration is the umbrella kind for invalid weight requests.
	ErrConfiguration = errors.New("invalid weight configuration")

	// ErrNoPositiveWeight marks a request where every weight is zero.
	ErrNoPositiveWeight = fmt.Errorf("%w: at least one weight must be positive", ErrConfiguration)

	// ErrNegativeWeight marks a negative or non-finite weight.
	ErrNegativeWeight = fmt.Errorf("%w: weights must be finite and non-negative", ErrConfiguration)

	// ErrPillarMismatch marks a request whose pillar keys do not match the
	// engine's pillar set exactly.
	ErrPillarMismatch = fmt.Errorf("%w: pillar set mismatch", ErrConfiguration)
)
