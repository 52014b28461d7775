package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	// ErrPillarMismatch marks a gap vector and weight configuration whose
	// pillar sets differ. Validated inputs never trigger this.
	ErrPillarMismatch = errors.New("gap vector and weight configuration pillar sets differ")
)
