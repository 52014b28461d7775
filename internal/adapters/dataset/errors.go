package dataset

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	// ErrSchema marks a dataset missing an expected column.
	ErrSchema = errors.New("dataset schema invalid")

	// ErrRow marks a row whose values cannot be parsed or normalized.
	ErrRow = errors.New("invalid dataset row")

	// ErrEmptyDataset marks a dataset with a header but no usable rows.
	ErrEmptyDataset = errors.New("dataset contains no rows")
)
