package repository

import "errors"

// Sentinel kinds for ranking store errors.
var (
	ErrNotFound     = errors.New("city not found")
	ErrInvalidLimit = errors.New("invalid ranking limit")
)
