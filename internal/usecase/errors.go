package usecase

import "errors"

var (
	// ErrNoMatches is the one fatal aggregation failure: without the
	// required match dataset the pipeline refuses to emit a misleading
	// empty document.
	ErrNoMatches = errors.New("match dataset is missing or empty")

	ErrInvalidInput          = errors.New("invalid input")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
