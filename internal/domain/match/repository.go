package match

import "context"

// Repository provides the cleansed multi-season match dataset.
type Repository interface {
	ListAll(ctx context.Context) ([]Record, error)
	SaveAll(ctx context.Context, records []Record) error
}
