package player

import "context"

// Repository provides the optional fantasy player dataset.
type Repository interface {
	ListAll(ctx context.Context) ([]Record, error)
	SaveAll(ctx context.Context, records []Record) error
}
