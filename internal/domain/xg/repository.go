package xg

import "context"

// Repository provides the optional expected-goals datasets.
type Repository interface {
	ListTeams(ctx context.Context) ([]TeamRecord, error)
	ListPlayers(ctx context.Context) ([]PlayerRecord, error)
	SaveTeams(ctx context.Context, records []TeamRecord) error
	SavePlayers(ctx context.Context, records []PlayerRecord) error
}
