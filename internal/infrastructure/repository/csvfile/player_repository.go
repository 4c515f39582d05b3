package csvfile

import (
	"context"

	"github.com/matchpulse/matchpulse/internal/domain/player"
)

var playerHeader = []string{
	"player_name", "full_name", "team", "position",
	"goals", "assists", "clean_sheets", "minutes",
	"yellow_cards", "red_cards", "total_points", "price", "bonus",
}

// PlayerRepository round-trips fantasy player records through players.csv.
type PlayerRepository struct {
	path string
}

func NewPlayerRepository(path string) *PlayerRepository {
	return &PlayerRepository{path: path}
}

func (r *PlayerRepository) ListAll(_ context.Context) ([]player.Record, error) {
	rows, err := readRows(r.path)
	if err != nil {
		return nil, err
	}

	out := make([]player.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Record{
			Name:        row.str("player_name"),
			FullName:    row.str("full_name"),
			Team:        row.str("team"),
			Position:    row.str("position"),
			Goals:       row.integer("goals"),
			Assists:     row.integer("assists"),
			CleanSheets: row.integer("clean_sheets"),
			Minutes:     row.integer("minutes"),
			YellowCards: row.integer("yellow_cards"),
			RedCards:    row.integer("red_cards"),
			TotalPoints: row.integer("total_points"),
			Price:       row.float("price"),
			BonusPoints: row.integer("bonus"),
		})
	}
	return out, nil
}

func (r *PlayerRepository) SaveAll(_ context.Context, records []player.Record) error {
	rows := make([][]string, 0, len(records))
	for _, p := range records {
		rows = append(rows, []string{
			p.Name, p.FullName, p.Team, p.Position,
			itoa(p.Goals), itoa(p.Assists), itoa(p.CleanSheets), itoa(p.Minutes),
			itoa(p.YellowCards), itoa(p.RedCards), itoa(p.TotalPoints),
			ftoa(p.Price, 1), itoa(p.BonusPoints),
		})
	}
	return writeRows(r.path, playerHeader, rows)
}
