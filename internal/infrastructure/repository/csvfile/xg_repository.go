package csvfile

import (
	"context"

	"github.com/matchpulse/matchpulse/internal/domain/xg"
)

var (
	xgTeamHeader = []string{
		"team", "xg_for", "xg_against", "goals_for", "goals_against", "npxg_for",
	}
	xgPlayerHeader = []string{
		"player_name", "team", "position", "minutes",
		"goals", "xg", "assists", "xa", "shots", "key_passes", "npxg",
	}
)

// XGRepository round-trips the Understat season totals through
// xg_teams.csv and xg_players.csv.
type XGRepository struct {
	teamsPath   string
	playersPath string
}

func NewXGRepository(teamsPath, playersPath string) *XGRepository {
	return &XGRepository{teamsPath: teamsPath, playersPath: playersPath}
}

func (r *XGRepository) ListTeams(_ context.Context) ([]xg.TeamRecord, error) {
	rows, err := readRows(r.teamsPath)
	if err != nil {
		return nil, err
	}

	out := make([]xg.TeamRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, xg.TeamRecord{
			Team:         row.str("team"),
			XGFor:        row.float("xg_for"),
			XGAgainst:    row.float("xg_against"),
			GoalsFor:     row.integer("goals_for"),
			GoalsAgainst: row.integer("goals_against"),
			NPXG:         row.float("npxg_for"),
		})
	}
	return out, nil
}

func (r *XGRepository) ListPlayers(_ context.Context) ([]xg.PlayerRecord, error) {
	rows, err := readRows(r.playersPath)
	if err != nil {
		return nil, err
	}

	out := make([]xg.PlayerRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, xg.PlayerRecord{
			Name:      row.str("player_name"),
			Team:      row.str("team"),
			Position:  row.str("position"),
			Minutes:   row.integer("minutes"),
			Goals:     row.integer("goals"),
			XG:        row.float("xg"),
			Assists:   row.integer("assists"),
			XA:        row.float("xa"),
			Shots:     row.integer("shots"),
			KeyPasses: row.integer("key_passes"),
			NPXG:      row.float("npxg"),
		})
	}
	return out, nil
}

func (r *XGRepository) SaveTeams(_ context.Context, records []xg.TeamRecord) error {
	rows := make([][]string, 0, len(records))
	for _, t := range records {
		rows = append(rows, []string{
			t.Team,
			ftoa(t.XGFor, 2), ftoa(t.XGAgainst, 2),
			itoa(t.GoalsFor), itoa(t.GoalsAgainst),
			ftoa(t.NPXG, 2),
		})
	}
	return writeRows(r.teamsPath, xgTeamHeader, rows)
}

func (r *XGRepository) SavePlayers(_ context.Context, records []xg.PlayerRecord) error {
	rows := make([][]string, 0, len(records))
	for _, p := range records {
		rows = append(rows, []string{
			p.Name, p.Team, p.Position, itoa(p.Minutes),
			itoa(p.Goals), ftoa(p.XG, 2),
			itoa(p.Assists), ftoa(p.XA, 2),
			itoa(p.Shots), itoa(p.KeyPasses), ftoa(p.NPXG, 2),
		})
	}
	return writeRows(r.playersPath, xgPlayerHeader, rows)
}
