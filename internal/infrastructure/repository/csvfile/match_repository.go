package csvfile

import (
	"context"

	"github.com/matchpulse/matchpulse/internal/domain/match"
)

var matchHeader = []string{
	"match_id", "season", "date", "time",
	"home_team", "away_team",
	"home_goals", "away_goals", "result",
	"ht_home_goals", "ht_away_goals", "ht_result",
	"referee",
	"home_shots", "away_shots",
	"home_shots_on_target", "away_shots_on_target",
	"home_fouls", "away_fouls",
	"home_corners", "away_corners",
	"home_yellows", "away_yellows",
	"home_reds", "away_reds",
	"total_goals", "total_shots", "total_fouls", "total_cards",
}

// MatchRepository round-trips cleansed match records through
// matches_clean.csv so later runs work without the network.
type MatchRepository struct {
	path string
}

func NewMatchRepository(path string) *MatchRepository {
	return &MatchRepository{path: path}
}

func (r *MatchRepository) ListAll(_ context.Context) ([]match.Record, error) {
	rows, err := readRows(r.path)
	if err != nil {
		return nil, err
	}

	out := make([]match.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Record{
			MatchID:   row.integer("match_id"),
			Season:    row.str("season"),
			Date:      row.str("date"),
			Time:      row.str("time"),
			HomeTeam:  row.str("home_team"),
			AwayTeam:  row.str("away_team"),
			HomeGoals: row.integer("home_goals"),
			AwayGoals: row.integer("away_goals"),
			Result:    row.str("result"),

			HTHomeGoals: row.integer("ht_home_goals"),
			HTAwayGoals: row.integer("ht_away_goals"),
			HTResult:    row.str("ht_result"),

			Referee: row.str("referee"),

			HomeShots:         row.integer("home_shots"),
			AwayShots:         row.integer("away_shots"),
			HomeShotsOnTarget: row.integer("home_shots_on_target"),
			AwayShotsOnTarget: row.integer("away_shots_on_target"),
			HomeFouls:         row.integer("home_fouls"),
			AwayFouls:         row.integer("away_fouls"),
			HomeCorners:       row.integer("home_corners"),
			AwayCorners:       row.integer("away_corners"),
			HomeYellows:       row.integer("home_yellows"),
			AwayYellows:       row.integer("away_yellows"),
			HomeReds:          row.integer("home_reds"),
			AwayReds:          row.integer("away_reds"),

			TotalGoals: row.integer("total_goals"),
			TotalShots: row.integer("total_shots"),
			TotalFouls: row.integer("total_fouls"),
			TotalCards: row.integer("total_cards"),
		})
	}
	return out, nil
}

func (r *MatchRepository) SaveAll(_ context.Context, records []match.Record) error {
	rows := make([][]string, 0, len(records))
	for _, m := range records {
		rows = append(rows, []string{
			itoa(m.MatchID), m.Season, m.Date, m.Time,
			m.HomeTeam, m.AwayTeam,
			itoa(m.HomeGoals), itoa(m.AwayGoals), m.Result,
			itoa(m.HTHomeGoals), itoa(m.HTAwayGoals), m.HTResult,
			m.Referee,
			itoa(m.HomeShots), itoa(m.AwayShots),
			itoa(m.HomeShotsOnTarget), itoa(m.AwayShotsOnTarget),
			itoa(m.HomeFouls), itoa(m.AwayFouls),
			itoa(m.HomeCorners), itoa(m.AwayCorners),
			itoa(m.HomeYellows), itoa(m.AwayYellows),
			itoa(m.HomeReds), itoa(m.AwayReds),
			itoa(m.TotalGoals), itoa(m.TotalShots), itoa(m.TotalFouls), itoa(m.TotalCards),
		})
	}
	return writeRows(r.path, matchHeader, rows)
}
