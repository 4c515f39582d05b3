package match

import "sort"

// Result codes as recorded by football-data.co.uk.
const (
	ResultHome = "H"
	ResultDraw = "D"
	ResultAway = "A"
)

// Record is one completed fixture after cleansing: dates in ISO form,
// team names already canonical, derived totals filled in.
type Record struct {
	MatchID   int    `validate:"gt=0"`
	Season    string `validate:"required"`
	Date      string `validate:"required,datetime=2006-01-02"`
	Time      string
	HomeTeam  string `validate:"required"`
	AwayTeam  string `validate:"required"`
	HomeGoals int    `validate:"gte=0"`
	AwayGoals int    `validate:"gte=0"`
	Result    string `validate:"oneof=H D A"`

	HTHomeGoals int
	HTAwayGoals int
	HTResult    string

	Referee string

	HomeShots         int
	AwayShots         int
	HomeShotsOnTarget int
	AwayShotsOnTarget int
	HomeFouls         int
	AwayFouls         int
	HomeCorners       int
	AwayCorners       int
	HomeYellows       int
	AwayYellows       int
	HomeReds          int
	AwayReds          int

	TotalGoals int
	TotalShots int
	TotalFouls int
	TotalCards int
}

// DeriveResult computes the result code from the goal counts. The stored
// code is never trusted blindly; cleansing recomputes it from goals.
func DeriveResult(homeGoals, awayGoals int) string {
	switch {
	case homeGoals > awayGoals:
		return ResultHome
	case homeGoals < awayGoals:
		return ResultAway
	default:
		return ResultDraw
	}
}

// PointsFor returns the points the given team earned from this match,
// and whether the team took part at all.
func (r Record) PointsFor(team string) (int, bool) {
	switch team {
	case r.HomeTeam:
		switch r.Result {
		case ResultHome:
			return 3, true
		case ResultDraw:
			return 1, true
		default:
			return 0, true
		}
	case r.AwayTeam:
		switch r.Result {
		case ResultAway:
			return 3, true
		case ResultDraw:
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// BySeason filters records down to one season label.
func BySeason(records []Record, season string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Season == season {
			out = append(out, r)
		}
	}
	return out
}

// Teams returns the sorted set of team names appearing in the records.
func Teams(records []Record) []string {
	seen := make(map[string]struct{}, 32)
	out := make([]string, 0, 32)
	for _, r := range records {
		if _, ok := seen[r.HomeTeam]; !ok {
			seen[r.HomeTeam] = struct{}{}
			out = append(out, r.HomeTeam)
		}
		if _, ok := seen[r.AwayTeam]; !ok {
			seen[r.AwayTeam] = struct{}{}
			out = append(out, r.AwayTeam)
		}
	}
	sort.Strings(out)
	return out
}
