package footballdata

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matchpulse/matchpulse/internal/domain/match"
	"github.com/matchpulse/matchpulse/internal/reconcile"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Raw files carry 107-120 columns per season; most are bookmaker odds.
// Only the match-event columns survive cleansing.
var dateLayouts = []string{"02/01/2006", "02/01/06"}

const unknownReferee = "Unknown"

// CleanseSeason turns one season's raw CSV into typed records. Rows with
// unparsable dates or null goals are dropped; peripheral stats null-fill
// to zero; team names map to canonical; the result code is recomputed
// from goals. Match IDs are assigned later, across all seasons.
func CleanseSeason(raw []byte, season string, teams *reconcile.TeamMapper) ([]match.Record, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse season %s csv: %w", season, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("season %s csv has no data rows", season)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}

	out := make([]match.Record, 0, len(records)-1)
	for _, rec := range records[1:] {
		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		date, ok := parseDate(cell("Date"))
		if !ok {
			continue
		}

		homeGoals, ok := parseGoals(cell("FTHG"))
		if !ok {
			continue
		}
		awayGoals, ok := parseGoals(cell("FTAG"))
		if !ok {
			continue
		}

		referee := cell("Referee")
		if referee == "" {
			referee = unknownReferee
		}

		htHome := parseStat(cell("HTHG"))
		htAway := parseStat(cell("HTAG"))

		r := match.Record{
			Season:    season,
			Date:      date,
			Time:      cell("Time"),
			HomeTeam:  teams.Canonical(cell("HomeTeam")),
			AwayTeam:  teams.Canonical(cell("AwayTeam")),
			HomeGoals: homeGoals,
			AwayGoals: awayGoals,
			Result:    match.DeriveResult(homeGoals, awayGoals),

			HTHomeGoals: htHome,
			HTAwayGoals: htAway,
			HTResult:    match.DeriveResult(htHome, htAway),

			Referee: referee,

			HomeShots:         parseStat(cell("HS")),
			AwayShots:         parseStat(cell("AS")),
			HomeShotsOnTarget: parseStat(cell("HST")),
			AwayShotsOnTarget: parseStat(cell("AST")),
			HomeFouls:         parseStat(cell("HF")),
			AwayFouls:         parseStat(cell("AF")),
			HomeCorners:       parseStat(cell("HC")),
			AwayCorners:       parseStat(cell("AC")),
			HomeYellows:       parseStat(cell("HY")),
			AwayYellows:       parseStat(cell("AY")),
			HomeReds:          parseStat(cell("HR")),
			AwayReds:          parseStat(cell("AR")),
		}
		r.TotalGoals = r.HomeGoals + r.AwayGoals
		r.TotalShots = r.HomeShots + r.AwayShots
		r.TotalFouls = r.HomeFouls + r.AwayFouls
		r.TotalCards = r.HomeYellows + r.AwayYellows + r.HomeReds + r.AwayReds

		out = append(out, r)
	}
	return out, nil
}

// parseDate normalizes DD/MM/YYYY and DD/MM/YY to ISO 8601.
func parseDate(v string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// parseGoals rejects null goal cells; a missing goal count means bad data.
func parseGoals(v string) (int, bool) {
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int(f), true
}

// parseStat null-fills peripheral stats; null likely means "not recorded".
func parseStat(v string) int {
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int(f)
}
