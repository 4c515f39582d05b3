package understat

import (
	"sort"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/matchpulse/matchpulse/internal/domain/xg"
	"github.com/matchpulse/matchpulse/internal/reconcile"
)

type teamPayload struct {
	Title   string `json:"title"`
	History []struct {
		XG     float64 `json:"xG"`
		XGA    float64 `json:"xGA"`
		NPXG   float64 `json:"npxG"`
		Scored int     `json:"scored"`
		Missed int     `json:"missed"`
	} `json:"history"`
}

// playersData serializes every numeric field as a string.
type playerPayload struct {
	PlayerName string `json:"player_name"`
	TeamTitle  string `json:"team_title"`
	Position   string `json:"position"`
	Time       string `json:"time"`
	Goals      string `json:"goals"`
	XG         string `json:"xG"`
	Assists    string `json:"assists"`
	XA         string `json:"xA"`
	Shots      string `json:"shots"`
	KeyPasses  string `json:"key_passes"`
	NPXG       string `json:"npxG"`
}

// parseTeams sums each team's per-match history into season totals.
// Teams without history rows are skipped. Output is sorted by team name
// since the source is a map.
func parseTeams(raw []byte, teams *reconcile.TeamMapper) ([]xg.TeamRecord, error) {
	var payload map[string]teamPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode teamsData payload")
	}

	out := make([]xg.TeamRecord, 0, len(payload))
	for _, t := range payload {
		if len(t.History) == 0 {
			continue
		}

		rec := xg.TeamRecord{Team: normalizeTeam(t.Title, teams)}
		for _, h := range t.History {
			rec.XGFor += h.XG
			rec.XGAgainst += h.XGA
			rec.NPXG += h.NPXG
			rec.GoalsFor += h.Scored
			rec.GoalsAgainst += h.Missed
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Team < out[j].Team })
	return out, nil
}

func parsePlayers(raw []byte, teams *reconcile.TeamMapper) ([]xg.PlayerRecord, error) {
	var payload []playerPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode playersData payload")
	}

	out := make([]xg.PlayerRecord, 0, len(payload))
	for _, p := range payload {
		out = append(out, xg.PlayerRecord{
			Name:      p.PlayerName,
			Team:      normalizeTeamList(p.TeamTitle, teams),
			Position:  p.Position,
			Minutes:   atoi(p.Time),
			Goals:     atoi(p.Goals),
			XG:        atof(p.XG),
			Assists:   atoi(p.Assists),
			XA:        atof(p.XA),
			Shots:     atoi(p.Shots),
			KeyPasses: atoi(p.KeyPasses),
			NPXG:      atof(p.NPXG),
		})
	}
	return out, nil
}

func normalizeTeam(name string, teams *reconcile.TeamMapper) string {
	return teams.Canonical(strings.ReplaceAll(name, "_", " "))
}

// normalizeTeamList handles mid-season transfers, where team_title is a
// comma-joined list of clubs.
func normalizeTeamList(names string, teams *reconcile.TeamMapper) string {
	parts := strings.Split(names, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, normalizeTeam(t, teams))
		}
	}
	return strings.Join(out, ",")
}

func atoi(v string) int {
	if v == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}

func atof(v string) float64 {
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
