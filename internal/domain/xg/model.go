// Package xg holds the expected-goals enrichment records scraped from
// Understat. They join to the rest of the pipeline by name only; no
// shared key exists across sources.
package xg

import "strings"

// TeamRecord is one team's season xG totals.
type TeamRecord struct {
	Team         string
	XGFor        float64
	XGAgainst    float64
	GoalsFor     int
	GoalsAgainst int
	NPXG         float64
}

// PlayerRecord is one player's season xG line. Team may be a
// comma-joined list for players transferred mid-season.
type PlayerRecord struct {
	Name      string
	Team      string
	Position  string
	Goals     int
	Assists   int
	Minutes   int
	XG        float64
	XA        float64
	Shots     int
	KeyPasses int
	NPXG      float64
}

// TeamsPlayedFor splits the comma-joined team field into the individual
// clubs the player appeared for.
func (r PlayerRecord) TeamsPlayedFor() []string {
	parts := strings.Split(r.Team, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
