package config

// Season drives download URLs, API endpoints, and fetch mode selection.
// Code is the football-data.co.uk URL path segment; UnderstatYear is the
// season start year Understat keys on.
type Season struct {
	Label         string
	Code          string
	UnderstatYear string
	FPLMode       string
}

const (
	FPLModeHistorical = "historical"
	FPLModeLive       = "live"
)

const defaultCurrentSeason = "2025-26"

// activeSeasons is the single source of truth for configured seasons.
// Adding a season means one entry here, its team list in canonicalTeams,
// and any new synonyms in the name maps.
var activeSeasons = []Season{
	{Label: "2022-23", Code: "2223", UnderstatYear: "2022", FPLMode: FPLModeHistorical},
	{Label: "2023-24", Code: "2324", UnderstatYear: "2023", FPLMode: FPLModeHistorical},
	{Label: "2024-25", Code: "2425", UnderstatYear: "2024", FPLMode: FPLModeHistorical},
	{Label: "2025-26", Code: "2526", UnderstatYear: "2025", FPLMode: FPLModeLive},
}

// ActiveSeasons returns a copy so callers cannot mutate the table.
func ActiveSeasons() []Season {
	out := make([]Season, len(activeSeasons))
	copy(out, activeSeasons)
	return out
}

func SeasonByLabel(label string) (Season, bool) {
	for _, s := range activeSeasons {
		if s.Label == label {
			return s, true
		}
	}
	return Season{}, false
}

// canonicalTeams lists the master team names per season. Every source
// normalizes to these exact strings; merges across sources depend on it.
var canonicalTeams = map[string][]string{
	"2022-23": {
		"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton",
		"Chelsea", "Crystal Palace", "Everton", "Fulham",
		"Leeds United", "Leicester City", "Liverpool", "Manchester City",
		"Manchester United", "Newcastle United", "Nottingham Forest",
		"Southampton", "Tottenham Hotspur", "West Ham United", "Wolverhampton",
	},
	"2023-24": {
		"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton",
		"Burnley", "Chelsea", "Crystal Palace", "Everton", "Fulham",
		"Liverpool", "Luton Town", "Manchester City", "Manchester United",
		"Newcastle United", "Nottingham Forest", "Sheffield United",
		"Tottenham Hotspur", "West Ham United", "Wolverhampton",
	},
	"2024-25": {
		"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton",
		"Chelsea", "Crystal Palace", "Everton", "Fulham", "Ipswich",
		"Leicester City", "Liverpool", "Manchester City", "Manchester United",
		"Newcastle United", "Nottingham Forest", "Southampton",
		"Tottenham Hotspur", "West Ham United", "Wolverhampton",
	},
	"2025-26": {
		"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton",
		"Burnley", "Chelsea", "Crystal Palace", "Everton", "Fulham",
		"Leeds United", "Liverpool", "Manchester City", "Manchester United",
		"Newcastle United", "Nottingham Forest", "Sunderland",
		"Tottenham Hotspur", "West Ham United", "Wolverhampton",
	},
}

func CanonicalTeams(season string) []string {
	teams := canonicalTeams[season]
	out := make([]string, len(teams))
	copy(out, teams)
	return out
}

// FootballDataNameMap maps football-data.co.uk short names to canonical.
func FootballDataNameMap() map[string]string {
	return map[string]string{
		"Man United":    "Manchester United",
		"Man City":      "Manchester City",
		"Nott'm Forest": "Nottingham Forest",
		"Tottenham":     "Tottenham Hotspur",
		"Newcastle":     "Newcastle United",
		"West Ham":      "West Ham United",
		"Wolves":        "Wolverhampton",
		"Luton":         "Luton Town",
		"Leicester":     "Leicester City",
		"Leeds":         "Leeds United",
	}
}

// FPLNameMap maps the fantasy API's short forms to canonical.
func FPLNameMap() map[string]string {
	return map[string]string{
		"Man Utd":       "Manchester United",
		"Man City":      "Manchester City",
		"Nott'm Forest": "Nottingham Forest",
		"Spurs":         "Tottenham Hotspur",
		"Newcastle":     "Newcastle United",
		"West Ham":      "West Ham United",
		"Wolves":        "Wolverhampton",
		"Luton":         "Luton Town",
		"Leicester":     "Leicester City",
		"Sheffield Utd": "Sheffield United",
		"Leeds":         "Leeds United",
	}
}

// UnderstatNameMap maps Understat's full names, which carry inconsistent
// spacing and suffixes, to canonical.
func UnderstatNameMap() map[string]string {
	return map[string]string{
		"Tottenham":               "Tottenham Hotspur",
		"West Ham":                "West Ham United",
		"Wolverhampton Wanderers": "Wolverhampton",
		"Leicester":               "Leicester City",
		"Leeds":                   "Leeds United",
	}
}
