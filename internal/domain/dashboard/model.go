// Package dashboard defines the denormalized analytics document the
// pipeline emits. The front end renders it without further computation,
// so every section is fully precomputed and every optional section is an
// explicit JSON null when its source did not load.
package dashboard

// Availability records which optional sources loaded. It is set once by
// the loader and passed into every service that consults an optional
// source; services short-circuit to nil sections instead of computing
// on empty data.
type Availability struct {
	HasFantasy bool
	HasXG      bool
}

// SeasonStatus describes progress through the current season.
type SeasonStatus struct {
	MatchesPlayed   int    `json:"matches_played"`
	MatchesTotal    int    `json:"matches_total"`
	MatchdaysPlayed int    `json:"matchdays_played"`
	MatchdaysTotal  int    `json:"matchdays_total"`
	IsComplete      bool   `json:"is_complete"`
	LastMatchDate   string `json:"last_match_date"`
}

// TableRow is one team's aggregated league-table position.
type TableRow struct {
	Team               string  `json:"team"`
	Position           int     `json:"position"`
	Played             int     `json:"played"`
	Won                int     `json:"won"`
	Drawn              int     `json:"drawn"`
	Lost               int     `json:"lost"`
	GoalsFor           int     `json:"goals_for"`
	GoalsAgainst       int     `json:"goals_against"`
	GoalDifference     int     `json:"goal_difference"`
	Points             int     `json:"points"`
	HomeWon            int     `json:"home_won"`
	HomeDrawn          int     `json:"home_drawn"`
	HomeLost           int     `json:"home_lost"`
	AwayWon            int     `json:"away_won"`
	AwayDrawn          int     `json:"away_drawn"`
	AwayLost           int     `json:"away_lost"`
	CleanSheets        int     `json:"clean_sheets"`
	TotalShots         int     `json:"total_shots"`
	TotalShotsOnTarget int     `json:"total_shots_on_target"`
	ShotAccuracy       float64 `json:"shot_accuracy"`
	GoalsPerGame       float64 `json:"goals_per_game"`
}

// CumulativePoint is one step of a team's points-race series, indexed by
// the team's Nth played fixture rather than a calendar round.
type CumulativePoint struct {
	Matchday int `json:"matchday"`
	Points   int `json:"points"`
}

// MonthlyTrend aggregates all matches of one calendar month.
type MonthlyTrend struct {
	Month      string  `json:"month"`
	Matches    int     `json:"matches"`
	TotalGoals int     `json:"total_goals"`
	AvgGoals   float64 `json:"avg_goals"`
	HomeWins   int     `json:"home_wins"`
	Draws      int     `json:"draws"`
	AwayWins   int     `json:"away_wins"`
}

// HomeAwaySplit is the league-wide venue advantage summary.
type HomeAwaySplit struct {
	HomeWins     int     `json:"home_wins"`
	Draws        int     `json:"draws"`
	AwayWins     int     `json:"away_wins"`
	HomeGoalsAvg float64 `json:"home_goals_avg"`
	AwayGoalsAvg float64 `json:"away_goals_avg"`
	TotalMatches int     `json:"total_matches"`
	HomeWinPct   float64 `json:"home_win_pct"`
	DrawPct      float64 `json:"draw_pct"`
	AwayWinPct   float64 `json:"away_win_pct"`
}

// RefereeStat summarizes one official across at least three matches.
type RefereeStat struct {
	Referee   string  `json:"referee"`
	Matches   int     `json:"matches"`
	AvgGoals  float64 `json:"avg_goals"`
	AvgFouls  float64 `json:"avg_fouls"`
	AvgCards  float64 `json:"avg_cards"`
	TotalReds int     `json:"total_reds"`
}

// ScorelineCount is one exact scoreline and its frequency.
type ScorelineCount struct {
	Score string `json:"score"`
	Count int    `json:"count"`
}

// SeasonComparison contextualizes one season against the others.
type SeasonComparison struct {
	Season     string  `json:"season"`
	Matches    int     `json:"matches"`
	AvgGoals   float64 `json:"avg_goals"`
	AvgCards   float64 `json:"avg_cards"`
	HomeWinPct float64 `json:"home_win_pct"`
	AvgFouls   float64 `json:"avg_fouls"`
}

// XGTableRow compares a team's expected and actual goals, with the
// already-computed league points alongside.
type XGTableRow struct {
	Team         string  `json:"team"`
	XGFor        float64 `json:"xg_for"`
	XGAgainst    float64 `json:"xg_against"`
	GoalsFor     int     `json:"goals_for"`
	GoalsAgainst int     `json:"goals_against"`
	XGDifference float64 `json:"xg_difference"`
	ActualPoints int     `json:"actual_points"`
}

// XGScatterPoint is one team's xG-vs-actual comparison.
type XGScatterPoint struct {
	Team        string  `json:"team"`
	TotalXG     float64 `json:"total_xg"`
	ActualGoals int     `json:"actual_goals"`
	Difference  float64 `json:"difference"`
}

// ShotQualityRow is a team's xG per shot. Three decimals: the inter-team
// spread is roughly 0.10-0.15, so two decimals would collapse half the
// league to identical values.
type ShotQualityRow struct {
	Team       string  `json:"team"`
	TotalShots int     `json:"total_shots"`
	XGPerShot  float64 `json:"xg_per_shot"`
}

// TopScorer is one entry of the xG-source scorer list, with
// goals-minus-xG as an over/under-performance signal.
type TopScorer struct {
	PlayerName   string  `json:"player_name"`
	Team         string  `json:"team"`
	Goals        int     `json:"goals"`
	Assists      int     `json:"assists"`
	XG           float64 `json:"xg"`
	XA           float64 `json:"xa"`
	Minutes      int     `json:"minutes"`
	GoalsMinusXG float64 `json:"goals_minus_xg"`
	Position     string  `json:"position"`
}

// PlayerValueRow ranks scorers by goals per million of price.
type PlayerValueRow struct {
	PlayerName      string  `json:"player_name"`
	Team            string  `json:"team"`
	Price           float64 `json:"price"`
	Goals           int     `json:"goals"`
	GoalsPerMillion float64 `json:"goals_per_million"`
}

// GoalScorerRow is one entry of the fantasy-source scorer leaderboard.
// XG and Shots come from the reconciled xG record and are null when no
// cross-source match was found or the xG source was absent.
type GoalScorerRow struct {
	Rank       int      `json:"rank"`
	PlayerName string   `json:"player_name"`
	Team       string   `json:"team"`
	Position   string   `json:"position"`
	Goals      int      `json:"goals"`
	Assists    int      `json:"assists"`
	Minutes    int      `json:"minutes"`
	GoalsPer90 float64  `json:"goals_per_90"`
	Price      float64  `json:"price"`
	XG         *float64 `json:"xg"`
	Shots      *int     `json:"shots"`
}

// AssistLeaderRow is one entry of the assist leaderboard.
type AssistLeaderRow struct {
	Rank         int      `json:"rank"`
	PlayerName   string   `json:"player_name"`
	Team         string   `json:"team"`
	Position     string   `json:"position"`
	Assists      int      `json:"assists"`
	Goals        int      `json:"goals"`
	Minutes      int      `json:"minutes"`
	AssistsPer90 float64  `json:"assists_per_90"`
	XA           *float64 `json:"xa"`
	KeyPasses    *int     `json:"key_passes"`
	Price        float64  `json:"price"`
}

// IronManRow is the most-used player of one team.
type IronManRow struct {
	PlayerName      string  `json:"player_name"`
	Team            string  `json:"team"`
	Position        string  `json:"position"`
	Minutes         int     `json:"minutes"`
	GamesEquivalent float64 `json:"games_equivalent"`
	Goals           int     `json:"goals"`
	Assists         int     `json:"assists"`
}

// PositionAggregate totals goal involvement for one position group.
type PositionAggregate struct {
	Position     string  `json:"position"`
	TotalGoals   int     `json:"total_goals"`
	TotalAssists int     `json:"total_assists"`
	PlayerCount  int     `json:"player_count"`
	AvgGoals     float64 `json:"avg_goals"`
}

// BestValueRow ranks established players by goal involvement per million.
type BestValueRow struct {
	Rank          int     `json:"rank"`
	PlayerName    string  `json:"player_name"`
	Team          string  `json:"team"`
	Position      string  `json:"position"`
	Price         float64 `json:"price"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	GAPerMillion  float64 `json:"ga_per_million"`
	Minutes       int     `json:"minutes"`
}

// DisciplinaryRow is one entry of the most-carded list.
type DisciplinaryRow struct {
	PlayerName string `json:"player_name"`
	Team       string `json:"team"`
	Position   string `json:"position"`
	Yellows    int    `json:"yellows"`
	Reds       int    `json:"reds"`
	TotalCards int    `json:"total_cards"`
	Minutes    int    `json:"minutes"`
}

// Leaderboards groups the fantasy-derived player boards.
type Leaderboards struct {
	GoalScorers     []GoalScorerRow     `json:"goal_scorers"`
	AssistLeaders   []AssistLeaderRow   `json:"assist_leaders"`
	IronMen         []IronManRow        `json:"iron_men"`
	GoalsByPosition []PositionAggregate `json:"goals_by_position"`
	BestValue       []BestValueRow      `json:"best_value"`
	MostCards       []DisciplinaryRow   `json:"most_cards"`
}

// MoneyTeamRow is one team's squad-spend-vs-points comparison.
type MoneyTeamRow struct {
	Team           string  `json:"team"`
	SquadValue     float64 `json:"squad_value"`
	Points         int     `json:"points"`
	Played         int     `json:"played"`
	PointsPerMatch float64 `json:"points_per_match"`
	ExpectedPoints float64 `json:"expected_points"`
	OverUnder      float64 `json:"over_under"`
}

// Regression holds the fitted squad-value-to-points line.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
}

// MoneyVsPoints is the spend-vs-performance section.
type MoneyVsPoints struct {
	Teams      []MoneyTeamRow `json:"teams"`
	Regression Regression     `json:"regression"`
}

// Document is the complete dashboard payload. Pointer-typed sections are
// optional and serialize as literal null when their source was absent.
type Document struct {
	GeneratedAt   string  `json:"generated_at"`
	Season        string  `json:"season"`
	Source        string  `json:"source"`
	TotalMatches  int     `json:"total_matches"`
	TotalGoals    int     `json:"total_goals"`
	GoalsPerMatch float64 `json:"goals_per_match"`

	SeasonStatus     SeasonStatus                 `json:"season_status"`
	LeagueTable      []TableRow                   `json:"league_table"`
	CumulativePoints map[string][]CumulativePoint `json:"cumulative_points"`
	MonthlyTrends    []MonthlyTrend               `json:"monthly_trends"`
	HomeAway         HomeAwaySplit                `json:"home_away"`
	RefereeStats     []RefereeStat                `json:"referee_stats"`
	Scorelines       []ScorelineCount             `json:"scoreline_frequency"`
	SeasonComparison []SeasonComparison           `json:"season_comparison"`

	XGTable       *[]XGTableRow     `json:"xg_table"`
	XGVsActual    *[]XGScatterPoint `json:"xg_vs_actual"`
	TopScorers    *[]TopScorer      `json:"top_scorers"`
	ShotQuality   *[]ShotQualityRow `json:"shot_quality"`
	PlayerValue   *[]PlayerValueRow `json:"player_value"`
	Boards        *Leaderboards     `json:"player_leaderboards"`
	MoneyVsPoints *MoneyVsPoints    `json:"money_vs_points"`
}
