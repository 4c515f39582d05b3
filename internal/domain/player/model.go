package player

// Position categories used by the fantasy source.
const (
	PositionGoalkeeper = "GK"
	PositionDefender   = "DEF"
	PositionMidfielder = "MID"
	PositionForward    = "FWD"
)

// Positions in leaderboard display order.
var Positions = []string{PositionForward, PositionMidfielder, PositionDefender, PositionGoalkeeper}

// Record is one fantasy player's season snapshot. Name is the short
// display name ("Haaland"), FullName the registered name where the
// source provides one.
type Record struct {
	Name        string
	FullName    string
	Team        string
	Position    string
	Minutes     int
	Goals       int
	Assists     int
	CleanSheets int
	YellowCards int
	RedCards    int
	Price       float64
	BonusPoints int
	TotalPoints int
}

// TotalCards is the combined yellow and red card count.
func (r Record) TotalCards() int {
	return r.YellowCards + r.RedCards
}
