package standing

import "time"

// Row is one league-table row. Identity is (league, country, season, team);
// positions are unique and contiguous within a league/season table.
type Row struct {
	League       string
	LeagueKey    string
	Country      string
	Season       string
	Team         string
	TeamKey      string
	Position     int
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	// GoalDifference is always recomputed as GoalsFor - GoalsAgainst.
	GoalDifference int
	Points         int
	// Form holds up to five W/D/L characters, most recent first.
	Form        string
	CollectedAt time.Time
}

func (r Row) MutableEquals(other Row) bool {
	return r.Position == other.Position &&
		r.Played == other.Played &&
		r.Wins == other.Wins &&
		r.Draws == other.Draws &&
		r.Losses == other.Losses &&
		r.GoalsFor == other.GoalsFor &&
		r.GoalsAgainst == other.GoalsAgainst &&
		r.Points == other.Points &&
		r.Form == other.Form
}
