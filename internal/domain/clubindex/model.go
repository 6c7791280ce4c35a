package clubindex

import "time"

// ClubAggregate is the derived per-club statistics document projected into
// the search store. It is recomputed wholesale from finished match history;
// nothing mutates it in place.
type ClubAggregate struct {
	Key            string    `json:"key"`
	Name           string    `json:"name"`
	Country        string    `json:"country"`
	Leagues        []string  `json:"leagues"`
	Logo           string    `json:"logo"`
	Matches        int       `json:"total_matches"`
	Wins           int       `json:"wins"`
	Draws          int       `json:"draws"`
	Losses         int       `json:"losses"`
	GoalsFor       int       `json:"goals_for"`
	GoalsAgainst   int       `json:"goals_against"`
	GoalDifference int       `json:"goal_difference"`
	WinRate        float64   `json:"win_rate"`
	UpdatedAt      time.Time `json:"updated_at"`
}
