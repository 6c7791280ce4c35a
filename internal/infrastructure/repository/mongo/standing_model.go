package mongo

import (
	"time"

	"github.com/scorepipe/scorepipe/internal/domain/standing"
)

type standingDocument struct {
	League         string    `bson:"league"`
	LeagueKey      string    `bson:"league_key"`
	Country        string    `bson:"country,omitempty"`
	Season         string    `bson:"season,omitempty"`
	Team           string    `bson:"team"`
	TeamKey        string    `bson:"team_key"`
	Position       int       `bson:"position"`
	Played         int       `bson:"played"`
	Wins           int       `bson:"wins"`
	Draws          int       `bson:"draws"`
	Losses         int       `bson:"losses"`
	GoalsFor       int       `bson:"goals_for"`
	GoalsAgainst   int       `bson:"goals_against"`
	GoalDifference int       `bson:"goal_difference"`
	Points         int       `bson:"points"`
	Form           string    `bson:"form,omitempty"`
	CollectedAt    time.Time `bson:"collected_at"`
}

func toStandingDocument(row standing.Row) standingDocument {
	return standingDocument{
		League:         row.League,
		LeagueKey:      row.LeagueKey,
		Country:        row.Country,
		Season:         row.Season,
		Team:           row.Team,
		TeamKey:        row.TeamKey,
		Position:       row.Position,
		Played:         row.Played,
		Wins:           row.Wins,
		Draws:          row.Draws,
		Losses:         row.Losses,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		Form:           row.Form,
		CollectedAt:    row.CollectedAt.UTC(),
	}
}

func (d standingDocument) toDomain() standing.Row {
	return standing.Row{
		League:         d.League,
		LeagueKey:      d.LeagueKey,
		Country:        d.Country,
		Season:         d.Season,
		Team:           d.Team,
		TeamKey:        d.TeamKey,
		Position:       d.Position,
		Played:         d.Played,
		Wins:           d.Wins,
		Draws:          d.Draws,
		Losses:         d.Losses,
		GoalsFor:       d.GoalsFor,
		GoalsAgainst:   d.GoalsAgainst,
		GoalDifference: d.GoalDifference,
		Points:         d.Points,
		Form:           d.Form,
		CollectedAt:    d.CollectedAt,
	}
}
