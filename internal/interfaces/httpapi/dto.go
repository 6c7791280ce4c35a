package httpapi

import (
	"time"

	"github.com/scorepipe/scorepipe/internal/domain/bracket"
	"github.com/scorepipe/scorepipe/internal/domain/match"
	"github.com/scorepipe/scorepipe/internal/domain/standing"
)

type matchDTO struct {
	ID        string    `json:"id"`
	League    string    `json:"league"`
	Country   string    `json:"country,omitempty"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore *int      `json:"home_score,omitempty"`
	AwayScore *int      `json:"away_score,omitempty"`
	Status    string    `json:"status"`
	KickoffAt time.Time `json:"kickoff_at"`
	HomeLogo  string    `json:"home_logo,omitempty"`
	AwayLogo  string    `json:"away_logo,omitempty"`
}

func toMatchDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:        m.ExternalID,
		League:    m.League,
		Country:   m.Country,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Status:    m.Status,
		KickoffAt: m.KickoffAt,
		HomeLogo:  m.HomeLogo,
		AwayLogo:  m.AwayLogo,
	}
}

type standingDTO struct {
	Position       int    `json:"position"`
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
	Form           string `json:"form,omitempty"`
}

func toStandingDTO(row standing.Row) standingDTO {
	return standingDTO{
		Position:       row.Position,
		Team:           row.Team,
		Played:         row.Played,
		Wins:           row.Wins,
		Draws:          row.Draws,
		Losses:         row.Losses,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		Form:           row.Form,
	}
}

type bracketDTO struct {
	Competition string    `json:"competition"`
	Round       string    `json:"round"`
	RoundOrder  int       `json:"round_order"`
	MatchRef    string    `json:"match_ref"`
	HomeTeam    string    `json:"home_team,omitempty"`
	AwayTeam    string    `json:"away_team,omitempty"`
	HomeScore   *int      `json:"home_score,omitempty"`
	AwayScore   *int      `json:"away_score,omitempty"`
	Status      string    `json:"status"`
	PlayedAt    time.Time `json:"played_at"`
}

func toBracketDTO(e bracket.Entry) bracketDTO {
	return bracketDTO{
		Competition: e.Competition,
		Round:       e.Round,
		RoundOrder:  e.RoundOrder,
		MatchRef:    e.MatchRef,
		HomeTeam:    e.HomeTeam,
		AwayTeam:    e.AwayTeam,
		HomeScore:   e.HomeScore,
		AwayScore:   e.AwayScore,
		Status:      e.Status,
		PlayedAt:    e.PlayedAt,
	}
}
