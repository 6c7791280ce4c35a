package mongo

import (
	"time"

	"github.com/scorepipe/scorepipe/internal/domain/bracket"
)

type bracketDocument struct {
	Competition    string    `bson:"competition"`
	CompetitionKey string    `bson:"competition_key"`
	Round          string    `bson:"round"`
	RoundOrder     int       `bson:"round_order"`
	MatchRef       string    `bson:"match_ref"`
	HomeTeam       string    `bson:"home_team,omitempty"`
	AwayTeam       string    `bson:"away_team,omitempty"`
	HomeScore      *int      `bson:"home_score,omitempty"`
	AwayScore      *int      `bson:"away_score,omitempty"`
	Status         string    `bson:"status"`
	PlayedAt       time.Time `bson:"played_at"`
	CollectedAt    time.Time `bson:"collected_at"`
}

func toBracketDocument(e bracket.Entry) bracketDocument {
	return bracketDocument{
		Competition:    e.Competition,
		CompetitionKey: e.CompetitionKey,
		Round:          e.Round,
		RoundOrder:     e.RoundOrder,
		MatchRef:       e.MatchRef,
		HomeTeam:       e.HomeTeam,
		AwayTeam:       e.AwayTeam,
		HomeScore:      e.HomeScore,
		AwayScore:      e.AwayScore,
		Status:         e.Status,
		PlayedAt:       e.PlayedAt.UTC(),
		CollectedAt:    e.CollectedAt.UTC(),
	}
}

func (d bracketDocument) toDomain() bracket.Entry {
	return bracket.Entry{
		Competition:    d.Competition,
		CompetitionKey: d.CompetitionKey,
		Round:          d.Round,
		RoundOrder:     d.RoundOrder,
		MatchRef:       d.MatchRef,
		HomeTeam:       d.HomeTeam,
		AwayTeam:       d.AwayTeam,
		HomeScore:      d.HomeScore,
		AwayScore:      d.AwayScore,
		Status:         d.Status,
		PlayedAt:       d.PlayedAt,
		CollectedAt:    d.CollectedAt,
	}
}
