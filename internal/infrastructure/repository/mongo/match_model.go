package mongo

import (
	"time"

	"github.com/scorepipe/scorepipe/internal/domain/match"
)

type matchDocument struct {
	ExternalID  string    `bson:"external_id"`
	League      string    `bson:"league"`
	LeagueKey   string    `bson:"league_key"`
	Country     string    `bson:"country,omitempty"`
	HomeTeam    string    `bson:"home_team"`
	AwayTeam    string    `bson:"away_team"`
	HomeScore   *int      `bson:"home_score,omitempty"`
	AwayScore   *int      `bson:"away_score,omitempty"`
	Status      string    `bson:"status"`
	KickoffAt   time.Time `bson:"kickoff_at"`
	HomeLogo    string    `bson:"home_logo,omitempty"`
	AwayLogo    string    `bson:"away_logo,omitempty"`
	CollectedAt time.Time `bson:"collected_at"`
}

func toMatchDocument(m match.Match) matchDocument {
	return matchDocument{
		ExternalID:  m.ExternalID,
		League:      m.League,
		LeagueKey:   m.LeagueKey,
		Country:     m.Country,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		Status:      m.Status,
		KickoffAt:   m.KickoffAt.UTC(),
		HomeLogo:    m.HomeLogo,
		AwayLogo:    m.AwayLogo,
		CollectedAt: m.CollectedAt.UTC(),
	}
}

func (d matchDocument) toDomain() match.Match {
	return match.Match{
		ExternalID:  d.ExternalID,
		League:      d.League,
		LeagueKey:   d.LeagueKey,
		Country:     d.Country,
		HomeTeam:    d.HomeTeam,
		AwayTeam:    d.AwayTeam,
		HomeScore:   d.HomeScore,
		AwayScore:   d.AwayScore,
		Status:      d.Status,
		KickoffAt:   d.KickoffAt,
		HomeLogo:    d.HomeLogo,
		AwayLogo:    d.AwayLogo,
		CollectedAt: d.CollectedAt,
	}
}
