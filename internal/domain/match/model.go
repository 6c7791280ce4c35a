package match

import "time"

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinished  = "finished"
)

// Match is the canonical record for one fixture scraped from the source.
// ExternalID is the source's identifier and the upsert key: a match is never
// stored twice under the same ExternalID.
type Match struct {
	ExternalID  string
	League      string
	LeagueKey   string
	Country     string
	HomeTeam    string
	AwayTeam    string
	HomeScore   *int
	AwayScore   *int
	Status      string
	KickoffAt   time.Time
	HomeLogo    string
	AwayLogo    string
	CollectedAt time.Time
}

// MutableEquals reports whether the fields that can legitimately change
// between scrapes are identical. CollectedAt is excluded on purpose so that
// re-ingesting an unchanged record stays a no-op.
func (m Match) MutableEquals(other Match) bool {
	return m.Status == other.Status &&
		scoreEqual(m.HomeScore, other.HomeScore) &&
		scoreEqual(m.AwayScore, other.AwayScore) &&
		m.KickoffAt.Equal(other.KickoffAt) &&
		m.League == other.League &&
		m.Country == other.Country &&
		m.HomeTeam == other.HomeTeam &&
		m.AwayTeam == other.AwayTeam &&
		m.HomeLogo == other.HomeLogo &&
		m.AwayLogo == other.AwayLogo
}

func scoreEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusLive, StatusFinished:
		return true
	default:
		return false
	}
}
