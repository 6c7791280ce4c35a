package bracket

import (
	"strings"
	"time"
)

// Entry is one tie inside a cup draw. Identity is
// (competition, round, match reference).
type Entry struct {
	Competition    string
	CompetitionKey string
	Round          string
	// RoundOrder positions the round inside the draw tree; higher means
	// later in the competition (final has the highest order).
	RoundOrder  int
	MatchRef    string
	HomeTeam    string
	AwayTeam    string
	HomeScore   *int
	AwayScore   *int
	Status      string
	PlayedAt    time.Time
	CollectedAt time.Time
}

func (e Entry) MutableEquals(other Entry) bool {
	return e.Status == other.Status &&
		intPtrEqual(e.HomeScore, other.HomeScore) &&
		intPtrEqual(e.AwayScore, other.AwayScore) &&
		e.PlayedAt.Equal(other.PlayedAt) &&
		e.HomeTeam == other.HomeTeam &&
		e.AwayTeam == other.AwayTeam &&
		e.RoundOrder == other.RoundOrder
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// RoundOrder maps a round label to its position in the draw. Unknown labels
// get order 0 so they sort ahead of every recognized round.
func RoundOrder(label string) int {
	switch normalizeRoundLabel(label) {
	case "round of 64", "1/32 finals":
		return 1
	case "round of 32", "1/16 finals":
		return 2
	case "round of 16", "1/8 finals", "eighth-finals":
		return 3
	case "quarter-finals", "quarterfinals", "1/4 finals":
		return 4
	case "semi-finals", "semifinals", "1/2 finals":
		return 5
	case "3rd place match", "third place match":
		return 6
	case "final":
		return 7
	default:
		return 0
	}
}

func normalizeRoundLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}
