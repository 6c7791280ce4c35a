package match

import (
	"context"
	"time"

	"github.com/scorepipe/scorepipe/internal/domain/upsert"
)

// Filter narrows List queries. Zero values mean "no constraint"; callers must
// not assume any ordering beyond the kickoff sort List applies.
type Filter struct {
	LeagueKey string
	Country   string
	Status    string
	From      time.Time
	To        time.Time
	Limit     int
}

type Repository interface {
	Upsert(ctx context.Context, m Match) (upsert.Outcome, error)
	List(ctx context.Context, filter Filter) ([]Match, error)
	// ListFinished returns every finished match with both scores present,
	// the input of the club aggregation.
	ListFinished(ctx context.Context) ([]Match, error)
}
