package usecase

import (
	"context"
	"time"

	"github.com/scorepipe/scorepipe/internal/normalizer"
)

// Collector pulls raw records from the upstream feed. Implementations return
// records as scraped; normalization happens downstream.
type Collector interface {
	FetchMatches(ctx context.Context, day time.Time) ([]normalizer.RawRecord, error)
	FetchStandings(ctx context.Context) ([]normalizer.RawRecord, error)
	FetchBrackets(ctx context.Context) ([]normalizer.RawRecord, error)
}
