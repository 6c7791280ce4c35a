package bracket

import (
	"context"

	"github.com/scorepipe/scorepipe/internal/domain/upsert"
)

type Repository interface {
	Upsert(ctx context.Context, entry Entry) (upsert.Outcome, error)
	// ListByCompetition returns entries ordered by round order so the
	// presentation layer can lay out the draw tree directly.
	ListByCompetition(ctx context.Context, competitionKey string) ([]Entry, error)
}
