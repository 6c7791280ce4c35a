package standing

import (
	"context"

	"github.com/scorepipe/scorepipe/internal/domain/upsert"
)

type Repository interface {
	Upsert(ctx context.Context, row Row) (upsert.Outcome, error)
	ListTable(ctx context.Context, leagueKey, country, season string) ([]Row, error)
}
