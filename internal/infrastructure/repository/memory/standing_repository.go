package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/scorepipe/scorepipe/internal/domain/standing"
	"github.com/scorepipe/scorepipe/internal/domain/upsert"
)

type standingKey struct {
	leagueKey string
	country   string
	season    string
	teamKey   string
}

type StandingRepository struct {
	mu    sync.RWMutex
	items map[standingKey]standing.Row
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{items: make(map[standingKey]standing.Row)}
}

func (r *StandingRepository) Upsert(_ context.Context, row standing.Row) (upsert.Outcome, error) {
	key := standingKey{
		leagueKey: row.LeagueKey,
		country:   row.Country,
		season:    row.Season,
		teamKey:   row.TeamKey,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[key]
	if !ok {
		r.items[key] = row
		return upsert.OutcomeInserted, nil
	}
	if existing.MutableEquals(row) {
		return upsert.OutcomeSkipped, nil
	}
	r.items[key] = row
	return upsert.OutcomeUpdated, nil
}

func (r *StandingRepository) ListTable(_ context.Context, leagueKey, country, season string) ([]standing.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Row, 0)
	for key, row := range r.items {
		if key.leagueKey != leagueKey {
			continue
		}
		if country != "" && key.country != country {
			continue
		}
		if season != "" && key.season != season {
			continue
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}
