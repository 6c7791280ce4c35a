// Package memory holds in-memory repository implementations used by tests
// and local runs without a document store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/scorepipe/scorepipe/internal/domain/match"
	"github.com/scorepipe/scorepipe/internal/domain/upsert"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{items: make(map[string]match.Match)}
}

func (r *MatchRepository) Upsert(_ context.Context, m match.Match) (upsert.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[m.ExternalID]
	if !ok {
		r.items[m.ExternalID] = m
		return upsert.OutcomeInserted, nil
	}
	if existing.MutableEquals(m) {
		return upsert.OutcomeSkipped, nil
	}
	r.items[m.ExternalID] = m
	return upsert.OutcomeUpdated, nil
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.items))
	for _, m := range r.items {
		if filter.LeagueKey != "" && m.LeagueKey != filter.LeagueKey {
			continue
		}
		if filter.Country != "" && m.Country != filter.Country {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && m.KickoffAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && m.KickoffAt.After(filter.To) {
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ExternalID < out[j].ExternalID
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MatchRepository) ListFinished(ctx context.Context) ([]match.Match, error) {
	all, err := r.List(ctx, match.Filter{Status: match.StatusFinished})
	if err != nil {
		return nil, err
	}

	out := all[:0]
	for _, m := range all {
		if m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// Len reports the number of stored matches, for test assertions.
func (r *MatchRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
