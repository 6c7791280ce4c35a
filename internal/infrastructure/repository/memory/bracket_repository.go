package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/scorepipe/scorepipe/internal/domain/bracket"
	"github.com/scorepipe/scorepipe/internal/domain/upsert"
)

type bracketKey struct {
	competitionKey string
	round          string
	matchRef       string
}

type BracketRepository struct {
	mu    sync.RWMutex
	items map[bracketKey]bracket.Entry
}

func NewBracketRepository() *BracketRepository {
	return &BracketRepository{items: make(map[bracketKey]bracket.Entry)}
}

func (r *BracketRepository) Upsert(_ context.Context, entry bracket.Entry) (upsert.Outcome, error) {
	key := bracketKey{
		competitionKey: entry.CompetitionKey,
		round:          entry.Round,
		matchRef:       entry.MatchRef,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[key]
	if !ok {
		r.items[key] = entry
		return upsert.OutcomeInserted, nil
	}
	if existing.MutableEquals(entry) {
		return upsert.OutcomeSkipped, nil
	}
	r.items[key] = entry
	return upsert.OutcomeUpdated, nil
}

func (r *BracketRepository) ListByCompetition(_ context.Context, competitionKey string) ([]bracket.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bracket.Entry, 0)
	for key, entry := range r.items {
		if key.competitionKey != competitionKey {
			continue
		}
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].RoundOrder != out[j].RoundOrder {
			return out[i].RoundOrder < out[j].RoundOrder
		}
		return out[i].MatchRef < out[j].MatchRef
	})
	return out, nil
}
