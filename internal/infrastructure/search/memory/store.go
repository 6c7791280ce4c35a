// Package memory implements the club search store in process memory with
// edit-distance matching. It backs tests and local runs without a search
// cluster.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/antzucaro/matchr"

	"github.com/scorepipe/scorepipe/internal/domain/clubindex"
	"github.com/scorepipe/scorepipe/internal/platform/textnorm"
)

type Store struct {
	mu    sync.RWMutex
	clubs map[string]clubindex.ClubAggregate
}

func NewStore() *Store {
	return &Store{clubs: make(map[string]clubindex.ClubAggregate)}
}

func (s *Store) EnsureIndex(_ context.Context) error {
	return nil
}

func (s *Store) Replace(_ context.Context, club clubindex.ClubAggregate) error {
	s.mu.Lock()
	s.clubs[club.Key] = club
	s.mu.Unlock()
	return nil
}

func (s *Store) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.clubs)), nil
}

type scored struct {
	club     clubindex.ClubAggregate
	distance int
}

func (s *Store) Search(_ context.Context, query clubindex.Query) ([]clubindex.ClubAggregate, error) {
	needle := textnorm.Key(query.Name)
	countryKey := textnorm.Key(query.Country)
	leagueKey := textnorm.Key(query.League)
	budget := distanceBudget(needle)

	s.mu.RLock()
	matches := make([]scored, 0)
	for _, club := range s.clubs {
		if countryKey != "" && textnorm.Key(club.Country) != countryKey {
			continue
		}
		if leagueKey != "" && !hasLeague(club.Leagues, leagueKey) {
			continue
		}

		nameKey := textnorm.Key(club.Name)
		distance := matchr.Levenshtein(needle, nameKey)
		if distance > budget && !strings.Contains(nameKey, needle) {
			continue
		}
		if distance > budget {
			// Substring hits rank behind genuine close matches.
			distance = budget + 1
		}
		matches = append(matches, scored{club: club, distance: distance})
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].club.Name < matches[j].club.Name
	})

	limit := query.Limit
	if limit <= 0 || limit > len(matches) {
		limit = len(matches)
	}

	out := make([]clubindex.ClubAggregate, 0, limit)
	for _, m := range matches[:limit] {
		out = append(out, m.club)
	}
	return out, nil
}

// distanceBudget scales the tolerated edit distance with the query length so
// short queries stay precise.
func distanceBudget(needle string) int {
	switch n := len([]rune(needle)); {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}

func hasLeague(leagues []string, leagueKey string) bool {
	for _, l := range leagues {
		if textnorm.Key(l) == leagueKey {
			return true
		}
	}
	return false
}
