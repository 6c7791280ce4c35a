package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/scorepipe/scorepipe/internal/domain/clubindex"
	searchmem "github.com/scorepipe/scorepipe/internal/infrastructure/search/memory"
	"github.com/scorepipe/scorepipe/internal/platform/cache"
	"github.com/scorepipe/scorepipe/internal/platform/logging"
)

type countingSearchStore struct {
	*searchmem.Store
	searches atomic.Int32
}

func (s *countingSearchStore) Search(ctx context.Context, query clubindex.Query) ([]clubindex.ClubAggregate, error) {
	s.searches.Add(1)
	return s.Store.Search(ctx, query)
}

func newSearchFixture(t *testing.T, queryCache *cache.Store) (*SearchService, *countingSearchStore) {
	t.Helper()

	store := &countingSearchStore{Store: searchmem.NewStore()}
	for _, club := range []clubindex.ClubAggregate{
		{Key: "arsenal", Name: "Arsenal", Country: "England", Leagues: []string{"premier league"}},
		{Key: "barcelona", Name: "Barcelona", Country: "Spain", Leagues: []string{"laliga"}},
	} {
		if err := store.Replace(context.Background(), club); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewSearchService(store, queryCache, logging.NewNop()), store
}

func TestSearchClubsValidation(t *testing.T) {
	svc, _ := newSearchFixture(t, nil)

	for _, name := range []string{"", "   ", "a"} {
		_, err := svc.SearchClubs(context.Background(), clubindex.Query{Name: name})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("name %q: err = %v, want ErrInvalidInput", name, err)
		}
	}
}

func TestSearchClubsFindsFuzzyMatch(t *testing.T) {
	svc, _ := newSearchFixture(t, nil)

	clubs, err := svc.SearchClubs(context.Background(), clubindex.Query{Name: " Arsnal "})
	if err != nil {
		t.Fatalf("SearchClubs: %v", err)
	}
	if len(clubs) != 1 || clubs[0].Key != "arsenal" {
		t.Fatalf("clubs = %v", clubs)
	}
}

func TestSearchClubsCachesResults(t *testing.T) {
	svc, store := newSearchFixture(t, cache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := svc.SearchClubs(context.Background(), clubindex.Query{Name: "Arsenal"}); err != nil {
			t.Fatalf("SearchClubs #%d: %v", i, err)
		}
	}
	if got := store.searches.Load(); got != 1 {
		t.Fatalf("store searches = %d, want 1", got)
	}

	svc.InvalidateCache(context.Background())
	if _, err := svc.SearchClubs(context.Background(), clubindex.Query{Name: "Arsenal"}); err != nil {
		t.Fatalf("SearchClubs after invalidate: %v", err)
	}
	if got := store.searches.Load(); got != 2 {
		t.Fatalf("store searches after invalidate = %d, want 2", got)
	}
}

func TestSearchClubsLimitClamped(t *testing.T) {
	svc, _ := newSearchFixture(t, nil)

	clubs, err := svc.SearchClubs(context.Background(), clubindex.Query{Name: "Arsenal", Limit: 10_000})
	if err != nil {
		t.Fatalf("SearchClubs: %v", err)
	}
	if len(clubs) > maxSearchLimit {
		t.Fatalf("limit not clamped: %d results", len(clubs))
	}
}

type brokenSearchStore struct {
	*searchmem.Store
}

func (s *brokenSearchStore) Search(_ context.Context, _ clubindex.Query) ([]clubindex.ClubAggregate, error) {
	return nil, errors.New("cluster unreachable")
}

func TestSearchClubsDependencyError(t *testing.T) {
	svc := NewSearchService(&brokenSearchStore{Store: searchmem.NewStore()}, nil, logging.NewNop())

	_, err := svc.SearchClubs(context.Background(), clubindex.Query{Name: "Arsenal"})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("err = %v, want ErrDependencyUnavailable", err)
	}
}
