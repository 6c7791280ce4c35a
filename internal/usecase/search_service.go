package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/scorepipe/scorepipe/internal/domain/clubindex"
	"github.com/scorepipe/scorepipe/internal/platform/cache"
	"github.com/scorepipe/scorepipe/internal/platform/logging"
	"github.com/scorepipe/scorepipe/internal/platform/textnorm"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type SearchService struct {
	store  clubindex.SearchStore
	cache  *cache.Store
	logger *logging.Logger
}

// NewSearchService wraps the search store with input validation and an
// optional query cache. Pass a nil cache to disable caching.
func NewSearchService(store clubindex.SearchStore, queryCache *cache.Store, logger *logging.Logger) *SearchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SearchService{
		store:  store,
		cache:  queryCache,
		logger: logger,
	}
}

// SearchClubs finds club aggregates by fuzzy name with exact country and
// league filters.
func (s *SearchService) SearchClubs(ctx context.Context, query clubindex.Query) ([]clubindex.ClubAggregate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.SearchClubs")
	defer span.End()

	query.Name = textnorm.Clean(query.Name)
	query.Country = textnorm.Clean(query.Country)
	query.League = textnorm.Clean(query.League)

	if query.Name == "" {
		return nil, fmt.Errorf("%w: search name is required", ErrInvalidInput)
	}
	if len([]rune(query.Name)) < 2 {
		return nil, fmt.Errorf("%w: search name must be at least 2 characters", ErrInvalidInput)
	}
	if query.Limit <= 0 {
		query.Limit = defaultSearchLimit
	}
	if query.Limit > maxSearchLimit {
		query.Limit = maxSearchLimit
	}

	if s.cache == nil {
		return s.search(ctx, query)
	}

	key := searchCacheKey(query)
	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.search(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	clubs, ok := value.([]clubindex.ClubAggregate)
	if !ok {
		return s.search(ctx, query)
	}
	return clubs, nil
}

// IndexedClubs reports how many club documents the search store holds.
func (s *SearchService) IndexedClubs(ctx context.Context) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.IndexedClubs")
	defer span.End()

	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: count clubs: %v", ErrDependencyUnavailable, err)
	}
	return count, nil
}

// InvalidateCache drops cached search results after an index rebuild.
func (s *SearchService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePrefix(ctx, "clubs:search:")
}

func (s *SearchService) search(ctx context.Context, query clubindex.Query) ([]clubindex.ClubAggregate, error) {
	clubs, err := s.store.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: search clubs: %v", ErrDependencyUnavailable, err)
	}
	return clubs, nil
}

func searchCacheKey(query clubindex.Query) string {
	return strings.Join([]string{
		"clubs:search",
		textnorm.Key(query.Name),
		textnorm.Key(query.Country),
		textnorm.Key(query.League),
		fmt.Sprintf("%d", query.Limit),
	}, ":")
}
