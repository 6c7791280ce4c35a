package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/scorepipe/scorepipe/internal/domain/clubindex"
	"github.com/scorepipe/scorepipe/internal/domain/match"
	"github.com/scorepipe/scorepipe/internal/platform/logging"
	"github.com/scorepipe/scorepipe/internal/platform/textnorm"
)

const defaultIndexWorkers = 8

// IndexReport summarizes one club index rebuild.
type IndexReport struct {
	SourceMatches int `json:"source_matches"`
	Clubs         int `json:"clubs"`
	Indexed       int `json:"indexed"`
	Failed        int `json:"failed"`
}

type IndexService struct {
	matchRepo match.Repository
	store     clubindex.SearchStore
	workers   int
	logger    *logging.Logger
	now       func() time.Time
}

func NewIndexService(matchRepo match.Repository, store clubindex.SearchStore, workers int, logger *logging.Logger) *IndexService {
	if workers <= 0 {
		workers = defaultIndexWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &IndexService{
		matchRepo: matchRepo,
		store:     store,
		workers:   workers,
		logger:    logger,
		now:       time.Now,
	}
}

// RebuildClubIndex recomputes every club aggregate from finished match
// history and replaces the search store documents. A club that fails to
// index is logged and counted; the remaining clubs still go through.
func (s *IndexService) RebuildClubIndex(ctx context.Context) (IndexReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IndexService.RebuildClubIndex")
	defer span.End()

	finished, err := s.matchRepo.ListFinished(ctx)
	if err != nil {
		return IndexReport{}, fmt.Errorf("list finished matches: %w", err)
	}

	clubs := AggregateClubs(finished)
	report := IndexReport{SourceMatches: len(finished), Clubs: len(clubs)}
	if len(clubs) == 0 {
		s.logger.InfoContext(ctx, "club index rebuild skipped, no finished matches")
		return report, nil
	}

	if err := s.store.EnsureIndex(ctx); err != nil {
		return report, fmt.Errorf("%w: ensure club index: %v", ErrDependencyUnavailable, err)
	}

	workerCount := s.workers
	if workerCount > len(clubs) {
		workerCount = len(clubs)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return report, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rebuiltAt := s.now().UTC()

	var indexed, failed atomic.Int32
	var workers sync.WaitGroup
	for _, club := range clubs {
		club := club
		club.UpdatedAt = rebuiltAt
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if err := s.store.Replace(ctx, club); err != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "club index replace failed", "club_key", club.Key, "error", err)
				return
			}
			indexed.Add(1)
		}); err != nil {
			workers.Done()
			return report, fmt.Errorf("submit club to worker pool: %w", err)
		}
	}
	workers.Wait()

	report.Indexed = int(indexed.Load())
	report.Failed = int(failed.Load())

	s.logger.InfoContext(ctx, "club index rebuilt",
		"source_matches", report.SourceMatches,
		"clubs", report.Clubs,
		"indexed", report.Indexed,
		"failed", report.Failed,
	)
	return report, nil
}

type clubAccumulator struct {
	name     string
	country  string
	logo     string
	leagues  map[string]string
	matches  int
	wins     int
	draws    int
	losses   int
	goalsFor int
	goalsAgn int
	lastSeen int64
}

// AggregateClubs folds finished matches into per-club statistics. Each match
// contributes twice, once from each side's perspective. Matches without both
// scores are ignored.
func AggregateClubs(matches []match.Match) []clubindex.ClubAggregate {
	acc := make(map[string]*clubAccumulator)

	for _, m := range matches {
		if m.Status != match.StatusFinished || m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		accumulate(acc, m, true)
		accumulate(acc, m, false)
	}

	out := make([]clubindex.ClubAggregate, 0, len(acc))
	for key, club := range acc {
		leagues := make([]string, 0, len(club.leagues))
		for _, name := range club.leagues {
			leagues = append(leagues, name)
		}
		sort.Strings(leagues)

		aggregate := clubindex.ClubAggregate{
			Key:            key,
			Name:           club.name,
			Country:        club.country,
			Leagues:        leagues,
			Logo:           club.logo,
			Matches:        club.matches,
			Wins:           club.wins,
			Draws:          club.draws,
			Losses:         club.losses,
			GoalsFor:       club.goalsFor,
			GoalsAgainst:   club.goalsAgn,
			GoalDifference: club.goalsFor - club.goalsAgn,
		}
		if club.matches > 0 {
			aggregate.WinRate = float64(club.wins) / float64(club.matches)
		}
		out = append(out, aggregate)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func accumulate(acc map[string]*clubAccumulator, m match.Match, home bool) {
	name, logo := m.HomeTeam, m.HomeLogo
	scored, conceded := *m.HomeScore, *m.AwayScore
	if !home {
		name, logo = m.AwayTeam, m.AwayLogo
		scored, conceded = *m.AwayScore, *m.HomeScore
	}

	key := textnorm.Key(name)
	club, ok := acc[key]
	if !ok {
		club = &clubAccumulator{name: name, leagues: make(map[string]string)}
		acc[key] = club
	}

	// Keep the attributes from the most recently collected match so renames
	// and logo updates win over stale history.
	if seen := m.CollectedAt.Unix(); seen >= club.lastSeen {
		club.lastSeen = seen
		club.name = name
		if logo != "" {
			club.logo = logo
		}
		if m.Country != "" {
			club.country = m.Country
		}
	}
	if m.LeagueKey != "" {
		club.leagues[m.LeagueKey] = m.League
	}

	club.matches++
	club.goalsFor += scored
	club.goalsAgn += conceded
	switch {
	case scored > conceded:
		club.wins++
	case scored == conceded:
		club.draws++
	default:
		club.losses++
	}
}
