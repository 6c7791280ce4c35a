package usecase

import (
	"context"
	"fmt"

	"github.com/scorepipe/scorepipe/internal/domain/bracket"
	"github.com/scorepipe/scorepipe/internal/domain/match"
	"github.com/scorepipe/scorepipe/internal/domain/standing"
	"github.com/scorepipe/scorepipe/internal/platform/textnorm"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// QueryService is the read side of the store: match listings, league tables
// and cup brackets for the presentation layer.
type QueryService struct {
	matchRepo    match.Repository
	standingRepo standing.Repository
	bracketRepo  bracket.Repository
}

func NewQueryService(matchRepo match.Repository, standingRepo standing.Repository, bracketRepo bracket.Repository) *QueryService {
	return &QueryService{
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		bracketRepo:  bracketRepo,
	}
}

func (s *QueryService) ListMatches(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.ListMatches")
	defer span.End()

	if filter.Status != "" && !match.IsValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, fmt.Errorf("%w: to precedes from", ErrInvalidInput)
	}
	filter.LeagueKey = textnorm.Key(filter.LeagueKey)
	filter.Country = textnorm.Clean(filter.Country)
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (s *QueryService) LeagueTable(ctx context.Context, league, country, season string) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.LeagueTable")
	defer span.End()

	leagueKey := textnorm.Key(league)
	if leagueKey == "" {
		return nil, fmt.Errorf("%w: league is required", ErrInvalidInput)
	}

	rows, err := s.standingRepo.ListTable(ctx, leagueKey, textnorm.Clean(country), textnorm.Clean(season))
	if err != nil {
		return nil, fmt.Errorf("list league table: %w", err)
	}
	return rows, nil
}

func (s *QueryService) CupBracket(ctx context.Context, competition string) ([]bracket.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.CupBracket")
	defer span.End()

	competitionKey := textnorm.Key(competition)
	if competitionKey == "" {
		return nil, fmt.Errorf("%w: competition is required", ErrInvalidInput)
	}

	entries, err := s.bracketRepo.ListByCompetition(ctx, competitionKey)
	if err != nil {
		return nil, fmt.Errorf("list cup bracket: %w", err)
	}
	return entries, nil
}
