package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/scorepipe/scorepipe/internal/domain/match"
	matchmock "github.com/scorepipe/scorepipe/internal/mocks/domain/match"
)

func TestQueryService_ListMatches_NormalizesFilterUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewQueryService(matchRepo, nil, nil)

	matchRepo.
		On("List", mock.Anything, mock.MatchedBy(func(f match.Filter) bool {
			return f.LeagueKey == "premier league" && f.Limit == defaultListLimit
		})).
		Return([]match.Match{{ExternalID: "m1"}}, nil).
		Once()

	got, err := service.ListMatches(ctx, match.Filter{LeagueKey: "  Premier League "})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(got) != 1 || got[0].ExternalID != "m1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestQueryService_ListMatches_RepoErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewQueryService(matchRepo, nil, nil)

	matchRepo.
		On("List", mock.Anything, mock.Anything).
		Return(nil, errors.New("store offline")).
		Once()

	if _, err := service.ListMatches(ctx, match.Filter{}); err == nil {
		t.Fatalf("expected error from repository")
	}
}
