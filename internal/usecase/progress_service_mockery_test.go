package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/scorepipe/scorepipe/internal/domain/tracker"
	trackermock "github.com/scorepipe/scorepipe/internal/mocks/domain/tracker"
)

func TestProgressService_Progress_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	trackerRepo := trackermock.NewRepository(t)
	service := NewProgressService(trackerRepo, nil)

	doc := tracker.Progress{
		Status:          tracker.StatusInProgress,
		OverallProgress: 40,
		Steps: []tracker.Step{
			{Name: StepMatches, Status: tracker.StepCompleted, Progress: 100},
			{Name: StepStandings, Status: tracker.StepInProgress, Progress: 60},
		},
	}
	trackerRepo.
		On("Get", mock.Anything).
		Return(doc, true, nil).
		Once()

	got, err := service.Progress(ctx)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if got.OverallProgress != 40 {
		t.Fatalf("unexpected overall progress: got=%d want=40", got.OverallProgress)
	}
	if len(got.Steps) != 2 {
		t.Fatalf("unexpected step count: got=%d want=2", len(got.Steps))
	}
}

func TestProgressService_ForceComplete_NotStartedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	trackerRepo := trackermock.NewRepository(t)
	service := NewProgressService(trackerRepo, nil)

	trackerRepo.
		On("Get", mock.Anything).
		Return(tracker.Progress{}, false, nil).
		Once()

	err := service.ForceComplete(ctx)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProgressService_ForceComplete_DelegatesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	trackerRepo := trackermock.NewRepository(t)
	service := NewProgressService(trackerRepo, nil)

	trackerRepo.
		On("Get", mock.Anything).
		Return(tracker.Progress{Status: tracker.StatusInProgress}, true, nil).
		Once()
	trackerRepo.
		On("ForceComplete", mock.Anything).
		Return(nil).
		Once()

	if err := service.ForceComplete(ctx); err != nil {
		t.Fatalf("force complete: %v", err)
	}
}
