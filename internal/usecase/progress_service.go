package usecase

import (
	"context"
	"fmt"

	"github.com/scorepipe/scorepipe/internal/domain/tracker"
	"github.com/scorepipe/scorepipe/internal/platform/logging"
)

// ProgressService exposes the bootstrap progress document to the
// presentation layer and carries the operational force-complete switch.
type ProgressService struct {
	trackerRepo tracker.Repository
	logger      *logging.Logger
}

func NewProgressService(trackerRepo tracker.Repository, logger *logging.Logger) *ProgressService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProgressService{trackerRepo: trackerRepo, logger: logger}
}

func (s *ProgressService) Progress(ctx context.Context) (tracker.Progress, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressService.Progress")
	defer span.End()

	doc, ok, err := s.trackerRepo.Get(ctx)
	if err != nil {
		return tracker.Progress{}, fmt.Errorf("get progress: %w", err)
	}
	if !ok {
		return tracker.Progress{}, fmt.Errorf("%w: bootstrap has not started", ErrNotFound)
	}
	return doc, nil
}

// ForceComplete marks the run finished even though steps remain unfinished.
// Meant for operators unblocking the presentation layer after a partial run.
func (s *ProgressService) ForceComplete(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressService.ForceComplete")
	defer span.End()

	_, ok, err := s.trackerRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("get progress: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: bootstrap has not started", ErrNotFound)
	}

	if err := s.trackerRepo.ForceComplete(ctx); err != nil {
		return fmt.Errorf("force complete: %w", err)
	}
	s.logger.WarnContext(ctx, "bootstrap force completed")
	return nil
}
