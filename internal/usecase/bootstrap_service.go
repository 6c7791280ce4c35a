package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/scorepipe/scorepipe/internal/domain/tracker"
	"github.com/scorepipe/scorepipe/internal/platform/logging"
)

// Bootstrap step names, in run order.
const (
	StepMatches   = "matches"
	StepStandings = "standings"
	StepBrackets  = "brackets"
	StepClubIndex = "club_index"
)

type BootstrapConfig struct {
	// DaysBack and DaysAhead bound the match collection window around today.
	DaysBack  int
	DaysAhead int
}

// BootstrapService runs the initial fill: match history, standings and
// brackets concurrently, then the club index on top of the collected
// matches. Every stage reports into the progress tracker so the
// presentation layer can render a loading screen.
type BootstrapService struct {
	ingest      *IngestService
	index       *IndexService
	trackerRepo tracker.Repository
	cfg         BootstrapConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewBootstrapService(
	ingest *IngestService,
	index *IndexService,
	trackerRepo tracker.Repository,
	cfg BootstrapConfig,
	logger *logging.Logger,
) *BootstrapService {
	if cfg.DaysBack < 0 {
		cfg.DaysBack = 0
	}
	if cfg.DaysAhead < 0 {
		cfg.DaysAhead = 0
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BootstrapService{
		ingest:      ingest,
		index:       index,
		trackerRepo: trackerRepo,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// Run executes the full bootstrap. A failed category marks its step failed
// and the run keeps going; the run only completes when every step completed.
func (s *BootstrapService) Run(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BootstrapService.Run")
	defer span.End()

	steps := []string{StepMatches, StepStandings, StepBrackets, StepClubIndex}
	if err := s.trackerRepo.Init(ctx, steps); err != nil {
		return fmt.Errorf("init progress tracker: %w", err)
	}

	collectors := pool.New().WithErrors().WithContext(ctx)
	collectors.Go(s.runMatchesStep)
	collectors.Go(func(ctx context.Context) error {
		return s.runSingleFetchStep(ctx, StepStandings, s.ingest.IngestStandings)
	})
	collectors.Go(func(ctx context.Context) error {
		return s.runSingleFetchStep(ctx, StepBrackets, s.ingest.IngestBrackets)
	})
	collectErr := collectors.Wait()

	indexErr := s.runClubIndexStep(ctx)

	doc, ok, err := s.trackerRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("read progress tracker: %w", err)
	}
	if ok && tracker.AllCompleted(doc.Steps) {
		if err := s.trackerRepo.Complete(ctx); err != nil {
			return fmt.Errorf("complete progress tracker: %w", err)
		}
		s.logger.InfoContext(ctx, "bootstrap completed")
	}

	if collectErr != nil {
		return collectErr
	}
	return indexErr
}

// runMatchesStep walks the collection window day by day, oldest first, and
// reports fractional progress after each day.
func (s *BootstrapService) runMatchesStep(ctx context.Context) error {
	if err := s.trackerRepo.UpdateStep(ctx, StepMatches, tracker.StepInProgress, 0, ""); err != nil {
		return err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	totalDays := s.cfg.DaysBack + s.cfg.DaysAhead + 1

	done := 0
	for offset := -s.cfg.DaysBack; offset <= s.cfg.DaysAhead; offset++ {
		day := today.AddDate(0, 0, offset)
		if _, err := s.ingest.IngestMatches(ctx, day); err != nil {
			msg := fmt.Sprintf("day %s: %v", day.Format("2006-01-02"), err)
			if uerr := s.trackerRepo.UpdateStep(ctx, StepMatches, tracker.StepFailed, done*100/totalDays, msg); uerr != nil {
				s.logger.ErrorContext(ctx, "tracker update failed", "step", StepMatches, "error", uerr)
			}
			return fmt.Errorf("collect matches: %w", err)
		}
		done++
		progress := done * 100 / totalDays
		status := tracker.StepInProgress
		if done == totalDays {
			status = tracker.StepCompleted
			progress = 100
		}
		if err := s.trackerRepo.UpdateStep(ctx, StepMatches, status, progress, ""); err != nil {
			return err
		}
	}
	return nil
}

func (s *BootstrapService) runSingleFetchStep(ctx context.Context, step string, fetch func(context.Context) (IngestReport, error)) error {
	if err := s.trackerRepo.UpdateStep(ctx, step, tracker.StepInProgress, 0, ""); err != nil {
		return err
	}

	if _, err := fetch(ctx); err != nil {
		if uerr := s.trackerRepo.UpdateStep(ctx, step, tracker.StepFailed, 0, err.Error()); uerr != nil {
			s.logger.ErrorContext(ctx, "tracker update failed", "step", step, "error", uerr)
		}
		return fmt.Errorf("collect %s: %w", step, err)
	}

	return s.trackerRepo.UpdateStep(ctx, step, tracker.StepCompleted, 100, "")
}

// runClubIndexStep always runs after collection: the index is built from
// whatever finished matches made it into the store, even when another
// category failed.
func (s *BootstrapService) runClubIndexStep(ctx context.Context) error {
	if err := s.trackerRepo.UpdateStep(ctx, StepClubIndex, tracker.StepInProgress, 0, ""); err != nil {
		return err
	}

	report, err := s.index.RebuildClubIndex(ctx)
	if err != nil {
		if uerr := s.trackerRepo.UpdateStep(ctx, StepClubIndex, tracker.StepFailed, 0, err.Error()); uerr != nil {
			s.logger.ErrorContext(ctx, "tracker update failed", "step", StepClubIndex, "error", uerr)
		}
		return fmt.Errorf("rebuild club index: %w", err)
	}

	msg := ""
	if report.Failed > 0 {
		msg = fmt.Sprintf("%d of %d clubs failed to index", report.Failed, report.Clubs)
	}
	return s.trackerRepo.UpdateStep(ctx, StepClubIndex, tracker.StepCompleted, 100, msg)
}
