package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scorepipe/scorepipe/internal/domain/tracker"
	"github.com/scorepipe/scorepipe/internal/infrastructure/repository/memory"
	searchmem "github.com/scorepipe/scorepipe/internal/infrastructure/search/memory"
	"github.com/scorepipe/scorepipe/internal/normalizer"
	"github.com/scorepipe/scorepipe/internal/platform/logging"
)

func newBootstrapFixture(collector Collector) (*BootstrapService, *memory.TrackerRepository) {
	matches := memory.NewMatchRepository()
	ingest := NewIngestService(collector, normalizer.New(normalizer.Config{}),
		matches, memory.NewStandingRepository(), memory.NewBracketRepository(), logging.NewNop())
	index := NewIndexService(matches, searchmem.NewStore(), 2, logging.NewNop())
	trackerRepo := memory.NewTrackerRepository()

	svc := NewBootstrapService(ingest, index, trackerRepo, BootstrapConfig{DaysBack: 1, DaysAhead: 1}, logging.NewNop())
	return svc, trackerRepo
}

func stepByName(t *testing.T, doc tracker.Progress, name string) tracker.Step {
	t.Helper()
	for _, step := range doc.Steps {
		if step.Name == name {
			return step
		}
	}
	t.Fatalf("step %q missing from %+v", name, doc.Steps)
	return tracker.Step{}
}

func TestBootstrapRunCompletes(t *testing.T) {
	collector := &stubCollector{
		matches: []normalizer.RawRecord{
			matchRecord("m1", map[string]any{"status": "3", "home_score": 2, "away_score": 0}),
		},
		standings: []normalizer.RawRecord{
			{Category: normalizer.CategoryStanding, Fields: map[string]any{
				"league": "ENGLAND: Premier League", "team": "Arsenal", "position": 1,
				"played": 1, "wins": 1, "draws": 0, "losses": 0,
				"goals_for": 2, "goals_against": 0, "points": 3,
			}},
		},
		brackets: []normalizer.RawRecord{
			{Category: normalizer.CategoryBracket, Fields: map[string]any{
				"competition": "FA Cup", "round": "Final", "id": "tie-1",
				"status": "1", "date": "15.03.2026",
			}},
		},
	}

	svc, trackerRepo := newBootstrapFixture(collector)
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	doc, ok, err := trackerRepo.Get(context.Background())
	if err != nil || !ok {
		t.Fatalf("Get: %v ok=%v", err, ok)
	}
	if doc.Status != tracker.StatusCompleted {
		t.Fatalf("Status = %q, want completed", doc.Status)
	}
	if doc.OverallProgress != 100 {
		t.Fatalf("OverallProgress = %d", doc.OverallProgress)
	}
	if doc.CompletedAt == nil {
		t.Fatal("CompletedAt not set")
	}
	for _, name := range []string{StepMatches, StepStandings, StepBrackets, StepClubIndex} {
		if step := stepByName(t, doc, name); step.Status != tracker.StepCompleted {
			t.Errorf("step %s = %+v, want completed", name, step)
		}
	}
}

func TestBootstrapRunIsolatesCategoryFailure(t *testing.T) {
	collector := &stubCollector{
		matches: []normalizer.RawRecord{
			matchRecord("m1", map[string]any{"status": "3", "home_score": 1, "away_score": 0}),
		},
		standingErr: errors.New("standings feed down"),
	}

	svc, trackerRepo := newBootstrapFixture(collector)
	err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("Run succeeded despite standings failure")
	}

	doc, ok, gerr := trackerRepo.Get(context.Background())
	if gerr != nil || !ok {
		t.Fatalf("Get: %v ok=%v", gerr, ok)
	}
	if doc.Status != tracker.StatusInProgress {
		t.Fatalf("Status = %q, want in_progress", doc.Status)
	}
	if step := stepByName(t, doc, StepStandings); step.Status != tracker.StepFailed {
		t.Errorf("standings step = %+v, want failed", step)
	}
	if step := stepByName(t, doc, StepMatches); step.Status != tracker.StepCompleted {
		t.Errorf("matches step = %+v, want completed", step)
	}
	// The index still builds from the matches that made it in.
	if step := stepByName(t, doc, StepClubIndex); step.Status != tracker.StepCompleted {
		t.Errorf("club index step = %+v, want completed", step)
	}
}

func TestBootstrapRerunResetsTracker(t *testing.T) {
	collector := &stubCollector{standingErr: errors.New("down")}
	svc, trackerRepo := newBootstrapFixture(collector)

	if err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected first run to fail")
	}

	collector.standingErr = nil
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	doc, _, err := trackerRepo.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.Status != tracker.StatusCompleted {
		t.Fatalf("Status = %q, want completed after rerun", doc.Status)
	}
}

func TestProgressServiceNotFoundBeforeBootstrap(t *testing.T) {
	svc := NewProgressService(memory.NewTrackerRepository(), logging.NewNop())

	_, err := svc.Progress(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := svc.ForceComplete(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ForceComplete err = %v, want ErrNotFound", err)
	}
}

func TestProgressServiceForceComplete(t *testing.T) {
	trackerRepo := memory.NewTrackerRepository()
	if err := trackerRepo.Init(context.Background(), []string{StepMatches, StepStandings}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := trackerRepo.UpdateStep(context.Background(), StepMatches, tracker.StepCompleted, 100, ""); err != nil {
		t.Fatalf("UpdateStep: %v", err)
	}

	svc := NewProgressService(trackerRepo, logging.NewNop())
	if err := svc.ForceComplete(context.Background()); err != nil {
		t.Fatalf("ForceComplete: %v", err)
	}

	doc, err := svc.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if doc.Status != tracker.StatusForceCompleted {
		t.Fatalf("Status = %q, want force_completed", doc.Status)
	}
	if step := stepByName(t, doc, StepMatches); step.Status != tracker.StepCompleted {
		t.Errorf("completed step rewritten: %+v", step)
	}
	if step := stepByName(t, doc, StepStandings); step.Status != tracker.StepSkipped {
		t.Errorf("unfinished step = %+v, want skipped", step)
	}
}

func TestTrackerStepNeverRegresses(t *testing.T) {
	trackerRepo := memory.NewTrackerRepository()
	ctx := context.Background()
	if err := trackerRepo.Init(ctx, []string{StepMatches}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := trackerRepo.UpdateStep(ctx, StepMatches, tracker.StepCompleted, 100, ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := trackerRepo.UpdateStep(ctx, StepMatches, tracker.StepInProgress, 10, ""); err != nil {
		t.Fatalf("regress attempt: %v", err)
	}

	doc, _, err := trackerRepo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if step := stepByName(t, doc, StepMatches); step.Status != tracker.StepCompleted || step.Progress != 100 {
		t.Fatalf("step regressed: %+v", step)
	}
}

// Bootstrap date window sanity: three days collected when DaysBack and
// DaysAhead are both one.
func TestBootstrapCollectsWholeWindow(t *testing.T) {
	var days []time.Time
	collector := &windowCollector{days: &days}

	svc, _ := newBootstrapFixture(collector)
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("collected %d days, want 3", len(days))
	}
	if !days[0].Before(days[1]) || !days[1].Before(days[2]) {
		t.Fatalf("days out of order: %v", days)
	}
}

type windowCollector struct {
	days *[]time.Time
}

func (c *windowCollector) FetchMatches(_ context.Context, day time.Time) ([]normalizer.RawRecord, error) {
	*c.days = append(*c.days, day)
	return nil, nil
}

func (c *windowCollector) FetchStandings(_ context.Context) ([]normalizer.RawRecord, error) {
	return nil, nil
}

func (c *windowCollector) FetchBrackets(_ context.Context) ([]normalizer.RawRecord, error) {
	return nil, nil
}
