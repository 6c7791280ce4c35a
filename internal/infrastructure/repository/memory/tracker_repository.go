package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/scorepipe/scorepipe/internal/domain/tracker"
)

type TrackerRepository struct {
	mu       sync.Mutex
	doc      tracker.Progress
	present  bool
	now      func() time.Time
}

func NewTrackerRepository() *TrackerRepository {
	return &TrackerRepository{now: time.Now}
}

// NewTrackerRepositoryWithClock injects the clock for deterministic tests.
func NewTrackerRepositoryWithClock(now func() time.Time) *TrackerRepository {
	return &TrackerRepository{now: now}
}

func (r *TrackerRepository) Init(_ context.Context, steps []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now().UTC()
	doc := tracker.Progress{
		Status:    tracker.StatusInProgress,
		Steps:     make([]tracker.Step, 0, len(steps)),
		StartedAt: ts,
		UpdatedAt: ts,
	}
	for _, name := range steps {
		doc.Steps = append(doc.Steps, tracker.Step{Name: name, Status: tracker.StepPending})
	}

	r.doc = doc
	r.present = true
	return nil
}

func (r *TrackerRepository) UpdateStep(_ context.Context, name string, status tracker.StepStatus, progress int, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.present {
		return errors.New("progress document not initialized")
	}

	for i := range r.doc.Steps {
		step := &r.doc.Steps[i]
		if step.Name != name {
			continue
		}
		// Completed steps never regress within a run.
		if step.Status == tracker.StepCompleted &&
			(status == tracker.StepPending || status == tracker.StepInProgress) {
			return nil
		}
		step.Status = status
		step.Progress = progress
		step.Message = message
		r.doc.OverallProgress = tracker.Overall(r.doc.Steps)
		r.doc.UpdatedAt = r.now().UTC()
		return nil
	}
	return errors.Newf("unknown step %q", name)
}

func (r *TrackerRepository) Get(_ context.Context) (tracker.Progress, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.present {
		return tracker.Progress{}, false, nil
	}
	doc := r.doc
	doc.Steps = append([]tracker.Step(nil), r.doc.Steps...)
	return doc, true, nil
}

func (r *TrackerRepository) Complete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.present {
		return errors.New("progress document not initialized")
	}
	if !tracker.AllCompleted(r.doc.Steps) {
		return errors.New("not all steps completed")
	}

	ts := r.now().UTC()
	r.doc.Status = tracker.StatusCompleted
	r.doc.OverallProgress = 100
	r.doc.CompletedAt = &ts
	r.doc.UpdatedAt = ts
	return nil
}

func (r *TrackerRepository) ForceComplete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.present {
		return errors.New("progress document not initialized")
	}

	for i := range r.doc.Steps {
		if r.doc.Steps[i].Status != tracker.StepCompleted {
			r.doc.Steps[i].Status = tracker.StepSkipped
		}
	}

	ts := r.now().UTC()
	r.doc.Status = tracker.StatusForceCompleted
	r.doc.OverallProgress = 100
	r.doc.CompletedAt = &ts
	r.doc.UpdatedAt = ts
	return nil
}
