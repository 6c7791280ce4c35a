package tracker

import "context"

// Repository persists the bootstrap progress document. Implementations must
// make UpdateStep atomic per step and must refuse to regress a completed
// step back to pending or in_progress within a run.
type Repository interface {
	// Init resets the document to a fresh run with the given ordered steps,
	// all pending.
	Init(ctx context.Context, steps []string) error
	UpdateStep(ctx context.Context, name string, status StepStatus, progress int, message string) error
	Get(ctx context.Context) (Progress, bool, error)
	// Complete marks the run completed once every step is done.
	Complete(ctx context.Context) error
	// ForceComplete is the operational escape hatch: unfinished steps are
	// marked skipped and the run is terminally force_completed.
	ForceComplete(ctx context.Context) error
}
