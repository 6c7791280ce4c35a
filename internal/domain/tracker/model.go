package tracker

import "time"

type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in_progress"
	StepCompleted  StepStatus = "completed"
	StepFailed     StepStatus = "failed"
	StepSkipped    StepStatus = "skipped"
)

const (
	StatusInProgress     = "in_progress"
	StatusCompleted      = "completed"
	StatusForceCompleted = "force_completed"
)

// Step is one named stage of the bootstrap sequence. Within a run a step
// only moves forward: once completed it never returns to in_progress.
type Step struct {
	Name     string     `json:"name"`
	Status   StepStatus `json:"status"`
	Progress int        `json:"progress"`
	Message  string     `json:"message,omitempty"`
}

// Progress is the bootstrap state document read by the presentation layer.
// Overall "completed" means enough data exists to render, not that all
// historical data has been collected.
type Progress struct {
	Status          string     `json:"status"`
	Steps           []Step     `json:"steps"`
	OverallProgress int        `json:"overall_progress"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Overall recomputes the aggregate percentage as the mean of step progress.
func Overall(steps []Step) int {
	if len(steps) == 0 {
		return 0
	}
	total := 0
	for _, s := range steps {
		total += s.Progress
	}
	return total / len(steps)
}

// AllCompleted reports whether every step reached completed.
func AllCompleted(steps []Step) bool {
	for _, s := range steps {
		if s.Status != StepCompleted {
			return false
		}
	}
	return len(steps) > 0
}
