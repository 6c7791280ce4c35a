package mongo

import (
	"time"

	"github.com/scorepipe/scorepipe/internal/domain/tracker"
)

const trackerDocID = "bootstrap_progress"

type trackerStepDocument struct {
	Name     string `bson:"name"`
	Status   string `bson:"status"`
	Progress int    `bson:"progress"`
	Message  string `bson:"message,omitempty"`
}

type trackerDocument struct {
	ID              string                `bson:"_id"`
	Status          string                `bson:"status"`
	Steps           []trackerStepDocument `bson:"steps"`
	OverallProgress int                   `bson:"overall_progress"`
	StartedAt       time.Time             `bson:"started_at"`
	CompletedAt     *time.Time            `bson:"completed_at,omitempty"`
	UpdatedAt       time.Time             `bson:"updated_at"`
}

func (d trackerDocument) toDomain() tracker.Progress {
	steps := make([]tracker.Step, 0, len(d.Steps))
	for _, s := range d.Steps {
		steps = append(steps, tracker.Step{
			Name:     s.Name,
			Status:   tracker.StepStatus(s.Status),
			Progress: s.Progress,
			Message:  s.Message,
		})
	}
	return tracker.Progress{
		Status:          d.Status,
		Steps:           steps,
		OverallProgress: d.OverallProgress,
		StartedAt:       d.StartedAt,
		CompletedAt:     d.CompletedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
