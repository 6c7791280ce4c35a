package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scorepipe/scorepipe/internal/domain/tracker"
)

// TrackerRepository persists the bootstrap progress as one singleton
// document. Step updates are single atomic writes with array filters, so
// concurrent category collectors never clobber each other's steps.
type TrackerRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewTrackerRepository(db *mongo.Database) *TrackerRepository {
	return &TrackerRepository{coll: db.Collection(collTracker), now: time.Now}
}

func (r *TrackerRepository) Init(ctx context.Context, steps []string) error {
	ts := r.now().UTC()
	doc := trackerDocument{
		ID:        trackerDocID,
		Status:    tracker.StatusInProgress,
		Steps:     make([]trackerStepDocument, 0, len(steps)),
		StartedAt: ts,
		UpdatedAt: ts,
	}
	for _, name := range steps {
		doc.Steps = append(doc.Steps, trackerStepDocument{Name: name, Status: string(tracker.StepPending)})
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": trackerDocID}, doc, opts); err != nil {
		return fmt.Errorf("init progress document: %w", err)
	}
	return nil
}

func (r *TrackerRepository) UpdateStep(ctx context.Context, name string, status tracker.StepStatus, progress int, message string) error {
	ts := r.now().UTC()

	arrayFilter := bson.M{"s.name": name}
	// A completed step never regresses within a run; the array filter makes
	// the guard part of the atomic write.
	if status == tracker.StepPending || status == tracker.StepInProgress {
		arrayFilter["s.status"] = bson.M{"$ne": string(tracker.StepCompleted)}
	}

	update := bson.M{"$set": bson.M{
		"steps.$[s].status":   string(status),
		"steps.$[s].progress": progress,
		"steps.$[s].message":  message,
		"updated_at":          ts,
	}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{Filters: []interface{}{arrayFilter}})

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": trackerDocID}, update, opts)
	if err != nil {
		return fmt.Errorf("update step %s: %w", name, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("progress document not initialized")
	}

	return r.recomputeOverall(ctx)
}

// recomputeOverall refreshes the aggregate percentage from the current steps.
// It is a separate write; a lost race leaves the rollup stale only until the
// next step update.
func (r *TrackerRepository) recomputeOverall(ctx context.Context) error {
	var doc trackerDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": trackerDocID}).Decode(&doc); err != nil {
		return fmt.Errorf("read progress document: %w", err)
	}

	overall := tracker.Overall(doc.toDomain().Steps)
	if doc.OverallProgress == overall {
		return nil
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": trackerDocID},
		bson.M{"$set": bson.M{"overall_progress": overall}},
	)
	if err != nil {
		return fmt.Errorf("update overall progress: %w", err)
	}
	return nil
}

func (r *TrackerRepository) Get(ctx context.Context) (tracker.Progress, bool, error) {
	var doc trackerDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": trackerDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return tracker.Progress{}, false, nil
	}
	if err != nil {
		return tracker.Progress{}, false, fmt.Errorf("read progress document: %w", err)
	}
	return doc.toDomain(), true, nil
}

func (r *TrackerRepository) Complete(ctx context.Context) error {
	doc, ok, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("progress document not initialized")
	}
	if !tracker.AllCompleted(doc.Steps) {
		return fmt.Errorf("not all steps completed")
	}

	ts := r.now().UTC()
	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": trackerDocID},
		bson.M{"$set": bson.M{
			"status":           tracker.StatusCompleted,
			"overall_progress": 100,
			"completed_at":     ts,
			"updated_at":       ts,
		}},
	)
	if err != nil {
		return fmt.Errorf("complete progress document: %w", err)
	}
	return nil
}

func (r *TrackerRepository) ForceComplete(ctx context.Context) error {
	ts := r.now().UTC()

	// Unfinished steps become skipped in the same write that flips the
	// overall status.
	update := bson.M{"$set": bson.M{
		"status":                tracker.StatusForceCompleted,
		"overall_progress":      100,
		"completed_at":          ts,
		"updated_at":            ts,
		"steps.$[open].status":  string(tracker.StepSkipped),
		"steps.$[open].message": "force completed",
	}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{Filters: []interface{}{
		bson.M{"open.status": bson.M{"$ne": string(tracker.StepCompleted)}},
	}})

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": trackerDocID}, update, opts)
	if err != nil {
		return fmt.Errorf("force complete progress document: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("progress document not initialized")
	}
	return nil
}
