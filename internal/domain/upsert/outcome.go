// Package upsert defines the shared outcome type for idempotent repository
// writes: insert when the key is new, update when mutable fields changed,
// skip when the incoming record matches the stored one.
package upsert

type Outcome string

const (
	OutcomeInserted Outcome = "inserted"
	OutcomeUpdated  Outcome = "updated"
	OutcomeSkipped  Outcome = "skipped"
)
