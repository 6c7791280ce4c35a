package clubindex

import "context"

// Query is a fuzzy club lookup: Name tolerates a small edit distance that
// scales with its length, Country and League filter exactly.
type Query struct {
	Name    string
	Country string
	League  string
	Limit   int
}

// SearchStore is the secondary full-text index of club aggregates. Replace
// overwrites the whole document for a club key; there is no partial update.
type SearchStore interface {
	EnsureIndex(ctx context.Context) error
	Replace(ctx context.Context, club ClubAggregate) error
	Search(ctx context.Context, query Query) ([]ClubAggregate, error)
	Count(ctx context.Context) (int64, error)
}
