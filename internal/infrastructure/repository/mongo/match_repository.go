package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scorepipe/scorepipe/internal/domain/match"
	"github.com/scorepipe/scorepipe/internal/domain/upsert"
)

type MatchRepository struct {
	coll *mongo.Collection
}

func NewMatchRepository(db *mongo.Database) *MatchRepository {
	return &MatchRepository{coll: db.Collection(collMatches)}
}

// Upsert stores the match keyed by external id. An unchanged record is a
// no-op; a changed one is replaced whole, last writer wins.
func (r *MatchRepository) Upsert(ctx context.Context, m match.Match) (upsert.Outcome, error) {
	filter := bson.M{"external_id": m.ExternalID}

	var existing matchDocument
	err := r.coll.FindOne(ctx, filter).Decode(&existing)
	switch {
	case err == nil:
		if existing.toDomain().MutableEquals(m) {
			return upsert.OutcomeSkipped, nil
		}
		if _, err := r.coll.ReplaceOne(ctx, filter, toMatchDocument(m)); err != nil {
			return "", fmt.Errorf("replace match %s: %w", m.ExternalID, err)
		}
		return upsert.OutcomeUpdated, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		// Concurrent first writers race on the unique index; the loser
		// falls back to a replace.
		if _, err := r.coll.InsertOne(ctx, toMatchDocument(m)); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				if _, rerr := r.coll.ReplaceOne(ctx, filter, toMatchDocument(m)); rerr != nil {
					return "", fmt.Errorf("replace match %s after duplicate insert: %w", m.ExternalID, rerr)
				}
				return upsert.OutcomeUpdated, nil
			}
			return "", fmt.Errorf("insert match %s: %w", m.ExternalID, err)
		}
		return upsert.OutcomeInserted, nil
	default:
		return "", fmt.Errorf("find match %s: %w", m.ExternalID, err)
	}
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	query := bson.M{}
	if filter.LeagueKey != "" {
		query["league_key"] = filter.LeagueKey
	}
	if filter.Country != "" {
		query["country"] = filter.Country
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	kickoff := bson.M{}
	if !filter.From.IsZero() {
		kickoff["$gte"] = filter.From.UTC()
	}
	if !filter.To.IsZero() {
		kickoff["$lte"] = filter.To.UTC()
	}
	if len(kickoff) > 0 {
		query["kickoff_at"] = kickoff
	}

	opts := options.Find().SetSort(bson.D{{Key: "kickoff_at", Value: 1}, {Key: "external_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []matchDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}

	out := make([]match.Match, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) ListFinished(ctx context.Context) ([]match.Match, error) {
	query := bson.M{
		"status":     match.StatusFinished,
		"home_score": bson.M{"$ne": nil},
		"away_score": bson.M{"$ne": nil},
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list finished matches: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []matchDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode finished matches: %w", err)
	}

	out := make([]match.Match, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}
