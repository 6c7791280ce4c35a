package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scorepipe/scorepipe/internal/domain/bracket"
	"github.com/scorepipe/scorepipe/internal/domain/upsert"
)

type BracketRepository struct {
	coll *mongo.Collection
}

func NewBracketRepository(db *mongo.Database) *BracketRepository {
	return &BracketRepository{coll: db.Collection(collBrackets)}
}

func bracketFilter(e bracket.Entry) bson.M {
	return bson.M{
		"competition_key": e.CompetitionKey,
		"round":           e.Round,
		"match_ref":       e.MatchRef,
	}
}

func (r *BracketRepository) Upsert(ctx context.Context, entry bracket.Entry) (upsert.Outcome, error) {
	filter := bracketFilter(entry)

	var existing bracketDocument
	err := r.coll.FindOne(ctx, filter).Decode(&existing)
	switch {
	case err == nil:
		if existing.toDomain().MutableEquals(entry) {
			return upsert.OutcomeSkipped, nil
		}
		if _, err := r.coll.ReplaceOne(ctx, filter, toBracketDocument(entry)); err != nil {
			return "", fmt.Errorf("replace bracket entry %s/%s: %w", entry.CompetitionKey, entry.MatchRef, err)
		}
		return upsert.OutcomeUpdated, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		if _, err := r.coll.InsertOne(ctx, toBracketDocument(entry)); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				if _, rerr := r.coll.ReplaceOne(ctx, filter, toBracketDocument(entry)); rerr != nil {
					return "", fmt.Errorf("replace bracket entry %s/%s after duplicate insert: %w", entry.CompetitionKey, entry.MatchRef, rerr)
				}
				return upsert.OutcomeUpdated, nil
			}
			return "", fmt.Errorf("insert bracket entry %s/%s: %w", entry.CompetitionKey, entry.MatchRef, err)
		}
		return upsert.OutcomeInserted, nil
	default:
		return "", fmt.Errorf("find bracket entry %s/%s: %w", entry.CompetitionKey, entry.MatchRef, err)
	}
}

func (r *BracketRepository) ListByCompetition(ctx context.Context, competitionKey string) ([]bracket.Entry, error) {
	query := bson.M{"competition_key": competitionKey}
	opts := options.Find().SetSort(bson.D{{Key: "round_order", Value: 1}, {Key: "match_ref", Value: 1}})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list bracket entries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bracketDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bracket entries: %w", err)
	}

	out := make([]bracket.Entry, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}
