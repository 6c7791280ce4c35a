package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scorepipe/scorepipe/internal/domain/standing"
	"github.com/scorepipe/scorepipe/internal/domain/upsert"
)

type StandingRepository struct {
	coll *mongo.Collection
}

func NewStandingRepository(db *mongo.Database) *StandingRepository {
	return &StandingRepository{coll: db.Collection(collStandings)}
}

func standingFilter(row standing.Row) bson.M {
	return bson.M{
		"league_key": row.LeagueKey,
		"country":    row.Country,
		"season":     row.Season,
		"team_key":   row.TeamKey,
	}
}

func (r *StandingRepository) Upsert(ctx context.Context, row standing.Row) (upsert.Outcome, error) {
	filter := standingFilter(row)

	var existing standingDocument
	err := r.coll.FindOne(ctx, filter).Decode(&existing)
	switch {
	case err == nil:
		if existing.toDomain().MutableEquals(row) {
			return upsert.OutcomeSkipped, nil
		}
		if _, err := r.coll.ReplaceOne(ctx, filter, toStandingDocument(row)); err != nil {
			return "", fmt.Errorf("replace standing %s/%s: %w", row.LeagueKey, row.TeamKey, err)
		}
		return upsert.OutcomeUpdated, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		if _, err := r.coll.InsertOne(ctx, toStandingDocument(row)); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				if _, rerr := r.coll.ReplaceOne(ctx, filter, toStandingDocument(row)); rerr != nil {
					return "", fmt.Errorf("replace standing %s/%s after duplicate insert: %w", row.LeagueKey, row.TeamKey, rerr)
				}
				return upsert.OutcomeUpdated, nil
			}
			return "", fmt.Errorf("insert standing %s/%s: %w", row.LeagueKey, row.TeamKey, err)
		}
		return upsert.OutcomeInserted, nil
	default:
		return "", fmt.Errorf("find standing %s/%s: %w", row.LeagueKey, row.TeamKey, err)
	}
}

func (r *StandingRepository) ListTable(ctx context.Context, leagueKey, country, season string) ([]standing.Row, error) {
	query := bson.M{"league_key": leagueKey}
	if country != "" {
		query["country"] = country
	}
	if season != "" {
		query["season"] = season
	}

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []standingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode standings: %w", err)
	}

	out := make([]standing.Row, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}
