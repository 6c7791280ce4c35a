// Package mongo implements the document-store repositories.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collMatches   = "matches"
	collStandings = "standings"
	collBrackets  = "brackets"
	collTracker   = "init_status"
)

// Connect dials the document store and verifies it responds before any
// repository is built on top of it.
func Connect(ctx context.Context, uri, dbName string, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect document store: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping document store: %w", err)
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the identity indexes the upsert paths rely on.
// Creation is idempotent; existing indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	matchIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "external_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "league_key", Value: 1}, {Key: "kickoff_at", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := db.Collection(collMatches).Indexes().CreateMany(ctx, matchIndexes); err != nil {
		return fmt.Errorf("create match indexes: %w", err)
	}

	standingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "league_key", Value: 1},
				{Key: "country", Value: 1},
				{Key: "season", Value: 1},
				{Key: "team_key", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection(collStandings).Indexes().CreateMany(ctx, standingIndexes); err != nil {
		return fmt.Errorf("create standing indexes: %w", err)
	}

	bracketIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "competition_key", Value: 1},
				{Key: "round", Value: 1},
				{Key: "match_ref", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection(collBrackets).Indexes().CreateMany(ctx, bracketIndexes); err != nil {
		return fmt.Errorf("create bracket indexes: %w", err)
	}

	return nil
}
