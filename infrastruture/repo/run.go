package repo

import (
	"context"
	"fmt"

	dmn "github.com/beka-birhanu/mazechase/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxRunsPage = 100

// RunRepo persists finished games.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a RunRepo and indexes runs by player and finish time.
func NewRunRepo(ctx context.Context, client *mongo.Client, dbName, collectionName string) (*RunRepo, error) {
	collection := client.Database(dbName).Collection(collectionName)

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "finishedAt", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("creating run index: %w", err)
	}

	return &RunRepo{collection: collection}, nil
}

// Save inserts a finished run.
func (r *RunRepo) Save(ctx context.Context, run *dmn.Run) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, run); err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}
	return nil
}

// ByPlayer returns up to limit runs of the player, newest first.
func (r *RunRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]dmn.Run, error) {
	if limit <= 0 || limit > maxRunsPage {
		limit = maxRunsPage
	}

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	defer cursor.Close(ctx)

	runs := make([]dmn.Run, 0)
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("decoding runs: %w", err)
	}
	return runs, nil
}
