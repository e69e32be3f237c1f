package repo

import (
	"context"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-trapmaze/domain"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.ScoreRepo = &ScoreRepo{}

// ScoreRepo keeps the history of finished maze runs.
type ScoreRepo struct {
	collection *mongo.Collection
}

// NewScoreRepo creates a new ScoreRepo with the given MongoDB client, database name, and collection name.
func NewScoreRepo(client *mongo.Client, dbName, collectionName string) *ScoreRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &ScoreRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the index backing ByPlayer.
func (s *ScoreRepo) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "playerID", Value: 1}, {Key: "finishedAt", Value: -1}},
	})
	return err
}

// Save inserts a finished run.
func (s *ScoreRepo) Save(ctx context.Context, score *dmn.Score) error {
	if _, err := s.collection.InsertOne(ctx, score); err != nil {
		return fmt.Errorf("saving score %s: %w", score.ID, err)
	}
	return nil
}

// ByPlayer returns the most recent runs of a player, newest first.
func (s *ScoreRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Score, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, bson.M{"playerID": playerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying scores of %s: %w", playerID, err)
	}
	defer cursor.Close(ctx)

	scores := make([]*dmn.Score, 0)
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, fmt.Errorf("decoding scores of %s: %w", playerID, err)
	}
	return scores, nil
}
