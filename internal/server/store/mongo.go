// Package store is the document store adapter: it owns the MongoDB client
// for the lifetime of the process and hands out the planner's collections.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection = "users"
	TasksCollection = "tasks"
)

// Store wraps one pooled client and the selected database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client for uri, verifies it with a ping, and selects dbName.
func Connect(ctx context.Context, uri string, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

func (s *Store) Users() *mongo.Collection {
	return s.db.Collection(UsersCollection)
}

func (s *Store) Tasks() *mongo.Collection {
	return s.db.Collection(TasksCollection)
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// UserIndexes and TaskIndexes follow the query patterns of the repositories.
func UserIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	}
}

func TaskIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}, Options: options.Index().SetName("owner_id")},
		{Keys: bson.D{{Key: "deleted", Value: 1}}, Options: options.Index().SetName("deleted")},
		{Keys: bson.D{{Key: "due_date", Value: 1}}, Options: options.Index().SetName("due_date")},
		{Keys: bson.D{{Key: "tag", Value: 1}}, Options: options.Index().SetName("tag")},
	}
}

// EnsureIndexes creates the indexes if they are missing. Re-running it is
// harmless.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.Users().Indexes().CreateMany(ctx, UserIndexes()); err != nil {
		return fmt.Errorf("users index error: %w", err)
	}
	if _, err := s.Tasks().Indexes().CreateMany(ctx, TaskIndexes()); err != nil {
		return fmt.Errorf("tasks index error: %w", err)
	}
	return nil
}
