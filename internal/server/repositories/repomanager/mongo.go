// Package repomanager vends the MongoDB-backed repositories and the schema
// hook that prepares their indexes.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/weekplanner/internal/dbx"
	"github.com/dmitrijs2005/weekplanner/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/weekplanner/internal/server/repositories/users"
	"github.com/dmitrijs2005/weekplanner/internal/server/store"
)

// MongoRepositoryManager binds repositories to the store's collections.
type MongoRepositoryManager struct {
	users         users.Repository
	tasks         tasks.Repository
	ensureIndexes func(context.Context) error
}

func (m *MongoRepositoryManager) Users() users.Repository { return m.users }

func (m *MongoRepositoryManager) Tasks() tasks.Repository { return m.tasks }

// EnsureIndexes creates the collections' indexes.
func (m *MongoRepositoryManager) EnsureIndexes(ctx context.Context) error {
	if err := m.ensureIndexes(ctx); err != nil {
		return fmt.Errorf("index error: %w", err)
	}
	return nil
}

func newManager(usersColl, tasksColl dbx.Collection, ensure func(context.Context) error) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		users:         users.NewMongoRepository(usersColl),
		tasks:         tasks.NewMongoRepository(tasksColl),
		ensureIndexes: ensure,
	}
}

// NewMongoRepositoryManager constructs a RepositoryManager over s.
func NewMongoRepositoryManager(s *store.Store) RepositoryManager {
	return newManager(s.Users(), s.Tasks(), s.EnsureIndexes)
}
