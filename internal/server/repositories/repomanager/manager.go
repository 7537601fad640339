package repomanager

import (
	"context"

	"github.com/dmitrijs2005/weekplanner/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/weekplanner/internal/server/repositories/users"
)

type RepositoryManager interface {
	EnsureIndexes(context.Context) error
	Users() users.Repository
	Tasks() tasks.Repository
}
