// Package admin implements planneradmin, the operator tool that seeds demo
// data, clears a user's tasks, and prints their dashboard counters.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/weekplanner/internal/logging"
	"github.com/dmitrijs2005/weekplanner/internal/server/config"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"github.com/dmitrijs2005/weekplanner/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/weekplanner/internal/server/services"
	"github.com/dmitrijs2005/weekplanner/internal/server/store"
)

type UserAdmin interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Lookup(ctx context.Context, email string) (*models.User, error)
}

type TaskAdmin interface {
	Seed(ctx context.Context, id models.Identity, fields []models.TaskFields) (int, error)
	ClearAll(ctx context.Context, id models.Identity) (int64, error)
	Stats(ctx context.Context, id models.Identity) (models.Stats, error)
}

var (
	_ UserAdmin = (*services.UserService)(nil)
	_ TaskAdmin = (*services.TaskService)(nil)
)

// Backend is what the commands run against.
type Backend struct {
	Users UserAdmin
	Tasks TaskAdmin
	Close func(context.Context) error
}

// Connector opens a Backend for cfg.
type Connector func(ctx context.Context, cfg *config.Config) (*Backend, error)

// MongoConnector opens the real store and builds the services on top of it.
func MongoConnector(ctx context.Context, cfg *config.Config) (*Backend, error) {
	st, err := store.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewMongoRepositoryManager(st)
	if err := rm.EnsureIndexes(ctx); err != nil {
		_ = st.Close(context.Background())
		return nil, err
	}

	l := logging.NewJSONLogger(os.Stderr, slog.LevelWarn)
	return &Backend{
		Users: services.NewUserService(rm, cfg, l),
		Tasks: services.NewTaskService(rm, l),
		Close: st.Close,
	}, nil
}
