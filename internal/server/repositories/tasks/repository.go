// Package tasks is the task repository: every query is scoped to one owner
// and, unless stated otherwise, to active (not deleted) tasks.
package tasks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, ownerID string, f models.TaskFields, now time.Time) (string, error)
	// Get returns the owner's task. Deleted tasks are only visible with includeDeleted.
	Get(ctx context.Context, ownerID, id string, includeDeleted bool) (*models.Task, error)
	List(ctx context.Context, ownerID string, q models.ListQuery) ([]models.Task, error)
	Update(ctx context.Context, ownerID, id string, f models.TaskFields, now time.Time) error
	SetDeleted(ctx context.Context, ownerID, id string, deleted bool, now time.Time) error
	// Delete removes a trashed task for good. Active tasks are left alone.
	Delete(ctx context.Context, ownerID, id string) error
	ListDeleted(ctx context.Context, ownerID string) ([]models.Task, error)
	ListOverdue(ctx context.Context, ownerID, today string) ([]models.Task, error)
	Search(ctx context.Context, ownerID string, q models.SearchQuery) ([]models.Task, error)
	CountStats(ctx context.Context, ownerID, today string) (models.Stats, error)
	TagCounts(ctx context.Context, ownerID string) ([]models.TagCount, error)
	DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error)
}
