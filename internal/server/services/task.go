package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/dmitrijs2005/weekplanner/internal/logging"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"github.com/dmitrijs2005/weekplanner/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/weekplanner/internal/timex"
)

// TaskService implements the task use cases. Every call takes the caller's
// identity explicitly; reads return data, writes return a models.Outcome.
type TaskService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewTaskService(m repomanager.RepositoryManager, l logging.Logger) *TaskService {
	return &TaskService{
		repomanager: m,
		logger:      l.With("module", "task_service"),
		now:         time.Now,
	}
}

func (s *TaskService) today() string {
	return timex.DateString(s.now())
}

// validationMessage strips the sentinel prefix so the text can be shown as is.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
}

func (s *TaskService) internal(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}

// List returns the active tasks of one list view, soonest first. The tag view
// without a tag falls back to all tasks.
func (s *TaskService) List(ctx context.Context, id models.Identity, kind models.FilterKind, tag string) ([]models.Task, error) {
	tag = strings.TrimSpace(tag)
	if kind == models.FilterTag && tag == "" {
		kind = models.FilterAll
	}

	q := models.ListQuery{Kind: kind, Tag: tag, Today: s.today()}
	tasks, err := s.repomanager.Tasks().List(ctx, id.UserID, q)
	if err != nil {
		return nil, s.internal(ctx, "list", err)
	}
	return tasks, nil
}

// Get returns an active task of the caller, or common.ErrorNotFound.
func (s *TaskService) Get(ctx context.Context, id models.Identity, taskID string) (*models.Task, error) {
	t, err := s.repomanager.Tasks().Get(ctx, id.UserID, taskID, false)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, s.internal(ctx, "get", err)
	}
	return t, nil
}

func (s *TaskService) Create(ctx context.Context, id models.Identity, f models.TaskFields) models.Outcome {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		s.logger.Warn(ctx, "invalid task", "user_id", id.UserID, "error", err)
		return models.Failure(validationMessage(err), models.NextView{Name: models.ViewNewForm})
	}

	taskID, err := s.repomanager.Tasks().Create(ctx, id.UserID, f, s.now().UTC())
	if err != nil {
		s.internal(ctx, "create", err)
		return models.Failure("Could not save the task, please try again.", models.NextView{Name: models.ViewNewForm})
	}

	s.logger.Info(ctx, "task created", "user_id", id.UserID, "task_id", taskID)
	return models.Success("Task created.", models.NextView{Name: models.ViewList})
}

func (s *TaskService) Edit(ctx context.Context, id models.Identity, taskID string, f models.TaskFields) models.Outcome {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		s.logger.Warn(ctx, "invalid task", "user_id", id.UserID, "error", err)
		return models.Failure(validationMessage(err), models.NextView{Name: models.ViewEditForm, TaskID: taskID})
	}

	err := s.repomanager.Tasks().Update(ctx, id.UserID, taskID, f, s.now().UTC())
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return models.Failure("Task not found.", models.NextView{Name: models.ViewList})
	case err != nil:
		s.internal(ctx, "update", err)
		return models.Failure("Could not update the task, please try again.", models.NextView{Name: models.ViewEditForm, TaskID: taskID})
	}

	return models.Success("Task updated.", models.NextView{Name: models.ViewDetail, TaskID: taskID})
}

// SoftDelete moves a task to the trash. Ids the caller does not own are
// ignored and still reported as done.
func (s *TaskService) SoftDelete(ctx context.Context, id models.Identity, taskID string) models.Outcome {
	if err := s.repomanager.Tasks().SetDeleted(ctx, id.UserID, taskID, true, s.now().UTC()); err != nil {
		s.internal(ctx, "soft delete", err)
		return models.Failure("Could not move the task to the trash.", models.NextView{Name: models.ViewList})
	}
	return models.Success("Task moved to trash.", models.NextView{Name: models.ViewList})
}

func (s *TaskService) Restore(ctx context.Context, id models.Identity, taskID string) models.Outcome {
	if err := s.repomanager.Tasks().SetDeleted(ctx, id.UserID, taskID, false, s.now().UTC()); err != nil {
		s.internal(ctx, "restore", err)
		return models.Failure("Could not restore the task.", models.NextView{Name: models.ViewTrash})
	}
	return models.Success("Task restored.", models.NextView{Name: models.ViewTrash})
}

func (s *TaskService) DeletePermanent(ctx context.Context, id models.Identity, taskID string) models.Outcome {
	if err := s.repomanager.Tasks().Delete(ctx, id.UserID, taskID); err != nil {
		s.internal(ctx, "permanent delete", err)
		return models.Failure("Could not delete the task.", models.NextView{Name: models.ViewTrash})
	}
	return models.Success("Task deleted permanently.", models.NextView{Name: models.ViewTrash})
}

func (s *TaskService) Trash(ctx context.Context, id models.Identity) ([]models.Task, error) {
	tasks, err := s.repomanager.Tasks().ListDeleted(ctx, id.UserID)
	if err != nil {
		return nil, s.internal(ctx, "trash", err)
	}
	return tasks, nil
}

// Search runs only when q has text or a tag; otherwise the result is marked
// as not searched.
func (s *TaskService) Search(ctx context.Context, id models.Identity, q models.SearchQuery) (models.SearchResult, error) {
	res := models.SearchResult{Query: q}
	if !q.Requested() {
		return res, nil
	}

	tasks, err := s.repomanager.Tasks().Search(ctx, id.UserID, q)
	if err != nil {
		return res, s.internal(ctx, "search", err)
	}

	res.Searched = true
	res.Tasks = tasks
	return res, nil
}

// Overdue lists past-due active tasks with their lateness in days. A stored
// date that cannot be parsed leaves DaysOverdue nil.
func (s *TaskService) Overdue(ctx context.Context, id models.Identity) ([]models.OverdueTask, error) {
	today := s.today()

	tasks, err := s.repomanager.Tasks().ListOverdue(ctx, id.UserID, today)
	if err != nil {
		return nil, s.internal(ctx, "overdue", err)
	}

	out := make([]models.OverdueTask, 0, len(tasks))
	for _, t := range tasks {
		ot := models.OverdueTask{Task: t}
		if days, err := timex.DaysBetween(today, t.DueDate); err == nil {
			ot.DaysOverdue = &days
		} else {
			s.logger.Warn(ctx, "unparseable due date", "task_id", t.ID, "error", err)
		}
		out = append(out, ot)
	}
	return out, nil
}

// Stats returns the dashboard counters.
func (s *TaskService) Stats(ctx context.Context, id models.Identity) (models.Stats, error) {
	st, err := s.repomanager.Tasks().CountStats(ctx, id.UserID, s.today())
	if err != nil {
		return models.Stats{}, s.internal(ctx, "stats", err)
	}
	return st, nil
}

func (s *TaskService) Tags(ctx context.Context, id models.Identity) ([]models.TagCount, error) {
	tags, err := s.repomanager.Tasks().TagCounts(ctx, id.UserID)
	if err != nil {
		return nil, s.internal(ctx, "tags", err)
	}
	return tags, nil
}

// ClearAll permanently removes every task of the caller, trash included.
func (s *TaskService) ClearAll(ctx context.Context, id models.Identity) (int64, error) {
	n, err := s.repomanager.Tasks().DeleteAllForOwner(ctx, id.UserID)
	if err != nil {
		return 0, s.internal(ctx, "clear", err)
	}
	s.logger.Info(ctx, "tasks cleared", "user_id", id.UserID, "count", n)
	return n, nil
}
