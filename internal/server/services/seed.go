package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"github.com/dmitrijs2005/weekplanner/internal/timex"
)

// SampleTasks is the starter set used to seed a fresh account: one task due
// today, one tomorrow and one yesterday.
func SampleTasks(now time.Time) []models.TaskFields {
	return []models.TaskFields{
		{Title: "cooking", Description: "Make dinner", Tag: "food", DueDate: timex.DateString(now)},
		{Title: "study", Description: "Finish the database chapter", Tag: "study", DueDate: timex.DateString(now.AddDate(0, 0, 1))},
		{Title: "work out", Description: "Evening run", Tag: "health", DueDate: timex.DateString(now.AddDate(0, 0, -1))},
	}
}

// Seed inserts tasks as given, skipping invalid ones. It returns how many
// were stored.
func (s *TaskService) Seed(ctx context.Context, id models.Identity, fields []models.TaskFields) (int, error) {
	n := 0
	for _, f := range fields {
		f = f.Normalize()
		if err := f.Validate(); err != nil {
			s.logger.Warn(ctx, "skipping invalid seed task", "title", f.Title, "error", err)
			continue
		}
		if _, err := s.repomanager.Tasks().Create(ctx, id.UserID, f, s.now().UTC()); err != nil {
			return n, s.internal(ctx, "seed", err)
		}
		n++
	}
	return n, nil
}

