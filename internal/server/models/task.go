// Package models defines the planner's domain records and the query/result
// shapes passed between services, repositories, and the web layer.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/dmitrijs2005/weekplanner/internal/timex"
)

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Tag         string
	// DueDate is a YYYY-MM-DD calendar date, or "" when unset.
	DueDate   string
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fields returns the editable part of t.
func (t *Task) Fields() TaskFields {
	return TaskFields{Title: t.Title, Description: t.Description, Tag: t.Tag, DueDate: t.DueDate}
}

// TaskFields are the user-editable attributes of a task.
type TaskFields struct {
	Title       string
	Description string
	Tag         string
	DueDate     string
}

// Normalize trims the single-line fields.
func (f TaskFields) Normalize() TaskFields {
	f.Title = strings.TrimSpace(f.Title)
	f.Tag = strings.TrimSpace(f.Tag)
	f.DueDate = strings.TrimSpace(f.DueDate)
	return f
}

// Validate expects normalized fields. Errors wrap common.ErrorValidation.
func (f TaskFields) Validate() error {
	if f.Title == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if f.DueDate != "" {
		if _, err := timex.ParseDate(f.DueDate); err != nil {
			return fmt.Errorf("%w: due date must look like 2025-01-31", common.ErrorValidation)
		}
	}
	return nil
}

// FilterKind selects one of the task list views.
type FilterKind string

const (
	FilterAll      FilterKind = "all"
	FilterUpcoming FilterKind = "upcoming"
	FilterToday    FilterKind = "today"
	FilterTag      FilterKind = "tag"
)

// ParseFilterKind maps a query-string value onto a FilterKind; anything
// unrecognised is FilterAll.
func ParseFilterKind(s string) FilterKind {
	switch k := FilterKind(strings.ToLower(strings.TrimSpace(s))); k {
	case FilterUpcoming, FilterToday, FilterTag:
		return k
	default:
		return FilterAll
	}
}

// ListQuery describes an active-task listing.
type ListQuery struct {
	Kind FilterKind
	Tag  string
	// Today is the caller's current date, YYYY-MM-DD.
	Today string
}

// SearchQuery holds the optional search inputs. Blank values count as absent.
type SearchQuery struct {
	Text string
	Tag  string
}

// NewSearchQuery trims both inputs.
func NewSearchQuery(text, tag string) SearchQuery {
	return SearchQuery{Text: strings.TrimSpace(text), Tag: strings.TrimSpace(tag)}
}

// Requested reports whether there is anything to search for.
func (q SearchQuery) Requested() bool {
	return q.Text != "" || q.Tag != ""
}

// SearchResult distinguishes "not searched" from "searched, nothing found".
type SearchResult struct {
	Query    SearchQuery
	Searched bool
	Tasks    []Task
}

// Stats are the dashboard counters over a user's active tasks.
type Stats struct {
	Total    int64
	Upcoming int64
	Today    int64
	Overdue  int64
	Tags     int64
}

// TagCount is one row of the tag overview.
type TagCount struct {
	Tag   string
	Count int64
}

// OverdueTask pairs a task with how many days late it is. DaysOverdue is nil
// when the stored due date cannot be parsed.
type OverdueTask struct {
	Task
	DaysOverdue *int
}
