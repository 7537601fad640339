package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/dmitrijs2005/weekplanner/internal/logging"
	"github.com/dmitrijs2005/weekplanner/internal/server/config"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"github.com/dmitrijs2005/weekplanner/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/weekplanner/internal/server/repositories/users"
)

// fixedNow is 2025-01-10, the "today" of every service test.
var fixedNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

// --- users ---

type memUsers struct {
	byEmail map[string]*models.User
	seq     int

	getErr    error
	createErr error
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]*models.User{}} }

func (m *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return nil, common.ErrorDuplicateEmail
	}
	m.seq++
	cp := *u
	cp.ID = fmt.Sprintf("u%d", m.seq)
	m.byEmail[u.Email] = &cp
	u.ID = cp.ID
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// --- tasks ---

// memTasks mirrors the owner and trash scoping of the Mongo repository.
type memTasks struct {
	byID map[string]*models.Task
	seq  int

	err error
}

func newMemTasks() *memTasks { return &memTasks{byID: map[string]*models.Task{}} }

func (m *memTasks) lookup(owner, id string) (*models.Task, bool) {
	t, ok := m.byID[id]
	if !ok || t.OwnerID != owner {
		return nil, false
	}
	return t, true
}

func (m *memTasks) collect(match func(*models.Task) bool) []models.Task {
	out := []models.Task{}
	for _, t := range m.byID {
		if match(t) {
			out = append(out, *t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DueDate == out[j].DueDate {
			return out[i].ID < out[j].ID
		}
		return out[i].DueDate < out[j].DueDate
	})
	return out
}

func (m *memTasks) Create(_ context.Context, owner string, f models.TaskFields, now time.Time) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.seq++
	id := fmt.Sprintf("t%03d", m.seq)
	m.byID[id] = &models.Task{
		ID: id, OwnerID: owner,
		Title: f.Title, Description: f.Description, Tag: f.Tag, DueDate: f.DueDate,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (m *memTasks) Get(_ context.Context, owner, id string, includeDeleted bool) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.lookup(owner, id)
	if !ok || (t.Deleted && !includeDeleted) {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTasks) List(_ context.Context, owner string, q models.ListQuery) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.collect(func(t *models.Task) bool {
		if t.OwnerID != owner || t.Deleted {
			return false
		}
		switch q.Kind {
		case models.FilterUpcoming:
			return t.DueDate > q.Today
		case models.FilterToday:
			return t.DueDate == q.Today
		case models.FilterTag:
			return t.Tag == q.Tag
		}
		return true
	}), nil
}

func (m *memTasks) Update(_ context.Context, owner, id string, f models.TaskFields, now time.Time) error {
	if m.err != nil {
		return m.err
	}
	t, ok := m.lookup(owner, id)
	if !ok || t.Deleted {
		return common.ErrorNotFound
	}
	t.Title, t.Description, t.Tag, t.DueDate = f.Title, f.Description, f.Tag, f.DueDate
	t.UpdatedAt = now
	return nil
}

func (m *memTasks) SetDeleted(_ context.Context, owner, id string, deleted bool, now time.Time) error {
	if m.err != nil {
		return m.err
	}
	if t, ok := m.lookup(owner, id); ok {
		t.Deleted = deleted
		t.UpdatedAt = now
	}
	return nil
}

func (m *memTasks) Delete(_ context.Context, owner, id string) error {
	if m.err != nil {
		return m.err
	}
	if t, ok := m.lookup(owner, id); ok && t.Deleted {
		delete(m.byID, id)
	}
	return nil
}

func (m *memTasks) ListDeleted(_ context.Context, owner string) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.collect(func(t *models.Task) bool { return t.OwnerID == owner && t.Deleted }), nil
}

func (m *memTasks) ListOverdue(_ context.Context, owner, today string) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.collect(func(t *models.Task) bool {
		return t.OwnerID == owner && !t.Deleted && t.DueDate != "" && t.DueDate < today
	}), nil
}

func (m *memTasks) Search(_ context.Context, owner string, q models.SearchQuery) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	needle := strings.ToLower(q.Text)
	return m.collect(func(t *models.Task) bool {
		if t.OwnerID != owner || t.Deleted {
			return false
		}
		if q.Tag != "" && t.Tag != q.Tag {
			return false
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
		return true
	}), nil
}

func (m *memTasks) CountStats(ctx context.Context, owner, today string) (models.Stats, error) {
	if m.err != nil {
		return models.Stats{}, m.err
	}
	var st models.Stats
	tags := map[string]struct{}{}
	for _, t := range m.byID {
		if t.OwnerID != owner || t.Deleted {
			continue
		}
		st.Total++
		switch {
		case t.DueDate > today:
			st.Upcoming++
		case t.DueDate == today:
			st.Today++
		case t.DueDate != "":
			st.Overdue++
		}
		if t.Tag != "" {
			tags[t.Tag] = struct{}{}
		}
	}
	st.Tags = int64(len(tags))
	return st, nil
}

func (m *memTasks) TagCounts(_ context.Context, owner string) ([]models.TagCount, error) {
	if m.err != nil {
		return nil, m.err
	}
	counts := map[string]int64{}
	for _, t := range m.byID {
		if t.OwnerID == owner && !t.Deleted && t.Tag != "" {
			counts[t.Tag]++
		}
	}
	out := []models.TagCount{}
	for tag, n := range counts {
		out = append(out, models.TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out, nil
}

func (m *memTasks) DeleteAllForOwner(_ context.Context, owner string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for id, t := range m.byID {
		if t.OwnerID == owner {
			delete(m.byID, id)
			n++
		}
	}
	return n, nil
}

// --- manager ---

type fakeRepoManager struct {
	users *memUsers
	tasks *memTasks
}

func (m *fakeRepoManager) EnsureIndexes(context.Context) error { return nil }
func (m *fakeRepoManager) Users() users.Repository            { return m.users }
func (m *fakeRepoManager) Tasks() tasks.Repository            { return m.tasks }

func newFakeManager() *fakeRepoManager {
	return &fakeRepoManager{users: newMemUsers(), tasks: newMemTasks()}
}

func newTestUserService(t *testing.T, m *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{SecretKey: "k", SessionValidityDuration: time.Hour}
	s := NewUserService(m, cfg, logging.Nop{})
	s.now = func() time.Time { return fixedNow }
	return s
}

func newTestTaskService(t *testing.T, m *fakeRepoManager) *TaskService {
	t.Helper()
	s := NewTaskService(m, logging.Nop{})
	s.now = func() time.Time { return fixedNow }
	return s
}
