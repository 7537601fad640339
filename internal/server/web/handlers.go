// Package web is the HTML front end of the planner: routing, sessions,
// flash messages, and page rendering on top of the services.
package web

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/logging"
	"github.com/dmitrijs2005/weekplanner/internal/server/auth"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"github.com/dmitrijs2005/weekplanner/internal/server/services"
)

// UserService is the part of services.UserService the web layer needs.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(token string) (models.Identity, error)
	SessionValidity() time.Duration
}

// TaskService is the part of services.TaskService the web layer needs.
type TaskService interface {
	List(ctx context.Context, id models.Identity, kind models.FilterKind, tag string) ([]models.Task, error)
	Get(ctx context.Context, id models.Identity, taskID string) (*models.Task, error)
	Create(ctx context.Context, id models.Identity, f models.TaskFields) models.Outcome
	Edit(ctx context.Context, id models.Identity, taskID string, f models.TaskFields) models.Outcome
	SoftDelete(ctx context.Context, id models.Identity, taskID string) models.Outcome
	Restore(ctx context.Context, id models.Identity, taskID string) models.Outcome
	DeletePermanent(ctx context.Context, id models.Identity, taskID string) models.Outcome
	Trash(ctx context.Context, id models.Identity) ([]models.Task, error)
	Search(ctx context.Context, id models.Identity, q models.SearchQuery) (models.SearchResult, error)
	Overdue(ctx context.Context, id models.Identity) ([]models.OverdueTask, error)
	Stats(ctx context.Context, id models.Identity) (models.Stats, error)
	Tags(ctx context.Context, id models.Identity) ([]models.TagCount, error)
}

var (
	_ UserService = (*services.UserService)(nil)
	_ TaskService = (*services.TaskService)(nil)
)

type Handlers struct {
	users         UserService
	tasks         TaskService
	logger        logging.Logger
	templates     map[string]*template.Template
	secureCookies bool
}

func NewHandlers(us UserService, ts TaskService, l logging.Logger, secureCookies bool) (*Handlers, error) {
	tpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handlers{
		users:         us,
		tasks:         ts,
		logger:        l.With("module", "web"),
		templates:     tpl,
		secureCookies: secureCookies,
	}, nil
}

// identity is only called behind requireAuth.
func identity(r *http.Request) models.Identity {
	id, _ := auth.IdentityFromContext(r.Context())
	return id
}

// viewURL maps a use-case redirect target onto a route.
func viewURL(v models.NextView) string {
	switch v.Name {
	case models.ViewDetail:
		return "/task/" + v.TaskID
	case models.ViewEditForm:
		return "/task/" + v.TaskID + "/edit"
	case models.ViewNewForm:
		return "/task/new"
	case models.ViewTrash:
		return "/trash"
	case models.ViewLogin:
		return "/login"
	case models.ViewRegister:
		return "/register"
	case models.ViewHome:
		return "/"
	default:
		return "/tasks"
	}
}

// finish turns a write outcome into a flash message plus redirect.
func (h *Handlers) finish(w http.ResponseWriter, r *http.Request, out models.Outcome) {
	setFlash(w, flashKind(out.Status), out.Message, h.secureCookies)
	http.Redirect(w, r, viewURL(out.Next), http.StatusSeeOther)
}
