package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"github.com/gorilla/mux"
)

type listPage struct {
	Filter models.FilterKind
	Tag    string
	Tasks  []models.Task
}

type formPage struct {
	ID     string
	Fields models.TaskFields
}

func taskID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

func formFields(r *http.Request) models.TaskFields {
	return models.TaskFields{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Tag:         r.PostFormValue("tag"),
		DueDate:     r.PostFormValue("due_date"),
	}
}

// readFailed reports a read-path error as a 404 or 500 page.
func (h *Handlers) readFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		h.renderError(w, r, http.StatusNotFound, "Task not found.")
		return
	}
	h.renderError(w, r, http.StatusInternalServerError, "Something went wrong.")
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	st, err := h.tasks.Stats(r.Context(), identity(r))
	if err != nil {
		h.readFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "home", st)
}

func (h *Handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := models.ParseFilterKind(q.Get("filter"))
	tag := q.Get("tag")

	tasks, err := h.tasks.List(r.Context(), identity(r), kind, tag)
	if err != nil {
		h.readFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "list", listPage{Filter: kind, Tag: tag, Tasks: tasks})
}

func (h *Handlers) taskDetail(w http.ResponseWriter, r *http.Request) {
	t, err := h.tasks.Get(r.Context(), identity(r), taskID(r))
	if err != nil {
		h.readFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "detail", t)
}

func (h *Handlers) newTaskForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "form", formPage{})
}

func (h *Handlers) createTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.finish(w, r, models.Failure("Could not read the form.", models.NextView{Name: models.ViewNewForm}))
		return
	}
	h.finish(w, r, h.tasks.Create(r.Context(), identity(r), formFields(r)))
}

func (h *Handlers) editTaskForm(w http.ResponseWriter, r *http.Request) {
	t, err := h.tasks.Get(r.Context(), identity(r), taskID(r))
	if err != nil {
		h.readFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "form", formPage{ID: t.ID, Fields: t.Fields()})
}

func (h *Handlers) editTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	if err := r.ParseForm(); err != nil {
		h.finish(w, r, models.Failure("Could not read the form.", models.NextView{Name: models.ViewEditForm, TaskID: id}))
		return
	}
	h.finish(w, r, h.tasks.Edit(r.Context(), identity(r), id, formFields(r)))
}

func (h *Handlers) softDeleteTask(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.tasks.SoftDelete(r.Context(), identity(r), taskID(r)))
}

func (h *Handlers) restoreTask(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.tasks.Restore(r.Context(), identity(r), taskID(r)))
}

func (h *Handlers) deleteTaskPermanently(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.tasks.DeletePermanent(r.Context(), identity(r), taskID(r)))
}

func (h *Handlers) trash(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.Trash(r.Context(), identity(r))
	if err != nil {
		h.readFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "trash", tasks)
}

func (h *Handlers) tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tasks.Tags(r.Context(), identity(r))
	if err != nil {
		h.readFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "tags", tags)
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.tasks.Search(r.Context(), identity(r), models.NewSearchQuery(q.Get("q"), q.Get("tag")))
	if err != nil {
		h.readFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "search", res)
}

func (h *Handlers) overdue(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.Overdue(r.Context(), identity(r))
	if err != nil {
		h.readFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "overdue", tasks)
}

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Page not found.")
}
