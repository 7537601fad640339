package web

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes returns the complete handler, middleware included.
func (h *Handlers) Routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.notFound)

	public := r.NewRoute().Subrouter()
	public.Use(h.optionalAuth)
	public.HandleFunc("/register", h.registerForm).Methods(http.MethodGet)
	public.HandleFunc("/register", h.register).Methods(http.MethodPost)
	public.HandleFunc("/login", h.loginForm).Methods(http.MethodGet)
	public.HandleFunc("/login", h.login).Methods(http.MethodPost)
	public.HandleFunc("/logout", h.logout).Methods(http.MethodGet, http.MethodPost)

	private := r.NewRoute().Subrouter()
	private.Use(h.requireAuth)
	private.HandleFunc("/", h.home).Methods(http.MethodGet)
	private.HandleFunc("/tasks", h.listTasks).Methods(http.MethodGet)
	private.HandleFunc("/task/new", h.newTaskForm).Methods(http.MethodGet)
	private.HandleFunc("/task/new", h.createTask).Methods(http.MethodPost)
	private.HandleFunc("/task/{id}", h.taskDetail).Methods(http.MethodGet)
	private.HandleFunc("/task/{id}/edit", h.editTaskForm).Methods(http.MethodGet)
	private.HandleFunc("/task/{id}/edit", h.editTask).Methods(http.MethodPost)
	private.HandleFunc("/task/{id}/soft-delete", h.softDeleteTask).Methods(http.MethodPost)
	private.HandleFunc("/task/{id}/restore", h.restoreTask).Methods(http.MethodPost)
	private.HandleFunc("/task/{id}/delete-permanent", h.deleteTaskPermanently).Methods(http.MethodPost)
	private.HandleFunc("/trash", h.trash).Methods(http.MethodGet)
	private.HandleFunc("/tags", h.tags).Methods(http.MethodGet)
	private.HandleFunc("/search", h.search).Methods(http.MethodGet)
	private.HandleFunc("/overdue", h.overdue).Methods(http.MethodGet)

	return noCache(requestLogger(h.logger)(r))
}
