package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/dmitrijs2005/weekplanner/internal/server/auth"
)

func (h *Handlers) registerForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register", nil)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "error", "Could not read the form.", h.secureCookies)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	_, err := h.users.Register(r.Context(), r.PostFormValue("name"), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, common.ErrorValidation):
			msg = strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
		case errors.Is(err, common.ErrorDuplicateEmail):
			msg = "This email is already registered."
		default:
			msg = "Registration failed, please try again."
		}
		setFlash(w, "error", msg, h.secureCookies)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	setFlash(w, "success", "Registration successful, please log in.", h.secureCookies)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handlers) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", nil)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "error", "Could not read the form.", h.secureCookies)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sess, err := h.users.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		msg := "Login failed, please try again."
		if errors.Is(err, common.ErrorInvalidCredentials) {
			msg = "Invalid email or password."
		}
		setFlash(w, "error", msg, h.secureCookies)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	auth.SetSessionCookie(w, sess.Token, h.users.SessionValidity(), h.secureCookies)
	setFlash(w, "success", "Welcome back, "+sess.Identity.Name+"!", h.secureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logout works with or without a session.
func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secureCookies)
	setFlash(w, "success", "You have been logged out.", h.secureCookies)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
