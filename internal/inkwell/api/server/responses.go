package server

import (
	"errors"
	"net/http"

	"github.com/inkwell-press/inkwell/internal/inkwell/repository/contentrepo"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/userrepo"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/blogservice"
	"github.com/inkwell-press/inkwell/internal/inkwell/view"
)

type errorPage struct {
	Status  int
	Message string
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	st := stateFromContext(r.Context())

	viewData := view.TemplateData{
		Title:       title,
		CurrentUser: st.user,
		Flashes:     s.sessions.popFlashes(r.Context(), st),
		CurrentPath: r.URL.Path,
		Data:        data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	if err := s.templates.Render(w, name, viewData); err != nil {
		s.lg.Errorf("render %s error: %s", name, err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, "pages/error.html", http.StatusText(status), errorPage{
		Status:  status,
		Message: message,
	})
}

// handleServiceError maps service sentinels onto the error taxonomy:
// unknown entity -> 404, ownership/capability failure -> 403,
// anything else -> 500.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, userrepo.ErrNotFound),
		errors.Is(err, userrepo.ErrRoleNotFound),
		errors.Is(err, contentrepo.ErrPostNotFound),
		errors.Is(err, contentrepo.ErrCommentNotFound),
		errors.Is(err, contentrepo.ErrTaxonomyNotFound):
		s.renderError(w, r, http.StatusNotFound, "Not found.")
	case errors.Is(err, blogservice.ErrForbidden):
		s.renderError(w, r, http.StatusForbidden, "You don't have permission to do that.")
	default:
		s.lg.Errorf("request %s %s error: %s", r.Method, r.URL.Path, err.Error())
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong.")
	}
}
