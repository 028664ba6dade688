package server

import (
	"net/http"
	"strconv"

	"github.com/inkwell-press/inkwell/internal/inkwell/services/blogservice"
)

type moderatePage struct {
	Page blogservice.CommentPage
}

func (s *Server) moderate(w http.ResponseWriter, r *http.Request) {
	page, err := s.blogService.ModerationQueue(r.Context(), pageParam(r))
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "pages/moderate.html", "Moderation", moderatePage{Page: page})
}

func (s *Server) moderateEnable(w http.ResponseWriter, r *http.Request) {
	s.moderateSet(w, r, false)
}

func (s *Server) moderateDisable(w http.ResponseWriter, r *http.Request) {
	s.moderateSet(w, r, true)
}

func (s *Server) moderateSet(w http.ResponseWriter, r *http.Request, disabled bool) {
	id, err := idParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Not found.")

		return
	}

	if disabled {
		err = s.blogService.DisableComment(r.Context(), id)
	} else {
		err = s.blogService.EnableComment(r.Context(), id)
	}

	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	// Stay on the moderator's current page of the queue.
	http.Redirect(w, r, "/moderate?page="+strconv.Itoa(pageParam(r)), http.StatusSeeOther)
}
