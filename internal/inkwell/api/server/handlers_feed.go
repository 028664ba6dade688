package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/blogservice"
)

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}

	return page
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

type indexPage struct {
	Feed         blogservice.FeedPage
	ShowFollowed bool
	CanWrite     bool
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	req := blogservice.FeedRequest{Page: pageParam(r)}

	if user != nil && showFollowedFromCookie(r) {
		req.UserID = user.ID
		req.ShowFollowed = true
	}

	feed, err := s.blogService.Feed(r.Context(), req)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "pages/index.html", "Home", indexPage{
		Feed:         feed,
		ShowFollowed: req.ShowFollowed,
		CanWrite:     user.Can(models.PermWriteArticles),
	})
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed form input.")

		return
	}

	user := currentUser(r.Context())

	body := strings.TrimSpace(r.PostFormValue("body"))
	if body == "" {
		st := stateFromContext(r.Context())
		s.sessions.addFlash(r.Context(), w, st, "A post needs a body.")
		http.Redirect(w, r, "/", http.StatusSeeOther)

		return
	}

	if _, err := s.blogService.CreatePost(r.Context(), *user, body); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	// Redirect-after-post so a refresh does not resubmit.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) showAll(w http.ResponseWriter, r *http.Request) {
	setShowFollowedCookie(w, "")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) showFollowed(w http.ResponseWriter, r *http.Request) {
	setShowFollowedCookie(w, "1")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
