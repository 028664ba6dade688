package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/userrepo"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/socialservice"
)

func (s *Server) follow(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	st := stateFromContext(r.Context())

	target, err := s.socialService.Follow(r.Context(), *st.user, username)

	switch {
	case errors.Is(err, userrepo.ErrNotFound):
		s.sessions.addFlash(r.Context(), w, st, "Invalid user.")
		http.Redirect(w, r, "/", http.StatusSeeOther)

		return
	case errors.Is(err, socialservice.ErrSelfFollow):
		s.sessions.addFlash(r.Context(), w, st, "You cannot follow yourself.")
	case errors.Is(err, userrepo.ErrAlreadyFollowing):
		s.sessions.addFlash(r.Context(), w, st, "You are already following this user.")
	case err != nil:
		s.handleServiceError(w, r, err)

		return
	default:
		s.sessions.addFlash(r.Context(), w, st, "You are now following "+target.Username+".")
	}

	http.Redirect(w, r, "/user/"+username, http.StatusSeeOther)
}

func (s *Server) unfollow(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	st := stateFromContext(r.Context())

	target, err := s.socialService.Unfollow(r.Context(), *st.user, username)

	switch {
	case errors.Is(err, userrepo.ErrNotFound):
		s.sessions.addFlash(r.Context(), w, st, "Invalid user.")
		http.Redirect(w, r, "/", http.StatusSeeOther)

		return
	case errors.Is(err, userrepo.ErrNotFollowing):
		s.sessions.addFlash(r.Context(), w, st, "You are not following this user.")
	case err != nil:
		s.handleServiceError(w, r, err)

		return
	default:
		s.sessions.addFlash(r.Context(), w, st, "You are no longer following "+target.Username+".")
	}

	http.Redirect(w, r, "/user/"+username, http.StatusSeeOther)
}

type edgeListPage struct {
	Page    socialservice.EdgePage
	Heading string
}

func (s *Server) followers(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	page, err := s.socialService.Followers(r.Context(), username, pageParam(r))
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "pages/followers.html", "Followers of "+username, edgeListPage{
		Page:    page,
		Heading: "Followers of",
	})
}

func (s *Server) followedBy(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	page, err := s.socialService.FollowedBy(r.Context(), username, pageParam(r))
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "pages/followers.html", "Followed by "+username, edgeListPage{
		Page:    page,
		Heading: "Followed by",
	})
}
