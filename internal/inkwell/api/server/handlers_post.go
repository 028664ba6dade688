package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/blogservice"
)

type postPage struct {
	View        blogservice.PostView
	CanEdit     bool
	CanModerate bool
}

func (s *Server) post(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Not found.")

		return
	}

	view, err := s.blogService.PostView(r.Context(), id, pageParam(r))
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	user := currentUser(r.Context())

	s.render(w, r, http.StatusOK, "pages/post.html", "Post", postPage{
		View:        view,
		CanEdit:     user != nil && (user.ID == view.Post.Author.ID || user.IsAdministrator()),
		CanModerate: user.Can(models.PermModerateComments),
	})
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Not found.")

		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed form input.")

		return
	}

	st := stateFromContext(r.Context())
	user := st.user

	body := strings.TrimSpace(r.PostFormValue("body"))
	if body == "" {
		s.sessions.addFlash(r.Context(), w, st, "A comment needs a body.")
		http.Redirect(w, r, "/post/"+strconv.FormatInt(id, 10), http.StatusSeeOther)

		return
	}

	if err := s.blogService.AddComment(r.Context(), *user, id, body); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	s.sessions.addFlash(r.Context(), w, st, "Your comment has been published.")

	// page=-1 jumps to the thread's last page, where the new comment is.
	http.Redirect(w, r, "/post/"+strconv.FormatInt(id, 10)+"?page=-1", http.StatusSeeOther)
}

type editPostPage struct {
	Post models.Post
}

func (s *Server) editPostForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Not found.")

		return
	}

	view, err := s.blogService.PostView(r.Context(), id, 1)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	user := currentUser(r.Context())
	if user.ID != view.Post.Author.ID && !user.IsAdministrator() {
		s.renderError(w, r, http.StatusForbidden, "You don't have permission to do that.")

		return
	}

	s.render(w, r, http.StatusOK, "pages/edit_post.html", "Edit post", editPostPage{Post: view.Post})
}

func (s *Server) editPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Not found.")

		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed form input.")

		return
	}

	st := stateFromContext(r.Context())
	user := st.user

	if err := s.blogService.EditPost(r.Context(), *user, id, r.PostFormValue("body")); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	s.sessions.addFlash(r.Context(), w, st, "The post has been updated.")
	http.Redirect(w, r, "/post/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}
