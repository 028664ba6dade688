package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/userrepo"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/authservice"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/blogservice"

	"github.com/go-chi/chi/v5"
)

type profilePage struct {
	User           models.User
	Posts          []models.Post
	IsFollowing    bool
	FollowerCount  int
	FollowingCount int
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := s.authService.UserByUsername(r.Context(), username)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	feed, err := s.blogService.Feed(r.Context(), blogservice.FeedRequest{
		AuthorID: user.ID,
		Page:     pageParam(r),
	})
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	followersPage, err := s.socialService.Followers(r.Context(), username, 1)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	followedPage, err := s.socialService.FollowedBy(r.Context(), username, 1)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "pages/user.html", user.Username, profilePage{
		User:           user,
		Posts:          feed.Posts,
		IsFollowing:    s.socialService.IsFollowing(r.Context(), currentUser(r.Context()), user.ID),
		FollowerCount:  followersPage.Pagination.Total,
		FollowingCount: followedPage.Pagination.Total,
	})
}

type profileForm struct {
	Name     string `validate:"max=64"`
	Location string `validate:"max=64"`
	AboutMe  string `validate:"max=2000"`
}

type editProfilePage struct {
	Form   authservice.ProfileRequest
	Errors map[string]string
}

func (s *Server) editProfileForm(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	s.render(w, r, http.StatusOK, "pages/edit_profile.html", "Edit profile", editProfilePage{
		Form: authservice.ProfileRequest{
			Name:     user.Name,
			Location: user.Location,
			AboutMe:  user.AboutMe,
		},
	})
}

func (s *Server) editProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed form input.")

		return
	}

	st := stateFromContext(r.Context())
	user := st.user

	form := profileForm{
		Name:     r.PostFormValue("name"),
		Location: r.PostFormValue("location"),
		AboutMe:  r.PostFormValue("about_me"),
	}

	req := authservice.ProfileRequest{
		Name:     form.Name,
		Location: form.Location,
		AboutMe:  form.AboutMe,
	}

	if err := s.validate.Struct(form); err != nil {
		s.render(w, r, http.StatusBadRequest, "pages/edit_profile.html", "Edit profile", editProfilePage{
			Form:   req,
			Errors: s.validationErrors(err),
		})

		return
	}

	if err := s.authService.UpdateProfile(r.Context(), *user, req); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	s.sessions.addFlash(r.Context(), w, st, "Your profile has been updated.")
	http.Redirect(w, r, "/user/"+user.Username, http.StatusSeeOther)
}

type editProfileAdminPage struct {
	User   models.User
	Form   authservice.AdminProfileRequest
	Roles  []models.Role
	Errors map[string]string
}

func (s *Server) editProfileAdminForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Not found.")

		return
	}

	target, err := s.authService.UserByID(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	roles, err := s.authService.Roles(r.Context())
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "pages/edit_profile_admin.html", "Edit profile [admin]", editProfileAdminPage{
		User: target,
		Form: authservice.AdminProfileRequest{
			Email:     target.Email,
			Username:  target.Username,
			Confirmed: target.Confirmed,
			RoleID:    target.Role.ID,
			Name:      target.Name,
			Location:  target.Location,
			AboutMe:   target.AboutMe,
		},
		Roles: roles,
	})
}

func (s *Server) editProfileAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Not found.")

		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed form input.")

		return
	}

	roleID, err := parseInt64(r.PostFormValue("role"))
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed form input.")

		return
	}

	req := authservice.AdminProfileRequest{
		Email:     r.PostFormValue("email"),
		Username:  r.PostFormValue("username"),
		Confirmed: r.PostFormValue("confirmed") == "1",
		RoleID:    roleID,
		Name:      r.PostFormValue("name"),
		Location:  r.PostFormValue("location"),
		AboutMe:   r.PostFormValue("about_me"),
	}

	st := stateFromContext(r.Context())

	if err := s.authService.AdminUpdateProfile(r.Context(), id, req); err != nil {
		if errors.Is(err, userrepo.ErrAlreadyExists) {
			s.sessions.addFlash(r.Context(), w, st, "That email or username is already taken.")
			http.Redirect(w, r, "/edit-profile/"+strconv.FormatInt(id, 10), http.StatusSeeOther)

			return
		}

		s.handleServiceError(w, r, err)

		return
	}

	s.sessions.addFlash(r.Context(), w, st, "The profile has been updated.")
	http.Redirect(w, r, "/user/"+req.Username, http.StatusSeeOther)
}
