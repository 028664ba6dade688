package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/userrepo"
	"github.com/inkwell-press/inkwell/pkg/logger"
	"github.com/unrolled/secure"
)

func secureHeaders() func(http.Handler) http.Handler {
	sec := secure.New(secure.Options{ //nolint:exhaustruct
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "same-origin",
	})

	return sec.Handler
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}

	return sr.ResponseWriter.Write(b)
}

func loggingMiddleware(logg logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rr := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rr, r)

			if rr.status == 0 {
				rr.status = http.StatusOK
			}

			logg.Infof("METHOD %s URI %s %s	STATUS %d Latency %s Client IP %s User Agent %s",
				r.Method,
				r.Proto,
				r.URL.RequestURI(),
				rr.status,
				time.Since(start).String(),
				r.RemoteAddr,
				r.UserAgent(),
			)
		})
	}
}

// withSession resolves the session cookie and the signed-in user, if
// any, and threads both through the request context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := &requestState{}

		if sess, ok := s.sessions.load(r.Context(), r); ok {
			st.sess = sess
			st.hasSession = true

			if sess.UserID != 0 {
				user, err := s.authService.UserByID(r.Context(), sess.UserID)

				switch {
				case err == nil:
					st.user = &user
				case errors.Is(err, userrepo.ErrNotFound):
					// Stale session pointing at a gone user.
					s.sessions.destroy(r.Context(), w, st)
				default:
					// A lookup failure must not sign the user out; keep the
					// session and serve this request anonymously.
					s.lg.Errorf("resolve session user error: %s", err.Error())
				}
			}
		}

		next.ServeHTTP(w, r.WithContext(contextWithState(r.Context(), st)))
	})
}

func (s *Server) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := stateFromContext(r.Context())
		if st.user == nil {
			s.sessions.addFlash(r.Context(), w, st, "Please log in to access this page.")
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)

			return
		}

		next.ServeHTTP(w, r)
	})
}

// requirePermission admits signed-in users whose role carries every bit
// of p. Anonymous callers go to the login page, everyone else gets 403.
func (s *Server) requirePermission(p models.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := stateFromContext(r.Context())
			if st.user == nil {
				s.sessions.addFlash(r.Context(), w, st, "Please log in to access this page.")
				http.Redirect(w, r, "/auth/login", http.StatusSeeOther)

				return
			}

			if !st.user.Can(p) {
				s.renderError(w, r, http.StatusForbidden, "You don't have permission to do that.")

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
