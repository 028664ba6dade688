package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/sessionrepo"
)

const (
	sessionCookie = "inkwell_session"

	// showFollowedCookie is client-held, advisory view state. It is
	// never consulted for authorization.
	showFollowedCookie    = "show_followed"
	showFollowedCookieTTL = 30 * 24 * time.Hour
)

// requestState is the per-request session view threaded through context.
type requestState struct {
	sess       sessionrepo.Session
	hasSession bool
	user       *models.User
}

type stateContextKey struct{}

func contextWithState(ctx context.Context, st *requestState) context.Context {
	return context.WithValue(ctx, stateContextKey{}, st)
}

func stateFromContext(ctx context.Context) *requestState {
	st, _ := ctx.Value(stateContextKey{}).(*requestState)
	if st == nil {
		return &requestState{}
	}

	return st
}

func currentUser(ctx context.Context) *models.User {
	return stateFromContext(ctx).user
}

type sessionManager struct {
	store  SessionStore
	secure bool
}

func newSessionManager(store SessionStore, secure bool) *sessionManager {
	return &sessionManager{
		store:  store,
		secure: secure,
	}
}

func (sm *sessionManager) load(ctx context.Context, r *http.Request) (sessionrepo.Session, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return sessionrepo.Session{}, false
	}

	sess, err := sm.store.Get(ctx, cookie.Value)
	if err != nil {
		return sessionrepo.Session{}, false
	}

	return sess, true
}

func (sm *sessionManager) create(ctx context.Context, w http.ResponseWriter, userID int64) (sessionrepo.Session, error) {
	sess := sessionrepo.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := sm.store.Save(ctx, sess); err != nil {
		return sessionrepo.Session{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return sess, nil
}

func (sm *sessionManager) destroy(ctx context.Context, w http.ResponseWriter, st *requestState) {
	if st.hasSession {
		_ = sm.store.Delete(ctx, st.sess.ID)
	}

	st.sess = sessionrepo.Session{}
	st.hasSession = false
	st.user = nil

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// addFlash queues a one-shot notice. An anonymous visitor gets a
// session created on the spot so the notice survives the redirect.
func (sm *sessionManager) addFlash(ctx context.Context, w http.ResponseWriter, st *requestState, msg string) {
	if !st.hasSession {
		sess, err := sm.create(ctx, w, 0)
		if err != nil {
			return
		}

		st.sess = sess
		st.hasSession = true
	}

	st.sess.Flashes = append(st.sess.Flashes, msg)
	_ = sm.store.Save(ctx, st.sess)
}

func (sm *sessionManager) popFlashes(ctx context.Context, st *requestState) []string {
	if !st.hasSession || len(st.sess.Flashes) == 0 {
		return nil
	}

	flashes := st.sess.Flashes
	st.sess.Flashes = nil
	_ = sm.store.Save(ctx, st.sess)

	return flashes
}

func showFollowedFromCookie(r *http.Request) bool {
	cookie, err := r.Cookie(showFollowedCookie)

	return err == nil && cookie.Value == "1"
}

func setShowFollowedCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:    showFollowedCookie,
		Value:   value,
		Path:    "/",
		Expires: time.Now().Add(showFollowedCookieTTL),
	})
}
