package sessionrepo

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Session is the server-side state behind the opaque session cookie.
// Flashes are one-shot notices consumed on the next rendered page.
type Session struct {
	ID        string    `json:"session_id"`
	UserID    int64     `json:"user_id"`
	Flashes   []string  `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
