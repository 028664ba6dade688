package models

import "time"

type Post struct {
	ID        int64     `json:"post_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Author    User      `json:"author"`
}

type Comment struct {
	ID        int64     `json:"comment_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Disabled  bool      `json:"disabled"`
	Author    User      `json:"author"`
	PostID    int64     `json:"post_id"`
}

// Taxonomy is a free-form category tag owned by an author,
// independent of any post.
type Taxonomy struct {
	ID        int64     `json:"taxonomy_id"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	Author    User      `json:"author"`
}
