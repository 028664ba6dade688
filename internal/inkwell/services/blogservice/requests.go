package blogservice

import "github.com/inkwell-press/inkwell/internal/inkwell/domain/models"

type FeedRequest struct {
	// UserID scopes the followed-only view; ignored unless ShowFollowed.
	UserID       int64
	ShowFollowed bool
	// AuthorUsername limits the feed to one author's posts (profile page).
	AuthorID int64
	Page     int
}

type FeedPage struct {
	Posts      []models.Post
	Pagination models.Pagination
}

type PostView struct {
	Post       models.Post
	Comments   []models.Comment
	Pagination models.Pagination
}

type CommentPage struct {
	Comments   []models.Comment
	Pagination models.Pagination
}
