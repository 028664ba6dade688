package contentrepo

import "errors"

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrTaxonomyNotFound = errors.New("taxonomy not found")
)

// FeedRequest narrows the post listing: by author, or to posts authored
// by anyone FollowedBy follows. Zero values mean "no filter".
type FeedRequest struct {
	AuthorID   int64
	FollowedBy int64
	Offset     int
	Limit      int
}
