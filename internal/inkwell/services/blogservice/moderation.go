package blogservice

import (
	"context"
	"fmt"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
)

// ModerationQueue pages through every comment newest first for review.
func (bs *BlogService) ModerationQueue(ctx context.Context, page int) (CommentPage, error) {
	total, err := bs.contentRepo.CountComments(ctx)
	if err != nil {
		return CommentPage{}, fmt.Errorf("count comments error: %w", err)
	}

	p := models.NewPagination(page, bs.cfg.CommentsPerPage, total)

	comments, err := bs.contentRepo.ListComments(ctx, p.Offset(), p.PerPage)
	if err != nil {
		return CommentPage{}, fmt.Errorf("list comments error: %w", err)
	}

	return CommentPage{Comments: comments, Pagination: p}, nil
}

// DisableComment hides a comment from normal views. Disabling an
// already-disabled comment is a no-op.
func (bs *BlogService) DisableComment(ctx context.Context, id int64) error {
	return bs.contentRepo.SetCommentDisabled(ctx, id, true)
}

func (bs *BlogService) EnableComment(ctx context.Context, id int64) error {
	return bs.contentRepo.SetCommentDisabled(ctx, id, false)
}
