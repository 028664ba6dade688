package blogservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/contentrepo"
	"github.com/inkwell-press/inkwell/internal/pkg/config"
	"github.com/inkwell-press/inkwell/pkg/logger"
)

// ErrForbidden is returned when the actor is neither the owner of the
// entity nor an administrator.
var ErrForbidden = errors.New("forbidden")

// LastPageSentinel in a page parameter means "jump to the last page".
const LastPageSentinel = -1

type Repository interface {
	CreatePost(context.Context, models.Post) (int64, error)
	GetPost(context.Context, int64) (models.Post, error)
	UpdatePostBody(ctx context.Context, id int64, body string) error
	ListPosts(context.Context, contentrepo.FeedRequest) ([]models.Post, error)
	CountPosts(context.Context, contentrepo.FeedRequest) (int, error)

	CreateComment(context.Context, models.Comment) (int64, error)
	ListCommentsByPost(ctx context.Context, postID int64, offset, limit int) ([]models.Comment, error)
	CountCommentsByPost(ctx context.Context, postID int64) (int, error)
	ListComments(ctx context.Context, offset, limit int) ([]models.Comment, error)
	CountComments(ctx context.Context) (int, error)
	SetCommentDisabled(ctx context.Context, id int64, disabled bool) error

	CreateTaxonomy(context.Context, models.Taxonomy) (int64, error)
	GetTaxonomy(context.Context, int64) (models.Taxonomy, error)
	ListTaxonomies(context.Context) ([]models.Taxonomy, error)
	UpdateTaxonomy(ctx context.Context, id int64, category string) error
	DeleteTaxonomy(ctx context.Context, id int64) error

	Shutdown(context.Context) error
}

type BlogService struct {
	contentRepo Repository
	cfg         config.Blog
	lg          logger.Logger
}

func New(contentRepo Repository, cfg config.Blog, lg logger.Logger) *BlogService {
	return &BlogService{
		contentRepo: contentRepo,
		cfg:         cfg,
		lg:          lg,
	}
}

// Feed pages through posts newest first: the global collection, one
// author's posts, or posts authored by anyone the user follows.
func (bs *BlogService) Feed(ctx context.Context, req FeedRequest) (FeedPage, error) {
	repoReq := contentrepo.FeedRequest{AuthorID: req.AuthorID}

	if req.ShowFollowed && req.UserID != 0 {
		repoReq.FollowedBy = req.UserID
	}

	total, err := bs.contentRepo.CountPosts(ctx, repoReq)
	if err != nil {
		return FeedPage{}, fmt.Errorf("count posts error: %w", err)
	}

	p := models.NewPagination(req.Page, bs.cfg.PostsPerPage, total)

	repoReq.Offset = p.Offset()
	repoReq.Limit = p.PerPage

	posts, err := bs.contentRepo.ListPosts(ctx, repoReq)
	if err != nil {
		return FeedPage{}, fmt.Errorf("list posts error: %w", err)
	}

	return FeedPage{Posts: posts, Pagination: p}, nil
}

func (bs *BlogService) CreatePost(ctx context.Context, author models.User, body string) (int64, error) {
	post := models.Post{
		Body:      body,
		CreatedAt: time.Now(),
		Author:    author,
	}

	id, err := bs.contentRepo.CreatePost(ctx, post)
	if err != nil {
		return 0, fmt.Errorf("create post error: %w", err)
	}

	return id, nil
}

// PostView loads a post with one page of its thread, oldest first. The
// LastPageSentinel page resolves to the thread's final page.
func (bs *BlogService) PostView(ctx context.Context, postID int64, page int) (PostView, error) {
	post, err := bs.contentRepo.GetPost(ctx, postID)
	if err != nil {
		return PostView{}, err
	}

	total, err := bs.contentRepo.CountCommentsByPost(ctx, postID)
	if err != nil {
		return PostView{}, fmt.Errorf("count comments error: %w", err)
	}

	if page == LastPageSentinel {
		page = models.LastPage(total, bs.cfg.CommentsPerPage)
	}

	p := models.NewPagination(page, bs.cfg.CommentsPerPage, total)

	comments, err := bs.contentRepo.ListCommentsByPost(ctx, postID, p.Offset(), p.PerPage)
	if err != nil {
		return PostView{}, fmt.Errorf("list comments error: %w", err)
	}

	return PostView{Post: post, Comments: comments, Pagination: p}, nil
}

func (bs *BlogService) AddComment(ctx context.Context, author models.User, postID int64, body string) error {
	if _, err := bs.contentRepo.GetPost(ctx, postID); err != nil {
		return err
	}

	comment := models.Comment{
		Body:      body,
		CreatedAt: time.Now(),
		Author:    author,
		PostID:    postID,
	}

	if _, err := bs.contentRepo.CreateComment(ctx, comment); err != nil {
		return fmt.Errorf("create comment error: %w", err)
	}

	return nil
}

// EditPost replaces a post's body. Only the author or an administrator
// may edit.
func (bs *BlogService) EditPost(ctx context.Context, actor models.User, postID int64, body string) error {
	post, err := bs.contentRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	if post.Author.ID != actor.ID && !actor.IsAdministrator() {
		return ErrForbidden
	}

	if err := bs.contentRepo.UpdatePostBody(ctx, postID, body); err != nil {
		return fmt.Errorf("update post error: %w", err)
	}

	return nil
}

func (bs *BlogService) Shutdown(ctx context.Context) error {
	if err := bs.contentRepo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown content repo error: %w", err)
	}

	return nil
}
