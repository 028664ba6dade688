package socialservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/userrepo"
	"github.com/inkwell-press/inkwell/internal/pkg/config"
	"github.com/inkwell-press/inkwell/pkg/logger"
)

// ErrSelfFollow rejects following oneself.
var ErrSelfFollow = errors.New("cannot follow yourself")

type Repository interface {
	GetUserByUsername(context.Context, string) (models.User, error)
	Follow(ctx context.Context, followerID, followedID int64) error
	Unfollow(ctx context.Context, followerID, followedID int64) error
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	Followers(ctx context.Context, userID int64, offset, limit int) ([]models.FollowEdge, error)
	Following(ctx context.Context, userID int64, offset, limit int) ([]models.FollowEdge, error)
	CountFollowers(ctx context.Context, userID int64) (int, error)
	CountFollowing(ctx context.Context, userID int64) (int, error)
}

// EdgePage is one page of a user's follower or followed listing.
type EdgePage struct {
	User       models.User
	Edges      []models.FollowEdge
	Pagination models.Pagination
}

type SocialService struct {
	userRepo Repository
	cfg      config.Blog
	lg       logger.Logger
}

func New(userRepo Repository, cfg config.Blog, lg logger.Logger) *SocialService {
	return &SocialService{
		userRepo: userRepo,
		cfg:      cfg,
		lg:       lg,
	}
}

// Follow inserts a follow edge towards the named user. Unknown target,
// self-follow and an existing edge come back as sentinel errors the
// handler turns into flash messages.
func (ss *SocialService) Follow(ctx context.Context, follower models.User, targetUsername string) (models.User, error) {
	target, err := ss.userRepo.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return models.User{}, err
	}

	if target.ID == follower.ID {
		return target, ErrSelfFollow
	}

	if err := ss.userRepo.Follow(ctx, follower.ID, target.ID); err != nil {
		if errors.Is(err, userrepo.ErrAlreadyFollowing) {
			return target, err
		}

		return target, fmt.Errorf("follow error: %w", err)
	}

	return target, nil
}

func (ss *SocialService) Unfollow(ctx context.Context, follower models.User, targetUsername string) (models.User, error) {
	target, err := ss.userRepo.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return models.User{}, err
	}

	if err := ss.userRepo.Unfollow(ctx, follower.ID, target.ID); err != nil {
		if errors.Is(err, userrepo.ErrNotFollowing) {
			return target, err
		}

		return target, fmt.Errorf("unfollow error: %w", err)
	}

	return target, nil
}

func (ss *SocialService) IsFollowing(ctx context.Context, follower *models.User, targetID int64) bool {
	if follower == nil {
		return false
	}

	following, err := ss.userRepo.IsFollowing(ctx, follower.ID, targetID)
	if err != nil {
		ss.lg.Errorf("is following error: %s", err.Error())

		return false
	}

	return following
}

// Followers pages through the named user's inbound edges.
func (ss *SocialService) Followers(ctx context.Context, username string, page int) (EdgePage, error) {
	return ss.edgePage(ctx, username, page, ss.userRepo.CountFollowers, ss.userRepo.Followers)
}

// FollowedBy pages through the named user's outbound edges.
func (ss *SocialService) FollowedBy(ctx context.Context, username string, page int) (EdgePage, error) {
	return ss.edgePage(ctx, username, page, ss.userRepo.CountFollowing, ss.userRepo.Following)
}

func (ss *SocialService) edgePage(ctx context.Context, username string, page int,
	count func(context.Context, int64) (int, error),
	list func(context.Context, int64, int, int) ([]models.FollowEdge, error),
) (EdgePage, error) {
	user, err := ss.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return EdgePage{}, err
	}

	total, err := count(ctx, user.ID)
	if err != nil {
		return EdgePage{}, fmt.Errorf("count edges error: %w", err)
	}

	p := models.NewPagination(page, ss.cfg.FollowersPerPage, total)

	edges, err := list(ctx, user.ID, p.Offset(), p.PerPage)
	if err != nil {
		return EdgePage{}, fmt.Errorf("list edges error: %w", err)
	}

	return EdgePage{User: user, Edges: edges, Pagination: p}, nil
}
