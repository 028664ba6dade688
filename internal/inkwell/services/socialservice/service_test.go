package socialservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/userrepo"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/socialservice"
	"github.com/inkwell-press/inkwell/internal/pkg/config"
)

type edge struct {
	follower int64
	followed int64
	at       time.Time
}

type fakeUserRepo struct {
	users []models.User
	edges []edge
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}

	return models.User{}, userrepo.ErrNotFound
}

func (f *fakeUserRepo) userByID(id int64) models.User {
	for _, u := range f.users {
		if u.ID == id {
			return u
		}
	}

	return models.User{}
}

func (f *fakeUserRepo) Follow(_ context.Context, followerID, followedID int64) error {
	for _, e := range f.edges {
		if e.follower == followerID && e.followed == followedID {
			return userrepo.ErrAlreadyFollowing
		}
	}

	f.edges = append(f.edges, edge{follower: followerID, followed: followedID, at: time.Now()})

	return nil
}

func (f *fakeUserRepo) Unfollow(_ context.Context, followerID, followedID int64) error {
	for i, e := range f.edges {
		if e.follower == followerID && e.followed == followedID {
			f.edges = append(f.edges[:i], f.edges[i+1:]...)

			return nil
		}
	}

	return userrepo.ErrNotFollowing
}

func (f *fakeUserRepo) IsFollowing(_ context.Context, followerID, followedID int64) (bool, error) {
	for _, e := range f.edges {
		if e.follower == followerID && e.followed == followedID {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeUserRepo) Followers(_ context.Context, userID int64, offset, limit int) ([]models.FollowEdge, error) {
	var out []models.FollowEdge

	for _, e := range f.edges {
		if e.followed == userID {
			out = append(out, models.FollowEdge{Peer: f.userByID(e.follower), Timestamp: e.at})
		}
	}

	return slice(out, offset, limit), nil
}

func (f *fakeUserRepo) Following(_ context.Context, userID int64, offset, limit int) ([]models.FollowEdge, error) {
	var out []models.FollowEdge

	for _, e := range f.edges {
		if e.follower == userID {
			out = append(out, models.FollowEdge{Peer: f.userByID(e.followed), Timestamp: e.at})
		}
	}

	return slice(out, offset, limit), nil
}

func (f *fakeUserRepo) CountFollowers(_ context.Context, userID int64) (int, error) {
	n := 0

	for _, e := range f.edges {
		if e.followed == userID {
			n++
		}
	}

	return n, nil
}

func (f *fakeUserRepo) CountFollowing(_ context.Context, userID int64) (int, error) {
	n := 0

	for _, e := range f.edges {
		if e.follower == userID {
			n++
		}
	}

	return n, nil
}

func slice(edges []models.FollowEdge, offset, limit int) []models.FollowEdge {
	if offset >= len(edges) {
		return nil
	}

	end := offset + limit
	if end > len(edges) {
		end = len(edges)
	}

	return edges[offset:end]
}

var (
	john  = models.User{ID: 1, Username: "john"}
	susan = models.User{ID: 2, Username: "susan"}
	david = models.User{ID: 3, Username: "david"}
)

func newService(repo *fakeUserRepo) *socialservice.SocialService {
	cfg := config.Blog{PostsPerPage: 20, CommentsPerPage: 30, FollowersPerPage: 2}

	return socialservice.New(repo, cfg, zap.NewNop().Sugar())
}

func TestFollowAndIsFollowing(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{john, susan}}
	ss := newService(repo)
	ctx := context.Background()

	target, err := ss.Follow(ctx, john, "susan")
	require.NoError(t, err)
	assert.Equal(t, susan.ID, target.ID)

	assert.True(t, ss.IsFollowing(ctx, &john, susan.ID))
	assert.False(t, ss.IsFollowing(ctx, &susan, john.ID))
	assert.False(t, ss.IsFollowing(ctx, nil, susan.ID))
}

func TestFollowTwiceKeepsSingleEdge(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{john, susan}}
	ss := newService(repo)
	ctx := context.Background()

	_, err := ss.Follow(ctx, john, "susan")
	require.NoError(t, err)

	_, err = ss.Follow(ctx, john, "susan")
	require.ErrorIs(t, err, userrepo.ErrAlreadyFollowing)

	require.Len(t, repo.edges, 1)
}

func TestFollowSelf(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{john}}
	ss := newService(repo)

	_, err := ss.Follow(context.Background(), john, "john")
	require.ErrorIs(t, err, socialservice.ErrSelfFollow)
	assert.Empty(t, repo.edges)
}

func TestFollowUnknownTarget(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{john}}
	ss := newService(repo)

	_, err := ss.Follow(context.Background(), john, "ghost")
	require.ErrorIs(t, err, userrepo.ErrNotFound)
}

func TestUnfollow(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{john, susan}}
	ss := newService(repo)
	ctx := context.Background()

	_, err := ss.Follow(ctx, john, "susan")
	require.NoError(t, err)

	_, err = ss.Unfollow(ctx, john, "susan")
	require.NoError(t, err)
	assert.False(t, ss.IsFollowing(ctx, &john, susan.ID))

	_, err = ss.Unfollow(ctx, john, "susan")
	require.ErrorIs(t, err, userrepo.ErrNotFollowing)
}

func TestFollowersPaging(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{john, susan, david}}
	ss := newService(repo)
	ctx := context.Background()

	_, err := ss.Follow(ctx, susan, "john")
	require.NoError(t, err)
	_, err = ss.Follow(ctx, david, "john")
	require.NoError(t, err)

	page, err := ss.Followers(ctx, "john", 1)
	require.NoError(t, err)
	assert.Equal(t, john.ID, page.User.ID)
	assert.Len(t, page.Edges, 2)
	assert.Equal(t, 2, page.Pagination.Total)

	page, err = ss.Followers(ctx, "john", 2)
	require.NoError(t, err)
	assert.Empty(t, page.Edges)
}

func TestFollowedBy(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{john, susan, david}}
	ss := newService(repo)
	ctx := context.Background()

	_, err := ss.Follow(ctx, john, "susan")
	require.NoError(t, err)
	_, err = ss.Follow(ctx, john, "david")
	require.NoError(t, err)

	page, err := ss.FollowedBy(ctx, "john", 1)
	require.NoError(t, err)
	require.Len(t, page.Edges, 2)

	_, err = ss.FollowedBy(ctx, "ghost", 1)
	require.ErrorIs(t, err, userrepo.ErrNotFound)
}
