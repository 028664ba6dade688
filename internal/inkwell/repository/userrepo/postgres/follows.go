package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/userrepo"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (ur UsersPostgresRepo) Follow(ctx context.Context, followerID, followedID int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Insert("follows").
		Columns("follower_id", "followed_id", "created_at").
		Values(followerID, followedID, time.Now()).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	if _, err := ur.db.Exec(ctx, query, args...); err != nil {
		target := new(pgconn.PgError)
		if errors.As(err, &target) && target.Code == uniqueViolation {
			return userrepo.ErrAlreadyFollowing
		}

		return fmt.Errorf("exec error: %w", err)
	}

	return nil
}

func (ur UsersPostgresRepo) Unfollow(ctx context.Context, followerID, followedID int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Delete("follows").
		Where(squirrel.Eq{"follower_id": followerID, "followed_id": followedID}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := ur.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec error: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return userrepo.ErrNotFollowing
	}

	return nil
}

func (ur UsersPostgresRepo) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select("1").
		From("follows").
		Where(squirrel.Eq{"follower_id": followerID, "followed_id": followedID}).ToSql()
	if err != nil {
		return false, fmt.Errorf("to sql error: %w", err)
	}

	var one int
	if err := ur.db.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("scan error: %w", err)
	}

	return true, nil
}

// Followers lists inbound edges of userID, newest first, decorated with
// the follower user.
func (ur UsersPostgresRepo) Followers(ctx context.Context, userID int64, offset, limit int) ([]models.FollowEdge, error) {
	return ur.listEdges(ctx, "f.follower_id", squirrel.Eq{"f.followed_id": userID}, offset, limit)
}

// Following lists outbound edges of userID, newest first, decorated with
// the followed user.
func (ur UsersPostgresRepo) Following(ctx context.Context, userID int64, offset, limit int) ([]models.FollowEdge, error) {
	return ur.listEdges(ctx, "f.followed_id", squirrel.Eq{"f.follower_id": userID}, offset, limit)
}

func (ur UsersPostgresRepo) CountFollowers(ctx context.Context, userID int64) (int, error) {
	return ur.countEdges(ctx, squirrel.Eq{"followed_id": userID})
}

func (ur UsersPostgresRepo) CountFollowing(ctx context.Context, userID int64) (int, error) {
	return ur.countEdges(ctx, squirrel.Eq{"follower_id": userID})
}

func (ur UsersPostgresRepo) listEdges(ctx context.Context, peerCol string,
	where squirrel.Eq, offset, limit int,
) ([]models.FollowEdge, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	cols := append([]string{"f.created_at"}, userColumns...)

	sb := psql.Select(cols...).
		From("follows f").
		Join("users u ON u.id = " + peerCol).
		Join("roles r ON r.id = u.role_id").
		Where(where).
		OrderBy("f.created_at DESC")

	if offset != 0 {
		sb = sb.Offset(uint64(offset))
	}

	if limit != 0 {
		sb = sb.Limit(uint64(limit))
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := ur.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	edges := make([]models.FollowEdge, 0, limit)

	for rows.Next() {
		var e models.FollowEdge

		u := &e.Peer
		if err := rows.Scan(
			&e.Timestamp,
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Confirmed,
			&u.Name, &u.Location, &u.AboutMe, &u.MemberSince, &u.LastSeen,
			&u.Role.ID, &u.Role.Name, &u.Role.Permissions, &u.Role.Default,
		); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		edges = append(edges, e)
	}

	return edges, nil
}

func (ur UsersPostgresRepo) countEdges(ctx context.Context, where squirrel.Eq) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select("COUNT(*)").
		From("follows").
		Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	var n int
	if err := ur.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("scan error: %w", err)
	}

	return n, nil
}
