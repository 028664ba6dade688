package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/contentrepo"
	"github.com/inkwell-press/inkwell/internal/pkg/pgtools"
)

func (cr ContentPostgresRepo) CreateComment(ctx context.Context, c models.Comment) (id int64, err error) {
	tx, err := cr.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "create comment")
	}()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Insert("comments").
		Columns("body", "created_at", "disabled", "author_id", "post_id").
		Values(c.Body, c.CreatedAt, c.Disabled, c.Author.ID, c.PostID).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("scan error: %w", err)
	}

	return id, nil
}

// ListCommentsByPost pages through a post's thread oldest first,
// matching thread-reading order.
func (cr ContentPostgresRepo) ListCommentsByPost(ctx context.Context, postID int64, offset, limit int) ([]models.Comment, error) {
	return cr.listComments(ctx, squirrel.Eq{"c.post_id": postID}, "c.created_at ASC", offset, limit)
}

// ListComments pages through every comment newest first, for the
// moderation queue.
func (cr ContentPostgresRepo) ListComments(ctx context.Context, offset, limit int) ([]models.Comment, error) {
	return cr.listComments(ctx, nil, "c.created_at DESC", offset, limit)
}

func (cr ContentPostgresRepo) CountCommentsByPost(ctx context.Context, postID int64) (int, error) {
	return cr.countComments(ctx, squirrel.Eq{"post_id": postID})
}

func (cr ContentPostgresRepo) CountComments(ctx context.Context) (int, error) {
	return cr.countComments(ctx, nil)
}

func (cr ContentPostgresRepo) SetCommentDisabled(ctx context.Context, id int64, disabled bool) (err error) {
	tx, err := cr.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "set comment disabled")
	}()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Update("comments").
		Set("disabled", disabled).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec error: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return contentrepo.ErrCommentNotFound
	}

	return nil
}

func (cr ContentPostgresRepo) listComments(ctx context.Context, where squirrel.Eq,
	order string, offset, limit int,
) ([]models.Comment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	cols := append([]string{"c.id", "c.body", "c.created_at", "c.disabled", "c.post_id"}, authorColumns...)

	sb := psql.Select(cols...).
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Join("roles r ON r.id = u.role_id").
		OrderBy(order, "c.id ASC")

	if where != nil {
		sb = sb.Where(where)
	}

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

	rows, err := cr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0, limit)

	for rows.Next() {
		var c models.Comment

		a := &c.Author
		if err := rows.Scan(
			&c.ID, &c.Body, &c.CreatedAt, &c.Disabled, &c.PostID,
			&a.ID, &a.Username, &a.Name, &a.Location, &a.AboutMe,
			&a.Role.ID, &a.Role.Name, &a.Role.Permissions, &a.Role.Default,
		); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		comments = append(comments, c)
	}

	return comments, nil
}

func (cr ContentPostgresRepo) countComments(ctx context.Context, where squirrel.Eq) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sb := psql.Select("COUNT(*)").From("comments")
	if where != nil {
		sb = sb.Where(where)
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	var n int
	if err := cr.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("scan error: %w", err)
	}

	return n, nil
}
