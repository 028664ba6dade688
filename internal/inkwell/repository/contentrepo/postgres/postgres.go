package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/contentrepo"
	"github.com/inkwell-press/inkwell/internal/pkg/config"
	"github.com/inkwell-press/inkwell/internal/pkg/pgtools"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var authorColumns = []string{
	"u.id", "u.username", "u.name", "u.location", "u.about_me",
	"r.id", "r.name", "r.permissions", "r.is_default",
}

type ContentPostgresRepo struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, cfg config.PostgresDB) (ContentPostgresRepo, error) {
	connString := "postgres://" + cfg.Username + ":" + cfg.Password + "@" +
		cfg.Addr + "/" + cfg.DB + "?" + "sslmode=" + cfg.SSLmode + "&pool_max_conns=" + cfg.MaxConns

	db, err := pgtools.Connect(ctx, connString)
	if err != nil {
		return ContentPostgresRepo{}, fmt.Errorf("connect to db error: %w", err)
	}

	return ContentPostgresRepo{
		db: db,
	}, nil
}

func (cr ContentPostgresRepo) CreatePost(ctx context.Context, p models.Post) (id int64, err error) {
	tx, err := cr.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "create post")
	}()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Insert("posts").
		Columns("body", "created_at", "author_id").
		Values(p.Body, p.CreatedAt, p.Author.ID).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("scan error: %w", err)
	}

	return id, nil
}

func (cr ContentPostgresRepo) GetPost(ctx context.Context, id int64) (models.Post, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	cols := append([]string{"p.id", "p.body", "p.created_at"}, authorColumns...)

	query, args, err := psql.Select(cols...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		Join("roles r ON r.id = u.role_id").
		Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("to sql error: %w", err)
	}

	var p models.Post

	a := &p.Author
	if err := cr.db.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Body, &p.CreatedAt,
		&a.ID, &a.Username, &a.Name, &a.Location, &a.AboutMe,
		&a.Role.ID, &a.Role.Name, &a.Role.Permissions, &a.Role.Default,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, contentrepo.ErrPostNotFound
		}

		return models.Post{}, fmt.Errorf("scan error: %w", err)
	}

	return p, nil
}

func (cr ContentPostgresRepo) UpdatePostBody(ctx context.Context, id int64, body string) (err error) {
	tx, err := cr.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "update post")
	}()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Update("posts").
		Set("body", body).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec error: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return contentrepo.ErrPostNotFound
	}

	return nil
}

// ListPosts returns posts newest first, filtered per req.
func (cr ContentPostgresRepo) ListPosts(ctx context.Context, req contentrepo.FeedRequest) ([]models.Post, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	cols := append([]string{"p.id", "p.body", "p.created_at"}, authorColumns...)

	sb := psql.Select(cols...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		Join("roles r ON r.id = u.role_id").
		OrderBy("p.created_at DESC", "p.id DESC")

	sb = applyFeedFilter(sb, req)

	if req.Offset != 0 {
		sb = sb.Offset(uint64(req.Offset))
	}

	if req.Limit != 0 {
		sb = sb.Limit(uint64(req.Limit))
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

	posts := make([]models.Post, 0, req.Limit)

	for rows.Next() {
		var p models.Post

		a := &p.Author
		if err := rows.Scan(
			&p.ID, &p.Body, &p.CreatedAt,
			&a.ID, &a.Username, &a.Name, &a.Location, &a.AboutMe,
			&a.Role.ID, &a.Role.Name, &a.Role.Permissions, &a.Role.Default,
		); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		posts = append(posts, p)
	}

	return posts, nil
}

func (cr ContentPostgresRepo) CountPosts(ctx context.Context, req contentrepo.FeedRequest) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sb := psql.Select("COUNT(*)").From("posts p")
	sb = applyFeedFilter(sb, req)

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

func applyFeedFilter(sb squirrel.SelectBuilder, req contentrepo.FeedRequest) squirrel.SelectBuilder {
	if req.AuthorID != 0 {
		sb = sb.Where(squirrel.Eq{"p.author_id": req.AuthorID})
	}

	if req.FollowedBy != 0 {
		sb = sb.Where("p.author_id IN (SELECT followed_id FROM follows WHERE follower_id = ?)", req.FollowedBy)
	}

	return sb
}

func (cr ContentPostgresRepo) Shutdown(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		cr.db.Close()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("context error: %w", ctx.Err())
	case <-done:
		return nil
	}
}
