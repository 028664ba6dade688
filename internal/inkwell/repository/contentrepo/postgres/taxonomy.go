package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/contentrepo"
	"github.com/jackc/pgx/v5"
)

func (cr ContentPostgresRepo) CreateTaxonomy(ctx context.Context, t models.Taxonomy) (id int64, err error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Insert("taxonomies").
		Columns("category", "created_at", "author_id").
		Values(t.Category, t.CreatedAt, t.Author.ID).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	if err = cr.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("scan error: %w", err)
	}

	return id, nil
}

func (cr ContentPostgresRepo) GetTaxonomy(ctx context.Context, id int64) (models.Taxonomy, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	cols := append([]string{"t.id", "t.category", "t.created_at"}, authorColumns...)

	query, args, err := psql.Select(cols...).
		From("taxonomies t").
		Join("users u ON u.id = t.author_id").
		Join("roles r ON r.id = u.role_id").
		Where(squirrel.Eq{"t.id": id}).ToSql()
	if err != nil {
		return models.Taxonomy{}, fmt.Errorf("to sql error: %w", err)
	}

	var t models.Taxonomy

	a := &t.Author
	if err := cr.db.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Category, &t.CreatedAt,
		&a.ID, &a.Username, &a.Name, &a.Location, &a.AboutMe,
		&a.Role.ID, &a.Role.Name, &a.Role.Permissions, &a.Role.Default,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Taxonomy{}, contentrepo.ErrTaxonomyNotFound
		}

		return models.Taxonomy{}, fmt.Errorf("scan error: %w", err)
	}

	return t, nil
}

// ListTaxonomies returns every tag newest first. The tag set is small
// enough that the listing is not paginated.
func (cr ContentPostgresRepo) ListTaxonomies(ctx context.Context) ([]models.Taxonomy, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	cols := append([]string{"t.id", "t.category", "t.created_at"}, authorColumns...)

	query, args, err := psql.Select(cols...).
		From("taxonomies t").
		Join("users u ON u.id = t.author_id").
		Join("roles r ON r.id = u.role_id").
		OrderBy("t.created_at DESC", "t.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := cr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	taxonomies := make([]models.Taxonomy, 0, 10)

	for rows.Next() {
		var t models.Taxonomy

		a := &t.Author
		if err := rows.Scan(
			&t.ID, &t.Category, &t.CreatedAt,
			&a.ID, &a.Username, &a.Name, &a.Location, &a.AboutMe,
			&a.Role.ID, &a.Role.Name, &a.Role.Permissions, &a.Role.Default,
		); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		taxonomies = append(taxonomies, t)
	}

	return taxonomies, nil
}

func (cr ContentPostgresRepo) UpdateTaxonomy(ctx context.Context, id int64, category string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Update("taxonomies").
		Set("category", category).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := cr.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec error: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return contentrepo.ErrTaxonomyNotFound
	}

	return nil
}

func (cr ContentPostgresRepo) DeleteTaxonomy(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Delete("taxonomies").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := cr.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec error: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return contentrepo.ErrTaxonomyNotFound
	}

	return nil
}
