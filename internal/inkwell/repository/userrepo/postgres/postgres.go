package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/userrepo"
	"github.com/inkwell-press/inkwell/internal/pkg/config"
	"github.com/inkwell-press/inkwell/internal/pkg/pgtools"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

var userColumns = []string{
	"u.id", "u.username", "u.email", "u.password_hash", "u.confirmed",
	"u.name", "u.location", "u.about_me", "u.member_since", "u.last_seen",
	"r.id", "r.name", "r.permissions", "r.is_default",
}

type UsersPostgresRepo struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, cfg config.PostgresDB) (UsersPostgresRepo, error) {
	connString := "postgres://" + cfg.Username + ":" + cfg.Password + "@" +
		cfg.Addr + "/" + cfg.DB + "?" + "sslmode=" + cfg.SSLmode + "&pool_max_conns=" + cfg.MaxConns

	db, err := pgtools.Connect(ctx, connString)
	if err != nil {
		return UsersPostgresRepo{}, fmt.Errorf("connect to db error: %w", err)
	}

	if err := pgtools.ApplyMigration(cfg); err != nil {
		return UsersPostgresRepo{}, fmt.Errorf("apply migration error: %w", err)
	}

	return UsersPostgresRepo{
		db: db,
	}, nil
}

func (ur UsersPostgresRepo) CreateUser(ctx context.Context, u models.User) (id int64, err error) {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "create user")
	}()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Insert("users").
		Columns("username", "email", "password_hash", "confirmed", "role_id",
			"name", "location", "about_me", "member_since", "last_seen").
		Values(u.Username, u.Email, u.PasswordHash, u.Confirmed, u.Role.ID,
			u.Name, u.Location, u.AboutMe, u.MemberSince, u.LastSeen).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		target := new(pgconn.PgError)
		if errors.As(err, &target) && target.Code == uniqueViolation {
			return 0, userrepo.ErrAlreadyExists
		}

		return 0, fmt.Errorf("scan error: %w", err)
	}

	return id, nil
}

func (ur UsersPostgresRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return ur.getUser(ctx, squirrel.Eq{"u.username": username})
}

func (ur UsersPostgresRepo) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	return ur.getUser(ctx, squirrel.Eq{"u.id": id})
}

func (ur UsersPostgresRepo) getUser(ctx context.Context, where squirrel.Eq) (models.User, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select(userColumns...).
		From("users u").
		Join("roles r ON r.id = u.role_id").
		Where(where).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("to sql error: %w", err)
	}

	var u models.User

	if err := ur.db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Confirmed,
		&u.Name, &u.Location, &u.AboutMe, &u.MemberSince, &u.LastSeen,
		&u.Role.ID, &u.Role.Name, &u.Role.Permissions, &u.Role.Default,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, userrepo.ErrNotFound
		}

		return models.User{}, fmt.Errorf("scan error: %w", err)
	}

	return u, nil
}

// UpdateUser overwrites every mutable field, including the ones only
// administrators may touch. Callers narrow what actually changes.
func (ur UsersPostgresRepo) UpdateUser(ctx context.Context, u models.User) (err error) {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "update user")
	}()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Update("users").
		Set("username", u.Username).
		Set("email", u.Email).
		Set("confirmed", u.Confirmed).
		Set("role_id", u.Role.ID).
		Set("name", u.Name).
		Set("location", u.Location).
		Set("about_me", u.AboutMe).
		Set("last_seen", u.LastSeen).
		Where(squirrel.Eq{"id": u.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		target := new(pgconn.PgError)
		if errors.As(err, &target) && target.Code == uniqueViolation {
			return userrepo.ErrAlreadyExists
		}

		return fmt.Errorf("exec error: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return userrepo.ErrNotFound
	}

	return nil
}

func (ur UsersPostgresRepo) GetRoleByID(ctx context.Context, id int64) (models.Role, error) {
	return ur.getRole(ctx, squirrel.Eq{"id": id})
}

func (ur UsersPostgresRepo) GetDefaultRole(ctx context.Context) (models.Role, error) {
	return ur.getRole(ctx, squirrel.Eq{"is_default": true})
}

func (ur UsersPostgresRepo) getRole(ctx context.Context, where squirrel.Eq) (models.Role, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select("id", "name", "permissions", "is_default").
		From("roles").
		Where(where).ToSql()
	if err != nil {
		return models.Role{}, fmt.Errorf("to sql error: %w", err)
	}

	var r models.Role

	if err := ur.db.QueryRow(ctx, query, args...).Scan(&r.ID, &r.Name, &r.Permissions, &r.Default); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Role{}, userrepo.ErrRoleNotFound
		}

		return models.Role{}, fmt.Errorf("scan error: %w", err)
	}

	return r, nil
}

func (ur UsersPostgresRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select("id", "name", "permissions", "is_default").
		From("roles").
		OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := ur.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	roles := make([]models.Role, 0, 4)

	for rows.Next() {
		var r models.Role

		if err := rows.Scan(&r.ID, &r.Name, &r.Permissions, &r.Default); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		roles = append(roles, r)
	}

	return roles, nil
}

func (ur UsersPostgresRepo) Shutdown(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		ur.db.Close()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("context error: %w", ctx.Err())
	case <-done:
		return nil
	}
}
