package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/runnershi/runnershi/internal/domain/entity"
	"github.com/runnershi/runnershi/internal/domain/repository"
)

const (
	uniqueViolation = "23505"

	constraintEmail    = "uq_users_email"
	constraintNickname = "uq_users_nickname"
)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UserRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE nickname = $1)`, nickname)
}

func (r *UserRepository) exists(ctx context.Context, query, arg string) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists query: %w", err)
	}
	return ok, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}
	var hash, country, region pgtype.Text

	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, nickname, country_code, region_code, status, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)

	if err := row.Scan(&u.ID, &u.Email, &hash, &u.Nickname, &country, &region,
		&u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	u.PasswordHash = textPtr(hash)
	u.CountryCode = textPtr(country)
	u.RegionCode = textPtr(region)
	return u, nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, nickname, country_code, region_code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, u.Email, u.PasswordHash, u.Nickname, u.CountryCode, u.RegionCode, u.Status, u.CreatedAt, u.UpdatedAt)

	if err := row.Scan(&u.ID); err != nil {
		return translateWriteError(err)
	}
	return nil
}

// translateWriteError maps unique violations to the repository sentinels so
// callers can tell a lost signup race from an outage.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case constraintEmail:
			return fmt.Errorf("%w: %s", repository.ErrEmailTaken, pgErr.Detail)
		case constraintNickname:
			return fmt.Errorf("%w: %s", repository.ErrNicknameTaken, pgErr.Detail)
		}
	}
	return fmt.Errorf("insert user: %w", err)
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

var _ repository.UserRepository = (*UserRepository)(nil)
