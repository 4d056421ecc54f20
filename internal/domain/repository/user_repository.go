package repository

import (
	"context"
	"errors"

	"github.com/runnershi/runnershi/internal/domain/entity"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already stored")
	ErrNicknameTaken = errors.New("nickname already stored")
)

// UserRepository defines the storage operations the account service needs.
// Implementations must enforce email and nickname uniqueness themselves and
// report violations on Save as ErrEmailTaken or ErrNicknameTaken.
type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	// FindByEmail returns ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Save inserts u and assigns its ID.
	Save(ctx context.Context, u *entity.User) error
}
