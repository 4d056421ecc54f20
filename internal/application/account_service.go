package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/runnershi/runnershi/internal/domain/entity"
	repo "github.com/runnershi/runnershi/internal/domain/repository"
)

// Hasher is satisfied by helpers.BcryptHasher.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Locker serialises signups that touch the same email or nickname.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (unlock func(), err error)
}

// Notifier is told about every account created by Signup.
type Notifier interface {
	UserSignedUp(ctx context.Context, u *entity.User) error
}

type Service struct {
	Repo     repo.UserRepository
	Hasher   Hasher
	Locker   Locker   // optional
	Notifier Notifier // optional
	Logger   logrus.FieldLogger
	Now      func() time.Time
}

func NewService(r repo.UserRepository, hasher Hasher, locker Locker, notifier Notifier, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		Repo:     r,
		Hasher:   hasher,
		Locker:   locker,
		Notifier: notifier,
		Logger:   logger,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

type SignupInput struct {
	Email       string
	Password    string
	Nickname    string
	CountryCode string
	RegionCode  string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

func toAuthResponse(u *entity.User) *AuthResponse {
	return &AuthResponse{UserID: u.ID, Email: u.Email, Nickname: u.Nickname}
}

func signupLockKeys(email, nickname string) []string {
	return []string{"signup:lock:email:" + email, "signup:lock:nickname:" + nickname}
}

// Signup creates an ACTIVE account with a local password. Input is expected to
// be validated by the caller.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*AuthResponse, error) {
	if s.Locker != nil {
		unlock, err := s.Locker.Lock(ctx, signupLockKeys(in.Email, in.Nickname)...)
		if err != nil {
			return nil, internalError("acquire signup lock", err)
		}
		defer unlock()
	}

	taken, err := s.Repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, internalError("check email", err)
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	taken, err = s.Repo.ExistsByNickname(ctx, in.Nickname)
	if err != nil {
		return nil, internalError("check nickname", err)
	}
	if taken {
		return nil, ErrDuplicateNickname
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, internalError("hash password", err)
	}

	u := entity.NewLocalUser(in.Email, hash, in.Nickname, in.CountryCode, in.RegionCode, s.Now())
	if err := s.Repo.Save(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrEmailTaken):
			return nil, ErrDuplicateEmail
		case errors.Is(err, repo.ErrNicknameTaken):
			return nil, ErrDuplicateNickname
		}
		return nil, internalError("save user", err)
	}

	s.Logger.WithField("user_id", u.ID).Info("user signed up")

	if s.Notifier != nil {
		if err := s.Notifier.UserSignedUp(ctx, u); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("signup notification failed")
		}
	}

	return toAuthResponse(u), nil
}

// Login checks a local password. Unknown email and wrong password both yield
// ErrInvalidCredentials; an account without a local password yields
// ErrNoLocalPassword.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResponse, error) {
	u, err := s.Repo.FindByEmail(ctx, in.Email)
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, internalError("find user", err)
	}

	if !u.HasLocalPassword() {
		return nil, ErrNoLocalPassword
	}
	if !s.Hasher.Verify(in.Password, *u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return toAuthResponse(u), nil
}
