package entity

import (
	"strings"
	"time"
)

// StatusActive is the only status produced by signup.
const StatusActive = "ACTIVE"

// User is the aggregate root for the account domain.
// PasswordHash holds a bcrypt hash; nil means the account cannot log in
// with a local password (reserved for social-only accounts).
type User struct {
	ID           int64
	Email        string
	PasswordHash *string
	Nickname     string
	CountryCode  *string
	RegionCode   *string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewLocalUser builds an active user that authenticates with a local password.
// Blank country/region codes are stored as absent.
func NewLocalUser(email, passwordHash, nickname, countryCode, regionCode string, now time.Time) *User {
	return &User{
		Email:        email,
		PasswordHash: &passwordHash,
		Nickname:     nickname,
		CountryCode:  optional(countryCode),
		RegionCode:   optional(regionCode),
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasLocalPassword reports whether the user can attempt a password login.
// Only a missing hash counts; an empty stored hash simply fails verification.
func (u *User) HasLocalPassword() bool {
	return u.PasswordHash != nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
