package models

import (
	"time"

	"github.com/google/uuid"
)

// Session tracks one refresh token. Tokens are stored hashed; rotation
// revokes the old row and records its replacement.
type Session struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	RefreshTokenHash string     `json:"-"`
	IsRevoked        bool       `json:"is_revoked"`
	ReplacedByID     *uuid.UUID `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
}

func (s *Session) Prepare() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
}

// TokenPurpose distinguishes single-use action tokens.
type TokenPurpose string

const (
	TokenPurposePasswordReset TokenPurpose = "password_reset"
	TokenPurposeEmailVerify   TokenPurpose = "email_verify"
)

// ActionToken is a single-use token mailed to the user for password
// resets and email verification. Only its hash is stored.
type ActionToken struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	Purpose   TokenPurpose `json:"purpose"`
	TokenHash string       `json:"-"`
	ExpiresAt time.Time    `json:"expires_at"`
	UsedAt    *time.Time   `json:"used_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func (t *ActionToken) Prepare() {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
}

func (t *ActionToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
