package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultSessionTTL = time.Hour

// Session is a bearer credential. Once IsActive is false it never becomes true again.
type Session struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	AccessToken string    `json:"access_token"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	IsActive    bool      `json:"is_active"`
}

func NewSession(id, userID uuid.UUID, accessToken string, createdAt time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:          id,
		UserID:      userID,
		AccessToken: accessToken,
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(ttl),
		IsActive:    true,
	}
}

// Validate reports whether the session is usable at now.
// It is not a pure query: reaching ExpiresAt deactivates the session,
// so callers holding a persisted session must save it after a false result.
// A false result does not say whether the session expired or was terminated.
func (s *Session) Validate(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	if !now.Before(s.ExpiresAt) {
		s.IsActive = false
		return false
	}
	return true
}

func (s *Session) Terminate() {
	s.IsActive = false
}
