package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record. Status may move between any two values.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"password_hash"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActiveAt time.Time  `json:"last_active_at"`
	Status       UserStatus `json:"status"`
}

func NewUser(id uuid.UUID, username, passwordHash string, createdAt time.Time) *User {
	return &User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
		LastActiveAt: createdAt,
		Status:       UserActive,
	}
}

func (u *User) SetStatus(status UserStatus) {
	u.Status = status
}

func (u *User) Touch(at time.Time) {
	u.LastActiveAt = at
}
