// Package domain contains core concepts of the messenger.
// This file defines the plain records: uploads, login audits and inbox entries.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	ID       uuid.UUID `json:"id"`
	FileType string    `json:"file_type"`
}

// MediaFile describes uploaded binary content. Nothing is validated:
// empty urls or a negative size are stored as given.
type MediaFile struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	MimeType     string    `json:"mime_type"`
	CreatedAt    time.Time `json:"created_at"`
	SizeBytes    int64     `json:"size_bytes"`
}

// Authentication is the audit trail of one login attempt.
// UserID is nil when the attempt could not be tied to an account.
type Authentication struct {
	ID        uuid.UUID  `json:"id"`
	Success   bool       `json:"success"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

func NewAuthentication(id uuid.UUID, success bool, userID *uuid.UUID, at time.Time) Authentication {
	return Authentication{ID: id, Success: success, UserID: userID, Timestamp: at}
}

type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"notification_type"`
	CreatedAt time.Time        `json:"created_at"`
	IsRead    bool             `json:"is_read"`
}

func NewNotification(id, userID uuid.UUID, notificationType NotificationType, createdAt time.Time) *Notification {
	return &Notification{
		ID:        id,
		UserID:    userID,
		Type:      notificationType,
		CreatedAt: createdAt,
	}
}

// MarkRead is idempotent.
func (n *Notification) MarkRead() {
	n.IsRead = true
}
