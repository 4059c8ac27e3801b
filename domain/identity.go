// Package domain contains core concepts of the messenger.
// Records and their mutations only: no storage, network, or locking here.
// Callers that share a record between goroutines must serialize access themselves.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Clock provides the current instant. Implementations must return UTC.
type Clock interface {
	Now() time.Time
}

// IDGenerator provides fresh record identifiers.
type IDGenerator interface {
	NewID() uuid.UUID
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() uuid.UUID {
	return uuid.New()
}

// Factory stamps new records with an id and a creation time.
// It is the only place where ids and timestamps are produced implicitly;
// every record also has an explicit constructor taking both.
type Factory struct {
	Clock Clock
	IDs   IDGenerator
}

func NewFactory(clock Clock, ids IDGenerator) Factory {
	return Factory{Clock: clock, IDs: ids}
}

// DefaultFactory uses the wall clock and random v4 UUIDs.
func DefaultFactory() Factory {
	return NewFactory(SystemClock{}, UUIDGenerator{})
}

func (f Factory) NewUser(username, passwordHash string) *User {
	return NewUser(f.IDs.NewID(), username, passwordHash, f.Clock.Now())
}

func (f Factory) NewSession(userID uuid.UUID, accessToken string, ttl time.Duration) *Session {
	return NewSession(f.IDs.NewID(), userID, accessToken, f.Clock.Now(), ttl)
}

func (f Factory) NewAuthentication(success bool, userID *uuid.UUID) Authentication {
	return NewAuthentication(f.IDs.NewID(), success, userID, f.Clock.Now())
}

func (f Factory) NewNotification(userID uuid.UUID, notificationType NotificationType) *Notification {
	return NewNotification(f.IDs.NewID(), userID, notificationType, f.Clock.Now())
}

func (f Factory) NewTextMessage(text string) *TextMessage {
	return NewTextMessage(f.IDs.NewID(), f.Clock.Now(), text)
}

func (f Factory) NewImageMessage(imageID uuid.UUID, caption string) *ImageMessage {
	return NewImageMessage(f.IDs.NewID(), f.Clock.Now(), imageID, caption)
}

func (f Factory) NewPrivateChat(user1ID, user2ID uuid.UUID) *PrivateChat {
	return NewPrivateChat(f.IDs.NewID(), f.Clock.Now(), user1ID, user2ID)
}

func (f Factory) NewGroupChat(title, description, avatarURL string) *GroupChat {
	return NewGroupChat(f.IDs.NewID(), f.Clock.Now(), title, description, avatarURL)
}

func (f Factory) NewAttachment(fileType string) Attachment {
	return Attachment{ID: f.IDs.NewID(), FileType: fileType}
}

func (f Factory) NewMediaFile(url, thumbnailURL, mimeType string, sizeBytes int64) MediaFile {
	return MediaFile{
		ID:           f.IDs.NewID(),
		URL:          url,
		ThumbnailURL: thumbnailURL,
		MimeType:     mimeType,
		CreatedAt:    f.Clock.Now(),
		SizeBytes:    sizeBytes,
	}
}
