package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type ChatKind string

const (
	KindPrivate ChatKind = "private"
	KindGroup   ChatKind = "group"
)

// ChatHeader owns the ordered message sequence of a chat.
// LastMessageAt mirrors SentAt of the last appended message.
type ChatHeader struct {
	ID            uuid.UUID  `json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	Messages      []Message  `json:"messages"`
}

// SendMessage appends without checking chronology; callers own the ordering.
func (h *ChatHeader) SendMessage(m Message) {
	h.Messages = append(h.Messages, m)
	sentAt := m.Header().SentAt
	h.LastMessageAt = &sentAt
}

func (h *ChatHeader) FindMessage(id uuid.UUID) (Message, bool) {
	return lo.Find(h.Messages, func(m Message) bool {
		return m.Header().ID == id
	})
}

// Chat is a closed union: *PrivateChat or *GroupChat.
type Chat interface {
	Header() *ChatHeader
	Kind() ChatKind
	SendMessage(m Message)
	Participants() []uuid.UUID
	sealedChat()
}

// PrivateChat has two participants fixed at creation.
// Identical ids are accepted as is.
type PrivateChat struct {
	ChatHeader
	User1ID uuid.UUID `json:"user1_id"`
	User2ID uuid.UUID `json:"user2_id"`
}

func NewPrivateChat(id uuid.UUID, createdAt time.Time, user1ID, user2ID uuid.UUID) *PrivateChat {
	return &PrivateChat{
		ChatHeader: ChatHeader{ID: id, CreatedAt: createdAt},
		User1ID:    user1ID,
		User2ID:    user2ID,
	}
}

func (c *PrivateChat) Header() *ChatHeader { return &c.ChatHeader }
func (c *PrivateChat) Kind() ChatKind      { return KindPrivate }
func (c *PrivateChat) sealedChat()         {}

func (c *PrivateChat) Participants() []uuid.UUID {
	return []uuid.UUID{c.User1ID, c.User2ID}
}

type GroupChat struct {
	ChatHeader
	Title       string      `json:"title"`
	Description string      `json:"description"`
	AvatarURL   string      `json:"avatar_url"`
	MemberIDs   []uuid.UUID `json:"member_ids"`
}

func NewGroupChat(id uuid.UUID, createdAt time.Time, title, description, avatarURL string) *GroupChat {
	return &GroupChat{
		ChatHeader:  ChatHeader{ID: id, CreatedAt: createdAt},
		Title:       title,
		Description: description,
		AvatarURL:   avatarURL,
	}
}

func (c *GroupChat) Header() *ChatHeader { return &c.ChatHeader }
func (c *GroupChat) Kind() ChatKind      { return KindGroup }
func (c *GroupChat) sealedChat()         {}

func (c *GroupChat) Participants() []uuid.UUID {
	return slices.Clone(c.MemberIDs)
}

func (c *GroupChat) HasMember(userID uuid.UUID) bool {
	return lo.Contains(c.MemberIDs, userID)
}

// AddMember keeps MemberIDs free of duplicates and reports whether userID was new.
func (c *GroupChat) AddMember(userID uuid.UUID) bool {
	if c.HasMember(userID) {
		return false
	}
	c.MemberIDs = append(c.MemberIDs, userID)
	return true
}

// RemoveMember is a no-op when userID is absent.
func (c *GroupChat) RemoveMember(userID uuid.UUID) bool {
	i := slices.Index(c.MemberIDs, userID)
	if i < 0 {
		return false
	}
	c.MemberIDs = slices.Delete(c.MemberIDs, i, i+1)
	return true
}
