// Package projection builds read views over chats.
// It never mutates the records it is given.
package projection

import (
	"messenger/domain"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// InboxEntry summarizes one chat for the owner of an inbox.
type InboxEntry struct {
	ChatID       uuid.UUID
	Kind         domain.ChatKind
	Title        string
	Participants int
	// ActiveAt is the last message time, or the creation time of a silent chat
	ActiveAt     time.Time
	LastMessage  domain.Message // last message not deleted, nil when none
	MessageCount int
}

// Timeline is the inbox of one user, most recently active chat first.
type Timeline struct {
	Owner   uuid.UUID
	Entries []InboxEntry
}

func NewTimeline(owner uuid.UUID, chats []domain.Chat) *Timeline {
	t := &Timeline{Owner: owner, Entries: make([]InboxEntry, 0, len(chats))}
	for _, chat := range chats {
		t.Entries = append(t.Entries, t.entry(chat))
	}
	sort.SliceStable(t.Entries, func(i, j int) bool {
		return t.Entries[i].ActiveAt.After(t.Entries[j].ActiveAt)
	})
	return t
}

func (t *Timeline) entry(chat domain.Chat) InboxEntry {
	header := chat.Header()
	entry := InboxEntry{
		ChatID:       header.ID,
		Kind:         chat.Kind(),
		Title:        t.title(chat),
		Participants: len(lo.Uniq(chat.Participants())),
		ActiveAt:     header.CreatedAt,
		MessageCount: len(header.Messages),
	}
	if header.LastMessageAt != nil {
		entry.ActiveAt = *header.LastMessageAt
	}
	if last, _, ok := lo.FindLastIndexOf(header.Messages, func(m domain.Message) bool {
		return !m.Header().IsDeleted
	}); ok {
		entry.LastMessage = last
	}
	return entry
}

// title of a private chat is the id of the other side, or the owner for a chat with oneself.
func (t *Timeline) title(chat domain.Chat) string {
	switch c := chat.(type) {
	case *domain.GroupChat:
		return c.Title
	case *domain.PrivateChat:
		if c.User1ID == t.Owner {
			return c.User2ID.String()
		}
		return c.User1ID.String()
	}
	return ""
}

// Preview renders a message in one line: its text, or its caption marked as an image.
func Preview(m domain.Message) string {
	switch msg := m.(type) {
	case *domain.TextMessage:
		return msg.Text
	case *domain.ImageMessage:
		if msg.Caption == "" {
			return "[image]"
		}
		return "[image] " + msg.Caption
	}
	return ""
}
