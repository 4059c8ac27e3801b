//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../mocks/mock_chat_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"messenger/domain"
	"messenger/errors"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IChatRepository interface {
	CreateChat(chat domain.Chat) error
	UpdateGroupChat(chatID uuid.UUID, mutate func(group *domain.GroupChat) bool) (bool, error)
	AppendMessage(chat domain.Chat, message domain.Message) error
	UpdateMessage(chatID uuid.UUID, message domain.Message) error
	GetChat(id uuid.UUID) (domain.Chat, error)
	ListChatsForUser(userID uuid.UUID) ([]domain.Chat, error)
}

type ChatRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewChatRepository(db *badger.DB, log *slog.Logger) *ChatRepository {
	return &ChatRepository{db: db, log: log}
}

// DiskChat is the kind-tagged storage form of both chat variants.
// Messages are stored apart, under "msg:{chat}:{sequence}:{message}".
type DiskChat struct {
	Kind          domain.ChatKind `json:"kind"`
	ID            uuid.UUID       `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	LastMessageAt *time.Time      `json:"last_message_at,omitempty"`
	MessageCount  int             `json:"message_count"`
	User1ID       uuid.UUID       `json:"user1_id"`
	User2ID       uuid.UUID       `json:"user2_id"`
	Title         string          `json:"title,omitempty"`
	Description   string          `json:"description,omitempty"`
	AvatarURL     string          `json:"avatar_url,omitempty"`
	MemberIDs     []uuid.UUID     `json:"member_ids,omitempty"`
}

// DiskMessage is the kind-tagged storage form of both message variants.
type DiskMessage struct {
	Kind domain.MessageKind `json:"kind"`
	domain.MessageHeader
	Text    string    `json:"text,omitempty"`
	ImageID uuid.UUID `json:"image_id"`
	Caption string    `json:"caption,omitempty"`
}

// CreateChat stores a new chat along with any messages it already holds.
func (r *ChatRepository) CreateChat(chat domain.Chat) error {
	return r.db.Update(func(txn *badger.Txn) error {
		record := fromChat(chat)
		record.MessageCount = 0
		for _, message := range chat.Header().Messages {
			if err := putMessage(txn, &record, message); err != nil {
				return err
			}
		}
		if err := setMembers(txn, record.ID, nil, chat.Participants()); err != nil {
			return err
		}
		r.log.Debug("Creating chat", "chat_id", record.ID, "kind", record.Kind)
		return setJSON(txn, chatPrefix+record.ID.String(), record)
	})
}

// UpdateGroupChat applies mutate to the stored group inside one transaction and
// writes it back when mutate reports a change. Messages, MessageCount and
// LastMessageAt are owned by AppendMessage and are never rewritten here. The
// group handed to mutate carries no messages.
func (r *ChatRepository) UpdateGroupChat(chatID uuid.UUID, mutate func(group *domain.GroupChat) bool) (bool, error) {
	var changed bool
	err := updateWithRetry(r.db, func(txn *badger.Txn) error {
		key := chatPrefix + chatID.String()
		previous, err := getJSON[DiskChat](txn, key, errors.ErrChatNotFound)
		if err != nil {
			return err
		}
		chat, err := toChat(previous)
		if err != nil {
			return err
		}
		group, ok := chat.(*domain.GroupChat)
		if !ok {
			return errors.ErrNotAGroupChat
		}

		changed = mutate(group)
		if !changed {
			return nil
		}
		record := fromChat(group)
		record.MessageCount = previous.MessageCount
		record.LastMessageAt = previous.LastMessageAt
		if err = setMembers(txn, record.ID, participantsOf(previous), group.Participants()); err != nil {
			return err
		}
		r.log.Debug("Updating group chat", "chat_id", record.ID, "members", len(record.MemberIDs))
		return setJSON(txn, key, record)
	})
	return changed, err
}

// AppendMessage stores a message already appended to chat in memory, together
// with the chat's new LastMessageAt. Keys use a sequence number rather than
// SentAt so that reloading keeps append order.
func (r *ChatRepository) AppendMessage(chat domain.Chat, message domain.Message) error {
	return r.db.Update(func(txn *badger.Txn) error {
		chatKey := chatPrefix + chat.Header().ID.String()
		record, err := getJSON[DiskChat](txn, chatKey, errors.ErrChatNotFound)
		if err != nil {
			return err
		}

		if err = putMessage(txn, &record, message); err != nil {
			return err
		}
		record.LastMessageAt = chat.Header().LastMessageAt
		return setJSON(txn, chatKey, record)
	})
}

// UpdateMessage rewrites an edited or deleted message in place.
func (r *ChatRepository) UpdateMessage(chatID uuid.UUID, message domain.Message) error {
	return r.db.Update(func(txn *badger.Txn) error {
		msgKey, err := getString(txn, messageIndex+message.Header().ID.String(), errors.ErrMessageNotFound)
		if err != nil {
			return err
		}
		if !strings.HasPrefix(msgKey, messagePrefix+chatID.String()+":") {
			return errors.ErrMessageNotFound
		}
		return setJSON(txn, msgKey, fromMessage(message))
	})
}

func (r *ChatRepository) GetChat(id uuid.UUID) (domain.Chat, error) {
	var chat domain.Chat
	err := r.db.View(func(txn *badger.Txn) (err error) {
		chat, err = loadChat(txn, id)
		return err
	})
	return chat, err
}

// ListChatsForUser returns every chat where userID is a participant.
func (r *ChatRepository) ListChatsForUser(userID uuid.UUID) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := fmt.Sprintf("%s%s:", memberIndex, userID)
		return scanKeys(txn, prefix, func(key string) error {
			chatID, err := uuid.Parse(strings.TrimPrefix(key, prefix))
			if err != nil {
				return err
			}
			chat, err := loadChat(txn, chatID)
			if err != nil {
				return err
			}
			chats = append(chats, chat)
			return nil
		})
	})
	return chats, err
}

func loadChat(txn *badger.Txn, id uuid.UUID) (domain.Chat, error) {
	record, err := getJSON[DiskChat](txn, chatPrefix+id.String(), errors.ErrChatNotFound)
	if err != nil {
		return nil, err
	}
	chat, err := toChat(record)
	if err != nil {
		return nil, err
	}

	header := chat.Header()
	err = scanPrefix(txn, fmt.Sprintf("%s%s:", messagePrefix, id), func(key string, val []byte) error {
		var dm DiskMessage
		if err := json.Unmarshal(val, &dm); err != nil {
			return fmt.Errorf("decode %s failed: %w", key, err)
		}
		message, err := toMessage(dm)
		if err != nil {
			return err
		}
		header.Messages = append(header.Messages, message)
		return nil
	})
	return chat, err
}

// putMessage writes message at the next sequence slot of record.
func putMessage(txn *badger.Txn, record *DiskChat, message domain.Message) error {
	msgKey := fmt.Sprintf("%s%s:%010d:%s", messagePrefix, record.ID, record.MessageCount, message.Header().ID)
	if err := txn.Set([]byte(messageIndex+message.Header().ID.String()), []byte(msgKey)); err != nil {
		return err
	}
	if err := setJSON(txn, msgKey, fromMessage(message)); err != nil {
		return err
	}
	record.MessageCount++
	return nil
}

// setMembers moves the "idx:member:{user}:{chat}" entries from before to after.
func setMembers(txn *badger.Txn, chatID uuid.UUID, before, after []uuid.UUID) error {
	removed, added := lo.Difference(before, after)
	for _, userID := range removed {
		if err := txn.Delete([]byte(fmt.Sprintf("%s%s:%s", memberIndex, userID, chatID))); err != nil {
			return err
		}
	}
	for _, userID := range lo.Uniq(added) {
		if err := txn.Set([]byte(fmt.Sprintf("%s%s:%s", memberIndex, userID, chatID)), nil); err != nil {
			return err
		}
	}
	return nil
}

func participantsOf(record DiskChat) []uuid.UUID {
	if record.Kind == domain.KindPrivate {
		return []uuid.UUID{record.User1ID, record.User2ID}
	}
	return record.MemberIDs
}

func fromChat(chat domain.Chat) DiskChat {
	header := chat.Header()
	record := DiskChat{
		Kind:          chat.Kind(),
		ID:            header.ID,
		CreatedAt:     header.CreatedAt,
		LastMessageAt: header.LastMessageAt,
		MessageCount:  len(header.Messages),
	}
	switch c := chat.(type) {
	case *domain.PrivateChat:
		record.User1ID = c.User1ID
		record.User2ID = c.User2ID
	case *domain.GroupChat:
		record.Title = c.Title
		record.Description = c.Description
		record.AvatarURL = c.AvatarURL
		record.MemberIDs = c.MemberIDs
	}
	return record
}

func toChat(record DiskChat) (domain.Chat, error) {
	header := domain.ChatHeader{
		ID:            record.ID,
		CreatedAt:     record.CreatedAt.UTC(),
		LastMessageAt: record.LastMessageAt,
	}
	switch record.Kind {
	case domain.KindPrivate:
		return &domain.PrivateChat{
			ChatHeader: header,
			User1ID:    record.User1ID,
			User2ID:    record.User2ID,
		}, nil
	case domain.KindGroup:
		return &domain.GroupChat{
			ChatHeader:  header,
			Title:       record.Title,
			Description: record.Description,
			AvatarURL:   record.AvatarURL,
			MemberIDs:   record.MemberIDs,
		}, nil
	}
	return nil, fmt.Errorf("%w: chat %q", errors.ErrUnknownKind, record.Kind)
}

func fromMessage(message domain.Message) DiskMessage {
	record := DiskMessage{Kind: message.Kind(), MessageHeader: *message.Header()}
	switch m := message.(type) {
	case *domain.TextMessage:
		record.Text = m.Text
	case *domain.ImageMessage:
		record.ImageID = m.ImageID
		record.Caption = m.Caption
	}
	return record
}

func toMessage(record DiskMessage) (domain.Message, error) {
	switch record.Kind {
	case domain.KindText:
		return &domain.TextMessage{MessageHeader: record.MessageHeader, Text: record.Text}, nil
	case domain.KindImage:
		return &domain.ImageMessage{
			MessageHeader: record.MessageHeader,
			ImageID:       record.ImageID,
			Caption:       record.Caption,
		}, nil
	}
	return nil, fmt.Errorf("%w: message %q", errors.ErrUnknownKind, record.Kind)
}
