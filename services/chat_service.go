package services

import (
	"fmt"
	"log/slog"
	"messenger/domain"
	"messenger/errors"
	"messenger/observability"
	"messenger/projection"
	"messenger/repositories"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IChatService interface {
	CreatePrivateChat(user1ID, user2ID uuid.UUID) (*domain.PrivateChat, error)
	CreateGroupChat(title, description, avatarURL string, memberIDs ...uuid.UUID) (*domain.GroupChat, error)
	GetChat(id uuid.UUID) (domain.Chat, error)
	ListChats(userID uuid.UUID) ([]domain.Chat, error)
	Inbox(userID uuid.UUID) (*projection.Timeline, error)
	SendTextMessage(chatID, senderID uuid.UUID, text string) (*domain.TextMessage, error)
	SendImageMessage(chatID, senderID, imageID uuid.UUID, caption string) (*domain.ImageMessage, error)
	EditMessage(chatID, messageID uuid.UUID, newText *string) (domain.Message, error)
	DeleteMessage(chatID, messageID uuid.UUID) error
	AddMember(chatID, userID uuid.UUID) error
	RemoveMember(chatID, userID uuid.UUID) error
}

// ChatService checks the references the domain leaves unchecked
// (users and media must exist) and fans out notifications.
type ChatService struct {
	log      *slog.Logger
	factory  domain.Factory
	chats    repositories.IChatRepository
	users    repositories.IUserRepository
	media    repositories.IMediaRepository
	notifier INotificationService
}

func NewChatService(
	log *slog.Logger,
	factory domain.Factory,
	chats repositories.IChatRepository,
	users repositories.IUserRepository,
	media repositories.IMediaRepository,
	notifier INotificationService,
) *ChatService {
	return &ChatService{
		log:      log,
		factory:  factory,
		chats:    chats,
		users:    users,
		media:    media,
		notifier: notifier,
	}
}

// CreatePrivateChat accepts the same user twice, as the model does.
func (s *ChatService) CreatePrivateChat(user1ID, user2ID uuid.UUID) (*domain.PrivateChat, error) {
	if err := s.requireUsers(user1ID, user2ID); err != nil {
		return nil, err
	}
	chat := s.factory.NewPrivateChat(user1ID, user2ID)
	if err := s.chats.CreateChat(chat); err != nil {
		return nil, err
	}
	s.log.Info("Private chat created", "chat_id", chat.ID)
	return chat, nil
}

// CreateGroupChat adds memberIDs in order, dropping repeats. Members are not
// sent an Invite: they are part of the chat from the start.
func (s *ChatService) CreateGroupChat(title, description, avatarURL string, memberIDs ...uuid.UUID) (*domain.GroupChat, error) {
	if err := s.requireUsers(memberIDs...); err != nil {
		return nil, err
	}
	chat := s.factory.NewGroupChat(title, description, avatarURL)
	for _, id := range memberIDs {
		chat.AddMember(id)
	}
	if err := s.chats.CreateChat(chat); err != nil {
		return nil, err
	}
	s.log.Info("Group chat created", "chat_id", chat.ID, "title", title, "members", len(chat.MemberIDs))
	return chat, nil
}

func (s *ChatService) GetChat(id uuid.UUID) (domain.Chat, error) {
	return s.chats.GetChat(id)
}

func (s *ChatService) ListChats(userID uuid.UUID) ([]domain.Chat, error) {
	return s.chats.ListChatsForUser(userID)
}

// Inbox lists the chats of userID, most recently active first.
func (s *ChatService) Inbox(userID uuid.UUID) (*projection.Timeline, error) {
	chats, err := s.chats.ListChatsForUser(userID)
	if err != nil {
		return nil, err
	}
	return projection.NewTimeline(userID, chats), nil
}

func (s *ChatService) SendTextMessage(chatID, senderID uuid.UUID, text string) (*domain.TextMessage, error) {
	message := s.factory.NewTextMessage(text)
	if err := s.send(chatID, senderID, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *ChatService) SendImageMessage(chatID, senderID, imageID uuid.UUID, caption string) (*domain.ImageMessage, error) {
	if _, err := s.media.GetMediaFile(imageID); err != nil {
		return nil, err
	}
	message := s.factory.NewImageMessage(imageID, caption)
	if err := s.send(chatID, senderID, message); err != nil {
		return nil, err
	}
	return message, nil
}

// send appends message and notifies every other participant.
// Notification failures are logged only: there is no delivery guarantee.
func (s *ChatService) send(chatID, senderID uuid.UUID, message domain.Message) error {
	chat, err := s.chats.GetChat(chatID)
	if err != nil {
		return err
	}

	chat.SendMessage(message)
	if err = s.chats.AppendMessage(chat, message); err != nil {
		return fmt.Errorf("storing message failed: %w", err)
	}
	observability.MessagesSent.WithLabelValues(string(message.Kind())).Inc()

	recipients := lo.Uniq(lo.Without(chat.Participants(), senderID))
	for _, userID := range recipients {
		if _, err = s.notifier.Notify(userID, domain.NotificationMessage); err != nil {
			s.log.Warn("Cannot notify participant", "chat_id", chatID, "user_id", userID, "error", err)
		}
	}
	return nil
}

// EditMessage edits text or caption depending on the message kind.
// A nil newText only stamps EditedAt.
func (s *ChatService) EditMessage(chatID, messageID uuid.UUID, newText *string) (domain.Message, error) {
	message, err := s.findMessage(chatID, messageID)
	if err != nil {
		return nil, err
	}
	if err = domain.EditMessage(message, s.factory.Clock.Now(), newText); err != nil {
		return nil, err
	}
	if err = s.chats.UpdateMessage(chatID, message); err != nil {
		return nil, err
	}
	return message, nil
}

// DeleteMessage soft-deletes; the message stays in the chat sequence.
func (s *ChatService) DeleteMessage(chatID, messageID uuid.UUID) error {
	message, err := s.findMessage(chatID, messageID)
	if err != nil {
		return err
	}
	message.Delete()
	return s.chats.UpdateMessage(chatID, message)
}

// AddMember sends an Invite only when userID was not already a member.
func (s *ChatService) AddMember(chatID, userID uuid.UUID) error {
	if err := s.requireUsers(userID); err != nil {
		return err
	}
	added, err := s.chats.UpdateGroupChat(chatID, func(group *domain.GroupChat) bool {
		return group.AddMember(userID)
	})
	if err != nil || !added {
		return err
	}
	if _, err = s.notifier.Notify(userID, domain.NotificationInvite); err != nil {
		s.log.Warn("Cannot send invite", "chat_id", chatID, "user_id", userID, "error", err)
	}
	return nil
}

func (s *ChatService) RemoveMember(chatID, userID uuid.UUID) error {
	_, err := s.chats.UpdateGroupChat(chatID, func(group *domain.GroupChat) bool {
		return group.RemoveMember(userID)
	})
	return err
}

func (s *ChatService) findMessage(chatID, messageID uuid.UUID) (domain.Message, error) {
	chat, err := s.chats.GetChat(chatID)
	if err != nil {
		return nil, err
	}
	message, ok := chat.Header().FindMessage(messageID)
	if !ok {
		return nil, errors.ErrMessageNotFound
	}
	return message, nil
}

func (s *ChatService) requireUsers(ids ...uuid.UUID) error {
	for _, id := range lo.Uniq(ids) {
		if _, err := s.users.GetUser(id); err != nil {
			return fmt.Errorf("user %s: %w", id, err)
		}
	}
	return nil
}
