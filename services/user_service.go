package services

import (
	"log/slog"
	"messenger/domain"
	"messenger/repositories"

	"github.com/google/uuid"
)

type IUserService interface {
	GetUser(id uuid.UUID) (*domain.User, error)
	SetStatus(id uuid.UUID, status domain.UserStatus) (*domain.User, error)
	Touch(id uuid.UUID) (*domain.User, error)
}

type UserService struct {
	log   *slog.Logger
	clock domain.Clock
	users repositories.IUserRepository
}

func NewUserService(log *slog.Logger, clock domain.Clock, users repositories.IUserRepository) *UserService {
	return &UserService{log: log, clock: clock, users: users}
}

func (s *UserService) GetUser(id uuid.UUID) (*domain.User, error) {
	return s.users.GetUser(id)
}

// SetStatus applies any status to any user, Deleted -> Active included.
func (s *UserService) SetStatus(id uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	return s.update(id, func(user *domain.User) {
		s.log.Info("Changing user status", "user_id", id, "from", user.Status, "to", status)
		user.SetStatus(status)
	})
}

func (s *UserService) Touch(id uuid.UUID) (*domain.User, error) {
	return s.update(id, func(user *domain.User) {
		user.Touch(s.clock.Now())
	})
}

func (s *UserService) update(id uuid.UUID, mutate func(user *domain.User)) (*domain.User, error) {
	user, err := s.users.GetUser(id)
	if err != nil {
		return nil, err
	}
	mutate(user)
	if err = s.users.UpdateUser(*user); err != nil {
		return nil, err
	}
	return user, nil
}
