//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"log/slog"
	"messenger/domain"
	"messenger/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(user domain.User) error
	UpdateUser(user domain.User) error
	GetUser(id uuid.UUID) (*domain.User, error)
	GetUserByUsername(username string) (*domain.User, error)
}

type UserRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewUserRepository(db *badger.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

// CreateUser persists a new account. Usernames are unique:
// "idx:username:{name}" points at the user id.
func (r *UserRepository) CreateUser(user domain.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		indexKey := usernameIndex + user.Username
		taken, err := exists(txn, indexKey)
		if err != nil {
			return err
		}
		if taken {
			return errors.ErrUserAlreadyExists
		}
		if err = txn.Set([]byte(indexKey), []byte(user.ID.String())); err != nil {
			return err
		}
		r.log.Debug("Creating user", "user_id", user.ID, "username", user.Username)
		return setJSON(txn, userPrefix+user.ID.String(), user)
	})
}

// UpdateUser overwrites an existing account. The username is not re-indexed.
func (r *UserRepository) UpdateUser(user domain.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := userPrefix + user.ID.String()
		found, err := exists(txn, key)
		if err != nil {
			return err
		}
		if !found {
			return errors.ErrUserNotFound
		}
		return setJSON(txn, key, user)
	})
}

func (r *UserRepository) GetUser(id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.View(func(txn *badger.Txn) (err error) {
		user, err = getJSON[domain.User](txn, userPrefix+id.String(), errors.ErrUserNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := getString(txn, usernameIndex+username, errors.ErrUserNotFound)
		if err != nil {
			return err
		}
		user, err = getJSON[domain.User](txn, userPrefix+id, errors.ErrUserNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
