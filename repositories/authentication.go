//go:generate go run go.uber.org/mock/mockgen -source=authentication.go -destination=../mocks/mock_authentication_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"messenger/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// IAuthenticationRepository is an append-only audit log of login attempts.
type IAuthenticationRepository interface {
	RecordAuthentication(attempt domain.Authentication) error
	ListAuthentications() ([]domain.Authentication, error)
	ListUserAuthentications(userID uuid.UUID) ([]domain.Authentication, error)
}

type AuthenticationRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewAuthenticationRepository(db *badger.DB, log *slog.Logger) *AuthenticationRepository {
	return &AuthenticationRepository{db: db, log: log}
}

func (r *AuthenticationRepository) RecordAuthentication(attempt domain.Authentication) error {
	key := fmt.Sprintf("%s%s:%s", authPrefix, paddedNano(attempt.Timestamp), attempt.ID)
	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, key, attempt)
	})
}

// ListAuthentications returns every attempt, oldest first.
func (r *AuthenticationRepository) ListAuthentications() ([]domain.Authentication, error) {
	var attempts []domain.Authentication
	err := r.db.View(func(txn *badger.Txn) (err error) {
		attempts, err = scanJSON[domain.Authentication](txn, authPrefix)
		return err
	})
	return attempts, err
}

func (r *AuthenticationRepository) ListUserAuthentications(userID uuid.UUID) ([]domain.Authentication, error) {
	attempts, err := r.ListAuthentications()
	if err != nil {
		return nil, err
	}
	return lo.Filter(attempts, func(a domain.Authentication, _ int) bool {
		return a.UserID != nil && *a.UserID == userID
	}), nil
}
