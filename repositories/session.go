//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=../mocks/mock_session_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"messenger/domain"
	"messenger/errors"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type ISessionRepository interface {
	SaveSession(session domain.Session) error
	GetSession(id uuid.UUID) (*domain.Session, error)
	GetSessionByToken(accessToken string) (*domain.Session, error)
	ListUserSessions(userID uuid.UUID) ([]domain.Session, error)
	ListActiveSessions() ([]domain.Session, error)
}

type SessionRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewSessionRepository(db *badger.DB, log *slog.Logger) *SessionRepository {
	return &SessionRepository{db: db, log: log}
}

// SaveSession upserts the session and its two indexes:
// "idx:token:{token}" -> session id, and "idx:session:{user}:{session}".
func (r *SessionRepository) SaveSession(session domain.Session) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(tokenIndex+session.AccessToken), []byte(session.ID.String())); err != nil {
			return err
		}
		userKey := fmt.Sprintf("%s%s:%s", userSessionIndex, session.UserID, session.ID)
		if err := txn.Set([]byte(userKey), nil); err != nil {
			return err
		}
		return setJSON(txn, sessionPrefix+session.ID.String(), session)
	})
}

func (r *SessionRepository) GetSession(id uuid.UUID) (*domain.Session, error) {
	var session domain.Session
	err := r.db.View(func(txn *badger.Txn) (err error) {
		session, err = getJSON[domain.Session](txn, sessionPrefix+id.String(), errors.ErrSessionNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetSessionByToken(accessToken string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := getString(txn, tokenIndex+accessToken, errors.ErrSessionNotFound)
		if err != nil {
			return err
		}
		session, err = getJSON[domain.Session](txn, sessionPrefix+id, errors.ErrSessionNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) ListUserSessions(userID uuid.UUID) ([]domain.Session, error) {
	var sessions []domain.Session
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := fmt.Sprintf("%s%s:", userSessionIndex, userID)
		return scanKeys(txn, prefix, func(key string) error {
			sessionID := strings.TrimPrefix(key, prefix)
			session, err := getJSON[domain.Session](txn, sessionPrefix+sessionID, errors.ErrSessionNotFound)
			if err != nil {
				return err
			}
			sessions = append(sessions, session)
			return nil
		})
	})
	return sessions, err
}

// ListActiveSessions returns the sessions still flagged active, expired or not.
func (r *SessionRepository) ListActiveSessions() ([]domain.Session, error) {
	var sessions []domain.Session
	err := r.db.View(func(txn *badger.Txn) (err error) {
		sessions, err = scanJSON[domain.Session](txn, sessionPrefix)
		return err
	})
	if err != nil {
		return nil, err
	}
	return lo.Filter(sessions, func(s domain.Session, _ int) bool {
		return s.IsActive
	}), nil
}
