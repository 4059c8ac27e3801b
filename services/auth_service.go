package services

import (
	"fmt"
	"log/slog"
	"messenger/auth"
	"messenger/domain"
	"messenger/errors"
	"messenger/observability"
	"messenger/repositories"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IAuthService interface {
	Register(username, password string) (*domain.User, error)
	Login(username, password string) (*domain.Session, error)
	ValidateSession(accessToken string) (*domain.Session, error)
	Logout(accessToken string) error
}

type AuthService struct {
	log        *slog.Logger
	factory    domain.Factory
	users      repositories.IUserRepository
	sessions   repositories.ISessionRepository
	audits     repositories.IAuthenticationRepository
	hasher     auth.PasswordHasher
	tokens     auth.TokenIssuer
	sessionTTL time.Duration
}

func NewAuthService(
	log *slog.Logger,
	factory domain.Factory,
	users repositories.IUserRepository,
	sessions repositories.ISessionRepository,
	audits repositories.IAuthenticationRepository,
	hasher auth.PasswordHasher,
	tokens auth.TokenIssuer,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		log:        log,
		factory:    factory,
		users:      users,
		sessions:   sessions,
		audits:     audits,
		hasher:     hasher,
		tokens:     tokens,
		sessionTTL: sessionTTL,
	}
}

func (s *AuthService) Register(username, password string) (*domain.User, error) {
	// 1. Validate before any expensive cryptographic operation
	if err := auth.ValidateRegister(auth.RegisterRequest{Username: username, Password: password}); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidRegistration, err)
	}

	// 2. Hash here, the repository never sees plain passwords
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing failed: %w", err)
	}

	user := s.factory.NewUser(username, hash)
	if err = s.users.CreateUser(*user); err != nil {
		return nil, err // ErrUserAlreadyExists when the username is taken
	}

	observability.UsersRegistered.Inc()
	s.log.Info("User registered", "user_id", user.ID, "username", username)
	return user, nil
}

// Login records an Authentication for every attempt. Only Active users may log in;
// every failure is reported as ErrInvalidCredentials to avoid account enumeration.
func (s *AuthService) Login(username, password string) (*domain.Session, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		s.recordAttempt(false, nil)
		return nil, errors.ErrInvalidCredentials
	}

	match, err := s.hasher.Compare(password, user.PasswordHash)
	if err != nil || !match || user.Status != domain.UserActive {
		s.recordAttempt(false, &user.ID)
		return nil, errors.ErrInvalidCredentials
	}

	// The token embeds the session id, so the session exists first with an empty token.
	session := s.factory.NewSession(user.ID, "", s.sessionTTL)
	token, err := s.tokens.Issue(user.ID, session.ID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		s.recordAttempt(false, &user.ID)
		return nil, errors.ErrTokenGeneration
	}
	session.AccessToken = token

	if err = s.sessions.SaveSession(*session); err != nil {
		s.recordAttempt(false, &user.ID)
		return nil, fmt.Errorf("saving session failed: %w", err)
	}

	user.Touch(session.CreatedAt)
	if err = s.users.UpdateUser(*user); err != nil {
		s.log.Warn("Cannot record user activity", "user_id", user.ID, "error", err)
	}

	s.recordAttempt(true, &user.ID)
	s.log.Info("User logged in", "user_id", user.ID, "session_id", session.ID)
	return session, nil
}

// ValidateSession resolves a bearer token to a usable session.
// Like Session.Validate it may deactivate an expired session, and persists that change.
func (s *AuthService) ValidateSession(accessToken string) (*domain.Session, error) {
	claims, err := s.tokens.Parse(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrSessionInvalid, err)
	}

	session, err := s.sessions.GetSessionByToken(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.SessionID != session.ID.String() {
		return nil, errors.ErrSessionInvalid
	}

	wasActive := session.IsActive
	if session.Validate(s.factory.Clock.Now()) {
		return session, nil
	}

	if wasActive {
		if err = s.sessions.SaveSession(*session); err != nil {
			return nil, fmt.Errorf("saving expired session failed: %w", err)
		}
		observability.SessionsClosed.WithLabelValues(observability.TriggerValidate).Inc()
		s.log.Debug("Session expired on use", "session_id", session.ID)
	}
	return session, errors.ErrSessionInvalid
}

// Logout terminates the session behind accessToken. Repeating it is harmless.
func (s *AuthService) Logout(accessToken string) error {
	session, err := s.sessions.GetSessionByToken(accessToken)
	if err != nil {
		return err
	}
	if !session.IsActive {
		return nil
	}

	session.Terminate()
	if err = s.sessions.SaveSession(*session); err != nil {
		return err
	}
	observability.SessionsClosed.WithLabelValues(observability.TriggerTerminate).Inc()
	s.log.Info("User logged out", "user_id", session.UserID, "session_id", session.ID)
	return nil
}

// recordAttempt is best effort: a failing audit write is logged, never surfaced.
func (s *AuthService) recordAttempt(success bool, userID *uuid.UUID) {
	observability.LoginAttempts.
		WithLabelValues(lo.Ternary(success, observability.ResultSuccess, observability.ResultFailure)).
		Inc()
	if err := s.audits.RecordAuthentication(s.factory.NewAuthentication(success, userID)); err != nil {
		s.log.Warn("Cannot record authentication attempt", "success", success, "error", err)
	}
}
