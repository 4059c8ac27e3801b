package services

import (
	"fmt"
	"messenger/auth"
	"messenger/domain"
	"messenger/errors"
	"messenger/mocks"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const validPassword = "ComplexPass123!"

type authFixture struct {
	svc      *AuthService
	clock    *fixedClock
	users    *mocks.MockIUserRepository
	sessions *mocks.MockISessionRepository
	audits   *mocks.MockIAuthenticationRepository
	tokens   auth.TokenIssuer
}

func newAuthFixture(t *testing.T) authFixture {
	ctrl := gomock.NewController(t)
	factory, clock := newTestFactory()
	f := authFixture{
		clock:    clock,
		users:    mocks.NewMockIUserRepository(ctrl),
		sessions: mocks.NewMockISessionRepository(ctrl),
		audits:   mocks.NewMockIAuthenticationRepository(ctrl),
		tokens:   auth.NewTokenIssuer("test-secret", "messenger-test"),
	}
	f.svc = NewAuthService(testLogger(), factory, f.users, f.sessions, f.audits,
		cheapHasher(), f.tokens, time.Hour)
	return f
}

// registeredUser builds a stored user whose password is validPassword.
func registeredUser(t *testing.T, status domain.UserStatus) *domain.User {
	hash, err := cheapHasher().Hash(validPassword)
	require.NoError(t, err)
	user := domain.NewUser(uuid.New(), "alice", hash, t0.Add(-24*time.Hour))
	user.SetStatus(status)
	return user
}

func TestAuthService_Register(t *testing.T) {
	t.Run("should register successfully when input is valid", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		var stored domain.User
		f.users.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(u domain.User) error {
				stored = u
				return nil
			}).
			Times(1)

		user, err := f.svc.Register("alice", validPassword)

		req.NoError(err)
		req.Equal("alice", user.Username)
		req.Equal(domain.UserActive, user.Status)
		req.Equal(t0, user.CreatedAt)
		// The plain password is never stored
		req.NotEqual(validPassword, stored.PasswordHash)
		match, err := cheapHasher().Compare(validPassword, stored.PasswordHash)
		req.NoError(err)
		req.True(match)
	})

	t.Run("should fail when password complexity is not met", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		// Repository should NEVER be called
		f.users.EXPECT().CreateUser(gomock.Any()).Times(0)

		user, err := f.svc.Register("alice", "simplesimplesimple")

		req.ErrorIs(err, errors.ErrInvalidRegistration)
		req.Nil(user)
	})

	t.Run("should fail when username is malformed", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		f.users.EXPECT().CreateUser(gomock.Any()).Times(0)

		_, err := f.svc.Register("a!", validPassword)

		req.ErrorIs(err, errors.ErrInvalidRegistration)
	})

	t.Run("should fail when user already exists in repository", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.users.EXPECT().
			CreateUser(gomock.Any()).
			Return(errors.ErrUserAlreadyExists).
			Times(1)

		user, err := f.svc.Register("alice", validPassword)

		req.ErrorIs(err, errors.ErrUserAlreadyExists)
		req.Nil(user)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("should open a session and audit the success", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		user := registeredUser(t, domain.UserActive)

		var savedSession domain.Session
		var audit domain.Authentication
		f.users.EXPECT().GetUserByUsername("alice").Return(user, nil)
		f.sessions.EXPECT().
			SaveSession(gomock.Any()).
			DoAndReturn(func(s domain.Session) error {
				savedSession = s
				return nil
			})
		f.users.EXPECT().
			UpdateUser(gomock.Any()).
			DoAndReturn(func(u domain.User) error {
				req.Equal(t0, u.LastActiveAt)
				return nil
			})
		f.audits.EXPECT().
			RecordAuthentication(gomock.Any()).
			DoAndReturn(func(a domain.Authentication) error {
				audit = a
				return nil
			})

		session, err := f.svc.Login("alice", validPassword)

		req.NoError(err)
		req.True(session.IsActive)
		req.Equal(user.ID, session.UserID)
		req.Equal(t0.Add(time.Hour), session.ExpiresAt)
		req.Equal(session.AccessToken, savedSession.AccessToken)

		claims, err := f.tokens.Parse(session.AccessToken)
		req.NoError(err)
		req.Equal(session.ID.String(), claims.SessionID)
		req.Equal(user.ID.String(), claims.Subject)

		req.True(audit.Success)
		req.NotNil(audit.UserID)
		req.Equal(user.ID, *audit.UserID)
		req.Equal(t0, audit.Timestamp)
	})

	t.Run("should audit a failure with the user when the password is wrong", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		user := registeredUser(t, domain.UserActive)

		f.users.EXPECT().GetUserByUsername("alice").Return(user, nil)
		f.sessions.EXPECT().SaveSession(gomock.Any()).Times(0)
		f.audits.EXPECT().
			RecordAuthentication(gomock.Any()).
			DoAndReturn(func(a domain.Authentication) error {
				req.False(a.Success)
				req.Equal(user.ID, *a.UserID)
				return nil
			})

		session, err := f.svc.Login("alice", "WrongPass123!!")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
		req.Nil(session)
	})

	t.Run("should audit a failure without user when the username is unknown", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.users.EXPECT().GetUserByUsername("ghost").Return(nil, errors.ErrUserNotFound)
		f.audits.EXPECT().
			RecordAuthentication(gomock.Any()).
			DoAndReturn(func(a domain.Authentication) error {
				req.False(a.Success)
				req.Nil(a.UserID)
				return nil
			})

		_, err := f.svc.Login("ghost", validPassword)

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should refuse a suspended user", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		user := registeredUser(t, domain.UserSuspended)

		f.users.EXPECT().GetUserByUsername("alice").Return(user, nil)
		f.audits.EXPECT().RecordAuthentication(gomock.Any()).Return(nil)

		_, err := f.svc.Login("alice", validPassword)

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should audit a failure when the session cannot be stored", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		user := registeredUser(t, domain.UserActive)
		diskFull := fmt.Errorf("disk full")

		f.users.EXPECT().GetUserByUsername("alice").Return(user, nil)
		f.sessions.EXPECT().SaveSession(gomock.Any()).Return(diskFull)
		f.users.EXPECT().UpdateUser(gomock.Any()).Times(0)
		f.audits.EXPECT().
			RecordAuthentication(gomock.Any()).
			DoAndReturn(func(a domain.Authentication) error {
				req.False(a.Success)
				req.Equal(user.ID, *a.UserID)
				return nil
			}).
			Times(1)

		session, err := f.svc.Login("alice", validPassword)

		req.ErrorIs(err, diskFull)
		req.Nil(session)
	})

	t.Run("should still log in when the audit write fails", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		user := registeredUser(t, domain.UserActive)

		f.users.EXPECT().GetUserByUsername("alice").Return(user, nil)
		f.sessions.EXPECT().SaveSession(gomock.Any()).Return(nil)
		f.users.EXPECT().UpdateUser(gomock.Any()).Return(nil)
		f.audits.EXPECT().RecordAuthentication(gomock.Any()).Return(errors.ErrUnknownKind)

		session, err := f.svc.Login("alice", validPassword)

		req.NoError(err)
		req.NotNil(session)
	})
}

func TestAuthService_ValidateSession(t *testing.T) {
	// openSession issues a real token for a session created at t0.
	openSession := func(t *testing.T, f authFixture) *domain.Session {
		session := domain.NewSession(uuid.New(), uuid.New(), "", t0, time.Hour)
		token, err := f.tokens.Issue(session.UserID, session.ID, session.CreatedAt, session.ExpiresAt)
		require.NoError(t, err)
		session.AccessToken = token
		return session
	}

	t.Run("should accept a live session", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		session := openSession(t, f)

		f.sessions.EXPECT().GetSessionByToken(session.AccessToken).Return(session, nil)
		f.sessions.EXPECT().SaveSession(gomock.Any()).Times(0)

		got, err := f.svc.ValidateSession(session.AccessToken)

		req.NoError(err)
		req.True(got.IsActive)
	})

	t.Run("should deactivate and store a session reaching its expiry", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		session := openSession(t, f)
		f.clock.Advance(time.Hour)

		f.sessions.EXPECT().GetSessionByToken(session.AccessToken).Return(session, nil)
		f.sessions.EXPECT().
			SaveSession(gomock.Any()).
			DoAndReturn(func(s domain.Session) error {
				req.False(s.IsActive)
				return nil
			}).
			Times(1)

		got, err := f.svc.ValidateSession(session.AccessToken)

		req.ErrorIs(err, errors.ErrSessionInvalid)
		req.False(got.IsActive)
	})

	t.Run("should not store an already terminated session again", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		session := openSession(t, f)
		session.Terminate()

		f.sessions.EXPECT().GetSessionByToken(session.AccessToken).Return(session, nil)
		f.sessions.EXPECT().SaveSession(gomock.Any()).Times(0)

		_, err := f.svc.ValidateSession(session.AccessToken)

		req.ErrorIs(err, errors.ErrSessionInvalid)
	})

	t.Run("should reject a forged token before any lookup", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		forged := auth.NewTokenIssuer("other-secret", "messenger-test")
		token, err := forged.Issue(uuid.New(), uuid.New(), t0, t0.Add(time.Hour))
		req.NoError(err)

		f.sessions.EXPECT().GetSessionByToken(gomock.Any()).Times(0)

		_, err = f.svc.ValidateSession(token)

		req.ErrorIs(err, errors.ErrSessionInvalid)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("should terminate an active session", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		session := domain.NewSession(uuid.New(), uuid.New(), "token", t0, time.Hour)

		f.sessions.EXPECT().GetSessionByToken("token").Return(session, nil)
		f.sessions.EXPECT().
			SaveSession(gomock.Any()).
			DoAndReturn(func(s domain.Session) error {
				req.False(s.IsActive)
				return nil
			})

		req.NoError(f.svc.Logout("token"))
	})

	t.Run("should be harmless on an inactive session", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		session := domain.NewSession(uuid.New(), uuid.New(), "token", t0, time.Hour)
		session.Terminate()

		f.sessions.EXPECT().GetSessionByToken("token").Return(session, nil)
		f.sessions.EXPECT().SaveSession(gomock.Any()).Times(0)

		req.NoError(f.svc.Logout("token"))
	})

	t.Run("should surface an unknown token", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.sessions.EXPECT().GetSessionByToken("nope").Return(nil, errors.ErrSessionNotFound)

		req.ErrorIs(f.svc.Logout("nope"), errors.ErrSessionNotFound)
	})
}
