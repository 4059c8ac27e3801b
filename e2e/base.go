package e2e

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"messenger/auth"
	"messenger/domain"
	"messenger/repositories"
	"messenger/runtime/workers"
	"messenger/services"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

const sessionTTL = time.Hour

// Clock is a manual clock shared by every service of a suite.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Stack is the whole messenger wired on one badger store.
type Stack struct {
	DB            *badger.DB
	Auth          *services.AuthService
	Users         *services.UserService
	Chats         *services.ChatService
	Media         *services.MediaService
	Notifications *services.NotificationService
	Sweeper       *workers.SessionSweeper
	Audits        *repositories.AuthenticationRepository
}

type BaseSuite struct {
	suite.Suite
	Config Config
	Clock  *Clock
	Stack  Stack
	log    *slog.Logger
	path   string
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.log = logs.GetLoggerFromLevel(slog.LevelWarn)
}

// SetupTest gives every test a fresh store and a clock at a fixed instant.
func (s *BaseSuite) SetupTest() {
	s.path = s.T().TempDir()
	if s.Config.BadgerFilepath != "" {
		s.path = filepath.Join(s.Config.BadgerFilepath, strings.ReplaceAll(s.T().Name(), "/", "_"))
	}
	s.Clock = &Clock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
	s.Open()
}

func (s *BaseSuite) TearDownTest() {
	if s.Stack.DB != nil {
		s.Require().NoError(s.Stack.DB.Close())
	}
}

// Open builds the stack on the suite store. Calling it again after Reopen
// proves that state survives a restart.
func (s *BaseSuite) Open() {
	db, err := repositories.OpenBadger(s.path, false)
	s.Require().NoError(err)

	factory := domain.NewFactory(s.Clock, domain.UUIDGenerator{})
	users := repositories.NewUserRepository(db, s.log)
	sessions := repositories.NewSessionRepository(db, s.log)
	audits := repositories.NewAuthenticationRepository(db, s.log)
	media := repositories.NewMediaRepository(db, s.log)
	notifications := services.NewNotificationService(s.log, factory, repositories.NewNotificationRepository(db, s.log))

	s.Stack = Stack{
		DB: db,
		Auth: services.NewAuthService(s.log, factory, users, sessions, audits,
			auth.NewPasswordHasher(1024, 1, 1),
			auth.NewTokenIssuer("e2e-secret-e2e-secret-e2e-secret", "messenger-e2e"),
			sessionTTL),
		Users:         services.NewUserService(s.log, s.Clock, users),
		Chats:         services.NewChatService(s.log, factory, repositories.NewChatRepository(db, s.log), users, media, notifications),
		Media:         services.NewMediaService(s.log, factory, media),
		Notifications: notifications,
		Sweeper:       workers.NewSessionSweeper(s.log, s.Clock, sessions, time.Minute),
		Audits:        audits,
	}
}

// Reopen closes the store and builds a new stack on it.
func (s *BaseSuite) Reopen() {
	s.Require().NoError(s.Stack.DB.Close())
	s.Stack.DB = nil
	s.Open()
}

// Step runs fn as a named subtest with a header in the test log.
func (s *BaseSuite) Step(name string, fn func()) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
	s.Run(name, fn)
}

// Dump logs v as indented JSON when E2E_DEBUG_JSON is enabled.
func (s *BaseSuite) Dump(label string, v any) {
	if !s.Config.DebugJSON {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	s.Require().NoError(err)
	s.T().Logf("%s:\n%s", label, data)
}

// Register creates an account with a password accepted by registration.
func (s *BaseSuite) Register(username string) *domain.User {
	user, err := s.Stack.Auth.Register(username, Password)
	s.Require().NoError(err)
	return user
}

const Password = "Correct-Horse-42"

func ids(users ...*domain.User) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}
