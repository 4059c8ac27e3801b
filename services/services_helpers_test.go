package services

import (
	"log/slog"
	"messenger/auth"
	"messenger/domain"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type sequentialIDs struct {
	next byte
}

func (g *sequentialIDs) NewID() uuid.UUID {
	g.next++
	var id uuid.UUID
	id[15] = g.next
	return id
}

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestFactory() (domain.Factory, *fixedClock) {
	clock := &fixedClock{now: t0}
	return domain.NewFactory(clock, &sequentialIDs{}), clock
}

func testLogger() *slog.Logger {
	return logs.GetLoggerFromLevel(slog.LevelDebug)
}

// cheapHasher keeps argon2id but with parameters small enough for unit tests.
func cheapHasher() auth.PasswordHasher {
	return auth.NewPasswordHasher(1024, 1, 1)
}
