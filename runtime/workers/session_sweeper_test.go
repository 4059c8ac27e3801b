package workers

import (
	"context"
	"errors"
	"log/slog"
	"messenger/domain"
	"messenger/mocks"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var sweepTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestSessionSweeper_Sweep(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockISessionRepository(ctrl)

	userID := uuid.New()
	// Given one session past its expiry, one at its exact expiry and one still valid
	expired := *domain.NewSession(uuid.New(), userID, "a", sweepTime.Add(-2*time.Hour), time.Hour)
	boundary := *domain.NewSession(uuid.New(), userID, "b", sweepTime.Add(-time.Hour), time.Hour)
	valid := *domain.NewSession(uuid.New(), userID, "c", sweepTime.Add(-time.Minute), time.Hour)

	repo.EXPECT().ListActiveSessions().Return([]domain.Session{expired, boundary, valid}, nil)

	var saved []domain.Session
	repo.EXPECT().
		SaveSession(gomock.Any()).
		DoAndReturn(func(s domain.Session) error {
			saved = append(saved, s)
			return nil
		}).
		Times(2)

	sweeper := NewSessionSweeper(log, fixedClock(sweepTime), repo, time.Minute)

	// When a sweep runs
	count, err := sweeper.Sweep()

	// Then only the expired ones are stored as inactive
	req.NoError(err)
	req.Equal(2, count)
	req.Len(saved, 2)
	req.Equal(expired.ID, saved[0].ID)
	req.Equal(boundary.ID, saved[1].ID)
	for _, s := range saved {
		req.False(s.IsActive)
	}
}

func TestSessionSweeper_SaveFailure(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockISessionRepository(ctrl)

	expired := *domain.NewSession(uuid.New(), uuid.New(), "a", sweepTime.Add(-2*time.Hour), time.Hour)
	repo.EXPECT().ListActiveSessions().Return([]domain.Session{expired}, nil)
	repo.EXPECT().SaveSession(gomock.Any()).Return(errors.New("read-only"))

	sweeper := NewSessionSweeper(log, fixedClock(sweepTime), repo, time.Minute)
	count, err := sweeper.Sweep()

	req.Error(err)
	req.Equal(0, count)
}

func TestSessionSweeper_RunStopsWithContext(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockISessionRepository(ctrl)

	repo.EXPECT().ListActiveSessions().Return(nil, nil).AnyTimes()

	sweeper := NewSessionSweeper(log, fixedClock(sweepTime), repo, 10*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := sweeper.Run(ctx)
	req.ErrorIs(err, context.DeadlineExceeded)
}
