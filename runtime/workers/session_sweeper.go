package workers

import (
	"context"
	"log/slog"
	"messenger/domain"
	"messenger/observability"
	"messenger/repositories"
	"time"
)

// SessionSweeper deactivates expired sessions nobody is using anymore.
// It relies on Session.Validate for the expiry rule, so a sweep and a
// lazy check on use always agree.
type SessionSweeper struct {
	log      *slog.Logger
	clock    domain.Clock
	sessions repositories.ISessionRepository
	interval time.Duration
}

func NewSessionSweeper(
	log *slog.Logger,
	clock domain.Clock,
	sessions repositories.ISessionRepository,
	interval time.Duration,
) *SessionSweeper {
	return &SessionSweeper{log: log, clock: clock, sessions: sessions, interval: interval}
}

func (w *SessionSweeper) Run(ctx context.Context) error {
	w.log.Info("Starting session sweeper", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.Sweep(); err != nil {
				return err
			}
		}
	}
}

// Sweep runs one pass and returns how many sessions were deactivated.
func (w *SessionSweeper) Sweep() (int, error) {
	active, err := w.sessions.ListActiveSessions()
	if err != nil {
		return 0, err
	}

	now := w.clock.Now()
	expired := 0
	for _, session := range active {
		if session.Validate(now) {
			continue
		}
		if err = w.sessions.SaveSession(session); err != nil {
			return expired, err
		}
		expired++
		observability.SessionsClosed.WithLabelValues(observability.TriggerSweep).Inc()
	}

	observability.ActiveSessions.Set(float64(len(active) - expired))
	if expired > 0 {
		w.log.Info("Expired sessions swept", "count", expired, "scanned", len(active))
	}
	return expired, nil
}
