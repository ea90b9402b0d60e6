package cron

import (
	"context"
	"log/slog"
	"time"
)

// SessionPurgeInterval is how often expired sessions are removed.
const SessionPurgeInterval = 15 * time.Minute

// ExpiredSessionDeleter removes expired sessions and reports how many.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type SessionJobs struct {
	sessions ExpiredSessionDeleter
	onPurged func(n int64)
}

// NewSessionJobs builds the session cleanup job. onPurged may be nil.
func NewSessionJobs(sessions ExpiredSessionDeleter, onPurged func(n int64)) *SessionJobs {
	return &SessionJobs{sessions: sessions, onPurged: onPurged}
}

// PurgeExpiredSessions deletes sessions past their expiry.
func (j *SessionJobs) PurgeExpiredSessions(ctx context.Context) error {
	removed, err := j.sessions.DeleteExpired(ctx)
	if err != nil {
		return err
	}

	if removed > 0 {
		slog.Info("Expired sessions purged", "count", removed)
	}
	if j.onPurged != nil {
		j.onPurged(removed)
	}
	return nil
}

// Register adds the cleanup job to s.
func (j *SessionJobs) Register(s *Scheduler) {
	s.AddJob("purge_expired_sessions", SessionPurgeInterval, j.PurgeExpiredSessions)
}
