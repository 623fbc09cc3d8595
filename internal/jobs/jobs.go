package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	sessionSweepSchedule = "@every 1h"
	limiterPruneSchedule = "@every 10m"
	limiterIdle          = 30 * time.Minute
	jobTimeout           = time.Minute
)

type RequestExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type SessionSweeper interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type LimiterPruner interface {
	Prune(idle time.Duration) int
}

// Jobs holds the periodic maintenance work. Nil fields are skipped.
type Jobs struct {
	Requests RequestExpirer
	Sessions SessionSweeper
	Limiter  LimiterPruner
	Now      func() time.Time
}

func (j *Jobs) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// ExpireRequests marks emergency requests past expires_at as expired. Reads
// already hide them; this keeps the stored status honest.
func (j *Jobs) ExpireRequests() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.Requests.ExpireStale(ctx, j.now())
	if err != nil {
		logrus.WithError(err).Error("expiry sweep failed")
		return
	}
	if n > 0 {
		logrus.WithField("expired", n).Info("expired stale emergency requests")
	}
}

func (j *Jobs) SweepSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.Sessions.DeleteExpiredSessions(ctx, j.now())
	if err != nil {
		logrus.WithError(err).Error("session sweep failed")
		return
	}
	if n > 0 {
		logrus.WithField("deleted", n).Info("deleted expired sessions")
	}
}

func (j *Jobs) PruneLimiter() {
	if n := j.Limiter.Prune(limiterIdle); n > 0 {
		logrus.WithField("pruned", n).Debug("pruned idle rate limiter entries")
	}
}

// Start schedules every configured job and starts the scheduler. expirySchedule
// is any robfig/cron schedule, e.g. "@every 5m". Stop the returned cron on
// shutdown.
func Start(j *Jobs, expirySchedule string) (*cron.Cron, error) {
	logger := cron.PrintfLogger(logrus.StandardLogger())
	c := cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))

	type entry struct {
		name     string
		schedule string
		run      func()
		enabled  bool
	}
	entries := []entry{
		{"expire_requests", expirySchedule, j.ExpireRequests, j.Requests != nil},
		{"sweep_sessions", sessionSweepSchedule, j.SweepSessions, j.Sessions != nil},
		{"prune_limiter", limiterPruneSchedule, j.PruneLimiter, j.Limiter != nil},
	}
	for _, e := range entries {
		if !e.enabled {
			continue
		}
		if _, err := c.AddFunc(e.schedule, e.run); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", e.name, err)
		}
		logrus.WithFields(logrus.Fields{"job": e.name, "schedule": e.schedule}).Info("scheduled job")
	}

	c.Start()
	return c, nil
}
