package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/priyanshps/fundtrack/internal/common"
)

// Scheduler maintains at most one recurring refresh job per user. A job is
// registered on the user's first portfolio read and re-runs on a fixed
// interval until the user has been idle longer than the idle timeout or the
// scheduler is stopped.
type Scheduler struct {
	interval    time.Duration
	idleTimeout time.Duration
	logger      *common.Logger

	mu   sync.Mutex
	jobs map[string]*refreshJob
}

type refreshJob struct {
	cancel   context.CancelFunc
	lastSeen time.Time
}

// NewScheduler creates a Scheduler. An idleTimeout of 0 disables idle
// cancellation; jobs then run for the life of the process.
func NewScheduler(interval, idleTimeout time.Duration, logger *common.Logger) *Scheduler {
	return &Scheduler{
		interval:    interval,
		idleTimeout: idleTimeout,
		logger:      logger,
		jobs:        make(map[string]*refreshJob),
	}
}

// Ensure registers a recurring job for the user if none exists and returns
// true when a new job was started. Re-registration is a no-op that only
// refreshes the user's last-seen time for idle tracking.
func (s *Scheduler) Ensure(userID string, run func(ctx context.Context)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[userID]; ok {
		job.lastSeen = time.Now()
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.jobs[userID] = &refreshJob{cancel: cancel, lastSeen: time.Now()}
	go s.loop(ctx, userID, run)

	s.logger.Debug().Str("user_id", userID).Msg("Refresh job registered")
	return true
}

func (s *Scheduler) loop(ctx context.Context, userID string, run func(ctx context.Context)) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.expireIfIdle(userID) {
				s.logger.Info().Str("user_id", userID).Msg("Refresh job cancelled after idle timeout")
				return
			}
			run(ctx)
		}
	}
}

// expireIfIdle removes and cancels the user's job when the idle timeout has
// elapsed since the last Ensure. Returns true when the job was removed.
func (s *Scheduler) expireIfIdle(userID string) bool {
	if s.idleTimeout <= 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[userID]
	if !ok {
		return true
	}
	if time.Since(job.lastSeen) < s.idleTimeout {
		return false
	}
	delete(s.jobs, userID)
	job.cancel()
	return true
}

// Active returns the number of registered recurring jobs.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Stop cancels all recurring jobs. Used on process shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, job := range s.jobs {
		job.cancel()
		delete(s.jobs, userID)
	}
	s.logger.Info().Msg("Refresh scheduler stopped")
}
