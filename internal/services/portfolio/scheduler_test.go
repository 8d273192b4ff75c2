package portfolio

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/priyanshps/fundtrack/internal/common"
)

func TestScheduler_EnsureIsIdempotent(t *testing.T) {
	s := NewScheduler(time.Hour, 0, common.NewSilentLogger())
	defer s.Stop()

	run := func(ctx context.Context) {}

	if !s.Ensure("u1", run) {
		t.Error("first Ensure should start a job")
	}
	if s.Ensure("u1", run) {
		t.Error("second Ensure for the same user should be a no-op")
	}
	if got := s.Active(); got != 1 {
		t.Errorf("Active() = %d, want 1", got)
	}
}

func TestScheduler_SeparateUsersSeparateJobs(t *testing.T) {
	s := NewScheduler(time.Hour, 0, common.NewSilentLogger())
	defer s.Stop()

	run := func(ctx context.Context) {}
	s.Ensure("u1", run)
	s.Ensure("u2", run)

	if got := s.Active(); got != 2 {
		t.Errorf("Active() = %d, want 2", got)
	}
}

func TestScheduler_TickInvokesRun(t *testing.T) {
	s := NewScheduler(10*time.Millisecond, 0, common.NewSilentLogger())
	defer s.Stop()

	var calls atomic.Int32
	s.Ensure("u1", func(ctx context.Context) {
		calls.Add(1)
	})

	deadline := time.After(2 * time.Second)
	for calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("run invoked %d times, want at least 2", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestScheduler_IdleTimeoutCancelsJob(t *testing.T) {
	s := NewScheduler(10*time.Millisecond, 20*time.Millisecond, common.NewSilentLogger())
	defer s.Stop()

	var calls atomic.Int32
	s.Ensure("u1", func(ctx context.Context) {
		calls.Add(1)
	})

	deadline := time.After(2 * time.Second)
	for s.Active() > 0 {
		select {
		case <-deadline:
			t.Fatal("idle job was never cancelled")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// The job loop has exited; the run count must not grow anymore.
	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	if got := calls.Load(); got != settled {
		t.Errorf("run invoked after idle cancellation: %d -> %d", settled, got)
	}
}

func TestScheduler_StopClearsJobs(t *testing.T) {
	s := NewScheduler(time.Hour, 0, common.NewSilentLogger())

	run := func(ctx context.Context) {}
	s.Ensure("u1", run)
	s.Ensure("u2", run)

	s.Stop()

	if got := s.Active(); got != 0 {
		t.Errorf("Active() = %d after Stop, want 0", got)
	}

	// A user can re-register after a stop.
	if !s.Ensure("u1", run) {
		t.Error("Ensure after Stop should start a fresh job")
	}
	s.Stop()
}
