package state

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/letscook/cook-client/pkg/metrics"
)

const (
	refreshRunMetricName       = "Launchpad/RefreshRun"
	refreshCoalescedMetricName = "Launchpad/RefreshCoalesced"
)

type RefreshState uint8

const (
	StateIdle RefreshState = iota
	StateScheduled
	StateExecuting
)

func (s RefreshState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StateExecuting:
		return "executing"
	}
	return "unknown"
}

// RefreshFunc performs one refresh. Its context is cancelled when the
// scheduler is cancelled.
type RefreshFunc func(ctx context.Context) error

// RefreshScheduler runs a refresh at most once per interval, coalescing
// requests that arrive while a run is pending or in flight.
//
//	Idle --request--> Executing, or Scheduled within the interval of the last run
//	Scheduled --timer fires--> Executing
//	Executing --completes--> Idle
type RefreshScheduler struct {
	log      *logrus.Entry
	clock    clock.Clock
	interval time.Duration
	refresh  RefreshFunc

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	state     RefreshState
	hasRun    bool
	lastRun   time.Time
	timer     *clock.Timer
	cancelled bool
	idle      *sync.Cond
}

func NewRefreshScheduler(clk clock.Clock, interval time.Duration, refresh RefreshFunc) *RefreshScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &RefreshScheduler{
		log:      logrus.StandardLogger().WithField("type", "launchpad/state/scheduler"),
		clock:    clk,
		interval: interval,
		refresh:  refresh,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// Request asks for a refresh. It never blocks on the refresh itself.
func (s *RefreshScheduler) Request() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return
	}

	switch s.state {
	case StateScheduled, StateExecuting:
		metrics.RecordCount(s.ctx, refreshCoalescedMetricName, 1)
		return
	}

	if s.hasRun {
		if elapsed := s.clock.Since(s.lastRun); elapsed < s.interval {
			s.state = StateScheduled
			s.timer = s.clock.AfterFunc(s.interval-elapsed, s.fire)
			return
		}
	}

	s.state = StateExecuting
	go s.execute()
}

func (s *RefreshScheduler) fire() {
	s.mu.Lock()
	if s.cancelled || s.state != StateScheduled {
		s.mu.Unlock()
		return
	}
	s.state = StateExecuting
	s.timer = nil
	s.mu.Unlock()

	s.execute()
}

func (s *RefreshScheduler) execute() {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", r).Error("panic during refresh")
		}

		s.mu.Lock()
		s.state = StateIdle
		s.hasRun = true
		s.lastRun = s.clock.Now()
		s.idle.Broadcast()
		s.mu.Unlock()
	}()

	metrics.RecordCount(s.ctx, refreshRunMetricName, 1)

	if err := s.refresh(s.ctx); err != nil && s.ctx.Err() == nil {
		s.log.WithError(err).Warn("refresh failed")
	}
}

// Cancel stops any scheduled refresh and cancels the context of one in
// flight. Requests made after Cancel are ignored. It is idempotent.
func (s *RefreshScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return
	}
	s.cancelled = true
	s.cancel()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.state == StateScheduled {
		s.state = StateIdle
		s.idle.Broadcast()
	}
}

// State returns the current scheduler state.
func (s *RefreshScheduler) State() RefreshState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastRun returns when the last refresh completed.
func (s *RefreshScheduler) LastRun() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.hasRun
}

// WaitIdle blocks until no refresh is scheduled or executing. It must not be
// called from within a RefreshFunc.
func (s *RefreshScheduler) WaitIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.state != StateIdle {
		s.idle.Wait()
	}
}
