package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DelayScheduler runs callbacks after a fixed delay. It is the timer
// abstraction behind delayed message publication. A pending callback is
// lost on Stop, matching a broker's fire-and-forget visibility delay.
type DelayScheduler struct {
	clock  Clock
	logger *zap.Logger
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending map[*pendingCallback]struct{}
}

type pendingCallback struct {
	timer Timer
}

// NewDelayScheduler creates a scheduler on the given clock
func NewDelayScheduler(clock Clock, logger *zap.Logger) *DelayScheduler {
	return &DelayScheduler{
		clock:   clock,
		logger:  logger,
		pending: make(map[*pendingCallback]struct{}),
	}
}

// Schedule runs fn once the delay has elapsed. fn receives a background
// context: the originating request is long gone by the time it fires.
func (s *DelayScheduler) Schedule(delay time.Duration, fn func(ctx context.Context)) {
	s.wg.Add(1)

	// The timer is armed under s.mu so the callback, which removes the
	// entry first, cannot run before the entry exists.
	s.mu.Lock()
	p := &pendingCallback{}
	p.timer = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.pending, p)
		s.mu.Unlock()

		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("scheduled callback panicked", zap.Any("panic", r))
			}
		}()
		fn(context.Background())
	})
	s.pending[p] = struct{}{}
	s.mu.Unlock()

	s.logger.Debug("callback scheduled", zap.Duration("delay", delay))
}

// Wait blocks until every scheduled callback has run. Used by tests
// draining a ManualClock after an Advance.
func (s *DelayScheduler) Wait() {
	s.wg.Wait()
}

// Stop discards every callback whose delay has not elapsed and waits for
// callbacks already running. Waiting is bounded by ctx.
func (s *DelayScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	for p := range s.pending {
		if p.timer.Stop() {
			s.wg.Done()
		}
		delete(s.pending, p)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
