package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDelayScheduler_Schedule(t *testing.T) {
	t.Run("does not fire before the delay elapses", func(t *testing.T) {
		clock := NewManualClock(time.Unix(0, 0))
		s := NewDelayScheduler(clock, zap.NewNop())

		var fired atomic.Int32
		s.Schedule(10*time.Second, func(context.Context) { fired.Add(1) })

		clock.Advance(9 * time.Second)
		assert.Equal(t, int32(0), fired.Load())

		clock.Advance(time.Second)
		s.Wait()
		assert.Equal(t, int32(1), fired.Load())
	})

	t.Run("fires callbacks in deadline order", func(t *testing.T) {
		clock := NewManualClock(time.Unix(0, 0))
		s := NewDelayScheduler(clock, zap.NewNop())

		var order []int
		s.Schedule(3*time.Second, func(context.Context) { order = append(order, 3) })
		s.Schedule(1*time.Second, func(context.Context) { order = append(order, 1) })
		s.Schedule(2*time.Second, func(context.Context) { order = append(order, 2) })

		clock.Advance(5 * time.Second)
		s.Wait()
		assert.Equal(t, []int{1, 2, 3}, order)
	})

	t.Run("recovers from a panicking callback", func(t *testing.T) {
		clock := NewManualClock(time.Unix(0, 0))
		s := NewDelayScheduler(clock, zap.NewNop())

		var fired atomic.Int32
		s.Schedule(time.Second, func(context.Context) { panic("boom") })
		s.Schedule(2*time.Second, func(context.Context) { fired.Add(1) })

		clock.Advance(2 * time.Second)
		s.Wait()
		assert.Equal(t, int32(1), fired.Load())
	})
}

func TestDelayScheduler_Stop(t *testing.T) {
	t.Run("returns with an unfired callback still pending", func(t *testing.T) {
		clock := NewManualClock(time.Unix(0, 0))
		s := NewDelayScheduler(clock, zap.NewNop())

		var fired atomic.Int32
		s.Schedule(10*time.Second, func(context.Context) { fired.Add(1) })

		assert.NoError(t, s.Stop(context.Background()))

		// The discarded callback never fires, even past its deadline.
		clock.Advance(10 * time.Second)
		assert.Equal(t, int32(0), fired.Load())
	})

	t.Run("bounds waiting for a running callback by the context", func(t *testing.T) {
		clock := NewManualClock(time.Unix(0, 0))
		s := NewDelayScheduler(clock, zap.NewNop())

		started := make(chan struct{})
		release := make(chan struct{})
		s.Schedule(time.Second, func(context.Context) {
			close(started)
			<-release
		})

		go clock.Advance(time.Second)
		<-started

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, s.Stop(ctx), context.DeadlineExceeded)

		close(release)
		s.Wait()
	})

	t.Run("is safe to call twice", func(t *testing.T) {
		clock := NewManualClock(time.Unix(0, 0))
		s := NewDelayScheduler(clock, zap.NewNop())

		s.Schedule(time.Second, func(context.Context) {})
		assert.NoError(t, s.Stop(context.Background()))
		assert.NoError(t, s.Stop(context.Background()))
	})
}

func TestManualClock_Stop(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))

	var fired atomic.Int32
	timer := clock.AfterFunc(time.Second, func() { fired.Add(1) })
	assert.True(t, timer.Stop())

	clock.Advance(2 * time.Second)
	assert.Equal(t, int32(0), fired.Load())
	assert.False(t, timer.Stop())
}
