package guidance

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeClock hands out timers that only fire when told to.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fireAll runs every timer created so far, stopped or not, the way a real
// timer can fire just as it is being stopped.
func (c *fakeClock) fireAll() {
	c.mu.Lock()
	timers := append([]*fakeTimer(nil), c.timers...)
	c.timers = nil
	c.mu.Unlock()
	for _, t := range timers {
		t.f()
	}
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func TestScheduler_LastScheduleWins(t *testing.T) {
	clock := &fakeClock{}
	s := NewScheduler(clock.AfterFunc)

	var ran []string
	s.Schedule("q", time.Second, func() { ran = append(ran, "first") })
	s.Schedule("q", time.Second, func() { ran = append(ran, "second") })
	s.Schedule("other", time.Second, func() { ran = append(ran, "other") })

	assert.True(t, clock.timers[0].stopped)
	assert.True(t, s.Pending("q"))

	clock.fireAll()
	assert.Equal(t, []string{"second", "other"}, ran)
	assert.False(t, s.Pending("q"))
}

func TestScheduler_Cancel(t *testing.T) {
	clock := &fakeClock{}
	s := NewScheduler(clock.AfterFunc)

	ran := false
	s.Schedule("q", time.Second, func() { ran = true })
	assert.True(t, s.Cancel("q"))
	assert.False(t, s.Cancel("q"))

	clock.fireAll()
	assert.False(t, ran)
}

func TestScheduler_Stop(t *testing.T) {
	clock := &fakeClock{}
	s := NewScheduler(clock.AfterFunc)

	ran := 0
	s.Schedule("a", time.Second, func() { ran++ })
	s.Stop()
	s.Schedule("b", time.Second, func() { ran++ })

	assert.Equal(t, 1, clock.count())
	clock.fireAll()
	assert.Zero(t, ran)
	assert.False(t, s.Pending("a"))
}

func TestScheduler_RealTimer(t *testing.T) {
	s := NewScheduler(nil)
	done := make(chan struct{})
	s.Schedule("q", time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}
