package guidance

import (
	"sync"
	"time"
)

// Timer is the handle returned by an AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc arranges for f to run once d has elapsed.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Scheduler runs at most one pending task per key. Scheduling a key again
// replaces the pending task.
type Scheduler struct {
	after AfterFunc

	mu      sync.Mutex
	seq     uint64
	pending map[string]scheduled
	stopped bool
}

type scheduled struct {
	id    uint64
	timer Timer
}

// NewScheduler returns a Scheduler driven by after; nil uses time.AfterFunc.
func NewScheduler(after AfterFunc) *Scheduler {
	if after == nil {
		after = realAfterFunc
	}
	return &Scheduler{after: after, pending: make(map[string]scheduled)}
}

// Schedule runs fn after d unless key is scheduled again, cancelled, or the
// scheduler is stopped first.
func (s *Scheduler) Schedule(key string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
	}
	s.seq++
	id := s.seq
	s.pending[key] = scheduled{
		id:    id,
		timer: s.after(d, func() { s.fire(key, id, fn) }),
	}
}

func (s *Scheduler) fire(key string, id uint64, fn func()) {
	s.mu.Lock()
	p, ok := s.pending[key]
	if !ok || p.id != id || s.stopped {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.mu.Unlock()
	fn()
}

// Cancel drops the pending task for key and reports whether there was one.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[key]
	if ok {
		p.timer.Stop()
		delete(s.pending, key)
	}
	return ok
}

// Pending reports whether a task for key is waiting to run.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Stop cancels everything and rejects further scheduling.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for key, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, key)
	}
}
