package overlay

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

type timer struct {
	id  TimerID
	due time.Duration
	fn  func()
}

// Scheduler is a virtual-time timer queue driven by the game loop. Nothing
// fires until Advance is called, which keeps it deterministic in tests and
// confined to the update goroutine.
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	timers []timer
}

// NewScheduler creates an empty scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time elapsed so far
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending returns the number of timers not yet fired or cancelled
func (s *Scheduler) Pending() int { return len(s.timers) }

// After schedules fn to run once d has elapsed
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	s.nextID++
	s.timers = append(s.timers, timer{id: s.nextID, due: s.now + d, fn: fn})
	return s.nextID
}

// Cancel removes a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves time forward by dt and runs every timer that came due, in
// due order. Timers scheduled by callbacks fire in the same call if they are
// already due.
func (s *Scheduler) Advance(dt time.Duration) {
	end := s.now + dt
	for {
		i := s.next(end)
		if i < 0 {
			break
		}
		t := s.timers[i]
		s.timers = append(s.timers[:i], s.timers[i+1:]...)
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
	}
	s.now = end
}

// next returns the index of the earliest timer due by end, or -1
func (s *Scheduler) next(end time.Duration) int {
	if len(s.timers) == 0 {
		return -1
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due != s.timers[j].due {
			return s.timers[i].due < s.timers[j].due
		}
		return s.timers[i].id < s.timers[j].id
	})
	if s.timers[0].due > end {
		return -1
	}
	return 0
}
