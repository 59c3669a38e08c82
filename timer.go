package polaroid

import (
	"cmp"
	"slices"
	"time"
)

// Scheduler is a cooperative one-shot timer queue driven by the game loop.
// Time only moves when Advance is called, so every callback runs on the
// loop goroutine between frames. Not safe for concurrent use.
type Scheduler struct {
	now     time.Duration
	timers  []*Timer
	nextSeq uint64
	dueBuf  []*Timer
}

// Timer is a pending call created by Scheduler.AfterFunc.
type Timer struct {
	deadline time.Duration
	seq      uint64
	fn       func()
	s        *Scheduler
	done     bool
}

// NewScheduler returns a scheduler whose clock starts at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	s.nextSeq++
	t := &Timer{deadline: s.now + d, seq: s.nextSeq, fn: fn, s: s}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by dt and runs every timer whose deadline
// has been reached, earliest first. Timers scheduled by a callback wait for
// the next Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	s.dueBuf = s.dueBuf[:0]
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.deadline <= s.now {
			s.dueBuf = append(s.dueBuf, t)
		} else {
			kept = append(kept, t)
		}
	}
	clear(s.timers[len(kept):])
	s.timers = kept

	slices.SortFunc(s.dueBuf, func(a, b *Timer) int {
		if c := cmp.Compare(a.deadline, b.deadline); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	for _, t := range s.dueBuf {
		// An earlier callback may have stopped this one.
		if t.done {
			continue
		}
		t.done = true
		t.fn()
	}
	clear(s.dueBuf)
}

// Deadline returns the scheduler time at which the timer fires.
func (t *Timer) Deadline() time.Duration {
	return t.deadline
}

// Stop cancels the timer. It reports whether the call prevented the timer
// from firing; false means it already fired or was already stopped.
func (t *Timer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	s := t.s
	for i, other := range s.timers {
		if other == t {
			s.timers = slices.Delete(s.timers, i, i+1)
			break
		}
	}
	return true
}
