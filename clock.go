package nebula

import "slices"

// TimerID identifies a scheduled timer. The zero value is never issued.
type TimerID uint64

// timer is one pending deferred callback keyed by virtual time.
type timer struct {
	id  TimerID
	at  float64
	seq uint64
	fn  func()
}

// Clock is a virtual millisecond clock with a cancellable timer queue.
// It advances only when the owner calls Advance, once per tick, so deferred
// work fires deterministically and never concurrently with a tick.
type Clock struct {
	now     float64
	nextID  TimerID
	nextSeq uint64
	pending []timer
}

// Now returns the current virtual time in milliseconds.
func (c *Clock) Now() float64 {
	return c.now
}

// After schedules fn to run once delayMs from now and returns its handle.
func (c *Clock) After(delayMs float64, fn func()) TimerID {
	c.nextID++
	c.nextSeq++
	c.pending = append(c.pending, timer{id: c.nextID, at: c.now + delayMs, seq: c.nextSeq, fn: fn})
	return c.nextID
}

// Cancel removes a pending timer. It reports whether the timer was still
// pending; cancelling a fired or unknown timer is a no-op.
func (c *Clock) Cancel(id TimerID) bool {
	if id == 0 {
		return false
	}
	for i := range c.pending {
		if c.pending[i].id == id {
			c.pending = slices.Delete(c.pending, i, i+1)
			return true
		}
	}
	return false
}

// Pending reports whether id is scheduled and has not fired yet.
func (c *Clock) Pending(id TimerID) bool {
	for i := range c.pending {
		if c.pending[i].id == id {
			return true
		}
	}
	return false
}

// Len returns the number of pending timers.
func (c *Clock) Len() int {
	return len(c.pending)
}

// Advance moves the clock forward by dtMs and runs every timer that became
// due, in deadline order (ties in scheduling order). Each callback sees Now
// equal to its own deadline. Timers scheduled by a callback with a deadline
// inside the advanced window also fire.
func (c *Clock) Advance(dtMs float64) {
	end := c.now
	if dtMs > 0 {
		end += dtMs
	}
	for {
		idx := -1
		for i := range c.pending {
			t := &c.pending[i]
			if t.at > end {
				continue
			}
			if idx < 0 || t.at < c.pending[idx].at ||
				(t.at == c.pending[idx].at && t.seq < c.pending[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			break
		}
		t := c.pending[idx]
		c.pending = slices.Delete(c.pending, idx, idx+1)
		c.now = max(c.now, t.at)
		t.fn()
	}
	c.now = end
}
