package chat

import (
	"fmt"
	"sync"
	"time"
)

// CooldownError reports that a command came in before the cooldown expired.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("please wait another %d seconds", int(e.Remaining/time.Second))
}

// Cooldown is the single global delay between two moose shown in chat.
type Cooldown struct {
	period time.Duration

	mu   sync.Mutex
	last time.Time
	prev time.Time
	now  func() time.Time
}

// NewCooldown returns a cooldown that has never been marked.
func NewCooldown(period time.Duration) *Cooldown {
	return &Cooldown{period: period, now: time.Now}
}

// Allow reports whether the cooldown has expired. If not, it returns the
// remaining time rounded up to whole seconds.
func (c *Cooldown) Allow() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.remaining()
}

// TryMark starts a new cooldown period if the previous one has expired.
// Otherwise it returns the remaining time like Allow. Checking and marking
// happen under one lock, so of several concurrent callers only one wins.
func (c *Cooldown) TryMark() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wait, ok := c.remaining(); !ok {
		return wait, false
	}
	c.prev = c.last
	c.last = c.now()
	return 0, true
}

// Unmark withdraws the period started by the last successful TryMark, for
// a request that ended up showing nothing.
func (c *Cooldown) Unmark() {
	c.mu.Lock()
	c.last = c.prev
	c.mu.Unlock()
}

func (c *Cooldown) remaining() (time.Duration, bool) {
	if c.last.IsZero() {
		return 0, true
	}
	remaining := c.period - c.now().Sub(c.last)
	if remaining <= 0 {
		return 0, true
	}
	return remaining.Truncate(time.Second) + roundUp(remaining), false
}

// Mark starts a new cooldown period.
func (c *Cooldown) Mark() {
	c.mu.Lock()
	c.last = c.now()
	c.mu.Unlock()
}

func roundUp(d time.Duration) time.Duration {
	if d%time.Second == 0 {
		return 0
	}
	return time.Second
}
