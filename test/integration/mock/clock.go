package mock

import (
	"sync"
	"time"
)

// Clock is a settable clock so scenarios can control what "now" means for
// due-date checks and rule stats timestamps.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock starting at the real current time.
func NewClock() *Clock {
	return &Clock{current: time.Now().UTC()}
}

// Set freezes the clock at the given time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Now returns the frozen time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
