package realize

import "github.com/pickypg/gradle/collection"

// Waiters reports how many callers are blocked on the running attempt of c.
func Waiters[T collection.Named](c *Collection[T]) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || c.State() != Realizing {
		return 0
	}

	return int(c.current.waiters.Load())
}

// GoroutineID exposes goroutineID to tests.
var GoroutineID = goroutineID
