package telegram

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleAfter is how long a chat can stay quiet before its limiter is dropped
const idleAfter = time.Hour

// chatLimiter keeps one token bucket per chat
type chatLimiter struct {
	mu    sync.Mutex
	every rate.Limit
	burst int
	chats map[int64]*chatEntry
	now   func() time.Time
}

type chatEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// newChatLimiter allows perMinute questions per chat with the given burst
// perMinute <= 0 disables throttling
func newChatLimiter(perMinute, burst int) *chatLimiter {
	if burst <= 0 {
		burst = 1
	}
	l := rate.Inf
	if perMinute > 0 {
		l = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &chatLimiter{every: l, burst: burst, chats: map[int64]*chatEntry{}, now: time.Now}
}

// Allow spends one token for chat
func (c *chatLimiter) Allow(chat int64) bool {
	now := c.now()
	c.mu.Lock()
	e, ok := c.chats[chat]
	if !ok {
		e = &chatEntry{lim: rate.NewLimiter(c.every, c.burst)}
		c.chats[chat] = e
	}
	e.seen = now
	c.mu.Unlock()
	return e.lim.AllowN(now, 1)
}

// sweep forgets chats idle for longer than idleAfter
func (c *chatLimiter) sweep() int {
	cut := c.now().Add(-idleAfter)
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id, e := range c.chats {
		if e.seen.Before(cut) {
			delete(c.chats, id)
			n++
		}
	}
	return n
}

func (c *chatLimiter) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.chats)
}
