// Package notify fans proactive notifications out to speech, live
// subscribers, and an in-memory history readable over the HTTP API.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"aria/internal/logging"
	"aria/internal/ports"
)

// Kinds classify notifications for the front end.
const (
	KindReminder = "reminder"
	KindFocus    = "focus"
	KindHealth   = "health"
	KindBriefing = "briefing"
)

// Notification is one proactive message pushed to the user.
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// historySize bounds the retained notification ring.
const historySize = 100

// Center receives notifications and fans them out. Publish never
// blocks: slow subscribers are skipped, not waited on.
type Center struct {
	speech ports.Speech
	logger logging.Logger
	now    func() time.Time

	mu      sync.Mutex
	history []Notification
	subs    map[chan Notification]struct{}
}

// NewCenter creates a Center. speech may be nil for silent operation.
func NewCenter(speech ports.Speech, logger logging.Logger) *Center {
	return &Center{
		speech: speech,
		logger: logging.OrNop(logger),
		now:    time.Now,
		subs:   make(map[chan Notification]struct{}),
	}
}

// Publish assigns the notification an id and timestamp, speaks it,
// stores it, and pushes it to live subscribers.
func (c *Center) Publish(n Notification) Notification {
	n.ID = uuid.NewString()
	n.CreatedAt = c.now()

	if c.speech != nil && n.Body != "" {
		c.speech.Say(n.Body)
	}

	c.mu.Lock()
	c.history = append(c.history, n)
	if len(c.history) > historySize {
		c.history = c.history[len(c.history)-historySize:]
	}
	for ch := range c.subs {
		select {
		case ch <- n:
		default:
			c.logger.Warn("notify: dropping notification for slow subscriber")
		}
	}
	c.mu.Unlock()

	c.logger.Info("notify: %s: %s", n.Kind, n.Body)
	return n
}

// History returns the retained notifications, oldest first.
func (c *Center) History() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.history))
	copy(out, c.history)
	return out
}

// Subscribe registers a live feed. The returned cancel func must be
// called to release the subscription.
func (c *Center) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, 16)
	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subs[ch]; ok {
			delete(c.subs, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}
