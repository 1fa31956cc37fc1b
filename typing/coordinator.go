// Package typing tracks short-lived "user is typing" claims for one room.
// Local and remote typists share the same state machine, so both expire
// identically.
package typing

import (
	"log/slog"
	"sync"
	"time"

	"chat-sync/domain"
	"chat-sync/domain/event"

	"golang.org/x/time/rate"
)

// Broadcaster sends a typing signal to the room subscribers.
type Broadcaster func(sig event.TypingSignal) error

// Coordinator keeps at most one live timer per identity. A repeated start
// refreshes the timer instead of stacking a second one; an explicit stop or
// the timeout removes the claim.
type Coordinator struct {
	mu        sync.Mutex
	room      domain.RoomID
	timeout   time.Duration
	now       func() time.Time
	log       *slog.Logger
	claims    map[string]domain.TypingClaim
	timers    map[string]*time.Timer
	broadcast Broadcaster
	limiter   *rate.Limiter
}

func NewCoordinator(room domain.RoomID, timeout time.Duration, log *slog.Logger) *Coordinator {
	if timeout <= 0 {
		timeout = domain.DefaultTypingTimeout
	}
	return &Coordinator{
		room:    room,
		timeout: timeout,
		now:     time.Now,
		log:     log,
		claims:  make(map[string]domain.TypingClaim),
		timers:  make(map[string]*time.Timer),
		// One outbound start signal per second is enough for remote peers;
		// the local timer is still refreshed on every keystroke.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// WithBroadcast wires the outbound side. Without it the coordinator only
// tracks claims locally.
func (c *Coordinator) WithBroadcast(fn Broadcaster) *Coordinator {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.broadcast = fn
	return c
}

// WithClock overrides the time source, for tests.
func (c *Coordinator) WithClock(now func() time.Time) *Coordinator {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// StartTyping records a local claim and announces it to the room. Repeated
// calls refresh the expiry timer; the outbound signal is rate-limited so a
// burst of keystrokes does not flood the transport.
func (c *Coordinator) StartTyping(id domain.Identity) {
	c.mu.Lock()
	at := c.now()
	c.claimLocked(id, at)
	fn := c.broadcast
	allowed := fn != nil && c.limiter.Allow()
	c.mu.Unlock()

	if allowed {
		c.send(fn, event.TypingSignal{Author: id, Room: c.room, Kind: event.TypingStart, At: at})
	}
}

// StopTyping removes the local claim and announces an explicit stop signal.
func (c *Coordinator) StopTyping(id domain.Identity) {
	c.mu.Lock()
	c.dropLocked(id.Key())
	fn := c.broadcast
	at := c.now()
	c.mu.Unlock()

	if fn != nil {
		c.send(fn, event.TypingSignal{Author: id, Room: c.room, Kind: event.TypingStop, At: at})
	}
}

// Observe feeds a remote typing signal into the same state machine.
func (c *Coordinator) Observe(sig event.TypingSignal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch sig.Kind {
	case event.TypingStart:
		c.claimLocked(sig.Author, c.now())
	case event.TypingStop:
		c.dropLocked(sig.Author.Key())
	}
}

// CurrentTypers returns the unexpired claimants, recomputed on read so a
// stale claim disappears even between timer ticks.
func (c *Coordinator) CurrentTypers() []domain.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	var out []domain.Identity
	for _, claim := range c.claims {
		if !claim.Expired(now, c.timeout) {
			out = append(out, claim.Identity)
		}
	}
	return out
}

// StopAll cancels every pending timer. Called on room teardown.
func (c *Coordinator) StopAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, timer := range c.timers {
		timer.Stop()
		delete(c.timers, key)
	}
	c.claims = make(map[string]domain.TypingClaim)
}

func (c *Coordinator) claimLocked(id domain.Identity, at time.Time) {
	key := id.Key()
	if key == "" {
		return
	}
	c.claims[key] = domain.TypingClaim{Identity: id, Room: c.room, At: at}

	if timer, ok := c.timers[key]; ok {
		// Refresh, never stack a second timer for the same identity.
		timer.Reset(c.timeout)
		return
	}
	c.timers[key] = time.AfterFunc(c.timeout, func() {
		c.expire(key)
	})
}

func (c *Coordinator) dropLocked(key string) {
	if timer, ok := c.timers[key]; ok {
		timer.Stop()
		delete(c.timers, key)
	}
	delete(c.claims, key)
}

// expire runs on the timer goroutine. A claim refreshed after the timer
// fired but before the lock was taken is kept.
func (c *Coordinator) expire(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	claim, ok := c.claims[key]
	if !ok {
		delete(c.timers, key)
		return
	}
	if claim.Expired(c.now(), c.timeout) {
		c.dropLocked(key)
	}
}

func (c *Coordinator) send(fn Broadcaster, sig event.TypingSignal) {
	if err := fn(sig); err != nil {
		c.log.Debug("Typing signal not sent", "room", c.room, "error", err)
	}
}
