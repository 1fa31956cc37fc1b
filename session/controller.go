// Package session owns the connection lifecycle of rooms and the tab set
// multiplexing them. Each room controller is a small actor with its own
// mailbox; transport callbacks, timers and UI calls never race inside one
// room.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/errors"
	"chat-sync/presence"
	"chat-sync/timeline"
	"chat-sync/typing"

	"github.com/google/uuid"
)

const mailboxSize = 64

// EntryNotifier observes every live entry accepted by a room, used for
// unread counters and scroll decisions.
type EntryNotifier func(room domain.RoomID, e domain.ChatEntry)

type message any

type connectMsg struct{}
type disconnectMsg struct{}
type eventMsg struct{ evt event.DomainEvent }
type presenceMsg struct{ snap event.PresenceSnapshot }
type statusMsg struct{ status domain.ConnectionStatus }
type historyMsg struct {
	entries []domain.ChatEntry
	err     error
}

// Controller owns the subscribe lifecycle of exactly one room and is the
// only writer of its status. Reconnects replay the join side effects
// (presence track), because the transport does not retain presence across
// a dropped link.
type Controller struct {
	room      domain.RoomID
	self      domain.Identity
	transport contract.ITransport
	history   contract.IHistoryLoader
	registry  *presence.Registry
	timeline  *timeline.Timeline
	typing    *typing.Coordinator
	sink      contract.EventSink
	notify    EntryNotifier
	log       *slog.Logger

	historyLimit int

	mu            sync.RWMutex
	status        domain.ConnectionStatus
	sub           contract.ISubscription
	historyLoaded bool
	wantConnected bool
	closed        bool
	done          chan struct{}

	mailbox chan message
}

func NewController(
	log *slog.Logger,
	transport contract.ITransport,
	history contract.IHistoryLoader,
	registry *presence.Registry,
	room domain.RoomID,
	self domain.Identity,
	historyLimit int,
) *Controller {
	c := &Controller{
		room:         room,
		self:         self,
		transport:    transport,
		history:      history,
		registry:     registry,
		timeline:     timeline.NewTimeline(room),
		log:          log,
		historyLimit: historyLimit,
		status:       domain.StatusIdle,
		mailbox:      make(chan message, mailboxSize),
		done:         make(chan struct{}),
	}
	c.typing = typing.NewCoordinator(room, domain.DefaultTypingTimeout, log).
		WithBroadcast(c.broadcastTyping)
	return c
}

// WithSink adds a consumer persisting live entries as they arrive.
func (c *Controller) WithSink(sink contract.EventSink) *Controller {
	c.sink = sink
	return c
}

// WithNotifier adds the per-entry observer used by the multiplexer.
func (c *Controller) WithNotifier(fn EntryNotifier) *Controller {
	c.notify = fn
	return c
}

func (c *Controller) Room() domain.RoomID          { return c.room }
func (c *Controller) Timeline() *timeline.Timeline { return c.timeline }
func (c *Controller) Typing() *typing.Coordinator  { return c.typing }

// Status returns the current connection status of the room.
func (c *Controller) Status() domain.ConnectionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Connect asks the controller to subscribe its room. Idempotent: calling
// it while already connecting or connected is a no-op.
func (c *Controller) Connect() {
	c.mu.Lock()
	c.wantConnected = true
	c.mu.Unlock()
	c.enqueue(connectMsg{})
}

// Disconnect unsubscribes the room, resets the status to idle and cancels
// pending typing timers. The actor loop terminates.
func (c *Controller) Disconnect() {
	c.mu.Lock()
	c.wantConnected = false
	c.mu.Unlock()
	c.enqueue(disconnectMsg{})
}

// Send broadcasts a chat entry authored by the local user. It is rejected
// while the room is not connected; the caller disables input rather than
// queue sends. A failure during a status race surfaces as "not sent",
// there is no hidden retry.
func (c *Controller) Send(ctx context.Context, content string) (domain.ChatEntry, error) {
	if strings.TrimSpace(content) == "" {
		return domain.ChatEntry{}, errors.ErrEmptyContent
	}
	if c.Status() != domain.StatusConnected {
		return domain.ChatEntry{}, errors.ErrNotConnected
	}

	entry := domain.ChatEntry{
		ID:        uuid.NewString(),
		Room:      c.room,
		Author:    c.self,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Origin:    domain.OriginLive,
	}
	if err := c.transport.Broadcast(ctx, c.room, event.EntryBroadcast{Entry: entry}); err != nil {
		return domain.ChatEntry{}, fmt.Errorf("send to %s failed: %w", c.room, err)
	}
	// The broadcast echo is the confirmation; the entry lands in the
	// timeline through the subscription like everyone else's.
	return entry, nil
}

// Run is the actor loop. All state transitions happen here, so two
// callbacks for the same room can interleave in arrival order but never
// run concurrently.
func (c *Controller) Run(ctx context.Context) error {
	c.rearm()
	defer c.teardown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-c.mailbox:
			switch m := msg.(type) {
			case connectMsg:
				c.handleConnect(ctx)
			case disconnectMsg:
				return nil
			case statusMsg:
				c.handleStatus(ctx, m.status)
			case eventMsg:
				c.handleEvent(ctx, m.evt)
			case presenceMsg:
				c.registry.Reconcile(m.snap)
			case historyMsg:
				c.handleHistory(m)
			}
		}
	}
}

// enqueue drops the message if the room was already torn down. A delivery
// racing a closed tab is ignored, never a crash.
func (c *Controller) enqueue(msg message) {
	c.mu.RLock()
	done := c.done
	c.mu.RUnlock()
	select {
	case <-done:
	case c.mailbox <- msg:
	}
}

// rearm resets the per-run state. The previous run's teardown closed done,
// which drops every enqueue; a supervised restart must re-open the gate
// and re-drive the connect the room was holding before the crash,
// otherwise the restarted actor is a zombie that drains nothing.
func (c *Controller) rearm() {
	c.mu.Lock()
	if !c.closed {
		c.mu.Unlock()
		return
	}
	// Messages queued before the crash belong to the unsubscribed link.
	for len(c.mailbox) > 0 {
		<-c.mailbox
	}
	c.done = make(chan struct{})
	c.closed = false
	reconnect := c.wantConnected
	c.mu.Unlock()

	if reconnect {
		c.enqueue(connectMsg{})
	}
}

func (c *Controller) teardown() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.done)
	}
	sub := c.sub
	c.sub = nil
	c.status = domain.StatusIdle
	c.mu.Unlock()

	if sub != nil {
		if err := sub.Unsubscribe(); err != nil {
			c.log.Debug("Unsubscribe on teardown", "room", c.room, "error", err)
		}
	}
	c.typing.StopAll()
}

func (c *Controller) handleConnect(ctx context.Context) {
	c.mu.RLock()
	current := c.status
	subscribed := c.sub != nil
	c.mu.RUnlock()
	if subscribed && (current == domain.StatusConnecting || current == domain.StatusConnected) {
		return
	}
	c.setStatus(domain.StatusConnecting)

	sub, err := c.transport.Subscribe(ctx, c.room, contract.Callbacks{
		OnEvent:        func(e event.DomainEvent) { c.enqueue(eventMsg{evt: e}) },
		OnPresenceSync: func(snap event.PresenceSnapshot) { c.enqueue(presenceMsg{snap: snap}) },
		OnStatusChange: func(status domain.ConnectionStatus) { c.enqueue(statusMsg{status: status}) },
	})
	if err != nil {
		c.log.Warn("Subscribe failed", "room", c.room, "error", err)
		c.setStatus(domain.StatusError)
		return
	}

	c.mu.Lock()
	old := c.sub
	c.sub = sub
	c.mu.Unlock()
	if old != nil {
		// A reconnect after an error replaces the dead handle.
		if err := old.Unsubscribe(); err != nil {
			c.log.Debug("Unsubscribe stale handle", "room", c.room, "error", err)
		}
	}
}

// handleStatus reflects the transport status truthfully and replays the
// join side effects on every transition into connected: the transport
// forgets tracked presence across a reconnect.
func (c *Controller) handleStatus(ctx context.Context, status domain.ConnectionStatus) {
	previous := c.Status()
	c.setStatus(status)

	if status != domain.StatusConnected || previous == domain.StatusConnected {
		return
	}

	c.announcePresence(ctx)

	c.mu.Lock()
	loaded := c.historyLoaded
	c.historyLoaded = true
	c.mu.Unlock()
	if loaded {
		return
	}
	// History is consumed once at room-open time, off the actor loop.
	go func() {
		entries, err := c.history.LoadHistory(ctx, c.room, c.historyLimit)
		c.enqueue(historyMsg{entries: entries, err: err})
	}()
}

func (c *Controller) handleEvent(ctx context.Context, evt event.DomainEvent) {
	switch e := evt.(type) {
	case event.EntryBroadcast:
		c.timeline.Append(e.Entry)
		if c.sink != nil {
			if err := c.sink.Consume(ctx, e); err != nil {
				c.log.Warn("Entry sink failed", "room", c.room, "error", err)
			}
		}
		if c.notify != nil {
			c.notify(c.room, e.Entry)
		}
	case event.TypingSignal:
		// Own signals echo back through the room; only remote claims count.
		if e.Author.Key() == c.self.Key() {
			return
		}
		c.typing.Observe(e)
	}
}

func (c *Controller) handleHistory(m historyMsg) {
	if m.err != nil {
		c.log.Warn("History load failed", "room", c.room, "error", m.err)
		return
	}
	c.timeline.LoadPersisted(m.entries)
}

func (c *Controller) announcePresence(ctx context.Context) {
	meta := event.PresenceMeta{
		Username:     c.self.Username,
		DisplayName:  c.self.DisplayName,
		Avatar:       c.self.Avatar,
		Role:         c.self.Role,
		LastActiveAt: time.Now().UTC(),
	}
	if err := c.transport.TrackPresence(ctx, meta); err != nil {
		c.log.Warn("Presence track failed", "room", c.room, "error", err)
	}
}

func (c *Controller) broadcastTyping(sig event.TypingSignal) error {
	if c.Status() != domain.StatusConnected {
		return errors.ErrNotConnected
	}
	return c.transport.Broadcast(context.Background(), c.room, sig)
}

func (c *Controller) setStatus(status domain.ConnectionStatus) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}
