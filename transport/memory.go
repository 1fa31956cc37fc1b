// Package transport ships the pub/sub adapters the session engine runs
// on: an in-process hub for tests and demos, and a websocket client for a
// hosted endpoint. Both satisfy the same contract: at-least-once delivery,
// no cross-room leakage, full presence snapshots on sync.
package transport

import (
	"context"
	"log/slog"
	"sync"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/errors"

	"github.com/google/uuid"
)

// Hub is the in-process broker. One hub plays the hosted service; each
// participant gets its own Client with an opaque connection key.
type Hub struct {
	mu       sync.Mutex
	log      *slog.Logger
	subs     map[domain.RoomID]map[*memorySub]struct{}
	presence []event.PresenceEntry
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:  log,
		subs: make(map[domain.RoomID]map[*memorySub]struct{}),
	}
}

// NewClient opens a connection to the hub. Every client carries its own
// transport-assigned connection key, so two clients for the same user
// model two tabs or devices.
func (h *Hub) NewClient() *Client {
	return &Client{hub: h, connKey: uuid.NewString()}
}

// SubscriberCount reports how many subscriptions a room currently has.
func (h *Hub) SubscriberCount(room domain.RoomID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[room])
}

// Snapshot returns the current presence state, for assertions.
func (h *Hub) Snapshot() event.PresenceSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries := make([]event.PresenceEntry, len(h.presence))
	copy(entries, h.presence)
	return event.PresenceSnapshot{Entries: entries}
}

// Client is one connection to the hub, implementing the transport
// contract for every room it subscribes.
type Client struct {
	hub     *Hub
	connKey string
	mu      sync.Mutex
	subs    []*memorySub
}

type memorySub struct {
	hub       *Hub
	client    *Client
	room      domain.RoomID
	cb        contract.Callbacks
	closed    bool
	presenceQ chan event.PresenceSnapshot
}

func (c *Client) ConnKey() string { return c.connKey }

// Subscribe registers the callbacks for a room. The delivered status and
// the initial presence sync arrive asynchronously, like a network
// transport would deliver them.
func (c *Client) Subscribe(_ context.Context, room domain.RoomID, cb contract.Callbacks) (contract.ISubscription, error) {
	sub := &memorySub{
		hub:       c.hub,
		client:    c,
		room:      room,
		cb:        cb,
		presenceQ: make(chan event.PresenceSnapshot, 1),
	}
	go sub.drainPresence()

	c.hub.mu.Lock()
	if c.hub.subs[room] == nil {
		c.hub.subs[room] = make(map[*memorySub]struct{})
	}
	c.hub.subs[room][sub] = struct{}{}
	sub.deliverPresence(snapshotLocked(c.hub.presence))
	c.hub.mu.Unlock()

	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()

	go func() {
		if cb.OnStatusChange != nil {
			cb.OnStatusChange(domain.StatusConnected)
		}
	}()
	return sub, nil
}

// Broadcast delivers the event to every current subscriber of the room,
// the sender included: the echo is the sender's confirmation.
func (c *Client) Broadcast(_ context.Context, room domain.RoomID, e event.DomainEvent) error {
	c.hub.mu.Lock()
	targets := make([]*memorySub, 0, len(c.hub.subs[room]))
	for sub := range c.hub.subs[room] {
		targets = append(targets, sub)
	}
	c.hub.mu.Unlock()

	for _, sub := range targets {
		if sub.cb.OnEvent != nil {
			sub.cb.OnEvent(e)
		}
	}
	return nil
}

// TrackPresence announces this connection's identity metadata. The entry
// moves to the end of the snapshot so iteration order reflects current
// state, and every subscriber of every room receives the new snapshot.
func (c *Client) TrackPresence(_ context.Context, meta event.PresenceMeta) error {
	c.hub.mu.Lock()
	c.hub.presence = removeConn(c.hub.presence, c.connKey)
	c.hub.presence = append(c.hub.presence, event.PresenceEntry{ConnKey: c.connKey, Meta: meta})
	c.hub.fanoutPresenceLocked()
	c.hub.mu.Unlock()
	return nil
}

// UntrackPresence removes this connection from the presence state.
func (c *Client) UntrackPresence(_ context.Context) error {
	c.hub.mu.Lock()
	c.hub.presence = removeConn(c.hub.presence, c.connKey)
	c.hub.fanoutPresenceLocked()
	c.hub.mu.Unlock()
	return nil
}

// FlapLink simulates a transport-level drop and recovery for this client.
// The hub forgets the connection's presence, exactly like the hosted
// service does across a reconnect; subscribers see connecting then
// connected again.
func (c *Client) FlapLink() {
	c.mu.Lock()
	subs := make([]*memorySub, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	c.hub.mu.Lock()
	c.hub.presence = removeConn(c.hub.presence, c.connKey)
	c.hub.fanoutPresenceLocked()
	c.hub.mu.Unlock()

	for _, sub := range subs {
		if sub.cb.OnStatusChange != nil {
			sub.cb.OnStatusChange(domain.StatusConnecting)
			sub.cb.OnStatusChange(domain.StatusConnected)
		}
	}
}

func (s *memorySub) Unsubscribe() error {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if s.closed {
		return errors.ErrAlreadyClosed
	}
	s.closed = true
	if subs, ok := s.hub.subs[s.room]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(s.hub.subs, s.room)
		}
	}
	close(s.presenceQ)
	return nil
}

// deliverPresence queues a snapshot without blocking. The queue holds one
// element; a snapshot that was not picked up yet is replaced by the newer
// one. Snapshots are full state, so skipping a superseded intermediate
// loses nothing, and per-subscriber delivery order is preserved.
func (s *memorySub) deliverPresence(snap event.PresenceSnapshot) {
	for {
		select {
		case s.presenceQ <- snap:
			return
		default:
			select {
			case <-s.presenceQ:
			default:
			}
		}
	}
}

// drainPresence runs for the lifetime of the subscription and invokes the
// callback for one snapshot at a time, in arrival order.
func (s *memorySub) drainPresence() {
	for snap := range s.presenceQ {
		if s.cb.OnPresenceSync != nil {
			s.cb.OnPresenceSync(snap)
		}
	}
}

// fanoutPresenceLocked pushes the full snapshot to every subscription of
// every room: presence is session-wide. Caller holds h.mu; each
// subscriber hands the snapshot to its own ordered delivery queue.
func (h *Hub) fanoutPresenceLocked() {
	snap := snapshotLocked(h.presence)
	for _, subs := range h.subs {
		for sub := range subs {
			sub.deliverPresence(snap)
		}
	}
}

func snapshotLocked(entries []event.PresenceEntry) event.PresenceSnapshot {
	out := make([]event.PresenceEntry, len(entries))
	copy(out, entries)
	return event.PresenceSnapshot{Entries: out}
}

func removeConn(entries []event.PresenceEntry, connKey string) []event.PresenceEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.ConnKey != connKey {
			out = append(out, e)
		}
	}
	return out
}
