package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/presence"
	"chat-sync/scroll"

	"github.com/samber/lo"
)

type roomSession struct {
	controller *Controller
	stick      *scroll.Stick
	cancel     context.CancelFunc
}

// Multiplexer maps the user-visible tab list (one global room plus N DM
// rooms) to independent controller instances. It exclusively owns the tab
// set; tab identity is durable across reloads, message content never is.
type Multiplexer struct {
	log       *slog.Logger
	self      domain.Identity
	transport contract.ITransport
	history   contract.IHistoryLoader
	store     contract.ITabStore
	registry  *presence.Registry
	sup       *Supervisor
	sink      contract.EventSink

	historyLimit int

	mu     sync.Mutex
	ctx    context.Context
	rooms  map[domain.RoomID]*roomSession
	tabs   []domain.RoomTab
	active domain.RoomID
}

func NewMultiplexer(
	log *slog.Logger,
	transport contract.ITransport,
	history contract.IHistoryLoader,
	store contract.ITabStore,
	registry *presence.Registry,
	sup *Supervisor,
	self domain.Identity,
	historyLimit int,
) *Multiplexer {
	return &Multiplexer{
		log:          log,
		self:         self,
		transport:    transport,
		history:      history,
		store:        store,
		registry:     registry,
		sup:          sup,
		sink:         nil,
		historyLimit: historyLimit,
		rooms:        make(map[domain.RoomID]*roomSession),
	}
}

// WithSink persists live entries of every open room.
func (m *Multiplexer) WithSink(sink contract.EventSink) *Multiplexer {
	m.sink = sink
	return m
}

// Start restores the persisted tab set and reconnects every tab. A failed
// or empty read falls back to a single default global tab; session start
// is never blocked by the store.
func (m *Multiplexer) Start(ctx context.Context) {
	tabs, active, err := m.store.LoadTabs()
	if err != nil {
		m.log.Warn("Tab state unavailable, falling back to the global tab", "error", err)
		tabs = nil
	}
	if len(tabs) == 0 {
		tabs = []domain.RoomTab{domain.GlobalTab()}
		active = domain.GlobalRoom
	}
	if _, ok := findTab(tabs, active); !ok {
		active = tabs[0].ID
	}

	m.mu.Lock()
	m.ctx = ctx
	m.tabs = markActive(tabs, active)
	m.active = active
	for _, tab := range m.tabs {
		m.openRoomLocked(tab.ID)
	}
	m.mu.Unlock()

	m.save()
}

// OpenDirectMessage opens (or switches to) the DM tab with the given
// counterpart. The room id derivation is order-independent, so both
// participants converge on the same room without coordination.
func (m *Multiplexer) OpenDirectMessage(other domain.Identity) (domain.RoomID, error) {
	room := domain.DirectRoomID(m.self.Username, other.Username)

	m.mu.Lock()
	if _, ok := findTab(m.tabs, room); ok {
		m.mu.Unlock()
		// An existing tab is reused, never duplicated.
		return room, m.SwitchTab(room)
	}

	title := other.DisplayName
	if title == "" {
		title = other.Username
	}
	m.tabs = append(m.tabs, domain.RoomTab{
		ID:          room,
		Kind:        domain.RoomDirect,
		Title:       title,
		Counterpart: other.Username,
	})
	m.tabs = markActive(m.tabs, room)
	m.active = room
	m.openRoomLocked(room)
	m.mu.Unlock()

	m.save()
	return room, nil
}

// SwitchTab marks the target active and clears its unread counter.
func (m *Multiplexer) SwitchTab(room domain.RoomID) error {
	m.mu.Lock()
	if _, ok := findTab(m.tabs, room); !ok {
		m.mu.Unlock()
		return fmt.Errorf("switch to %s: %w", room, errors.ErrUnknownTab)
	}
	m.tabs = markActive(m.tabs, room)
	m.active = room
	m.mu.Unlock()

	m.save()
	return nil
}

// CloseTab tears the tab's room down (not merely hides it) so the session
// stops subscribing to rooms the user cannot see. Closing the last
// remaining tab is forbidden; at least one room is always open.
func (m *Multiplexer) CloseTab(room domain.RoomID) error {
	m.mu.Lock()
	if len(m.tabs) <= 1 {
		m.mu.Unlock()
		return errors.ErrLastTab
	}
	if _, ok := findTab(m.tabs, room); !ok {
		m.mu.Unlock()
		return fmt.Errorf("close %s: %w", room, errors.ErrUnknownTab)
	}

	rs := m.detachRoomLocked(room)
	m.tabs = lo.Reject(m.tabs, func(t domain.RoomTab, _ int) bool {
		return t.ID == room
	})
	if m.active == room {
		// Activation falls to a deterministic fallback.
		m.active = m.tabs[0].ID
	}
	m.tabs = markActive(m.tabs, m.active)
	m.mu.Unlock()

	// Teardown happens after the lock is released: the room's actor may
	// be inside onEntry waiting for m.mu, and a blocking disconnect under
	// the lock would wedge both sides when the mailbox is full.
	if rs != nil {
		rs.controller.Disconnect()
		rs.cancel()
	}
	m.save()
	return nil
}

// Tabs returns a copy of the current tab list.
func (m *Multiplexer) Tabs() []domain.RoomTab {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.RoomTab, len(m.tabs))
	copy(out, m.tabs)
	return out
}

// ActiveTab returns the currently active tab.
func (m *Multiplexer) ActiveTab() domain.RoomTab {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab, _ := findTab(m.tabs, m.active)
	return tab
}

// Controller returns the room's controller, or nil for an unknown room.
func (m *Multiplexer) Controller(room domain.RoomID) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rs, ok := m.rooms[room]; ok {
		return rs.controller
	}
	return nil
}

// Stick returns the room's scroll controller, or nil for an unknown room.
func (m *Multiplexer) Stick(room domain.RoomID) *scroll.Stick {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rs, ok := m.rooms[room]; ok {
		return rs.stick
	}
	return nil
}

// Stop persists the tab set, clears tracked presence and tears all rooms
// down.
func (m *Multiplexer) Stop() {
	m.save()

	m.mu.Lock()
	sessions := lo.Values(m.rooms)
	m.rooms = make(map[domain.RoomID]*roomSession)
	ctx := m.ctx
	m.mu.Unlock()

	for _, rs := range sessions {
		rs.controller.Disconnect()
		rs.cancel()
	}
	if ctx != nil {
		if err := m.transport.UntrackPresence(ctx); err != nil {
			m.log.Debug("Presence untrack on stop", "error", err)
		}
	}
	m.registry.Reset()
}

// openRoomLocked instantiates the controller/timeline/typing triple for a
// tab and connects it under supervision. Caller holds m.mu.
func (m *Multiplexer) openRoomLocked(room domain.RoomID) {
	if _, ok := m.rooms[room]; ok {
		return
	}
	controller := NewController(m.log, m.transport, m.history, m.registry, room, m.self, m.historyLimit).
		WithNotifier(m.onEntry)
	if m.sink != nil {
		controller.WithSink(m.sink)
	}

	roomCtx, cancel := context.WithCancel(m.ctx)
	m.rooms[room] = &roomSession{
		controller: controller,
		stick:      scroll.NewStick(scroll.DefaultTolerance),
		cancel:     cancel,
	}
	m.sup.Start(roomCtx, controller)
	controller.Connect()
}

// detachRoomLocked removes the room from the routing table and hands its
// session back for teardown. Caller holds m.mu and must disconnect the
// returned session after unlocking.
func (m *Multiplexer) detachRoomLocked(room domain.RoomID) *roomSession {
	rs, ok := m.rooms[room]
	if !ok {
		return nil
	}
	delete(m.rooms, room)
	return rs
}

// onEntry runs on a room controller goroutine for every accepted live
// entry: it advances the tab metadata, counts unread for hidden DM tabs
// and drives the room's scroll stickiness.
func (m *Multiplexer) onEntry(room domain.RoomID, e domain.ChatEntry) {
	m.mu.Lock()
	for i := range m.tabs {
		if m.tabs[i].ID != room {
			continue
		}
		if e.CreatedAt.After(m.tabs[i].LastMessageAt) {
			m.tabs[i].LastMessageAt = e.CreatedAt
		}
		if room != m.active && m.tabs[i].Kind == domain.RoomDirect && e.Author.Key() != m.self.Key() {
			m.tabs[i].Unread++
		}
	}
	rs := m.rooms[room]
	m.mu.Unlock()

	if rs != nil {
		rs.stick.OnAppend()
	}
	m.save()
}

// save persists tab identity. Store failures are logged and swallowed;
// losing tab durability must not break messaging.
func (m *Multiplexer) save() {
	m.mu.Lock()
	tabs := make([]domain.RoomTab, len(m.tabs))
	copy(tabs, m.tabs)
	active := m.active
	m.mu.Unlock()

	if err := m.store.SaveTabs(tabs, active); err != nil {
		m.log.Warn("Tab state not persisted", "error", err)
	}
}

func findTab(tabs []domain.RoomTab, room domain.RoomID) (domain.RoomTab, bool) {
	return lo.Find(tabs, func(t domain.RoomTab) bool {
		return t.ID == room
	})
}

func markActive(tabs []domain.RoomTab, active domain.RoomID) []domain.RoomTab {
	return lo.Map(tabs, func(t domain.RoomTab, _ int) domain.RoomTab {
		t.Active = t.ID == active
		if t.Active {
			t.Unread = 0
		}
		return t
	})
}
