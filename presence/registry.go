// Package presence maintains the session-wide roster of online identities.
// There is one Registry per session, shared by every room; each mutation is
// a full-snapshot reconciliation, never an incremental patch.
package presence

import (
	"log/slog"
	"sync"

	"chat-sync/domain"
	"chat-sync/domain/event"
)

// Subscriber receives the new roster after every successful reconciliation.
type Subscriber func(roster []domain.PresenceMember)

// Registry reduces raw presence snapshots into a roster with at most one
// member per normalized identity key. Presence is best-effort: a malformed
// snapshot raises the Unavailable flag without touching the rest of the
// session.
type Registry struct {
	mu          sync.RWMutex
	log         *slog.Logger
	members     map[string]domain.PresenceMember
	order       []string
	unavailable bool
	subs        map[int]Subscriber
	nextSub     int
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log:     log,
		members: make(map[string]domain.PresenceMember),
		subs:    make(map[int]Subscriber),
	}
}

// Reconcile replaces the roster with the state carried by the snapshot.
// Entries without a parseable username are skipped silently; partial
// snapshots occur during join transients and are not an error. For two
// connection keys resolving to the same identity, the later snapshot entry
// wins because iteration order reflects current transport state.
func (r *Registry) Reconcile(snap event.PresenceSnapshot) {
	if snap.Entries == nil {
		r.mu.Lock()
		r.unavailable = true
		r.mu.Unlock()
		r.log.Warn("Malformed presence snapshot, roster kept as-is")
		return
	}

	members := make(map[string]domain.PresenceMember, len(snap.Entries))
	var order []string
	for _, e := range snap.Entries {
		key := domain.NormalizeKey(e.Meta.Username)
		if key == "" {
			continue
		}
		if _, seen := members[key]; !seen {
			order = append(order, key)
		}
		members[key] = domain.PresenceMember{
			ConnKey:      e.ConnKey,
			Identity:     e.Meta.Identity(),
			LastActiveAt: e.Meta.LastActiveAt,
		}
	}

	r.mu.Lock()
	r.members = members
	r.order = order
	r.unavailable = false
	subs := snapshotSubs(r.subs)
	roster := rosterLocked(r.members, r.order)
	r.mu.Unlock()

	for _, fn := range subs {
		fn(roster)
	}
}

// Roster returns the deduplicated online members in snapshot order.
func (r *Registry) Roster() []domain.PresenceMember {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return rosterLocked(r.members, r.order)
}

// Unavailable reports whether the last sync failed to parse. Consumers
// degrade to "no online roster" without affecting messaging.
func (r *Registry) Unavailable() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.unavailable
}

// Subscribe registers a consumer notified on every reconciliation.
// The returned function removes the subscription.
func (r *Registry) Subscribe(fn Subscriber) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// Reset clears the roster on sign-out.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.members = make(map[string]domain.PresenceMember)
	r.order = nil
	r.unavailable = false
	r.mu.Unlock()
}

func rosterLocked(members map[string]domain.PresenceMember, order []string) []domain.PresenceMember {
	out := make([]domain.PresenceMember, 0, len(order))
	for _, key := range order {
		out = append(out, members[key])
	}
	return out
}

func snapshotSubs(subs map[int]Subscriber) []Subscriber {
	out := make([]Subscriber, 0, len(subs))
	for _, fn := range subs {
		out = append(out, fn)
	}
	return out
}
