// Package timeline builds the ordered, duplicate-free view of one room
// from persisted history and live broadcasts. Handles ordering and
// deduplication only; it never talks to the transport.
package timeline

import (
	"sort"
	"sync"

	"chat-sync/domain"

	"github.com/samber/lo"
)

// Merge concatenates persisted and live entries, drops duplicate
// identifiers (first occurrence wins, so persisted entries stay
// authoritative for ids also seen live) and stable-sorts ascending by
// (CreatedAt, ID). The operation is pure and re-runs in full on every
// change; at tens to low hundreds of entries per room this beats carrying
// incremental state.
func Merge(persisted, live []domain.ChatEntry) []domain.ChatEntry {
	all := make([]domain.ChatEntry, 0, len(persisted)+len(live))
	all = append(all, persisted...)
	all = append(all, live...)

	merged := lo.UniqBy(all, func(e domain.ChatEntry) string {
		return e.ID
	})

	sort.SliceStable(merged, func(i, j int) bool {
		return domain.EntryLess(merged[i], merged[j])
	})
	return merged
}

// Timeline holds the two source sets of one room and the merged view.
// Safe for concurrent use: appends come from the room controller while
// the UI reads Entries.
type Timeline struct {
	mu        sync.RWMutex
	room      domain.RoomID
	persisted []domain.ChatEntry
	live      []domain.ChatEntry
	view      []domain.ChatEntry
}

func NewTimeline(room domain.RoomID) *Timeline {
	return &Timeline{room: room}
}

func (t *Timeline) Room() domain.RoomID {
	return t.room
}

// LoadPersisted installs the history page fetched at room-open time.
// Loaded once; a second call replaces the set (reconnect reload).
func (t *Timeline) LoadPersisted(entries []domain.ChatEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.persisted = tagged(entries, domain.OriginPersisted)
	t.view = Merge(t.persisted, t.live)
}

// Append records one live broadcast. A duplicate of a persisted id is a
// confirmation, not a new message; an entry older than the newest rendered
// one still lands at its correct sorted position.
func (t *Timeline) Append(e domain.ChatEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e.Origin = domain.OriginLive
	t.live = append(t.live, e)
	t.view = Merge(t.persisted, t.live)
}

// Entries returns the current merged view.
func (t *Timeline) Entries() []domain.ChatEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.ChatEntry, len(t.view))
	copy(out, t.view)
	return out
}

func (t *Timeline) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.view)
}

func tagged(entries []domain.ChatEntry, origin domain.Origin) []domain.ChatEntry {
	return lo.Map(entries, func(e domain.ChatEntry, _ int) domain.ChatEntry {
		e.Origin = origin
		return e
	})
}
