package domain

import "time"

// Origin tags where an entry was delivered from.
type Origin string

const (
	OriginPersisted Origin = "persisted"
	OriginLive      Origin = "live"
)

// ChatEntry represents one immutable message of a room timeline.
type ChatEntry struct {
	ID        string
	Room      RoomID
	Author    Identity
	Content   string
	CreatedAt time.Time
	Origin    Origin
}

// EntryLess is the single ordering authority for timelines:
// ascending (CreatedAt, ID). Transport delivery order is never trusted.
func EntryLess(a, b ChatEntry) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
