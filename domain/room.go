package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type RoomID string

// GlobalRoom is the room every session joins at bootstrap.
const GlobalRoom RoomID = "room:global"

type RoomKind string

const (
	RoomGlobal RoomKind = "global"
	RoomDirect RoomKind = "dm"
)

// DirectRoomID derives the room id of a DM pair from the two participant
// usernames. The derivation is order-independent so both sides converge on
// the same id without any coordination.
func DirectRoomID(a, b string) RoomID {
	keys := []string{NormalizeKey(a), NormalizeKey(b)}
	sort.Strings(keys)
	return RoomID(fmt.Sprintf("room:dm:%s", strings.Join(keys, ":")))
}

// RoomTab is the persisted identity of one open conversation.
// Message content is never stored on a tab.
type RoomTab struct {
	ID            RoomID    `json:"id"`
	Kind          RoomKind  `json:"kind"`
	Title         string    `json:"title"`
	Counterpart   string    `json:"counterpart,omitempty"`
	Unread        int       `json:"unread"`
	LastMessageAt time.Time `json:"last_message_at"`
	Active        bool      `json:"active"`
}

// GlobalTab returns the default tab every session falls back to.
func GlobalTab() RoomTab {
	return RoomTab{
		ID:     GlobalRoom,
		Kind:   RoomGlobal,
		Title:  "General",
		Active: true,
	}
}
