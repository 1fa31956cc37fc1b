package event

import (
	"chat-sync/domain"
	"time"
)

// PresenceMeta is the identity payload attached to a tracked connection.
type PresenceMeta struct {
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	Avatar       string    `json:"avatar,omitempty"`
	Role         string    `json:"role,omitempty"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// PresenceEntry pairs a transport-assigned connection key with its metadata.
type PresenceEntry struct {
	ConnKey string       `json:"conn_key"`
	Meta    PresenceMeta `json:"meta"`
}

// PresenceSnapshot is the full current presence state, delivered on every
// sync event. Iteration order reflects current transport state, which makes
// last-write-wins reconciliation deterministic.
type PresenceSnapshot struct {
	Entries []PresenceEntry `json:"entries"`
}

// Identity converts the wire metadata into a domain identity.
func (m PresenceMeta) Identity() domain.Identity {
	return domain.Identity{
		ID:          m.Username,
		Username:    m.Username,
		DisplayName: m.DisplayName,
		Avatar:      m.Avatar,
		Role:        m.Role,
	}
}
