package domain

import "time"

// PresenceMember is one visible entry of the online roster.
// Several connection keys (tabs, devices) may resolve to the same identity;
// the roster keeps at most one member per normalized identity key.
type PresenceMember struct {
	ConnKey      string
	Identity     Identity
	LastActiveAt time.Time
}
