package domain

import "time"

// DefaultTypingTimeout is how long a typing claim stays visible
// without being refreshed.
const DefaultTypingTimeout = 3 * time.Second

// TypingClaim is an ephemeral "user is typing" assertion.
// The visible typing set is always the unexpired subset of claims.
type TypingClaim struct {
	Identity Identity
	Room     RoomID
	At       time.Time
}

// Expired reports whether the claim is older than timeout at instant now.
func (c TypingClaim) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(c.At) >= timeout
}
