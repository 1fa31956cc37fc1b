// Package domain contains core concepts of the realtime chat session.
// This file defines identities and the normalization rule used to
// deduplicate them. No runtime, network, or UI logic should be added here.
package domain

import "strings"

// Identity describes one user as seen by every room and by the roster.
type Identity struct {
	ID          string
	Username    string
	DisplayName string
	Avatar      string
	Role        string
}

// Key returns the normalized identity key of this user.
func (i Identity) Key() string {
	return NormalizeKey(i.Username)
}

// NormalizeKey builds the deduplication key for a username.
// Two connections carrying "Alice" and "ALICE" belong to the same person.
func NormalizeKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
