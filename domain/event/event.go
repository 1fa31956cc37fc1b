// Package event defines the payloads crossing the transport boundary.
package event

import (
	"chat-sync/domain"
	"time"
)

// DomainEvent is anything a room subscription can deliver or broadcast.
type DomainEvent interface {
	RoomID() domain.RoomID
}

// EntryBroadcast carries one live chat entry.
type EntryBroadcast struct {
	Entry domain.ChatEntry
}

func (e EntryBroadcast) RoomID() domain.RoomID {
	return e.Entry.Room
}

type TypingKind string

const (
	TypingStart TypingKind = "start"
	// TypingStop is an explicit signal type. Stopping is never inferred
	// from an empty payload.
	TypingStop TypingKind = "stop"
)

// TypingSignal announces that an author started or stopped typing in a room.
type TypingSignal struct {
	Author domain.Identity
	Room   domain.RoomID
	Kind   TypingKind
	At     time.Time
}

func (s TypingSignal) RoomID() domain.RoomID {
	return s.Room
}
