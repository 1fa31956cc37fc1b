package domain

// ConnectionStatus reflects the subscribe lifecycle of a single room.
// It is exclusively owned by that room's controller.
type ConnectionStatus string

const (
	StatusIdle       ConnectionStatus = "idle"
	StatusConnecting ConnectionStatus = "connecting"
	StatusConnected  ConnectionStatus = "connected"
	StatusError      ConnectionStatus = "error"
)
