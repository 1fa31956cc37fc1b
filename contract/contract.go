//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-sync/domain"
	"chat-sync/domain/event"
	"context"
	"reflect"
)

// Callbacks are invoked by the transport for one room subscription.
// They run on transport delivery goroutines; implementations must hand
// the payload off to their own mailbox instead of doing work inline.
type Callbacks struct {
	OnEvent        func(e event.DomainEvent)
	OnPresenceSync func(snap event.PresenceSnapshot)
	OnStatusChange func(status domain.ConnectionStatus)
}

// ITransport is the hosted pub/sub collaborator. It guarantees
// at-least-once delivery, no cross-room leakage, and a full presence
// snapshot on every sync event. Presence is session-wide, not per room.
type ITransport interface {
	Subscribe(ctx context.Context, room domain.RoomID, cb Callbacks) (ISubscription, error)
	Broadcast(ctx context.Context, room domain.RoomID, e event.DomainEvent) error
	TrackPresence(ctx context.Context, meta event.PresenceMeta) error
	UntrackPresence(ctx context.Context) error
}

// ISubscription is the handle returned by Subscribe.
type ISubscription interface {
	Unsubscribe() error
}

// IHistoryLoader supplies persisted entries. The engine consumes one page
// at room-open time; older pages are for the UI to request on demand.
type IHistoryLoader interface {
	LoadHistory(ctx context.Context, room domain.RoomID, limit int) ([]domain.ChatEntry, error)
	GetPage(ctx context.Context, room domain.RoomID, cursor *string) ([]domain.ChatEntry, *string, error)
}

// ITabStore persists the open-tab set and the active tab id, never
// message content.
type ITabStore interface {
	LoadTabs() ([]domain.RoomTab, domain.RoomID, error)
	SaveTabs(tabs []domain.RoomTab, active domain.RoomID) error
}

// EventSink consumes delivered events for side effects (persistence,
// projections, logs). Sinks must never block the delivery path.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// initialization or lifecycle events, avoiding the need for manual naming
// in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
