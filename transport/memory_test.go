package transport

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/errors"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu       sync.Mutex
	events   []event.DomainEvent
	snaps    []event.PresenceSnapshot
	statuses []domain.ConnectionStatus
}

func (r *recorder) callbacks() contract.Callbacks {
	return contract.Callbacks{
		OnEvent: func(e event.DomainEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, e)
		},
		OnPresenceSync: func(s event.PresenceSnapshot) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.snaps = append(r.snaps, s)
		},
		OnStatusChange: func(s domain.ConnectionStatus) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.statuses = append(r.statuses, s)
		},
	}
}

func (r *recorder) eventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recorder) lastSnap() (event.PresenceSnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snaps) == 0 {
		return event.PresenceSnapshot{}, false
	}
	return r.snaps[len(r.snaps)-1], true
}

func TestHub_BroadcastStaysInsideTheRoom(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())
	ctx := context.Background()

	sender := hub.NewClient()
	listener := hub.NewClient()
	outsider := hub.NewClient()

	var senderRec, listenerRec, outsiderRec recorder
	_, err := sender.Subscribe(ctx, domain.GlobalRoom, senderRec.callbacks())
	req.NoError(err)
	_, err = listener.Subscribe(ctx, domain.GlobalRoom, listenerRec.callbacks())
	req.NoError(err)
	_, err = outsider.Subscribe(ctx, domain.RoomID("room:dm:a:b"), outsiderRec.callbacks())
	req.NoError(err)

	// When an entry is broadcast to the global room
	err = sender.Broadcast(ctx, domain.GlobalRoom, event.EntryBroadcast{
		Entry: domain.ChatEntry{ID: "1", Room: domain.GlobalRoom, Content: "hi", CreatedAt: time.Now()},
	})
	req.NoError(err)

	// Then subscribers receive it, the sender echo included, with no
	// cross-room leakage
	req.Equal(1, senderRec.eventCount())
	req.Equal(1, listenerRec.eventCount())
	req.Zero(outsiderRec.eventCount())
}

func TestHub_TrackPresenceFansOutFullSnapshots(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())
	ctx := context.Background()

	alice := hub.NewClient()
	bob := hub.NewClient()

	var rec recorder
	_, err := alice.Subscribe(ctx, domain.GlobalRoom, rec.callbacks())
	req.NoError(err)

	req.NoError(alice.TrackPresence(ctx, event.PresenceMeta{Username: "alice"}))
	req.NoError(bob.TrackPresence(ctx, event.PresenceMeta{Username: "bob"}))

	// Snapshots arrive asynchronously and carry the full state
	req.Eventually(func() bool {
		snap, ok := rec.lastSnap()
		return ok && len(snap.Entries) == 2
	}, time.Second, 10*time.Millisecond)

	// Untracking removes the connection from the next snapshot
	req.NoError(bob.UntrackPresence(ctx))
	req.Eventually(func() bool {
		snap, ok := rec.lastSnap()
		return ok && len(snap.Entries) == 1 && snap.Entries[0].Meta.Username == "alice"
	}, time.Second, 10*time.Millisecond)
}

func TestHub_PresenceSnapshotsNeverRegress(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())
	ctx := context.Background()

	listener := hub.NewClient()
	var rec recorder
	_, err := listener.Subscribe(ctx, domain.GlobalRoom, rec.callbacks())
	req.NoError(err)

	// A burst of updates for one connection, each newer than the last
	peer := hub.NewClient()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	final := base.Add(99 * time.Second)
	for i := 0; i < 100; i++ {
		req.NoError(peer.TrackPresence(ctx, event.PresenceMeta{
			Username:     "bob",
			LastActiveAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	// The listener settles on the newest state
	req.Eventually(func() bool {
		snap, ok := rec.lastSnap()
		if !ok {
			return false
		}
		for _, e := range snap.Entries {
			if e.Meta.Username == "bob" && e.Meta.LastActiveAt.Equal(final) {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	// And no delivered snapshot was older than the one before it
	rec.mu.Lock()
	defer rec.mu.Unlock()
	var previous time.Time
	for _, snap := range rec.snaps {
		var at time.Time
		for _, e := range snap.Entries {
			if e.Meta.Username == "bob" {
				at = e.Meta.LastActiveAt
			}
		}
		req.False(at.Before(previous), "snapshot regressed")
		previous = at
	}
}

func TestHub_TwoConnectionsOneIdentityKeepBothConnKeys(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())
	ctx := context.Background()

	tabOne := hub.NewClient()
	tabTwo := hub.NewClient()

	req.NoError(tabOne.TrackPresence(ctx, event.PresenceMeta{Username: "ALICE"}))
	req.NoError(tabTwo.TrackPresence(ctx, event.PresenceMeta{Username: "ALICE"}))

	// The transport keeps one entry per connection; identity
	// deduplication is the roster's job, not the transport's
	snap := hub.Snapshot()
	req.Len(snap.Entries, 2)
	req.NotEqual(snap.Entries[0].ConnKey, snap.Entries[1].ConnKey)
}

func TestHub_FlapLinkForgetsPresenceAndReplaysStatus(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())
	ctx := context.Background()

	client := hub.NewClient()
	var rec recorder
	_, err := client.Subscribe(ctx, domain.GlobalRoom, rec.callbacks())
	req.NoError(err)
	req.NoError(client.TrackPresence(ctx, event.PresenceMeta{Username: "alice"}))

	// Wait for the delivered status of the initial subscribe
	req.Eventually(func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.statuses) >= 1
	}, time.Second, 10*time.Millisecond)

	// When the link flaps
	client.FlapLink()

	// Then the hub forgot the tracked presence
	req.Empty(hub.Snapshot().Entries)

	// And the client observed connecting then connected again
	req.Eventually(func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.statuses) >= 3
	}, time.Second, 10*time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	last := rec.statuses[len(rec.statuses)-2:]
	req.Equal([]domain.ConnectionStatus{domain.StatusConnecting, domain.StatusConnected}, last)
}

func TestHub_UnsubscribeTwiceFails(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())

	sub, err := hub.NewClient().Subscribe(context.Background(), domain.GlobalRoom, contract.Callbacks{})
	req.NoError(err)

	req.NoError(sub.Unsubscribe())
	req.ErrorIs(sub.Unsubscribe(), errors.ErrAlreadyClosed)
}
