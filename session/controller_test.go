package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/errors"
	"chat-sync/mocks"
	"chat-sync/presence"
	"chat-sync/transport"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var selfAlice = domain.Identity{ID: "alice", Username: "alice", DisplayName: "Alice"}
var peerBob = domain.Identity{ID: "bob", Username: "bob", DisplayName: "Bob"}

// fakeHistory serves a canned page, like the remote store would.
type fakeHistory struct {
	mu      sync.Mutex
	entries []domain.ChatEntry
	err     error
	calls   int
}

func (f *fakeHistory) LoadHistory(_ context.Context, _ domain.RoomID, _ int) ([]domain.ChatEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.entries, f.err
}

func (f *fakeHistory) GetPage(_ context.Context, _ domain.RoomID, _ *string) ([]domain.ChatEntry, *string, error) {
	return nil, nil, nil
}

func startController(t *testing.T, hub *transport.Hub, history contract.IHistoryLoader, self domain.Identity) (*Controller, *transport.Client) {
	t.Helper()
	log := slog.Default()
	client := hub.NewClient()
	registry := presence.NewRegistry(log)
	controller := NewController(log, client, history, registry, domain.GlobalRoom, self, 50)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = controller.Run(ctx) }()
	return controller, client
}

func waitConnected(t *testing.T, controller *Controller) {
	t.Helper()
	require.Eventually(t, func() bool {
		return controller.Status() == domain.StatusConnected
	}, time.Second, 5*time.Millisecond)
}

func TestController_ConnectReachesConnectedAndTracksPresence(t *testing.T) {
	req := require.New(t)
	hub := transport.NewHub(slog.Default())
	controller, _ := startController(t, hub, &fakeHistory{}, selfAlice)

	// Given an idle room
	req.Equal(domain.StatusIdle, controller.Status())

	// When the room connects
	controller.Connect()
	waitConnected(t, controller)

	// Then the join side effect announced our presence
	req.Eventually(func() bool {
		snap := hub.Snapshot()
		return len(snap.Entries) == 1 && snap.Entries[0].Meta.Username == "alice"
	}, time.Second, 5*time.Millisecond)
}

func TestController_ConnectIsIdempotent(t *testing.T) {
	req := require.New(t)
	hub := transport.NewHub(slog.Default())
	controller, _ := startController(t, hub, &fakeHistory{}, selfAlice)

	controller.Connect()
	waitConnected(t, controller)
	controller.Connect()
	controller.Connect()

	// Still exactly one subscription for the room
	time.Sleep(50 * time.Millisecond)
	req.Equal(1, hub.SubscriberCount(domain.GlobalRoom))
}

func TestController_SendGatedOnStatus(t *testing.T) {
	req := require.New(t)
	hub := transport.NewHub(slog.Default())
	controller, _ := startController(t, hub, &fakeHistory{}, selfAlice)

	// Sending while idle fails visibly, nothing is queued
	_, err := controller.Send(context.Background(), "too early")
	req.ErrorIs(err, errors.ErrNotConnected)

	// An empty send never reaches the transport
	controller.Connect()
	waitConnected(t, controller)
	_, err = controller.Send(context.Background(), "   ")
	req.ErrorIs(err, errors.ErrEmptyContent)
}

func TestController_EchoIsTheConfirmation(t *testing.T) {
	req := require.New(t)
	hub := transport.NewHub(slog.Default())
	controller, _ := startController(t, hub, &fakeHistory{}, selfAlice)

	controller.Connect()
	waitConnected(t, controller)

	sent, err := controller.Send(context.Background(), "hello room")
	req.NoError(err)

	// The entry lands in the timeline through the broadcast echo
	req.Eventually(func() bool {
		entries := controller.Timeline().Entries()
		return len(entries) == 1 && entries[0].ID == sent.ID
	}, time.Second, 5*time.Millisecond)
}

func TestController_HistoryMergedWithOutOfOrderLive(t *testing.T) {
	req := require.New(t)
	hub := transport.NewHub(slog.Default())
	history := &fakeHistory{entries: []domain.ChatEntry{{
		ID:        "1",
		Room:      domain.GlobalRoom,
		Author:    peerBob,
		Content:   "from history",
		CreatedAt: time.Unix(10, 0).UTC(),
	}}}
	controller, _ := startController(t, hub, history, selfAlice)

	controller.Connect()
	waitConnected(t, controller)
	req.Eventually(func() bool { return controller.Timeline().Len() == 1 }, time.Second, 5*time.Millisecond)

	// A live entry older than the rendered history still sorts first
	peer := hub.NewClient()
	req.NoError(peer.Broadcast(context.Background(), domain.GlobalRoom, liveEntry("2", time.Unix(5, 0).UTC())))

	req.Eventually(func() bool {
		entries := controller.Timeline().Entries()
		return len(entries) == 2 && entries[0].ID == "2" && entries[1].ID == "1"
	}, time.Second, 5*time.Millisecond)
}

func TestController_ReconnectReplaysPresenceTrack(t *testing.T) {
	req := require.New(t)
	hub := transport.NewHub(slog.Default())
	controller, client := startController(t, hub, &fakeHistory{}, selfAlice)

	controller.Connect()
	waitConnected(t, controller)
	req.Eventually(func() bool { return len(hub.Snapshot().Entries) == 1 }, time.Second, 5*time.Millisecond)

	// When the link flaps, the hub forgets the tracked presence
	client.FlapLink()

	// Then the controller re-announces on re-entering connected
	req.Eventually(func() bool {
		snap := hub.Snapshot()
		return len(snap.Entries) == 1 && snap.Entries[0].Meta.Username == "alice"
	}, time.Second, 5*time.Millisecond)
	req.Equal(domain.StatusConnected, controller.Status())
}

func TestController_HistoryLoadedOncePerRoom(t *testing.T) {
	req := require.New(t)
	hub := transport.NewHub(slog.Default())
	history := &fakeHistory{}
	controller, client := startController(t, hub, history, selfAlice)

	controller.Connect()
	waitConnected(t, controller)

	// A reconnect replays presence but not the one-shot history load
	client.FlapLink()
	waitConnected(t, controller)
	time.Sleep(50 * time.Millisecond)

	history.mu.Lock()
	defer history.mu.Unlock()
	req.Equal(1, history.calls)
}

func TestController_RemoteTypingObservedLocalEchoIgnored(t *testing.T) {
	req := require.New(t)
	hub := transport.NewHub(slog.Default())
	controller, _ := startController(t, hub, &fakeHistory{}, selfAlice)

	controller.Connect()
	waitConnected(t, controller)

	// A remote peer starts typing
	peer := hub.NewClient()
	req.NoError(peer.Broadcast(context.Background(), domain.GlobalRoom, typingStart(peerBob)))

	req.Eventually(func() bool {
		typers := controller.Typing().CurrentTypers()
		return len(typers) == 1 && typers[0].Username == "bob"
	}, time.Second, 5*time.Millisecond)

	// Our own start signal echoes back through the room; the echo is
	// dropped, so we appear exactly once (the local claim)
	controller.Typing().StartTyping(selfAlice)
	time.Sleep(50 * time.Millisecond)
	req.Len(controller.Typing().CurrentTypers(), 2)
}

func liveEntry(id string, at time.Time) event.EntryBroadcast {
	return event.EntryBroadcast{Entry: domain.ChatEntry{
		ID:        id,
		Room:      domain.GlobalRoom,
		Author:    peerBob,
		Content:   "live " + id,
		CreatedAt: at,
	}}
}

func typingStart(author domain.Identity) event.TypingSignal {
	return event.TypingSignal{
		Author: author,
		Room:   domain.GlobalRoom,
		Kind:   event.TypingStart,
		At:     time.Now().UTC(),
	}
}

func TestController_SubscribeFailureSurfacesErrorStatus(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transportMock := mocks.NewMockITransport(ctrl)
	transportMock.EXPECT().
		Subscribe(gomock.Any(), domain.GlobalRoom, gomock.Any()).
		Return(nil, fmt.Errorf("endpoint unreachable")).
		Times(1)

	log := slog.Default()
	controller := NewController(log, transportMock, &fakeHistory{}, presence.NewRegistry(log), domain.GlobalRoom, selfAlice, 50)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = controller.Run(ctx) }()

	// The failure is reported through the status, never retried silently
	controller.Connect()
	req.Eventually(func() bool {
		return controller.Status() == domain.StatusError
	}, time.Second, 5*time.Millisecond)
}

func TestController_SupervisedRestartRevivesRoomAfterPanic(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	hub := transport.NewHub(log)
	client := hub.NewClient()

	// Given a notifier panicking on the first delivery only
	var once sync.Once
	controller := NewController(log, client, &fakeHistory{}, presence.NewRegistry(log), domain.GlobalRoom, selfAlice, 50).
		WithNotifier(func(_ domain.RoomID, _ domain.ChatEntry) {
			once.Do(func() { panic("notifier exploded") })
		})

	sup := NewSupervisor(log, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		sup.Wait()
	})
	sup.Start(ctx, controller)

	controller.Connect()
	waitConnected(t, controller)

	// When a delivery blows up the actor loop
	peer := hub.NewClient()
	req.NoError(peer.Broadcast(context.Background(), domain.GlobalRoom, liveEntry("boom", time.Unix(1, 0).UTC())))

	// Then the restarted actor re-subscribes and reaches connected again
	req.Eventually(func() bool {
		return controller.Status() == domain.StatusConnected &&
			hub.SubscriberCount(domain.GlobalRoom) == 1
	}, 2*time.Second, 5*time.Millisecond)

	// And later broadcasts land in the timeline
	req.NoError(peer.Broadcast(context.Background(), domain.GlobalRoom, liveEntry("after", time.Unix(2, 0).UTC())))
	req.Eventually(func() bool {
		entries := controller.Timeline().Entries()
		return len(entries) == 2 && entries[1].ID == "after"
	}, time.Second, 5*time.Millisecond)
}

func TestController_DisconnectResetsAndIgnoresLateDeliveries(t *testing.T) {
	req := require.New(t)
	hub := transport.NewHub(slog.Default())
	controller, _ := startController(t, hub, &fakeHistory{}, selfAlice)

	controller.Connect()
	waitConnected(t, controller)

	controller.Disconnect()
	req.Eventually(func() bool {
		return controller.Status() == domain.StatusIdle
	}, time.Second, 5*time.Millisecond)
	req.Eventually(func() bool {
		return hub.SubscriberCount(domain.GlobalRoom) == 0
	}, time.Second, 5*time.Millisecond)

	// A broadcast racing the teardown is simply ignored
	peer := hub.NewClient()
	req.NoError(peer.Broadcast(context.Background(), domain.GlobalRoom, liveEntry("late", time.Now().UTC())))
	time.Sleep(50 * time.Millisecond)
	req.Zero(controller.Timeline().Len())
}
