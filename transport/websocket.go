package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/errors"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
)

var validate = validator.New()

// Frame types crossing the wire.
const (
	frameEntry    = "entry"
	frameTyping   = "typing"
	framePresence = "presence_sync"
	frameTrack    = "presence_track"
	frameUntrack  = "presence_untrack"
)

// frame is the JSON envelope of the hosted pub/sub protocol. Exactly one
// payload field is set, selected by Type.
type frame struct {
	Type     string                  `json:"type" validate:"required,oneof=entry typing presence_sync presence_track presence_untrack"`
	Entry    *entryPayload           `json:"entry,omitempty"`
	Typing   *typingPayload          `json:"typing,omitempty"`
	Presence *event.PresenceSnapshot `json:"presence,omitempty"`
	Track    *event.PresenceMeta     `json:"track,omitempty"`
}

type entryPayload struct {
	ID        string    `json:"id" validate:"required"`
	Room      string    `json:"room" validate:"required"`
	AuthorID  string    `json:"author_id" validate:"required"`
	Author    string    `json:"author_name"`
	Avatar    string    `json:"author_avatar,omitempty"`
	Content   string    `json:"content" validate:"required"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
}

type typingPayload struct {
	AuthorID string    `json:"author_id" validate:"required"`
	Author   string    `json:"author_name"`
	Room     string    `json:"room" validate:"required"`
	Kind     string    `json:"kind" validate:"required,oneof=start stop"`
	At       time.Time `json:"at"`
}

// WSConfig configures the websocket transport.
type WSConfig struct {
	// Endpoint is the base websocket URL of the hosted service,
	// e.g. wss://realtime.example.net/socket.
	Endpoint string
	// RedialInterval is the transport's own reconnection cadence after a
	// dropped link. There is no backoff on top of it; failures stay
	// visible through the status callback.
	RedialInterval time.Duration
	DialTimeout    time.Duration
}

// WSChannel is the client adapter for a hosted pub/sub endpoint speaking
// JSON frames over websocket. Each room subscription owns one socket;
// presence tracking is announced on every open socket, keyed server-side
// by connection.
type WSChannel struct {
	cfg WSConfig
	log *slog.Logger

	mu      sync.Mutex
	subs    map[domain.RoomID]*wsSub
	tracked *event.PresenceMeta
}

func NewWSChannel(log *slog.Logger, cfg WSConfig) *WSChannel {
	if cfg.RedialInterval <= 0 {
		cfg.RedialInterval = 2 * time.Second
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	return &WSChannel{cfg: cfg, log: log, subs: make(map[domain.RoomID]*wsSub)}
}

type wsSub struct {
	channel *WSChannel
	room    domain.RoomID
	cb      contract.Callbacks

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
	cancel context.CancelFunc
}

// Subscribe dials one socket for the room and starts its read loop. The
// delivered status arrives through the callback once the join completed.
func (t *WSChannel) Subscribe(ctx context.Context, room domain.RoomID, cb contract.Callbacks) (contract.ISubscription, error) {
	t.mu.Lock()
	if existing, ok := t.subs[room]; ok {
		t.mu.Unlock()
		return existing, nil
	}
	subCtx, cancel := context.WithCancel(ctx)
	sub := &wsSub{channel: t, room: room, cb: cb, cancel: cancel}
	t.subs[room] = sub
	t.mu.Unlock()

	conn, err := t.dial(subCtx, room)
	if err != nil {
		t.dropSub(room)
		cancel()
		return nil, fmt.Errorf("subscribe %s: %w", room, err)
	}
	sub.setConn(conn)

	go sub.readLoop(subCtx)
	go func() {
		sub.deliverStatus(domain.StatusConnected)
		t.replayTrack(subCtx, sub)
	}()
	return sub, nil
}

// Broadcast sends an event on the room's socket.
func (t *WSChannel) Broadcast(_ context.Context, room domain.RoomID, e event.DomainEvent) error {
	t.mu.Lock()
	sub, ok := t.subs[room]
	t.mu.Unlock()
	if !ok {
		return errors.ErrNotConnected
	}

	f, err := encodeEvent(e)
	if err != nil {
		return err
	}
	return sub.write(f)
}

// TrackPresence announces the identity metadata on every open socket.
// The channel remembers it so a socket re-established by the redial loop
// is announced again: the server does not retain presence across drops.
func (t *WSChannel) TrackPresence(_ context.Context, meta event.PresenceMeta) error {
	t.mu.Lock()
	t.tracked = &meta
	subs := snapshotWsSubs(t.subs)
	t.mu.Unlock()

	f := frame{Type: frameTrack, Track: &meta}
	var firstErr error
	for _, sub := range subs {
		if err := sub.write(f); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// UntrackPresence clears the announcement on every open socket.
func (t *WSChannel) UntrackPresence(_ context.Context) error {
	t.mu.Lock()
	t.tracked = nil
	subs := snapshotWsSubs(t.subs)
	t.mu.Unlock()

	f := frame{Type: frameUntrack}
	var firstErr error
	for _, sub := range subs {
		if err := sub.write(f); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *WSChannel) dial(ctx context.Context, room domain.RoomID) (*websocket.Conn, error) {
	endpoint, err := url.Parse(t.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("bad endpoint: %w", err)
	}
	query := endpoint.Query()
	query.Set("room", string(room))
	endpoint.RawQuery = query.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: t.cfg.DialTimeout}
	conn, _, err := dialer.DialContext(ctx, endpoint.String(), nil)
	return conn, err
}

// replayTrack re-announces presence on one socket after a (re)connect.
func (t *WSChannel) replayTrack(_ context.Context, sub *wsSub) {
	t.mu.Lock()
	tracked := t.tracked
	t.mu.Unlock()
	if tracked == nil {
		return
	}
	if err := sub.write(frame{Type: frameTrack, Track: tracked}); err != nil {
		t.log.Warn("Presence replay failed", "room", sub.room, "error", err)
	}
}

func (t *WSChannel) dropSub(room domain.RoomID) {
	t.mu.Lock()
	delete(t.subs, room)
	t.mu.Unlock()
}

// readLoop dispatches inbound frames until the subscription closes. On a
// dropped link it surfaces connecting, redials at a fixed cadence and
// surfaces connected again; the join side effects are replayed by the
// session layer through the status callback.
func (s *wsSub) readLoop(ctx context.Context) {
	for {
		conn := s.getConn()
		if conn == nil {
			return
		}

		var f frame
		err := conn.ReadJSON(&f)
		if err == nil {
			if err := validate.Struct(f); err != nil {
				s.channel.log.Debug("Dropping invalid frame", "room", s.room, "error", err)
				continue
			}
			s.dispatch(f)
			continue
		}

		if ctx.Err() != nil || s.isClosed() {
			return
		}

		s.deliverStatus(domain.StatusConnecting)
		if !s.redial(ctx) {
			s.deliverStatus(domain.StatusError)
			return
		}
		s.deliverStatus(domain.StatusConnected)
		s.channel.replayTrack(ctx, s)
	}
}

func (s *wsSub) dispatch(f frame) {
	switch f.Type {
	case frameEntry:
		if f.Entry == nil || s.cb.OnEvent == nil {
			return
		}
		s.cb.OnEvent(event.EntryBroadcast{Entry: domain.ChatEntry{
			ID:   f.Entry.ID,
			Room: domain.RoomID(f.Entry.Room),
			Author: domain.Identity{
				ID:          f.Entry.AuthorID,
				Username:    f.Entry.AuthorID,
				DisplayName: f.Entry.Author,
				Avatar:      f.Entry.Avatar,
			},
			Content:   f.Entry.Content,
			CreatedAt: f.Entry.CreatedAt.UTC(),
			Origin:    domain.OriginLive,
		}})
	case frameTyping:
		if f.Typing == nil || s.cb.OnEvent == nil {
			return
		}
		s.cb.OnEvent(event.TypingSignal{
			Author: domain.Identity{
				ID:          f.Typing.AuthorID,
				Username:    f.Typing.AuthorID,
				DisplayName: f.Typing.Author,
			},
			Room: domain.RoomID(f.Typing.Room),
			Kind: event.TypingKind(f.Typing.Kind),
			At:   f.Typing.At,
		})
	case framePresence:
		if f.Presence == nil || s.cb.OnPresenceSync == nil {
			return
		}
		s.cb.OnPresenceSync(*f.Presence)
	}
}

// redial reconnects the socket, returning false once the subscription is
// gone.
func (s *wsSub) redial(ctx context.Context) bool {
	ticker := time.NewTicker(s.channel.cfg.RedialInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if s.isClosed() {
				return false
			}
			conn, err := s.channel.dial(ctx, s.room)
			if err != nil {
				s.channel.log.Debug("Redial failed", "room", s.room, "error", err)
				continue
			}
			s.setConn(conn)
			return true
		}
	}
}

func (s *wsSub) write(f frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.conn == nil {
		return errors.ErrNotConnected
	}
	return s.conn.WriteJSON(f)
}

func (s *wsSub) setConn(conn *websocket.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}

func (s *wsSub) getConn() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *wsSub) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *wsSub) deliverStatus(status domain.ConnectionStatus) {
	if s.cb.OnStatusChange != nil {
		s.cb.OnStatusChange(status)
	}
}

func (s *wsSub) Unsubscribe() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.ErrAlreadyClosed
	}
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	s.cancel()
	s.channel.dropSub(s.room)
	if conn != nil {
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "leaving room"), deadline)
		return conn.Close()
	}
	return nil
}

func encodeEvent(e event.DomainEvent) (frame, error) {
	switch evt := e.(type) {
	case event.EntryBroadcast:
		return frame{Type: frameEntry, Entry: &entryPayload{
			ID:        evt.Entry.ID,
			Room:      string(evt.Entry.Room),
			AuthorID:  evt.Entry.Author.ID,
			Author:    evt.Entry.Author.DisplayName,
			Avatar:    evt.Entry.Author.Avatar,
			Content:   evt.Entry.Content,
			CreatedAt: evt.Entry.CreatedAt.UTC(),
		}}, nil
	case event.TypingSignal:
		return frame{Type: frameTyping, Typing: &typingPayload{
			AuthorID: evt.Author.ID,
			Author:   evt.Author.DisplayName,
			Room:     string(evt.Room),
			Kind:     string(evt.Kind),
			At:       evt.At,
		}}, nil
	default:
		return frame{}, fmt.Errorf("unsupported event type %T", e)
	}
}

func snapshotWsSubs(subs map[domain.RoomID]*wsSub) []*wsSub {
	out := make([]*wsSub, 0, len(subs))
	for _, sub := range subs {
		out = append(out, sub)
	}
	return out
}
