//go:generate go run go.uber.org/mock/mockgen -source=entry.go -destination=../mocks/mock_entry_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"chat-sync/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

type IEntryRepository interface {
	StoreEntry(entry domain.ChatEntry) error
	LoadHistory(ctx context.Context, room domain.RoomID, limit int) ([]domain.ChatEntry, error)
	GetPage(ctx context.Context, room domain.RoomID, cursor *string) ([]domain.ChatEntry, *string, error)
}

// EntryRepository persists chat entries in BadgerDB. It backs the
// history-loader collaborator: the page fetched at room-open time is what
// the timeline merges with live broadcasts.
type EntryRepository struct {
	db           *badger.DB
	log          *slog.Logger
	limitEntries *int
}

func NewEntryRepository(db *badger.DB, log *slog.Logger, limitEntries *int) EntryRepository {
	return EntryRepository{db: db, log: log, limitEntries: limitEntries}
}

type diskEntry struct {
	ID       string    `json:"id"`
	Room     string    `json:"room"`
	AuthorID string    `json:"author_id"`
	Author   string    `json:"author_name"`
	Avatar   string    `json:"author_avatar,omitempty"`
	Content  string    `json:"content"`
	At       time.Time `json:"at"`
}

// StoreEntry persists one entry. The key is formatted as
// "msg:{room}:{timestamp_padded}:{id}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using the entry id as a collision disconnector
//     if two entries arrive at the same nanosecond.
func (r EntryRepository) StoreEntry(entry domain.ChatEntry) error {
	key := entryKey(entry.Room, entry.CreatedAt, entry.ID)
	bytes, err := json.Marshal(fromEntry(entry))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// DefaultPageSize bounds history reads when no explicit limit applies.
const DefaultPageSize = 50

// LoadHistory returns the newest entries of a room in ascending order.
// It is the one-shot read consumed at room-open time. A non-positive
// limit never scans the whole room; it falls back to the configured cap
// or the default page size.
func (r EntryRepository) LoadHistory(ctx context.Context, room domain.RoomID, limit int) ([]domain.ChatEntry, error) {
	if r.limitEntries != nil && (limit <= 0 || limit > *r.limitEntries) {
		limit = *r.limitEntries
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	entries, _, err := r.page(ctx, room, nil, limit)
	if err != nil {
		return nil, err
	}
	return lo.Reverse(entries), nil
}

// GetPage walks the room history backwards from the cursor, for the UI to
// request older pages on demand. The returned cursor resumes the walk.
func (r EntryRepository) GetPage(ctx context.Context, room domain.RoomID, cursor *string) ([]domain.ChatEntry, *string, error) {
	limit := DefaultPageSize
	if r.limitEntries != nil && *r.limitEntries > 0 {
		limit = *r.limitEntries
	}
	return r.page(ctx, room, cursor, limit)
}

// page scans newest-first using a reverse prefix iterator. Thanks to the
// padded timestamp in the key, entries are naturally sorted by time.
func (r EntryRepository) page(ctx context.Context, room domain.RoomID, cursor *string, limit int) ([]domain.ChatEntry, *string, error) {
	var entries []domain.ChatEntry
	var lastKey string

	err := r.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%s:", room)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past the newest possible key, then walk backwards.
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if limit > 0 && len(entries) == limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d entries reached", limit))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefixStr):])
			err := item.Value(func(value []byte) error {
				var stored diskEntry
				if err := json.Unmarshal(value, &stored); err != nil {
					return err
				}
				entries = append(entries, toEntry(stored))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return entries, &lastKey, nil
}

func entryKey(room domain.RoomID, at time.Time, id string) string {
	return fmt.Sprintf("msg:%s:%019d:%s", room, at.UnixNano(), id)
}

func fromEntry(entry domain.ChatEntry) diskEntry {
	return diskEntry{
		ID:       entry.ID,
		Room:     string(entry.Room),
		AuthorID: entry.Author.ID,
		Author:   entry.Author.DisplayName,
		Avatar:   entry.Author.Avatar,
		Content:  entry.Content,
		At:       entry.CreatedAt.UTC(),
	}
}

func toEntry(stored diskEntry) domain.ChatEntry {
	return domain.ChatEntry{
		ID:   stored.ID,
		Room: domain.RoomID(stored.Room),
		Author: domain.Identity{
			ID:          stored.AuthorID,
			Username:    stored.AuthorID,
			DisplayName: stored.Author,
			Avatar:      stored.Avatar,
		},
		Content:   stored.Content,
		CreatedAt: stored.At.UTC(),
		Origin:    domain.OriginPersisted,
	}
}
