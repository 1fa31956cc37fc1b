//go:generate go run go.uber.org/mock/mockgen -source=tabs.go -destination=../mocks/mock_tab_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"

	"chat-sync/domain"

	"github.com/dgraph-io/badger/v4"
)

const (
	tabListKey   = "tabs:list"
	tabActiveKey = "tabs:active"
)

type ITabRepository interface {
	LoadTabs() ([]domain.RoomTab, domain.RoomID, error)
	SaveTabs(tabs []domain.RoomTab, active domain.RoomID) error
}

// TabRepository is the durable key-value store for tab identity. Only the
// open-tab set and the active tab id are written here; message content is
// never persisted under these keys.
type TabRepository struct {
	db *badger.DB
}

func NewTabRepository(db *badger.DB) TabRepository {
	return TabRepository{db: db}
}

// LoadTabs reads the persisted tab set at session start. A missing key is
// not an error: a fresh session simply starts with the default global tab.
func (r TabRepository) LoadTabs() ([]domain.RoomTab, domain.RoomID, error) {
	var tabs []domain.RoomTab
	var active domain.RoomID

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tabListKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(value []byte) error {
			return json.Unmarshal(value, &tabs)
		}); err != nil {
			return err
		}

		item, err = txn.Get([]byte(tabActiveKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			active = domain.RoomID(value)
			return nil
		})
	})
	if err != nil {
		return nil, "", fmt.Errorf("tab state read: %w", err)
	}
	return tabs, active, nil
}

// SaveTabs writes the tab set and active id, called on every tab-list or
// active-tab change.
func (r TabRepository) SaveTabs(tabs []domain.RoomTab, active domain.RoomID) error {
	bytes, err := json.Marshal(tabs)
	if err != nil {
		return err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(tabListKey), bytes); err != nil {
			return err
		}
		return txn.Set([]byte(tabActiveKey), []byte(active))
	})
	if err != nil {
		return fmt.Errorf("tab state write: %w", err)
	}
	return nil
}
