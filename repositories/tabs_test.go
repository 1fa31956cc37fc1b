package repositories

import (
	"testing"
	"time"

	"chat-sync/domain"

	"github.com/stretchr/testify/require"
)

func Test_TabState_RoundTrip(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewTabRepository(db)

	dm := domain.DirectRoomID("alice", "bob")
	tabs := []domain.RoomTab{
		domain.GlobalTab(),
		{
			ID:            dm,
			Kind:          domain.RoomDirect,
			Title:         "Bob",
			Counterpart:   "bob",
			Unread:        3,
			LastMessageAt: time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	req.NoError(repository.SaveTabs(tabs, dm))

	loaded, active, err := repository.LoadTabs()
	req.NoError(err)
	req.Equal(tabs, loaded)
	req.Equal(dm, active)
}

func Test_TabState_FreshDatabaseIsEmptyNotAnError(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewTabRepository(db)

	tabs, active, err := repository.LoadTabs()
	req.NoError(err)
	req.Empty(tabs)
	req.Empty(active)
}

func Test_TabState_SecondSaveReplacesTheFirst(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewTabRepository(db)

	req.NoError(repository.SaveTabs([]domain.RoomTab{domain.GlobalTab()}, domain.GlobalRoom))

	dm := domain.DirectRoomID("alice", "carol")
	req.NoError(repository.SaveTabs([]domain.RoomTab{
		domain.GlobalTab(),
		{ID: dm, Kind: domain.RoomDirect, Title: "Carol", Counterpart: "carol"},
	}, dm))

	tabs, active, err := repository.LoadTabs()
	req.NoError(err)
	req.Len(tabs, 2)
	req.Equal(dm, active)
}
