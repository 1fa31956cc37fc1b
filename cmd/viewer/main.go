package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"chat-sync/repositories"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
}

// storedEntry mirrors the on-disk JSON layout to keep the viewer
// independent of the repository internals.
type storedEntry struct {
	ID      string    `json:"id"`
	Room    string    `json:"room"`
	Author  string    `json:"author_name"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

func main() {
	// 1. Load config
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// 2. Open Badger in Read-Only mode
	// Note: BypassLockGuard allows opening if the session holds the lock
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := printTabs(db); err != nil {
		log.Fatalf("Failed to read tabs: %v", err)
	}
	if err := printTimelines(db); err != nil {
		log.Fatalf("Failed to read timelines: %v", err)
	}
}

func printTabs(db *badger.DB) error {
	tabs, active, err := repositories.NewTabRepository(db).LoadTabs()
	if err != nil {
		return err
	}

	color.Cyan.Println("\nOpen tabs")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Room", "Kind", "Title", "Unread", "Last message", "Active"})
	for _, tab := range tabs {
		activeMark := ""
		if tab.ID == active {
			activeMark = "*"
		}
		table.Append([]string{
			string(tab.ID),
			string(tab.Kind),
			tab.Title,
			fmt.Sprintf("%d", tab.Unread),
			formatTime(tab.LastMessageAt),
			activeMark,
		})
	}
	table.Render()
	return nil
}

// printTimelines scans every persisted entry. The padded timestamp in the
// key already yields chronological order per room.
func printTimelines(db *badger.DB) error {
	color.Cyan.Println("\nPersisted timelines")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Room", "At", "Author", "Content"})

	err := db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte("msg:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var entry storedEntry
				if err := json.Unmarshal(value, &entry); err != nil {
					return err
				}
				table.Append([]string{
					shortenRoom(entry.Room),
					formatTime(entry.At),
					entry.Author,
					entry.Content,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	table.Render()
	return nil
}

func shortenRoom(room string) string {
	return strings.TrimPrefix(room, "room:")
}

func formatTime(at time.Time) string {
	if at.IsZero() {
		return "-"
	}
	return at.Format(time.DateTime)
}
