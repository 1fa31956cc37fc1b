// Package storage adapts repositories into delivery-path sinks.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"chat-sync/domain/event"
	"chat-sync/repositories"
)

// DiskSink persists live broadcast entries as they are delivered, so a
// merged timeline survives a restart of the session process.
type DiskSink struct {
	repository repositories.IEntryRepository
	log        *slog.Logger
}

func NewDiskSink(repository repositories.IEntryRepository, log *slog.Logger) DiskSink {
	return DiskSink{repository: repository, log: log}
}

func (d DiskSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.EntryBroadcast:
		return d.repository.StoreEntry(evt.Entry)
	default:
		d.log.Debug(fmt.Sprintf("Not persisted event : %v", evt))
		return nil
	}
}
