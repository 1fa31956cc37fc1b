package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/presence"
	"chat-sync/repositories"
	"chat-sync/repositories/storage"
	"chat-sync/session"
	"chat-sync/transport"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the session lifecycle, and
// centralizes error reporting. This pattern is preferred over calling
// os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the room controllers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB) for history and tab identity
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Transport: hosted endpoint if configured, in-process hub otherwise
	var channel contract.ITransport
	if config.TransportEndpoint != "" {
		channel = transport.NewWSChannel(log, transport.WSConfig{
			Endpoint:       config.TransportEndpoint,
			RedialInterval: config.TransportRedialInterval,
			DialTimeout:    config.TransportDialTimeout,
		})
	} else {
		log.Info("No transport endpoint configured, using the in-process hub")
		channel = transport.NewHub(log).NewClient()
	}

	// 4. Session wiring
	entryRepository := repositories.NewEntryRepository(db, log, config.LimitEntries)
	tabRepository := repositories.NewTabRepository(db)
	registry := presence.NewRegistry(log)
	sup := session.NewSupervisor(log, config.RestartInterval)

	self := domain.Identity{
		ID:          config.Username,
		Username:    config.Username,
		DisplayName: config.DisplayName,
	}
	multiplexer := session.NewMultiplexer(
		log, channel, entryRepository, tabRepository, registry, sup,
		self, config.HistoryLimit,
	).WithSink(storage.NewDiskSink(entryRepository, log))

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	unsubscribe := registry.Subscribe(func(roster []domain.PresenceMember) {
		log.Info(fmt.Sprintf("%d user(s) online", len(roster)))
	})
	defer unsubscribe()

	// 6. Start the session: restores tabs and reconnects every room
	multiplexer.Start(ctx)
	log.Info("Session started", "user", self.Username, "tabs", len(multiplexer.Tabs()))

	// 7. Wait for Stop
	<-ctx.Done()
	log.Info("Shutting down gracefully...")

	// 8. Final Cleanup
	multiplexer.Stop()
	sup.Wait()
	log.Info("Program stopped cleanly")

	return nil
}
