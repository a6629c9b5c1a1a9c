// Package backend selects and assembles the ledger store variant at
// composition time: in-memory, SQLite, or the remote REST client. Callers
// receive a ledger.Store and never learn which variant they got.
package backend

import (
	"fmt"

	"expensenote/internal/amqp"
	"expensenote/internal/config"
	"expensenote/internal/ledger"
	"expensenote/internal/ledger/memory"
	applog "expensenote/internal/log"
	"expensenote/internal/remote"
	"expensenote/internal/services"
	"expensenote/internal/storage"
)

type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
	Remote Type = "remote"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite, Remote:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result carries the assembled store and its cleanup, which may be nil.
type Result struct {
	Store   ledger.Store
	Cleanup CleanupFunc
}

type Factory struct {
	logger *applog.Logger
}

func NewFactory(logger *applog.Logger) *Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Factory{logger: logger.WithComponent(applog.ComponentBackend)}
}

// Create builds the store named by cfg.DataBackend. When an AMQP URL is
// configured, writes are decorated with change-event publishing; a broker
// that is down only disables events, never the backend itself.
func (f *Factory) Create(cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SQLite:
		return f.createSQLite(cfg)
	case Remote:
		return f.createRemote(cfg)
	default:
		return f.createMemory(cfg)
	}
}

func (f *Factory) createMemory(cfg *config.Config) (*Result, error) {
	store := memory.New()
	f.logger.Info("Initialized memory backend")
	return f.withEvents(cfg, store, nil)
}

func (f *Factory) createSQLite(cfg *config.Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}
	f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
	return f.withEvents(cfg, repo, repo.Close)
}

func (f *Factory) createRemote(cfg *config.Config) (*Result, error) {
	client := remote.NewClient(cfg.RemoteBaseURL, cfg.RemoteTimeout)
	f.logger.Info("Initialized remote backend", "base_url", cfg.RemoteBaseURL)
	return f.withEvents(cfg, client, nil)
}

func (f *Factory) withEvents(cfg *config.Config, store ledger.Store, cleanup CleanupFunc) (*Result, error) {
	if cfg.AMQPURL == "" {
		return &Result{Store: store, Cleanup: cleanup}, nil
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		return &Result{Store: store, Cleanup: cleanup}, nil
	}
	f.logger.Info("Initialized AMQP event publishing",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	combined := func() error {
		closeErr := client.Close()
		if cleanup != nil {
			if err := cleanup(); err != nil {
				return err
			}
		}
		return closeErr
	}
	return &Result{Store: services.NewSyncedStore(store, client), Cleanup: combined}, nil
}
