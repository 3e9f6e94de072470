package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/storage/memory"
)

// Storage is the entry point to persistence: committed reads through Reader,
// units of work through Write.
type Storage struct {
	*Reader

	begin func(ctx context.Context) (*Writer, error)
	ping  func(ctx context.Context) error
	close func() error
}

// New opens the backend selected by cfg.StorageDriver.
func New(cfg *config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		return NewMemoryStorage(memory.New()), nil
	case config.StorageDriverPostgres:
		return NewPostgresStorage(cfg.PostgresURL())
	}
	return nil, fmt.Errorf("storage: unknown driver %q", cfg.StorageDriver)
}

func NewPostgresStorage(connStr string) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}

	return newSQLStorage(db), nil
}

func newSQLStorage(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		Reader: NewReader(bobDB),
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := bobDB.BeginTx(ctx, nil)
			if err != nil {
				return nil, err
			}
			return newSQLWriter(tx), nil
		},
		ping:  db.PingContext,
		close: db.Close,
	}
}

func NewMemoryStorage(store *memory.Store) *Storage {
	return &Storage{
		Reader: &Reader{
			Accounts:     store.Accounts(),
			Transactions: store.Transactions(),
		},
		begin: func(ctx context.Context) (*Writer, error) {
			unit, err := store.Begin(ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(unit, unit.Accounts(), unit.Transactions()), nil
		},
		ping:  func(context.Context) error { return nil },
		close: func() error { return nil },
	}
}

// Write opens a unit of work. The caller must Commit or Rollback it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	w, err := s.begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: begin: %w", err)
	}
	return w, nil
}

// Ping reports whether the backend is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Storage) Close() error {
	return s.close()
}
