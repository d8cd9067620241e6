// Package sqlite implements the SQLite storage backend for reflected
// entities. It sees entities only through their field tables: schemas,
// inserts and reads are all derived from reflected.Table, so any entity type
// can be stored without per-type code.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
	"github.com/mesh-intelligence/reflected/pkg/types"
)

// DatabaseFile is the name of the database file created in DataDir.
const DatabaseFile = "reflected.db"

// Backend implements types.Backend using SQLite. Entity types are added with
// Register, before or after Attach; their tables are created on Attach or on
// registration, whichever comes last.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *zap.Logger

	registry *reflected.Registry
	stores   map[string]binding
}

// binding is what the backend keeps per registered entity type.
type binding interface {
	types.Store
	createSchema(ctx context.Context) error
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger the backend and its stores write to.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger:   zap.NewNop(),
		registry: reflected.NewRegistry(),
		stores:   make(map[string]binding),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach opens <DataDir>/reflected.db, creating DataDir if needed, and
// creates the table of every registered entity type that does not exist yet.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// One connection serializes writers and keeps transactions from
	// tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}

	b.db = db
	b.config = config
	b.attached = true

	ctx := context.Background()
	for name, s := range b.stores {
		if err := s.createSchema(ctx); err != nil {
			b.closeLocked()
			return fmt.Errorf("creating table for %s: %w", name, err)
		}
	}

	b.logger.Info("attached",
		zap.String("path", dbPath),
		zap.Int("types", len(b.stores)))
	return nil
}

// Detach closes the database. After Detach, all store operations return
// ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if err := b.closeLocked(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	b.logger.Info("detached")
	return nil
}

func (b *Backend) closeLocked() error {
	b.attached = false
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// DB returns the underlying database, or nil when detached.
func (b *Backend) DB() *sql.DB {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.db
}

// Config returns the configuration passed to the last successful Attach.
func (b *Backend) Config() types.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config
}

// Store returns the store for the entity type registered under name.
func (b *Backend) Store(name string) (types.Store, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, ok := b.stores[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, types.ErrStoreNotFound)
	}
	return s, nil
}

// Names lists the registered entity type names in sorted order.
func (b *Backend) Names() []string {
	return b.registry.Names()
}

// Descriptor returns the field table registered under name.
func (b *Backend) Descriptor(name string) (reflected.Descriptor, error) {
	return b.registry.Lookup(name)
}

// Register adds the entity type described by table to b and returns its
// typed store. When b is attached the table is created immediately, and a
// failure leaves b unchanged. Registering the same type name twice returns
// reflected.ErrDuplicateType.
func Register[T any](b *Backend, table *reflected.Table[T]) (*Store[T], error) {
	if id := table.IDField(); id != nil && !id.IsInteger() {
		return nil, fmt.Errorf("register %s: %s: %w", table.TypeName(), id, types.ErrUnsupportedID)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	name := table.TypeName()
	if _, taken := b.stores[name]; taken {
		return nil, fmt.Errorf("register %s: %w", name, reflected.ErrDuplicateType)
	}
	s := newStore(b, table)
	// The type is recorded only once its table exists, so a failed DDL can
	// be retried.
	if b.attached {
		if err := s.createSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("creating table for %s: %w", name, err)
		}
	}
	if err := b.registry.Register(table); err != nil {
		return nil, err
	}
	b.stores[name] = s
	b.logger.Debug("registered",
		zap.String("type", table.TypeName()),
		zap.Int("fields", len(table.Fields())))
	return s, nil
}

// MustRegister is Register that panics on error, for program setup.
func MustRegister[T any](b *Backend, table *reflected.Table[T]) *Store[T] {
	s, err := Register(b, table)
	if err != nil {
		panic(err)
	}
	return s
}

// dbLocked returns the open database. The caller must hold b.mu.
func (b *Backend) dbLocked() (*sql.DB, error) {
	if !b.attached || b.db == nil {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

var _ types.Backend = (*Backend)(nil)
