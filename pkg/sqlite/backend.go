// Package sqlite provides the public API for the SQLite entity backend.
// It exposes the constructor and registration functions while keeping the
// schema and JSONL details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/reflected/internal/sqlite"
	"github.com/mesh-intelligence/reflected/pkg/reflected"
)

// DatabaseFile is the database file name created inside the data directory.
const DatabaseFile = sqlite.DatabaseFile

// Backend stores registered entity types in one SQLite database.
type Backend = sqlite.Backend

// Store persists instances of one entity type.
type Store[T any] = sqlite.Store[T]

// Option configures a Backend.
type Option = sqlite.Option

// WithLogger sets the logger used for attach, seed and import events.
func WithLogger(logger *zap.Logger) Option {
	return sqlite.WithLogger(logger)
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; register types, then call Attach.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	users, err := sqlite.Register(backend, catalog.Users)
//	err = backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".reflected-data",
//	})
//	defer backend.Detach()
func NewBackend(opts ...Option) *Backend {
	return sqlite.NewBackend(opts...)
}

// Register adds table to b and returns its typed store.
func Register[T any](b *Backend, table *reflected.Table[T]) (*Store[T], error) {
	return sqlite.Register(b, table)
}
