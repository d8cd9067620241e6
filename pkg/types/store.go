package types

import (
	"context"
	"errors"
	"time"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
)

// Backend connects to a storage engine and hands out a Store per registered
// entity type.
type Backend interface {
	// Attach connects the backend described by config. Creates the DataDir
	// if it does not exist. Returns ErrAlreadyAttached if called while
	// attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, store operations return ErrDetached.
	Detach() error

	// Store returns the store for the entity type registered under name.
	// Returns ErrStoreNotFound for unregistered names.
	Store(name string) (Store, error)

	// Names lists the registered entity type names in sorted order.
	Names() []string
}

// Row holds the canonical string of every non-custom field of one stored
// entity, keyed by field name. A nil value is an absent optional.
type Row map[string]*string

// SeedReport describes one seeding run.
type SeedReport struct {
	RunID    string        `json:"run_id"`
	TypeName string        `json:"type"`
	Inserted int           `json:"inserted"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Store is the type-erased view of one entity type's stored rows, used by
// tooling that handles every registered type the same way.
type Store interface {
	// Descriptor returns the entity type's field table.
	Descriptor() reflected.Descriptor

	// Count returns the number of stored entities.
	Count(ctx context.Context) (int, error)

	// Rows returns every stored entity as a Row, in insertion order.
	Rows(ctx context.Context) ([]Row, error)

	// Delete removes the entity with the given id.
	// Returns ErrNotFound if no entity has that id.
	Delete(ctx context.Context, id int64) error

	// Seed inserts n random entities drawn from gen in one transaction.
	Seed(ctx context.Context, gen *reflected.Generator, n int) (SeedReport, error)

	// Export writes every stored entity to path as JSONL and returns the
	// number of records written.
	Export(ctx context.Context, path string) (int, error)

	// Import loads JSONL records from path and returns the number stored.
	// Malformed lines and records that fail conversion are skipped.
	Import(ctx context.Context, path string) (int, error)
}

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
	ErrStoreNotFound   = errors.New("store not found")
)

// Store operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidCount  = errors.New("count must not be negative")
	ErrUnsupportedID = errors.New("identifier field must be an integer")
)
