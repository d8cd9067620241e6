package cli

import (
	"errors"

	"github.com/mesh-intelligence/reflected/internal/catalog"
	"github.com/mesh-intelligence/reflected/pkg/reflected"
	"github.com/mesh-intelligence/reflected/pkg/sqlite"
	"github.com/mesh-intelligence/reflected/pkg/types"
)

// registerCatalog adds every catalog entity type to b.
func registerCatalog(b *sqlite.Backend) error {
	if _, err := sqlite.Register(b, catalog.Users); err != nil {
		return err
	}
	if _, err := sqlite.Register(b, catalog.Wallets); err != nil {
		return err
	}
	return nil
}

// attachBackend creates a SQLite backend with the catalog registered and
// attaches it to the configured data directory. The caller must defer
// backend.Detach().
func (a *app) attachBackend() (*sqlite.Backend, error) {
	b := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := registerCatalog(b); err != nil {
		return nil, sysError("register types: %w", err)
	}
	if err := b.Attach(a.config); err != nil {
		return nil, sysError("attach backend: %w", err)
	}
	return b, nil
}

// store attaches the backend and returns the store for typeName.
func (a *app) store(typeName string) (*sqlite.Backend, types.Store, error) {
	b, err := a.attachBackend()
	if err != nil {
		return nil, nil, err
	}
	s, err := b.Store(typeName)
	if err != nil {
		b.Detach()
		if errors.Is(err, types.ErrStoreNotFound) {
			return nil, nil, unknownType(typeName)
		}
		return nil, nil, sysError("open store: %w", err)
	}
	return b, s, nil
}

// descriptor returns the catalog field table called typeName.
func descriptor(typeName string) (reflected.Descriptor, error) {
	d, err := catalog.Registry().Lookup(typeName)
	if err != nil {
		return nil, unknownType(typeName)
	}
	return d, nil
}

func unknownType(typeName string) error {
	return userError("unknown type %q (valid: %v)", typeName, catalog.Registry().Names())
}
