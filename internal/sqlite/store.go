package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
	"github.com/mesh-intelligence/reflected/pkg/types"
)

// Store persists entities of type T in the table named after T's type name.
// All reads and writes go through the field table's accessors.
type Store[T any] struct {
	backend *Backend
	table   *reflected.Table[T]
	id      *reflected.Field
	cols    []*reflected.Field

	insert    string
	upsert    string
	selectAll string
}

func newStore[T any](b *Backend, table *reflected.Table[T]) *Store[T] {
	cols := storedFields(table)
	id := table.IDField()
	name := table.TypeName()
	s := &Store[T]{
		backend:   b,
		table:     table,
		id:        id,
		cols:      cols,
		insert:    insertSQL("INSERT", name, id, cols, false),
		selectAll: selectSQL(name, cols),
	}
	if id != nil {
		s.upsert = upsertSQL(name, id, cols)
	}
	return s
}

// Table returns the field table the store was registered with.
func (s *Store[T]) Table() *reflected.Table[T] { return s.table }

// Descriptor returns the field table as a type-erased descriptor.
func (s *Store[T]) Descriptor() reflected.Descriptor { return s.table }

// createSchema creates the entity table if it does not exist. The caller
// must hold the backend lock.
func (s *Store[T]) createSchema(ctx context.Context) error {
	ddl := createTableSQL(s.table, s.id)
	if _, err := s.backend.db.ExecContext(ctx, ddl); err != nil {
		return err
	}
	s.backend.logger.Debug("schema ready",
		zap.String("type", s.table.TypeName()),
		zap.String("ddl", ddl))
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// args returns the column values of e in column order; absent optionals
// become SQL NULL.
func (s *Store[T]) args(e *T) []any {
	out := make([]any, 0, len(s.cols)+1)
	for _, f := range s.cols {
		v := s.table.GetValue(e, f)
		if f.IsOptional() && v == reflected.Null {
			out = append(out, nil)
			continue
		}
		out = append(out, v)
	}
	return out
}

// insertLocked stores e as a new row and writes the assigned id back into
// its identifier field.
func (s *Store[T]) insertLocked(ctx context.Context, x execer, e *T) (int64, error) {
	res, err := x.ExecContext(ctx, s.insert, s.args(e)...)
	if err != nil {
		return 0, fmt.Errorf("inserting %s: %w", s.table.TypeName(), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading %s id: %w", s.table.TypeName(), err)
	}
	if s.id != nil {
		if err := s.table.SetString(e, s.id, strconv.FormatInt(id, 10)); err != nil {
			return 0, fmt.Errorf("setting %s: %w", s.id, err)
		}
	}
	return id, nil
}

// Insert stores e as a new row and returns its id. When T has an identifier
// field, the id is also written into e.
func (s *Store[T]) Insert(ctx context.Context, e *T) (int64, error) {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	db, err := s.backend.dbLocked()
	if err != nil {
		return 0, err
	}
	return s.insertLocked(ctx, db, e)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scan reads one row produced by selectAll into a new entity.
func (s *Store[T]) scan(row scanner) (*T, int64, error) {
	var id int64
	values := make([]sql.NullString, len(s.cols))
	dest := make([]any, 0, len(s.cols)+1)
	dest = append(dest, &id)
	for i := range values {
		dest = append(dest, &values[i])
	}
	if err := row.Scan(dest...); err != nil {
		return nil, 0, err
	}

	e := s.table.New()
	if s.id != nil {
		if err := s.table.SetString(e, s.id, strconv.FormatInt(id, 10)); err != nil {
			return nil, 0, fmt.Errorf("setting %s: %w", s.id, err)
		}
	}
	for i, f := range s.cols {
		var v *string
		if values[i].Valid {
			v = &values[i].String
		} else if !f.IsOptional() {
			return nil, 0, fmt.Errorf("row %d: %s is NULL", id, f)
		}
		if err := s.table.SetValue(e, f, v); err != nil {
			return nil, 0, fmt.Errorf("row %d: %w", id, err)
		}
	}
	return e, id, nil
}

// Get returns the entity with the given id.
// Returns ErrNotFound if no entity has that id.
func (s *Store[T]) Get(ctx context.Context, id int64) (*T, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()

	db, err := s.backend.dbLocked()
	if err != nil {
		return nil, err
	}
	row := db.QueryRowContext(ctx, s.selectAll+" WHERE "+rowIDColumn+" = ?", id)
	e, _, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %d: %w", s.table.TypeName(), id, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s %d: %w", s.table.TypeName(), id, err)
	}
	return e, nil
}

// List returns every stored entity in id order.
func (s *Store[T]) List(ctx context.Context) ([]*T, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()

	entities, _, err := s.listLocked(ctx)
	return entities, err
}

func (s *Store[T]) listLocked(ctx context.Context) ([]*T, []int64, error) {
	db, err := s.backend.dbLocked()
	if err != nil {
		return nil, nil, err
	}
	rows, err := db.QueryContext(ctx, s.selectAll+" ORDER BY "+rowIDColumn)
	if err != nil {
		return nil, nil, fmt.Errorf("listing %s: %w", s.table.TypeName(), err)
	}
	defer rows.Close()

	var (
		entities []*T
		ids      []int64
	)
	for rows.Next() {
		e, id, err := s.scan(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("listing %s: %w", s.table.TypeName(), err)
		}
		entities = append(entities, e)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("listing %s: %w", s.table.TypeName(), err)
	}
	return entities, ids, nil
}

// Delete removes the entity with the given id.
// Returns ErrNotFound if no entity has that id.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	db, err := s.backend.dbLocked()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx,
		"DELETE FROM "+quoteIdent(s.table.TypeName())+" WHERE "+rowIDColumn+" = ?", id)
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", s.table.TypeName(), id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", s.table.TypeName(), id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", s.table.TypeName(), id, types.ErrNotFound)
	}
	return nil
}

// Count returns the number of stored entities.
func (s *Store[T]) Count(ctx context.Context) (int, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()

	db, err := s.backend.dbLocked()
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(s.table.TypeName())).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", s.table.TypeName(), err)
	}
	return n, nil
}

// row converts e to its type-erased Row form.
func (s *Store[T]) row(e *T) types.Row {
	out := make(types.Row, len(s.table.Fields()))
	for _, f := range s.table.Fields() {
		if f.IsCustom() {
			continue
		}
		v := s.table.GetValue(e, f)
		if f.IsOptional() && v == reflected.Null {
			out[f.Name] = nil
			continue
		}
		out[f.Name] = &v
	}
	return out
}

// Rows returns every stored entity as a Row, in id order.
func (s *Store[T]) Rows(ctx context.Context) ([]types.Row, error) {
	entities, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Row, len(entities))
	for i, e := range entities {
		out[i] = s.row(e)
	}
	return out, nil
}

var _ types.Store = (*Store[struct{}])(nil)
