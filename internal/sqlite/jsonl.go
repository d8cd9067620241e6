package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/reflected/pkg/types"
)

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		records = append(records, json.RawMessage(append([]byte(nil), line...)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern. The target is never left half written.
func writeJSONL(path string, records []json.RawMessage) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err = w.Write(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err = w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Export writes every stored entity to path as one JSON object per line,
// mapping field names to canonical strings and absent optionals to null.
// Custom fields are not exported.
func (s *Store[T]) Export(ctx context.Context, path string) (int, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return 0, err
	}

	records := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return 0, fmt.Errorf("marshaling %s: %w", s.table.TypeName(), err)
		}
		records = append(records, data)
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, fmt.Errorf("exporting %s: %w", s.table.TypeName(), err)
	}

	s.backend.logger.Info("exported",
		zap.String("type", s.table.TypeName()),
		zap.String("path", path),
		zap.Int("records", len(records)))
	return len(records), nil
}

// Import loads the records of a file written by Export. Keys that name no
// field are ignored and missing optional fields are absent. Records carrying
// an identifier update the stored entity with that id; the rest are
// inserted with a new id. A record that collides with a different entity on
// a unique field is skipped. Malformed lines, records missing a required field,
// and records that fail conversion or a constraint are skipped.
func (s *Store[T]) Import(ctx context.Context, path string) (int, error) {
	records, err := readJSONL(path)
	if err != nil {
		return 0, err
	}

	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	db, err := s.backend.dbLocked()
	if err != nil {
		return 0, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	imported, skipped := 0, 0
	for line, rec := range records {
		var row types.Row
		if err := json.Unmarshal(rec, &row); err != nil {
			skipped++
			continue
		}
		if err := s.importRow(ctx, tx, row); err != nil {
			s.backend.logger.Debug("skipping record",
				zap.String("type", s.table.TypeName()),
				zap.Int("record", line+1),
				zap.Error(err))
			skipped++
			continue
		}
		imported++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import transaction: %w", err)
	}

	s.backend.logger.Info("imported",
		zap.String("type", s.table.TypeName()),
		zap.String("path", path),
		zap.Int("records", imported),
		zap.Int("skipped", skipped))
	return imported, nil
}

// importRow builds an entity from row and stores it.
func (s *Store[T]) importRow(ctx context.Context, x execer, row types.Row) error {
	e := s.table.New()
	for _, f := range s.cols {
		v, ok := row[f.Name]
		if (!ok || v == nil) && !f.IsOptional() {
			return fmt.Errorf("%s is missing", f)
		}
		if err := s.table.SetValue(e, f, v); err != nil {
			return err
		}
	}

	var idValue *string
	if s.id != nil {
		idValue = row[s.id.Name]
	}
	if idValue == nil {
		_, err := s.insertLocked(ctx, x, e)
		return err
	}

	id, err := strconv.ParseInt(*idValue, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", s.id, types.ErrInvalidID)
	}
	if err := s.table.SetString(e, s.id, *idValue); err != nil {
		return err
	}
	args := append([]any{id}, s.args(e)...)
	if _, err := x.ExecContext(ctx, s.upsert, args...); err != nil {
		return fmt.Errorf("inserting %s: %w", s.table.TypeName(), err)
	}
	return nil
}
