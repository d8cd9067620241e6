package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
	"github.com/mesh-intelligence/reflected/pkg/types"
)

// newRunID generates a UUID v7 identifying one seeding run.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// Seed inserts n random entities drawn from gen in one transaction. Either all
// n are stored or none are. Random text may collide with a unique column, in
// which case the whole run fails.
func (s *Store[T]) Seed(ctx context.Context, gen *reflected.Generator, n int) (types.SeedReport, error) {
	report := types.SeedReport{
		RunID:    newRunID(),
		TypeName: s.table.TypeName(),
	}
	if n < 0 {
		return report, types.ErrInvalidCount
	}

	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	db, err := s.backend.dbLocked()
	if err != nil {
		return report, err
	}

	start := time.Now()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < n; i++ {
		if _, err := s.insertLocked(ctx, tx, s.table.Random(gen)); err != nil {
			return report, fmt.Errorf("seeding %s %d of %d: %w", s.table.TypeName(), i+1, n, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("committing seed transaction: %w", err)
	}

	report.Inserted = n
	report.Elapsed = time.Since(start)
	s.backend.logger.Info("seeded",
		zap.String("run_id", report.RunID),
		zap.String("type", report.TypeName),
		zap.Int("inserted", report.Inserted),
		zap.Duration("elapsed", report.Elapsed))
	return report, nil
}
