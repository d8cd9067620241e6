package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
	"github.com/mesh-intelligence/reflected/pkg/types"
)

func TestStore_Seed(t *testing.T) {
	_, ns, ts := newTestBackend(t)
	ctx := context.Background()

	report, err := ns.Seed(ctx, reflected.NewGenerator(42), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, report.Inserted)
	assert.Equal(t, "Note", report.TypeName)

	runID, err := uuid.Parse(report.RunID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), runID.Version())

	n, err := ns.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	list, err := ns.List(ctx)
	require.NoError(t, err)
	for _, e := range list {
		assert.NotZero(t, e.ID)
		assert.Zero(t, e.OwnerID, "foreign keys are not randomized")
		assert.Len(t, e.Title, reflected.RandomTextLength)
	}

	_, err = ts.Seed(ctx, reflected.NewGenerator(1), 10)
	require.NoError(t, err)
	n, err = ts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestStore_SeedIsDeterministic(t *testing.T) {
	ctx := context.Background()
	seeded := func() []types.Row {
		_, _, ts := newTestBackend(t)
		_, err := ts.Seed(ctx, reflected.NewGenerator(9), 5)
		require.NoError(t, err)
		rows, err := ts.Rows(ctx)
		require.NoError(t, err)
		return rows
	}
	assert.Equal(t, seeded(), seeded())
}

func TestStore_SeedZeroAndNegative(t *testing.T) {
	_, ns, _ := newTestBackend(t)
	ctx := context.Background()

	report, err := ns.Seed(ctx, reflected.NewGenerator(1), 0)
	require.NoError(t, err)
	assert.Zero(t, report.Inserted)

	_, err = ns.Seed(ctx, reflected.NewGenerator(1), -1)
	assert.ErrorIs(t, err, types.ErrInvalidCount)
}

func TestNewRunIDIsUnique(t *testing.T) {
	assert.NotEqual(t, newRunID(), newRunID())
}
