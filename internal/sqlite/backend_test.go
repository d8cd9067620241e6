package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
	"github.com/mesh-intelligence/reflected/pkg/types"
)

func TestBackend_Attach(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested", "data")

	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(tmpDir, DatabaseFile))
	assert.NoError(t, err, "database file not created")
	assert.NotNil(t, b.DB())
	assert.Equal(t, config, b.Config())

	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{"empty backend", types.Config{DataDir: t.TempDir()}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "postgres"}, types.ErrBackendUnknown},
		{"unknown log level", types.Config{Backend: "sqlite", LogLevel: "loud"}, types.ErrLogLevelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend()
			assert.ErrorIs(t, b.Attach(tt.config), tt.wantErr)
			assert.Nil(t, b.DB())
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b, ns, _ := newTestBackend(t)

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "detach is idempotent")
	assert.Nil(t, b.DB())

	ctx := context.Background()
	_, err := ns.Insert(ctx, newNote("late"))
	assert.ErrorIs(t, err, types.ErrDetached)
	_, err = ns.Count(ctx)
	assert.ErrorIs(t, err, types.ErrDetached)
	_, err = ns.List(ctx)
	assert.ErrorIs(t, err, types.ErrDetached)
	_, err = ns.Seed(ctx, reflected.NewGenerator(1), 1)
	assert.ErrorIs(t, err, types.ErrDetached)
}

func TestBackend_DataSurvivesReattach(t *testing.T) {
	dir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}
	ctx := context.Background()

	b := NewBackend()
	ns := MustRegister(b, notes)
	require.NoError(t, b.Attach(config))
	id, err := ns.Insert(ctx, newNote("kept"))
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	ns2 := MustRegister(b2, notes)
	require.NoError(t, b2.Attach(config))
	defer b2.Detach()

	got, err := ns2.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
}

func TestBackend_RegisterAfterAttach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer b.Detach()

	ts, err := Register(b, tags)
	require.NoError(t, err)

	n, err := ts.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBackend_RegisterFailureLeavesNoTrace(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer b.Detach()

	db := b.DB()
	_, err := db.Exec(`CREATE TABLE "other" ("x" TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE INDEX "Tag" ON "other" ("x")`)
	require.NoError(t, err)

	_, err = Register(b, tags)
	require.Error(t, err)
	assert.NotErrorIs(t, err, reflected.ErrDuplicateType)
	assert.Empty(t, b.Names())
	_, err = b.Store("Tag")
	assert.ErrorIs(t, err, types.ErrStoreNotFound)

	_, err = db.Exec(`DROP INDEX "Tag"`)
	require.NoError(t, err)

	ts, err := Register(b, tags)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tag"}, b.Names())

	n, err := ts.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBackend_Registry(t *testing.T) {
	b, _, _ := newTestBackend(t)

	assert.Equal(t, []string{"Note", "Tag"}, b.Names())

	s, err := b.Store("Note")
	require.NoError(t, err)
	assert.Equal(t, "Note", s.Descriptor().TypeName())

	d, err := b.Descriptor("Tag")
	require.NoError(t, err)
	assert.Len(t, d.Fields(), 2)

	_, err = b.Store("Ghost")
	assert.ErrorIs(t, err, types.ErrStoreNotFound)

	_, err = Register(b, notes)
	assert.ErrorIs(t, err, reflected.ErrDuplicateType)
}

type textKeyed struct {
	ID string
}

func TestBackend_RegisterRejectsTextIdentifier(t *testing.T) {
	table := reflected.NewTable[textKeyed]("TextKeyed",
		reflected.Text("id", func(k *textKeyed) *string { return &k.ID }),
	)
	_, err := Register(NewBackend(), table)
	assert.ErrorIs(t, err, types.ErrUnsupportedID)
}
