package sqlite

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
	"github.com/mesh-intelligence/reflected/pkg/types"
)

type attachment struct {
	Path string
}

type note struct {
	ID         int64
	Title      string
	Body       *string
	Price      decimal.Decimal
	Weight     float64
	Done       bool
	Created    time.Time
	OwnerID    uint64
	Attachment attachment
}

var notes = reflected.NewTable[note]("Note",
	reflected.Integer("id", func(n *note) *int64 { return &n.ID }),
	reflected.Text("title", func(n *note) *string { return &n.Title }, reflected.Unique()),
	reflected.OptionalText("body", func(n *note) **string { return &n.Body }),
	reflected.Decimal("price", func(n *note) *decimal.Decimal { return &n.Price }),
	reflected.Float("weight", func(n *note) *float64 { return &n.Weight }),
	reflected.Bool("done", func(n *note) *bool { return &n.Done }),
	reflected.Date("created", func(n *note) *time.Time { return &n.Created }),
	reflected.Integer("owner_id", func(n *note) *uint64 { return &n.OwnerID }),
	reflected.Custom[note]("attachment"),
)

type tag struct {
	Label string
	Score *int
}

var tags = reflected.NewTable[tag]("Tag",
	reflected.Text("label", func(g *tag) *string { return &g.Label }),
	reflected.OptionalInteger("score", func(g *tag) **int { return &g.Score }),
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 600000000, time.UTC)

// newTestBackend returns an attached backend in a temp dir with notes and
// tags registered.
func newTestBackend(t *testing.T) (*Backend, *Store[note], *Store[tag]) {
	t.Helper()

	b := NewBackend(WithLogger(zaptest.NewLogger(t)))
	ns, err := Register(b, notes)
	require.NoError(t, err)
	ts, err := Register(b, tags)
	require.NoError(t, err)

	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b, ns, ts
}

func newNote(title string) *note {
	return &note{
		Title:   title,
		Price:   decimal.RequireFromString("12.50"),
		Weight:  0.25,
		Created: fixedNow,
		OwnerID: 7,
	}
}

func ptr[V any](v V) *V { return &v }
