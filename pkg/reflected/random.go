package reflected

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Random value bounds.
const (
	RandomTextLength = 8
	RandomIntegerMax = 1_000_000_000
	RandomScaleMin   = 1
	RandomScaleMax   = 5
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generator produces random canonical strings for field types. A Generator
// is not safe for concurrent use; give each goroutine its own.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns a generator seeded with seed. Two generators with the
// same seed and clock produce the same sequence.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
}

// NewRandomGenerator returns a generator with an unpredictable seed.
func NewRandomGenerator() *Generator {
	return NewGenerator(rand.Uint64())
}

// WithClock sets the source of Date values and returns g.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Value returns a random canonical string for t, or nil for an absent
// optional value. Optional types are absent with probability one half.
// Custom types have no random form and panic.
func (g *Generator) Value(t Type) *string {
	if t.IsOptional() && g.rng.IntN(2) == 0 {
		return nil
	}
	s := g.plain(t.Inner())
	return &s
}

// ValueFor is Value for f's type, picking among f's variants when it has them.
func (g *Generator) ValueFor(f *Field) *string {
	if !f.HasVariants() {
		return g.Value(f.Type)
	}
	if f.IsOptional() && g.rng.IntN(2) == 0 {
		return nil
	}
	s := f.Variants[g.rng.IntN(len(f.Variants))]
	return &s
}

func (g *Generator) plain(t Type) string {
	switch t.Kind() {
	case KindText:
		return g.Text(RandomTextLength)
	case KindInteger, KindFloat:
		return strconv.Itoa(g.rng.IntN(RandomIntegerMax))
	case KindDate:
		return FormatDate(g.now())
	case KindDecimal:
		scale := RandomScaleMin + g.rng.IntN(RandomScaleMax-RandomScaleMin+1)
		return decimal.New(int64(g.rng.Uint32()), -int32(scale)).String()
	case KindBool:
		return strconv.Itoa(g.rng.IntN(2))
	default:
		panic(contractf("no random value for %s", t))
	}
}

// Text returns n random alphanumeric characters.
func (g *Generator) Text(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[g.rng.IntN(len(alphanumeric))]
	}
	return string(b)
}

// Uint64 returns a random value, e.g. to derive a seed for another generator.
func (g *Generator) Uint64() uint64 {
	return g.rng.Uint64()
}
