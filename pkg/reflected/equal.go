package reflected

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tolerance is the largest difference at which two float or decimal field
// values still compare equal.
var Tolerance = decimal.New(1, -3)

// MismatchError reports the first field at which two instances differ.
type MismatchError struct {
	Field *Field
	Left  string
	Right string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("field %s differs: left %q, right %q", e.Field, e.Left, e.Right)
}

// Compare checks a and b field by field in declaration order and returns a
// *MismatchError for the first difference, or nil. Float and decimal fields
// are equal when their values differ by at most Tolerance; NULL equals only
// NULL. Every other field must match its canonical string exactly. Custom
// fields are skipped.
func Compare[T any](t *Table[T], a, b *T) error {
	for _, f := range t.Fields() {
		if f.IsCustom() {
			continue
		}
		left, right := t.GetValue(a, f), t.GetValue(b, f)
		if equalValues(f, left, right) {
			continue
		}
		return &MismatchError{Field: f, Left: left, Right: right}
	}
	return nil
}

// Equal reports whether Compare finds no difference.
func Equal[T any](t *Table[T], a, b *T) bool {
	return Compare(t, a, b) == nil
}

func equalValues(f *Field, left, right string) bool {
	if left == right {
		return true
	}
	if !f.IsFloat() && !f.IsDecimal() {
		return false
	}
	if left == Null || right == Null {
		return false
	}
	// Compared as exact decimals so a difference of exactly Tolerance is
	// not pushed over the bound by binary float rounding.
	l, err := decimal.NewFromString(left)
	if err != nil {
		return false
	}
	r, err := decimal.NewFromString(right)
	if err != nil {
		return false
	}
	return l.Sub(r).Abs().LessThanOrEqual(Tolerance)
}
