// Package reflectedtest provides test assertions over reflected entities.
package reflectedtest

import (
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
)

// AssertEqual fails the test immediately unless a and b are equal under
// reflected.Compare: exact canonical strings, with float and decimal fields
// allowed to differ by reflected.Tolerance.
func AssertEqual[T any](t require.TestingT, table *reflected.Table[T], a, b *T, msgAndArgs ...any) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if err := reflected.Compare(table, a, b); err != nil {
		require.Fail(t, "Reflected eq error: "+err.Error(), msgAndArgs...)
	}
}

// AssertRoundTrip fails the test unless every non-custom field of e reads
// back the same canonical string after being written into a fresh instance.
func AssertRoundTrip[T any](t require.TestingT, table *reflected.Table[T], e *T) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	fresh := table.New()
	for _, f := range table.Fields() {
		if f.IsCustom() {
			continue
		}
		s := table.GetValue(e, f)
		var v *string
		if !(f.IsOptional() && s == reflected.Null) {
			v = &s
		}
		require.NoError(t, table.SetValue(fresh, f, v), "set %s", f)
		require.Equal(t, s, table.GetValue(fresh, f), "round trip of %s", f)
	}
}
