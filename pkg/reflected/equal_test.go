package reflected_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
	"github.com/mesh-intelligence/reflected/pkg/reflected/reflectedtest"
)

func TestCompareTolerance(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		equal bool
	}{
		{"identical", "100.25", "100.25", true},
		{"within tolerance", "100.25", "100.2505", true},
		{"exactly tolerance", "100.25", "100.251", true},
		{"beyond tolerance", "100.25", "100.2511", false},
		{"negative side", "-1", "-1.001", true},
		{"far apart", "1", "2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a, b user
			require.NoError(t, users.SetString(&a, users.FieldByName("cash"), tt.left))
			require.NoError(t, users.SetString(&b, users.FieldByName("cash"), tt.right))
			assert.Equal(t, tt.equal, reflected.Equal(users, &a, &b))

			var m, n measurement
			require.NoError(t, measurements.SetString(&m, measurements.FieldByName("ratio"), tt.left))
			require.NoError(t, measurements.SetString(&n, measurements.FieldByName("ratio"), tt.right))
			assert.Equal(t, tt.equal, reflected.Equal(measurements, &m, &n))
		})
	}
}

func TestCompareNull(t *testing.T) {
	a := user{DecimalOpt: ptr(mustDecimal("0"))}
	b := user{}
	assert.False(t, reflected.Equal(users, &a, &b))
	assert.True(t, reflected.Equal(users, &b, &user{}))
}

func TestCompareTextIsExact(t *testing.T) {
	a := user{Name: "peter"}
	b := user{Name: "Peter"}

	err := reflected.Compare(users, &a, &b)
	require.Error(t, err)

	var mismatch *reflected.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "name", mismatch.Field.Name)
	assert.Equal(t, "peter", mismatch.Left)
	assert.Equal(t, "Peter", mismatch.Right)
	assert.Contains(t, err.Error(), "User.name")
}

func TestCompareReportsFirstMismatch(t *testing.T) {
	a := user{Age: 1, IsPoros: true}
	b := user{Age: 2, IsPoros: false}

	var mismatch *reflected.MismatchError
	require.ErrorAs(t, reflected.Compare(users, &a, &b), &mismatch)
	assert.Equal(t, "age", mismatch.Field.Name)
}

func TestCompareSkipsCustom(t *testing.T) {
	a := user{Custom: customField{Tag: "a"}}
	b := user{Custom: customField{Tag: "b"}}
	assert.NoError(t, reflected.Compare(users, &a, &b))
}

func TestCompareIsReflexiveForRandomInstances(t *testing.T) {
	gen := reflected.NewGenerator(2024)
	for range 20 {
		u := users.Random(gen)
		reflectedtest.AssertEqual(t, users, u, u)
	}
}
