package reflected_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
)

func TestSerialize(t *testing.T) {
	date := time.Date(2024, 3, 9, 14, 5, 7, 120000000, time.UTC)

	tests := []struct {
		name  string
		value any
		typ   reflected.Type
		want  string
	}{
		{"integer", int64(19), reflected.TypeInteger, "19"},
		{"negative integer", -42, reflected.TypeInteger, "-42"},
		{"unsigned integer", uint64(18446744073709551615), reflected.TypeInteger, "18446744073709551615"},
		{"integral float keeps fraction", 5.0, reflected.TypeFloat, "5.0"},
		{"fractional float", 0.42332, reflected.TypeFloat, "0.42332"},
		{"float32", float32(0.1), reflected.TypeFloat, "0.1"},
		{"large float has no exponent", 1e21, reflected.TypeFloat, "1000000000000000000000.0"},
		{"text unchanged", "it's \"quoted\"", reflected.TypeText, "it's \"quoted\""},
		{"date", date, reflected.TypeDate, "2024-03-09 14:05:07.12"},
		{"date without fraction", date.Truncate(time.Second), reflected.TypeDate, "2024-03-09 14:05:07"},
		{"decimal", mustDecimal("100.25"), reflected.TypeDecimal, "100.25"},
		{"decimal trailing zeros trimmed", mustDecimal("100.50"), reflected.TypeDecimal, "100.5"},
		{"true", true, reflected.TypeBool, "1"},
		{"false", false, reflected.TypeBool, "0"},
		{"present optional", int64(7), reflected.Optional(reflected.TypeInteger), "7"},
		{"absent optional", nil, reflected.Optional(reflected.TypeDecimal), "NULL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reflected.Serialize(tt.value, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializeDateConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	d := time.Date(2024, 1, 1, 2, 0, 0, 0, loc)

	got, err := reflected.Serialize(d, reflected.TypeDate)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 00:00:00", got)
}

func TestSerializeErrors(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		typ     reflected.Type
		wantErr error
	}{
		{"custom unsupported", struct{}{}, reflected.TypeCustom, reflected.ErrUnsupported},
		{"nil for required", nil, reflected.TypeInteger, reflected.ErrConversion},
		{"wrong go type", "5", reflected.TypeInteger, reflected.ErrConversion},
		{"int for bool", 1, reflected.TypeBool, reflected.ErrConversion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reflected.Serialize(tt.value, tt.typ)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeserialize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		typ   reflected.Type
		want  any
	}{
		{"integer", "19", reflected.TypeInteger, int64(19)},
		{"beyond int64", "18446744073709551615", reflected.TypeInteger, uint64(18446744073709551615)},
		{"float", "5.0", reflected.TypeFloat, 5.0},
		{"float from integer text", "123", reflected.TypeFloat, 123.0},
		{"text", "NULL", reflected.TypeText, "NULL"},
		{"date", "2024-03-09 14:05:07.12", reflected.TypeDate, time.Date(2024, 3, 9, 14, 5, 7, 120000000, time.UTC)},
		{"bool", "1", reflected.TypeBool, true},
		{"optional present", "stre", reflected.Optional(reflected.TypeText), "stre"},
		{"optional absent", "NULL", reflected.Optional(reflected.TypeInteger), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reflected.Deserialize(tt.input, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeserializeDecimal(t *testing.T) {
	got, err := reflected.Deserialize("100.71", reflected.TypeDecimal)
	require.NoError(t, err)
	d, ok := got.(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, d.Equal(mustDecimal("100.71")))
}

func TestDeserializeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		typ   reflected.Type
	}{
		{"letters as integer", "abc", reflected.TypeInteger},
		{"fraction as integer", "1.5", reflected.TypeInteger},
		{"letters as float", "x1", reflected.TypeFloat},
		{"true as bool", "true", reflected.TypeBool},
		{"two as bool", "2", reflected.TypeBool},
		{"rfc3339 as date", "2024-03-09T14:05:07Z", reflected.TypeDate},
		{"bad decimal", "1.2.3", reflected.TypeDecimal},
		{"null for required integer", "NULL", reflected.TypeInteger},
		{"bad optional inner", "abc", reflected.Optional(reflected.TypeInteger)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reflected.Deserialize(tt.input, tt.typ)
			require.Error(t, err)
			assert.ErrorIs(t, err, reflected.ErrConversion)

			var convErr *reflected.ConversionError
			require.True(t, errors.As(err, &convErr))
			assert.Equal(t, tt.input, convErr.Input)
			assert.Equal(t, tt.typ, convErr.Type)
		})
	}
}

func TestDeserializeCustomUnsupported(t *testing.T) {
	_, err := reflected.Deserialize("x", reflected.TypeCustom)
	assert.ErrorIs(t, err, reflected.ErrUnsupported)
}

func TestRoundTrip(t *testing.T) {
	values := []struct {
		name  string
		value any
		typ   reflected.Type
	}{
		{"integer", int64(-9000), reflected.TypeInteger},
		{"float", 0.1 + 0.2, reflected.TypeFloat},
		{"tiny float", 1e-7, reflected.TypeFloat},
		{"text", "hello world", reflected.TypeText},
		{"date", time.Date(1999, 12, 31, 23, 59, 59, 999999999, time.UTC), reflected.TypeDate},
		{"decimal", mustDecimal("-3.14159"), reflected.TypeDecimal},
		{"bool", true, reflected.TypeBool},
		{"optional absent", nil, reflected.Optional(reflected.TypeDate)},
		{"optional present", "x", reflected.Optional(reflected.TypeText)},
	}
	for _, tt := range values {
		t.Run(tt.name, func(t *testing.T) {
			s, err := reflected.Serialize(tt.value, tt.typ)
			require.NoError(t, err)
			back, err := reflected.Deserialize(s, tt.typ)
			require.NoError(t, err)

			switch want := tt.value.(type) {
			case decimal.Decimal:
				assert.True(t, want.Equal(back.(decimal.Decimal)))
			case time.Time:
				assert.True(t, want.Equal(back.(time.Time)))
			default:
				assert.Equal(t, tt.value, back)
			}
		})
	}
}

func TestOptionalNullLaw(t *testing.T) {
	kinds := []reflected.Type{
		reflected.TypeFloat, reflected.TypeInteger, reflected.TypeText,
		reflected.TypeDate, reflected.TypeDecimal, reflected.TypeBool,
	}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			opt := reflected.Optional(k)
			s, err := reflected.Serialize(nil, opt)
			require.NoError(t, err)
			assert.Equal(t, reflected.Null, s)

			v, err := reflected.Deserialize(reflected.Null, opt)
			require.NoError(t, err)
			assert.Nil(t, v)
		})
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "5.0", reflected.FormatFloat(5, 64))
	assert.Equal(t, "0.42332", reflected.FormatFloat(0.42332, 64))
	assert.Equal(t, "-3.0", reflected.FormatFloat(-3, 64))
	assert.Equal(t, "0.0", reflected.FormatFloat(0, 64))
	assert.Equal(t, "NaN", reflected.FormatFloat(math.NaN(), 64))
}
