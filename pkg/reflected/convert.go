package reflected

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Null is the canonical string of an absent optional value.
const Null = "NULL"

// DateLayout formats and parses Date values. Dates are always written in UTC;
// the fractional second is trimmed of trailing zeros and optional on input.
const DateLayout = "2006-01-02 15:04:05.999999999"

// Canonical boolean strings.
const (
	True  = "1"
	False = "0"
)

var (
	errNullRequired = errors.New("absent value for a non-optional type")
	errNotBool      = errors.New(`expected "0" or "1"`)
	errValueType    = errors.New("value does not match type")
	errNotVariant   = errors.New("value is not one of the field's variants")
)

// Serialize renders v in the canonical string form of t. For Optional types a
// nil v serializes to Null. Accepted Go values: any integer type for Integer,
// float32/float64 for Float, string for Text, time.Time for Date,
// decimal.Decimal for Decimal, bool for Bool. Custom always fails with
// ErrUnsupported.
func Serialize(v any, t Type) (string, error) {
	if t.IsCustom() {
		return "", fmt.Errorf("serialize %s: %w", t, ErrUnsupported)
	}
	if v == nil {
		if t.IsOptional() {
			return Null, nil
		}
		return "", conversionError(t, "", errNullRequired)
	}

	switch t.Kind() {
	case KindInteger:
		switch n := v.(type) {
		case int:
			return strconv.FormatInt(int64(n), 10), nil
		case int8:
			return strconv.FormatInt(int64(n), 10), nil
		case int16:
			return strconv.FormatInt(int64(n), 10), nil
		case int32:
			return strconv.FormatInt(int64(n), 10), nil
		case int64:
			return strconv.FormatInt(n, 10), nil
		case uint:
			return strconv.FormatUint(uint64(n), 10), nil
		case uint8:
			return strconv.FormatUint(uint64(n), 10), nil
		case uint16:
			return strconv.FormatUint(uint64(n), 10), nil
		case uint32:
			return strconv.FormatUint(uint64(n), 10), nil
		case uint64:
			return strconv.FormatUint(n, 10), nil
		}
	case KindFloat:
		switch f := v.(type) {
		case float32:
			return FormatFloat(float64(f), 32), nil
		case float64:
			return FormatFloat(f, 64), nil
		}
	case KindText:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindDate:
		if d, ok := v.(time.Time); ok {
			return FormatDate(d), nil
		}
	case KindDecimal:
		if d, ok := v.(decimal.Decimal); ok {
			return d.String(), nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return FormatBool(b), nil
		}
	}
	return "", conversionError(t, fmt.Sprintf("%v", v), fmt.Errorf("%w: got %T", errValueType, v))
}

// Deserialize parses s under t. For Optional types Null yields a nil value
// without attempting the inner parse. Results are int64 (or uint64 when the
// value exceeds int64) for Integer, float64 for Float, string for Text,
// time.Time in UTC for Date, decimal.Decimal for Decimal and bool for Bool.
func Deserialize(s string, t Type) (any, error) {
	if t.IsCustom() {
		return nil, fmt.Errorf("deserialize %s: %w", t, ErrUnsupported)
	}
	if t.IsOptional() && s == Null {
		return nil, nil
	}

	switch t.Kind() {
	case KindInteger:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, conversionError(t, s, err)
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, conversionError(t, s, err)
		}
		return f, nil
	case KindText:
		return s, nil
	case KindDate:
		d, err := ParseDate(s)
		if err != nil {
			return nil, conversionError(t, s, err)
		}
		return d, nil
	case KindDecimal:
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, conversionError(t, s, err)
		}
		return d, nil
	case KindBool:
		b, err := ParseBool(s)
		if err != nil {
			return nil, conversionError(t, s, err)
		}
		return b, nil
	}
	return nil, conversionError(t, s, errValueType)
}

// FormatFloat renders f with the shortest representation that round-trips at
// the given bit size, never in exponent form, and always with a decimal point:
// 5 renders as "5.0".
func FormatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if strings.ContainsAny(s, ".NI") {
		// Already fractional, or NaN/±Inf.
		return s
	}
	return s + ".0"
}

// FormatDate renders d in DateLayout after converting it to UTC.
func FormatDate(d time.Time) string {
	return d.UTC().Format(DateLayout)
}

// ParseDate parses s in DateLayout as a UTC time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatBool renders b as "1" or "0".
func FormatBool(b bool) string {
	if b {
		return True
	}
	return False
}

// ParseBool accepts only "1" and "0".
func ParseBool(s string) (bool, error) {
	switch s {
	case True:
		return true, nil
	case False:
		return false, nil
	default:
		return false, errNotBool
	}
}
