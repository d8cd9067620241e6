package reflected

import (
	"errors"
	"fmt"
)

// Conversion and contract errors.
var (
	// ErrConversion is wrapped by every ConversionError.
	ErrConversion = errors.New("conversion failed")

	// ErrUnsupported is returned when a Custom value is routed through the
	// string conversion layer.
	ErrUnsupported = errors.New("custom values have no string form")

	// ErrContract marks programmer errors: unknown fields, custom fields read
	// as strings, NULL written to a required field, malformed field tables.
	// Panics raised by this package carry an error wrapping ErrContract.
	ErrContract = errors.New("reflection contract violated")

	// ErrDuplicateType is returned by Registry.Register for a type name that
	// is already registered.
	ErrDuplicateType = errors.New("entity type already registered")

	// ErrUnknownType is returned by Registry.Lookup for an unregistered name.
	ErrUnknownType = errors.New("unknown entity type")
)

// ConversionError reports an input string that does not parse under a Type.
type ConversionError struct {
	Type  Type
	Input string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("convert %q to %s", e.Input, e.Type)
	}
	return fmt.Sprintf("convert %q to %s: %v", e.Input, e.Type, e.Err)
}

// Unwrap exposes both ErrConversion and the underlying parse error.
func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConversion}
	}
	return []error{ErrConversion, e.Err}
}

func conversionError(t Type, input string, err error) error {
	return &ConversionError{Type: t, Input: input, Err: err}
}

// contractf builds the value carried by contract-violation panics.
func contractf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContract, fmt.Sprintf(format, args...))
}
