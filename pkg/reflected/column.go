package reflected

import (
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// Column declares one field of an entity type T: its name, Type, attributes,
// and the pair of accessors that read and write its slot as a canonical
// string. Columns are what a code generator emits; NewTable turns them into
// the field table.
type Column[T any] struct {
	name  string
	typ   Type
	opts  columnOptions
	read  func(*T) string
	write func(*T, *string) error
}

// Name returns the declared field name.
func (c Column[T]) Name() string { return c.name }

// Type returns the declared field type.
func (c Column[T]) Type() Type { return c.typ }

type columnOptions struct {
	role     Role
	unique   bool
	secure   bool
	variants []string
}

// Option sets a declared attribute on a column.
type Option func(*columnOptions)

// Unique marks the field as unique within its entity type.
func Unique() Option {
	return func(o *columnOptions) { o.unique = true }
}

// Secure marks the field as holding sensitive data. It does not change the
// field's role: an "id" or "owner_id" field marked secure stays an identifier
// or foreign key.
func Secure() Option {
	return func(o *columnOptions) { o.secure = true }
}

// ID marks the field as the entity's identifier.
func ID() Option {
	return func(o *columnOptions) { o.role = RoleID }
}

// ForeignKey marks the field as a reference to another entity.
func ForeignKey() Option {
	return func(o *columnOptions) { o.role = RoleForeignKey }
}

// Plain opts the field out of name-based role conventions, e.g. for a text
// field called "steam_id" that is not a reference.
func Plain() Option {
	return func(o *columnOptions) { o.role = RolePlain }
}

// Variants restricts a Text field to the listed values.
func Variants(values ...string) Option {
	return func(o *columnOptions) { o.variants = append([]string(nil), values...) }
}

// integer lists the Go integer types reflected as Integer.
type integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Text declares a string field.
func Text[T any](name string, slot func(*T) *string, opts ...Option) Column[T] {
	return scalar(name, TypeText, slot, identity, parseText, opts)
}

// OptionalText declares a *string field; nil is NULL.
func OptionalText[T any](name string, slot func(*T) **string, opts ...Option) Column[T] {
	return optional(name, TypeText, slot, identity, parseText, opts)
}

// Integer declares a field of any int or uint type at least 32 bits wide.
func Integer[T any, N integer](name string, slot func(*T) *N, opts ...Option) Column[T] {
	return scalar(name, TypeInteger, slot, formatInteger[N], parseInteger[N], opts)
}

// OptionalInteger declares a pointer-to-integer field; nil is NULL.
func OptionalInteger[T any, N integer](name string, slot func(*T) **N, opts ...Option) Column[T] {
	return optional(name, TypeInteger, slot, formatInteger[N], parseInteger[N], opts)
}

// Float declares a float32 or float64 field.
func Float[T any, F constraints.Float](name string, slot func(*T) *F, opts ...Option) Column[T] {
	format, parse := floatCodec[F]()
	return scalar(name, TypeFloat, slot, format, parse, opts)
}

// OptionalFloat declares a pointer-to-float field; nil is NULL.
func OptionalFloat[T any, F constraints.Float](name string, slot func(*T) **F, opts ...Option) Column[T] {
	format, parse := floatCodec[F]()
	return optional(name, TypeFloat, slot, format, parse, opts)
}

// Date declares a time.Time field.
func Date[T any](name string, slot func(*T) *time.Time, opts ...Option) Column[T] {
	return scalar(name, TypeDate, slot, FormatDate, ParseDate, opts)
}

// OptionalDate declares a *time.Time field; nil is NULL.
func OptionalDate[T any](name string, slot func(*T) **time.Time, opts ...Option) Column[T] {
	return optional(name, TypeDate, slot, FormatDate, ParseDate, opts)
}

// Decimal declares a decimal.Decimal field.
func Decimal[T any](name string, slot func(*T) *decimal.Decimal, opts ...Option) Column[T] {
	return scalar(name, TypeDecimal, slot, decimal.Decimal.String, decimal.NewFromString, opts)
}

// OptionalDecimal declares a *decimal.Decimal field; nil is NULL.
func OptionalDecimal[T any](name string, slot func(*T) **decimal.Decimal, opts ...Option) Column[T] {
	return optional(name, TypeDecimal, slot, decimal.Decimal.String, decimal.NewFromString, opts)
}

// Bool declares a bool field.
func Bool[T any](name string, slot func(*T) *bool, opts ...Option) Column[T] {
	return scalar(name, TypeBool, slot, FormatBool, ParseBool, opts)
}

// OptionalBool declares a *bool field; nil is NULL.
func OptionalBool[T any](name string, slot func(*T) **bool, opts ...Option) Column[T] {
	return optional(name, TypeBool, slot, FormatBool, ParseBool, opts)
}

// Custom declares an opaque field with no string form. It is listed in the
// field table but never read or written through the accessors.
func Custom[T any](name string, opts ...Option) Column[T] {
	return Column[T]{name: name, typ: TypeCustom, opts: applyOptions(opts)}
}

func scalar[T, V any](name string, t Type, slot func(*T) *V, format func(V) string, parse func(string) (V, error), opts []Option) Column[T] {
	return Column[T]{
		name: name,
		typ:  t,
		opts: applyOptions(opts),
		read: func(e *T) string {
			return format(*slot(e))
		},
		write: func(e *T, s *string) error {
			v, err := parse(*s)
			if err != nil {
				return conversionError(t, *s, err)
			}
			*slot(e) = v
			return nil
		},
	}
}

func optional[T, V any](name string, inner Type, slot func(*T) **V, format func(V) string, parse func(string) (V, error), opts []Option) Column[T] {
	t := inner.ToOptional()
	return Column[T]{
		name: name,
		typ:  t,
		opts: applyOptions(opts),
		read: func(e *T) string {
			p := *slot(e)
			if p == nil {
				return Null
			}
			return format(*p)
		},
		write: func(e *T, s *string) error {
			if s == nil || *s == Null {
				*slot(e) = nil
				return nil
			}
			v, err := parse(*s)
			if err != nil {
				return conversionError(t, *s, err)
			}
			*slot(e) = &v
			return nil
		},
	}
}

func applyOptions(opts []Option) columnOptions {
	var o columnOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func identity(s string) string { return s }

func parseText(s string) (string, error) { return s, nil }

func formatInteger[N integer](n N) string {
	if n < 0 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatUint(uint64(n), 10)
}

func parseInteger[N integer](s string) (N, error) {
	var zero N
	bits := reflect.TypeFor[N]().Bits()
	if ^zero < 0 {
		v, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return zero, err
		}
		return N(v), nil
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return zero, err
	}
	return N(v), nil
}

// floatCodec returns formatter and parser for F at its own precision, so a
// float32 field round-trips through its shortest float32 representation.
func floatCodec[F constraints.Float]() (func(F) string, func(string) (F, error)) {
	bits := reflect.TypeFor[F]().Bits()
	format := func(f F) string {
		return FormatFloat(float64(f), bits)
	}
	parse := func(s string) (F, error) {
		v, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return 0, err
		}
		return F(v), nil
	}
	return format, parse
}
