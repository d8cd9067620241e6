package reflected

import "fmt"

// Kind is one of the scalar value kinds a field can hold.
type Kind uint8

// Value kinds. KindInvalid is the zero value and never appears in a valid Type.
const (
	KindInvalid Kind = iota
	KindFloat
	KindInteger
	KindText
	KindDate
	KindDecimal
	KindBool
	KindCustom
)

var kindNames = map[Kind]string{
	KindFloat:   "Float",
	KindInteger: "Integer",
	KindText:    "Text",
	KindDate:    "Date",
	KindDecimal: "Decimal",
	KindBool:    "Bool",
	KindCustom:  "Custom",
}

// String returns the kind name, e.g. "Decimal".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// optionable reports whether k may be wrapped by Optional.
func (k Kind) optionable() bool {
	return k >= KindFloat && k <= KindBool
}

// Type is a field's value type: either a plain kind or Optional(kind).
// The optional wrapper is a separate tag rather than a flag so that the
// kind predicates unwrap it transparently while IsOptional sees the outer tag.
type Type struct {
	optional bool
	kind     Kind
}

// Plain types.
var (
	TypeFloat   = Type{kind: KindFloat}
	TypeInteger = Type{kind: KindInteger}
	TypeText    = Type{kind: KindText}
	TypeDate    = Type{kind: KindDate}
	TypeDecimal = Type{kind: KindDecimal}
	TypeBool    = Type{kind: KindBool}
	TypeCustom  = Type{kind: KindCustom}
)

// Optional wraps a plain, non-custom type. It panics for Custom or for a type
// that is already optional.
func Optional(inner Type) Type {
	return inner.ToOptional()
}

// ToOptional returns Optional(t). It panics when t is Custom or already optional.
func (t Type) ToOptional() Type {
	if t.optional {
		panic(contractf("cannot wrap %s in Optional: already optional", t))
	}
	if !t.kind.optionable() {
		panic(contractf("cannot wrap %s in Optional", t))
	}
	return Type{optional: true, kind: t.kind}
}

// Kind returns the underlying kind, unwrapping Optional.
func (t Type) Kind() Kind {
	return t.kind
}

// Inner returns the plain type wrapped by Optional, or t itself when t is plain.
func (t Type) Inner() Type {
	return Type{kind: t.kind}
}

// IsType reports whether t equals candidate after unwrapping Optional on t,
// so Optional(TypeInteger).IsType(TypeInteger) is true.
func (t Type) IsType(candidate Type) bool {
	if t == candidate {
		return true
	}
	return t.optional && !candidate.optional && t.kind == candidate.kind
}

// IsValid reports whether t was built from one of the package's types.
func (t Type) IsValid() bool {
	if t.optional {
		return t.kind.optionable()
	}
	return t.kind != KindInvalid && t.kind <= KindCustom
}

func (t Type) IsFloat() bool { return t.kind == KindFloat }
func (t Type) IsInteger() bool { return t.kind == KindInteger }
func (t Type) IsText() bool { return t.kind == KindText }
func (t Type) IsDate() bool { return t.kind == KindDate }
func (t Type) IsDecimal() bool { return t.kind == KindDecimal }
func (t Type) IsBool() bool { return t.kind == KindBool }
func (t Type) IsCustom() bool { return t.kind == KindCustom }
func (t Type) IsOptional() bool { return t.optional }

// IsNumber reports whether t is an integer or float, optional or not.
func (t Type) IsNumber() bool {
	return t.IsInteger() || t.IsFloat()
}

// String renders the type, e.g. "Integer" or "Optional(Decimal)".
func (t Type) String() string {
	if t.optional {
		return "Optional(" + t.kind.String() + ")"
	}
	return t.kind.String()
}
