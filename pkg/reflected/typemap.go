package reflected

import "strings"

// kindsByGoType maps declared Go type names to value kinds. Names not listed
// here reflect as Custom.
var kindsByGoType = map[string]Kind{
	"float32":         KindFloat,
	"float64":         KindFloat,
	"int":             KindInteger,
	"int32":           KindInteger,
	"int64":           KindInteger,
	"uint":            KindInteger,
	"uint32":          KindInteger,
	"uint64":          KindInteger,
	"string":          KindText,
	"time.Time":       KindDate,
	"decimal.Decimal": KindDecimal,
	"bool":            KindBool,
}

// KindOf returns the kind for a declared Go type name such as "int64" or
// "time.Time". Unrecognized names are KindCustom.
func KindOf(goType string) Kind {
	if k, ok := kindsByGoType[goType]; ok {
		return k
	}
	return KindCustom
}

// TypeOf returns the Type for a declared Go type name. A leading "*" makes
// the result Optional; a pointer to an unrecognized type is Custom.
func TypeOf(goType string) Type {
	goType = strings.TrimSpace(goType)
	if inner, ok := strings.CutPrefix(goType, "*"); ok {
		k := KindOf(inner)
		if !k.optionable() {
			return TypeCustom
		}
		return Type{optional: true, kind: k}
	}
	return Type{kind: KindOf(goType)}
}

// Declaration is what a generator knows about one struct field: its name, its
// declared Go type, and its declared attributes.
type Declaration struct {
	Name   string
	GoType string
	Unique bool
	Secure bool
	Role   Role
}

// Describe returns the field record NewTable would build for d as field
// index of typeName, without accessors. Generators use it to validate their
// input and to print field tables before emitting code.
func Describe(typeName string, index int, d Declaration) *Field {
	c := Column[struct{}]{name: d.Name, typ: TypeOf(d.GoType)}
	c.opts.role = d.Role
	c.opts.unique = d.Unique
	if d.Secure {
		Secure()(&c.opts)
	}
	if !c.typ.IsCustom() {
		c.read = func(*struct{}) string { return "" }
		c.write = func(*struct{}, *string) error { return nil }
	}
	return newField(typeName, index, c)
}
