package reflected

import (
	"fmt"
	"slices"
	"strings"
)

// Role is the part a field plays in its entity type. Roles are carried in the
// field record so persistence and fixtures never have to guess from names.
type Role uint8

const (
	// RoleUnset asks NewTable to derive the role from the field name.
	RoleUnset Role = iota
	RolePlain
	RoleID
	RoleForeignKey
	RoleSecure
)

func (r Role) String() string {
	switch r {
	case RolePlain:
		return "plain"
	case RoleID:
		return "id"
	case RoleForeignKey:
		return "foreign_key"
	case RoleSecure:
		return "secure"
	default:
		return "unset"
	}
}

// Naming conventions used when a column does not declare its role.
const (
	IDFieldName      = "id"
	RowIDFieldName   = "rowid"
	ForeignKeyMarker = "_id"
	SecureFieldName  = "password"
)

// ConventionRole derives a role from a field name: "id" and "rowid" are
// identifiers, names containing "_id" are foreign keys, "password" is secure.
// Custom fields are never identifiers or foreign keys.
func ConventionRole(name string, t Type) Role {
	if t.IsCustom() {
		return RolePlain
	}
	switch {
	case name == IDFieldName || name == RowIDFieldName:
		return RoleID
	case strings.Contains(name, ForeignKeyMarker):
		return RoleForeignKey
	case name == SecureFieldName:
		return RoleSecure
	default:
		return RolePlain
	}
}

// Field describes one declared field of an entity type. Fields are built by
// NewTable and shared by pointer; they are never modified afterwards.
type Field struct {
	Name          string
	Type          Type
	DeclaringType string
	Role          Role
	Unique        bool
	Secure        bool
	Optional      bool

	// Variants, when non-empty, lists the only values a Text field accepts.
	Variants []string

	index int
}

// Index is the field's position in its table's declaration order.
func (f *Field) Index() int { return f.index }

// Equal compares fields by name, type, declaring type and optionality.
func (f *Field) Equal(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Name == other.Name &&
		f.Type == other.Type &&
		f.DeclaringType == other.DeclaringType &&
		f.Optional == other.Optional
}

func (f *Field) IsID() bool { return f.Role == RoleID }
func (f *Field) IsForeignID() bool { return f.Role == RoleForeignKey }
func (f *Field) IsCustom() bool { return f.Type.IsCustom() }
func (f *Field) IsText() bool { return f.Type.IsText() }
func (f *Field) IsNumber() bool { return f.Type.IsNumber() }
func (f *Field) IsDate() bool { return f.Type.IsDate() }
func (f *Field) IsDecimal() bool { return f.Type.IsDecimal() }
func (f *Field) IsBool() bool { return f.Type.IsBool() }
func (f *Field) IsFloat() bool { return f.Type.IsFloat() }
func (f *Field) IsInteger() bool { return f.Type.IsInteger() }
func (f *Field) IsOptional() bool { return f.Type.IsOptional() }
func (f *Field) HasVariants() bool { return len(f.Variants) > 0 }
func (f *Field) IsSecure() bool { return f.Secure || f.Role == RoleSecure }

// IsSimple reports whether the field takes part in ordinary scalar
// serialization and random generation: not an identifier, foreign key or
// custom value.
func (f *Field) IsSimple() bool {
	return !f.IsID() && !f.IsForeignID() && !f.IsCustom()
}

// acceptsVariant reports whether s is allowed by the field's variant list.
func (f *Field) acceptsVariant(s string) bool {
	return !f.HasVariants() || slices.Contains(f.Variants, s)
}

// String renders the field for diagnostics, e.g. "User.cash Optional(Decimal)".
func (f *Field) String() string {
	return fmt.Sprintf("%s.%s %s", f.DeclaringType, f.Name, f.Type)
}
