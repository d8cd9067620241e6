package reflected

// Descriptor is the type-erased metadata view of an entity type, used by
// tooling that lists or inspects types without touching instances.
type Descriptor interface {
	TypeName() string
	Fields() []*Field
	SimpleFields() []*Field
	FieldByName(name string) *Field
	LookupField(name string) (*Field, bool)
}

// accessor reads and writes one field slot as a canonical string.
// Custom fields have neither.
type accessor[T any] struct {
	read  func(*T) string
	write func(*T, *string) error
}

// Table is the static field table of entity type T together with the
// accessor for every field, indexed in declaration order. A Table is built
// once, never modified, and safe for concurrent use; the instances passed to
// it are not.
type Table[T any] struct {
	name    string
	rename  string
	fields  []*Field
	simple  []*Field
	access  []accessor[T]
	byName  map[string]int
	idField *Field
}

// NewTable builds the field table for T from its columns, in declaration
// order. typeName is the declaring type's name. Fields without an explicit
// role get one from ConventionRole.
//
// NewTable panics with an error wrapping ErrContract when the columns are
// inconsistent: empty or duplicate names, invalid types, identifier or
// foreign-key roles on custom fields, variants on non-text fields, or more
// than one identifier.
func NewTable[T any](typeName string, cols ...Column[T]) *Table[T] {
	if typeName == "" {
		panic(contractf("entity type name is empty"))
	}
	t := &Table[T]{
		name:   typeName,
		fields: make([]*Field, 0, len(cols)),
		access: make([]accessor[T], 0, len(cols)),
		byName: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		f := newField(typeName, i, c)
		if _, dup := t.byName[f.Name]; dup {
			panic(contractf("%s: duplicate field %q", typeName, f.Name))
		}
		if f.IsID() {
			if t.idField != nil {
				panic(contractf("%s: fields %q and %q are both identifiers", typeName, t.idField.Name, f.Name))
			}
			t.idField = f
		}
		t.byName[f.Name] = i
		t.fields = append(t.fields, f)
		t.access = append(t.access, accessor[T]{read: c.read, write: c.write})
		if f.IsSimple() {
			t.simple = append(t.simple, f)
		}
	}
	return t
}

func newField[T any](typeName string, index int, c Column[T]) *Field {
	if c.name == "" {
		panic(contractf("%s: field %d has no name", typeName, index))
	}
	if !c.typ.IsValid() {
		panic(contractf("%s.%s: invalid type", typeName, c.name))
	}
	if !c.typ.IsCustom() && (c.read == nil || c.write == nil) {
		panic(contractf("%s.%s: %s field has no accessors", typeName, c.name, c.typ))
	}
	role := c.opts.role
	if role == RoleUnset {
		role = ConventionRole(c.name, c.typ)
	}
	if c.typ.IsCustom() && (role == RoleID || role == RoleForeignKey) {
		panic(contractf("%s.%s: custom field cannot be %s", typeName, c.name, role))
	}
	if len(c.opts.variants) > 0 && !c.typ.IsText() {
		panic(contractf("%s.%s: variants require a text field, got %s", typeName, c.name, c.typ))
	}
	return &Field{
		Name:          c.name,
		Type:          c.typ,
		DeclaringType: typeName,
		Role:          role,
		Unique:        c.opts.unique,
		Secure:        c.opts.secure || role == RoleSecure,
		Optional:      c.typ.IsOptional(),
		Variants:      c.opts.variants,
		index:         index,
	}
}

// WithTypeName returns a copy of the table reporting name from TypeName, for
// entity types stored under a different logical name. Field records keep the
// declaring type's own name.
func (t *Table[T]) WithTypeName(name string) *Table[T] {
	cp := *t
	cp.rename = name
	return &cp
}

// TypeName returns the logical name of the entity type: the rename when one
// was given, otherwise the declaring type's name.
func (t *Table[T]) TypeName() string {
	if t.rename != "" {
		return t.rename
	}
	return t.name
}

// DeclaringType returns the name fields report as their declaring type.
func (t *Table[T]) DeclaringType() string { return t.name }

// Fields returns every field in declaration order. The slice is shared;
// callers must not modify it.
func (t *Table[T]) Fields() []*Field { return t.fields }

// SimpleFields returns the fields for which IsSimple holds, in declaration
// order. The slice is shared; callers must not modify it.
func (t *Table[T]) SimpleFields() []*Field { return t.simple }

// IDField returns the identifier field, or nil when T has none.
func (t *Table[T]) IDField() *Field { return t.idField }

// Field returns the field at position i in declaration order.
func (t *Table[T]) Field(i int) *Field { return t.fields[i] }

// LookupField returns the field called name.
func (t *Table[T]) LookupField(name string) (*Field, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.fields[i], true
}

// FieldByName returns the field called name. An unknown name is a programming
// error and panics.
func (t *Table[T]) FieldByName(name string) *Field {
	f, ok := t.LookupField(name)
	if !ok {
		panic(contractf("%s has no field %q", t.name, name))
	}
	return f
}

// New returns a zero instance of T.
func (t *Table[T]) New() *T {
	return new(T)
}

// GetValue returns the canonical string of field f on e. It panics when f
// does not belong to this table or is a custom field.
func (t *Table[T]) GetValue(e *T, f *Field) string {
	a := t.accessorFor(f)
	if a.read == nil {
		panic(contractf("%s is custom and has no string value", f))
	}
	return a.read(e)
}

// ValueByName is FieldByName followed by GetValue.
func (t *Table[T]) ValueByName(e *T, name string) string {
	return t.GetValue(e, t.FieldByName(name))
}

// SetValue parses value under f's type and stores it in e. A nil value clears
// an optional field. Parse failures, including values outside a field's
// variants, return a *ConversionError and leave e unchanged.
//
// SetValue panics when f does not belong to this table, is a custom field, or
// is not optional and value is nil.
func (t *Table[T]) SetValue(e *T, f *Field, value *string) error {
	a := t.accessorFor(f)
	if a.write == nil {
		panic(contractf("%s is custom and cannot be set from a string", f))
	}
	if value == nil && !f.IsOptional() {
		panic(contractf("%s is not optional and cannot be set to NULL", f))
	}
	if value != nil && !f.acceptsVariant(*value) && !(f.IsOptional() && *value == Null) {
		return conversionError(f.Type, *value, errNotVariant)
	}
	return a.write(e, value)
}

// SetString is SetValue with a present value.
func (t *Table[T]) SetString(e *T, f *Field, value string) error {
	return t.SetValue(e, f, &value)
}

// Values returns the canonical string of every non-custom field of e keyed
// by field name.
func (t *Table[T]) Values(e *T) map[string]string {
	out := make(map[string]string, len(t.fields))
	for i, f := range t.fields {
		if read := t.access[i].read; read != nil {
			out[f.Name] = read(e)
		}
	}
	return out
}

// Random returns a zero instance with every simple field set to a value from
// gen. Identifiers, foreign keys and custom fields keep their zero values.
func (t *Table[T]) Random(gen *Generator) *T {
	e := t.New()
	for _, f := range t.simple {
		if err := t.SetValue(e, f, gen.ValueFor(f)); err != nil {
			panic(contractf("random value for %s rejected: %v", f, err))
		}
	}
	return e
}

// accessorFor resolves f to its accessor, checking that f is this table's
// own field record.
func (t *Table[T]) accessorFor(f *Field) accessor[T] {
	if f == nil {
		panic(contractf("%s: nil field", t.name))
	}
	if f.index < 0 || f.index >= len(t.fields) || t.fields[f.index] != f {
		panic(contractf("%s does not belong to %s", f, t.name))
	}
	return t.access[f.index]
}

var _ Descriptor = (*Table[struct{}])(nil)
