package reflected

// Change records a field whose canonical value differs between two instances.
type Change struct {
	Field *Field
	From  string
	To    string
}

// Diff lists the fields whose canonical strings differ between from and to,
// in declaration order. Unlike Compare it is exact for every kind and reports
// all differences. Custom fields are skipped.
func Diff[T any](t *Table[T], from, to *T) []Change {
	var changes []Change
	for _, f := range t.Fields() {
		if f.IsCustom() {
			continue
		}
		a, b := t.GetValue(from, f), t.GetValue(to, f)
		if a != b {
			changes = append(changes, Change{Field: f, From: a, To: b})
		}
	}
	return changes
}

// Changed reports whether the field called name differs between from and to.
func Changed[T any](t *Table[T], from, to *T, name string) bool {
	f := t.FieldByName(name)
	return t.GetValue(from, f) != t.GetValue(to, f)
}
