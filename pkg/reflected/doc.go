// Package reflected describes entity types as static field tables and exposes
// uniform string accessors over them.
//
// An entity type is declared once with NewTable, listing one Column per field.
// Each column binds a field name and Type to a slot accessor on the entity
// struct, so generic infrastructure (persistence, fixtures, diffing) can read
// and write any field through its canonical string form without knowing the
// concrete struct:
//
//	var Users = reflected.NewTable[User]("User",
//		reflected.Integer("id", func(u *User) *int64 { return &u.ID }),
//		reflected.Text("name", func(u *User) *string { return &u.Name }, reflected.Unique()),
//		reflected.OptionalDecimal("cash", func(u *User) **decimal.Decimal { return &u.Cash }),
//	)
//
// Canonical strings: integers in plain decimal, floats always with a decimal
// point, booleans as "0"/"1", dates in DateLayout (UTC), decimals in fixed-point
// form, and absent optional values as "NULL".
//
// Field tables are immutable after construction and safe for concurrent reads.
// Accessors mutate only the instance they are given; callers synchronize access
// to a shared instance themselves.
package reflected
