package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
)

// Column types. Every stored value other than the identifier is the field's
// canonical string, so all of them are TEXT and round-trip verbatim.
const (
	sqlInteger = "INTEGER"
	sqlText    = "TEXT"
)

// rowIDColumn is the implicit SQLite row identifier. Tables whose entity has
// an identifier field alias it through INTEGER PRIMARY KEY.
const rowIDColumn = "rowid"

// quoteIdent quotes a table or column name for SQLite.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// storedFields returns the fields that get a column of their own: every
// non-custom field except the identifier, which lives in the row id.
func storedFields(d reflected.Descriptor) []*reflected.Field {
	var out []*reflected.Field
	for _, f := range d.Fields() {
		if f.IsCustom() || f.IsID() {
			continue
		}
		out = append(out, f)
	}
	return out
}

// columnDef renders the column definition of f.
func columnDef(f *reflected.Field) string {
	var b strings.Builder
	b.WriteString(quoteIdent(f.Name))
	b.WriteByte(' ')
	b.WriteString(sqlText)
	if !f.IsOptional() {
		b.WriteString(" NOT NULL")
	}
	if f.Unique {
		b.WriteString(" UNIQUE")
	}
	return b.String()
}

// createTableSQL renders the CREATE TABLE statement for the entity type d.
func createTableSQL(d reflected.Descriptor, id *reflected.Field) string {
	var defs []string
	if id != nil {
		defs = append(defs, fmt.Sprintf("%s %s PRIMARY KEY", quoteIdent(id.Name), sqlInteger))
	}
	for _, f := range storedFields(d) {
		defs = append(defs, columnDef(f))
	}
	if len(defs) == 0 {
		// SQLite needs at least one column; the row id carries the entity.
		defs = append(defs, quoteIdent("_empty")+" "+sqlInteger)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)",
		quoteIdent(d.TypeName()), strings.Join(defs, ",\n    "))
}

// insertSQL renders an INSERT of the given columns, with the identifier
// column first when withID is set.
func insertSQL(verb, table string, id *reflected.Field, cols []*reflected.Field, withID bool) string {
	var names, marks []string
	if withID && id != nil {
		names = append(names, quoteIdent(id.Name))
		marks = append(marks, "?")
	}
	for _, f := range cols {
		names = append(names, quoteIdent(f.Name))
		marks = append(marks, "?")
	}
	if len(names) == 0 {
		return fmt.Sprintf("%s INTO %s DEFAULT VALUES", verb, quoteIdent(table))
	}
	return fmt.Sprintf("%s INTO %s (%s) VALUES (%s)",
		verb, quoteIdent(table), strings.Join(names, ", "), strings.Join(marks, ", "))
}

// upsertSQL renders an INSERT of the identifier and cols that updates the
// row with the same identifier instead of failing. Only an identifier
// conflict is resolved; any other UNIQUE violation still fails the statement.
func upsertSQL(table string, id *reflected.Field, cols []*reflected.Field) string {
	insert := insertSQL("INSERT", table, id, cols, true)
	if len(cols) == 0 {
		return fmt.Sprintf("%s ON CONFLICT(%s) DO NOTHING", insert, quoteIdent(id.Name))
	}
	sets := make([]string, len(cols))
	for i, f := range cols {
		sets[i] = fmt.Sprintf("%s = excluded.%s", quoteIdent(f.Name), quoteIdent(f.Name))
	}
	return fmt.Sprintf("%s ON CONFLICT(%s) DO UPDATE SET %s",
		insert, quoteIdent(id.Name), strings.Join(sets, ", "))
}

// selectSQL renders a SELECT of the row id followed by cols.
func selectSQL(table string, cols []*reflected.Field) string {
	names := []string{rowIDColumn}
	for _, f := range cols {
		names = append(names, quoteIdent(f.Name))
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), quoteIdent(table))
}
