package iostore

import (
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/table"
)

// columnType returns the declared type of a stored column. Derived
// schemas are tried first, then raw ones, so that filtered raw tables can
// be stored as well.
func columnType(name, col string) table.Type {
	if s, ok := entity.Derived(name); ok {
		return s.TypeOf(col)
	}
	if s, ok := entity.Raw(name); ok {
		return s.TypeOf(col)
	}
	return table.String
}

// decode converts stored text to a typed cell.
func decode(name, col, raw string) any {
	return table.Parse(raw, columnType(name, col))
}
