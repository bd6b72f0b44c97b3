package schema

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/table"
)

// IDColumn is the deterministic row id prepended to every published table.
const IDColumn = "id"

// PGType maps a cell type to a PostgreSQL column type.
func PGType(t table.Type) string {
	switch t {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "DOUBLE PRECISION"
	case table.Time:
		return "TIMESTAMP WITHOUT TIME ZONE"
	case table.Set:
		return "TEXT[]"
	default:
		return "TEXT"
	}
}

// TableDDL creates a CREATE TABLE statement for a derived table with the
// given columns. Column types come from s, unknown columns are TEXT.
func TableDDL(s entity.Schema, columns []string) string {
	defs := make([]string, 0, len(columns)+1)
	defs = append(defs, fmt.Sprintf("    %s UUID NOT NULL", IDColumn))
	for _, c := range columns {
		defs = append(defs, fmt.Sprintf("    %s %s",
			pgx.Identifier{c}.Sanitize(), PGType(s.TypeOf(c))))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		pgx.Identifier{s.Name}.Sanitize(),
		strings.Join(defs, ",\n"))
}

// IndexDDL returns CREATE INDEX statements for a derived table: the row
// id and the country column if the table has one.
func IndexDDL(s entity.Schema) []string {
	name := pgx.Identifier{s.Name}.Sanitize()
	res := []string{
		fmt.Sprintf("CREATE INDEX ON %s (%s);", name, IDColumn),
	}
	if c := s.Roles.Country; c != "" {
		res = append(res, fmt.Sprintf("CREATE INDEX ON %s (%s);",
			name, pgx.Identifier{c}.Sanitize()))
	}
	return res
}
