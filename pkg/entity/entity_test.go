package entity_test

import (
	"testing"

	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawSchemas(t *testing.T) {
	for _, name := range entity.RawNames() {
		s, ok := entity.Raw(name)
		require.True(t, ok, name)
		assert.Equal(t, name, s.Name)
		assert.NotEmpty(t, s.Files, name)
		assert.NotEmpty(t, s.Required, name)
		for _, k := range s.Key {
			assert.Contains(t, s.Required, k, "%s key %s", name, k)
		}
	}
}

func TestDerivedSchemas(t *testing.T) {
	for _, name := range entity.DerivedNames() {
		s, ok := entity.Derived(name)
		require.True(t, ok, name)
		cols := s.ColumnNames()
		assert.NotEmpty(t, cols, name)
		for _, k := range s.Key {
			assert.Contains(t, cols, k, "%s key %s", name, k)
		}
		seen := make(map[string]bool)
		for _, c := range cols {
			assert.False(t, seen[c], "%s duplicate column %s", name, c)
			seen[c] = true
		}
		r := s.Roles
		for _, c := range append([]string{r.Country, r.Continent,
			r.MedalType, r.Gender, r.Age, r.Venue}, r.Sports...) {
			if c != "" {
				assert.Contains(t, cols, c, "%s role %s", name, c)
			}
		}
	}
}

func TestTypeOf(t *testing.T) {
	s, ok := entity.Raw(entity.Athletes)
	require.True(t, ok)
	assert.Equal(t, table.Set, s.TypeOf("disciplines"))
	assert.Equal(t, table.Time, s.TypeOf("birth_date"))
	assert.Equal(t, table.String, s.TypeOf("hobbies"))

	roles, ok := entity.RolesOf(entity.MedalsEnriched)
	require.True(t, ok)
	assert.Equal(t, "medal_type", roles.MedalType)

	_, ok = entity.RolesOf("no_such_table")
	assert.False(t, ok)
}
