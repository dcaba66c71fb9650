package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleProviderMapAdd(t *testing.T) {
	t.Run("Keeps insertion order across roles", func(t *testing.T) {
		var m RoleProviderMap
		m = m.Add("role1", "prov1")
		m = m.Add("role2", "prov2")
		m = m.Add("role1", "prov3")

		assert.Len(t, m, 2)
		assert.Equal(t, "role1", m[0].RoleUUID)
		assert.Equal(t, []string{"prov1", "prov3"}, m[0].ProviderUUIDs)
		assert.Equal(t, "role2", m[1].RoleUUID)
	})

	t.Run("Drops duplicate provider within a role", func(t *testing.T) {
		var m RoleProviderMap
		m = m.Add("role1", "prov1")
		m = m.Add("role1", "prov1")

		assert.Len(t, m, 1)
		assert.Equal(t, []string{"prov1"}, m[0].ProviderUUIDs)
	})
}

func TestRoleProviderMapStringify(t *testing.T) {
	var m RoleProviderMap
	m = m.Add("role1", "prov1")
	m = m.Add("role1", "prov2")
	m = m.Add("role2", "prov3")

	assert.Equal(t, "role1:prov1,prov2|role2:prov3", m.Stringify())
	assert.Empty(t, RoleProviderMap{}.Stringify())
}

func TestParseRoleProviderMap(t *testing.T) {
	t.Run("Round trips the stringified form", func(t *testing.T) {
		parsed := ParseRoleProviderMap("role1:prov1,prov2|role2:prov3")
		assert.Len(t, parsed, 2)
		assert.Equal(t, []string{"prov1", "prov2"}, parsed[0].ProviderUUIDs)
		assert.Equal(t, "role2", parsed[1].RoleUUID)
		assert.Equal(t, "role1:prov1,prov2|role2:prov3", parsed.Stringify())
	})

	t.Run("Empty input", func(t *testing.T) {
		assert.Empty(t, ParseRoleProviderMap(""))
	})

	t.Run("Skips malformed segments", func(t *testing.T) {
		parsed := ParseRoleProviderMap("role1:prov1|garbage|:prov2")
		assert.Len(t, parsed, 1)
		assert.Equal(t, "role1", parsed[0].RoleUUID)
	})
}
