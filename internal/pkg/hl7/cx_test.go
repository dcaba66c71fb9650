package hl7

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCX(t *testing.T) {
	t.Run("Plain CX", func(t *testing.T) {
		id, err := ParseCX("1111111111^^^&1.2.3&ISO")
		assert.NoError(t, err)
		assert.Equal(t, "1111111111", id.Value)
		assert.Equal(t, "1.2.3", id.AssigningAuthority)
	})

	t.Run("XML escaped ampersands", func(t *testing.T) {
		id, err := ParseCX("1111111111^^^&amp;1.2.3&amp;ISO")
		assert.NoError(t, err)
		assert.Equal(t, "1111111111", id.Value)
		assert.Equal(t, "1.2.3", id.AssigningAuthority)
	})

	t.Run("Missing assigning authority", func(t *testing.T) {
		_, err := ParseCX("12345")
		assert.Error(t, err)
	})

	t.Run("Missing identifier value", func(t *testing.T) {
		_, err := ParseCX("^^^&1.2.3.4.5&ISO")
		assert.Error(t, err)
	})

	t.Run("Empty assigning authority id", func(t *testing.T) {
		_, err := ParseCX("12345^^^&&ISO")
		assert.Error(t, err)
	})
}

func TestParseXCN(t *testing.T) {
	t.Run("Full person tuple", func(t *testing.T) {
		person := ParseXCN("pro111^Dopeness^Jack^^^Dr^^^&1.2.3&ISO")
		assert.Equal(t, "pro111", person.Identifier)
		assert.Equal(t, "Dopeness", person.FamilyName)
		assert.Equal(t, "Jack", person.GivenName)
	})

	t.Run("Identifier only", func(t *testing.T) {
		person := ParseXCN("pro111")
		assert.Equal(t, "pro111", person.Identifier)
		assert.Empty(t, person.FamilyName)
		assert.Empty(t, person.GivenName)
	})

	t.Run("Name without identifier", func(t *testing.T) {
		person := ParseXCN("^Dopeness^Jack")
		assert.Empty(t, person.Identifier)
		assert.Equal(t, "Dopeness", person.FamilyName)
		assert.Equal(t, "Jack", person.GivenName)
	})
}
