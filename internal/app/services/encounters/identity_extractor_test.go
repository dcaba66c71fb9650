package encounters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCDAIdentityExtractor(t *testing.T) {
	extractor := NewCDAIdentityExtractor()

	t.Run("Plain extension", func(t *testing.T) {
		payload := []byte(`<?xml version="1.0"?>
<ClinicalDocument xmlns="urn:hl7-org:v3">
  <id root="1.2.3.4" extension="enc-42"/>
</ClinicalDocument>`)
		identity, err := extractor.ExtractIdentity(payload)
		assert.NoError(t, err)
		assert.Equal(t, "enc-42", identity)
	})

	t.Run("Compound extension yields second segment", func(t *testing.T) {
		payload := []byte(`<ClinicalDocument><id root="1.2.3.4" extension="visit/enc-42"/></ClinicalDocument>`)
		identity, err := extractor.ExtractIdentity(payload)
		assert.NoError(t, err)
		assert.Equal(t, "enc-42", identity)
	})

	t.Run("Missing id yields blank", func(t *testing.T) {
		identity, err := extractor.ExtractIdentity([]byte(`<ClinicalDocument/>`))
		assert.NoError(t, err)
		assert.Empty(t, identity)
	})

	t.Run("Not XML", func(t *testing.T) {
		_, err := extractor.ExtractIdentity([]byte("MSH|^~\\&|"))
		assert.Error(t, err)
	})
}

func TestORMIdentityExtractor(t *testing.T) {
	extractor := NewORMIdentityExtractor()

	pid := func(accountNumber string) string {
		fields := make([]string, 19)
		fields[0] = "PID"
		fields[18] = accountNumber
		out := fields[0]
		for _, f := range fields[1:] {
			out += "|" + f
		}
		return out
	}

	t.Run("Account number check digit", func(t *testing.T) {
		message := "MSH|^~\\&|LAB\r" + pid("12345^enc-42^M10")
		identity, err := extractor.ExtractIdentity([]byte(message))
		assert.NoError(t, err)
		assert.Equal(t, "enc-42", identity)
	})

	t.Run("Newline delimited segments", func(t *testing.T) {
		message := "MSH|^~\\&|LAB\n" + pid("12345^enc-42")
		identity, err := extractor.ExtractIdentity([]byte(message))
		assert.NoError(t, err)
		assert.Equal(t, "enc-42", identity)
	})

	t.Run("Account number without components", func(t *testing.T) {
		message := pid("12345")
		identity, err := extractor.ExtractIdentity([]byte(message))
		assert.NoError(t, err)
		assert.Empty(t, identity)
	})

	t.Run("No PID segment", func(t *testing.T) {
		identity, err := extractor.ExtractIdentity([]byte("MSH|^~\\&|LAB"))
		assert.NoError(t, err)
		assert.Empty(t, identity)
	})

	t.Run("Short PID segment", func(t *testing.T) {
		identity, err := extractor.ExtractIdentity([]byte("PID|1|123"))
		assert.NoError(t, err)
		assert.Empty(t, identity)
	})
}
