package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"

	"github.com/stretchr/testify/assert"
)

func validEntry(id, docUniqueID string) xds.ExtrinsicObject {
	return xds.ExtrinsicObject{
		ID:         id,
		ObjectType: constvars.UUIDXDSDocumentEntry,
		Slots: []xds.Slot{
			{Name: constvars.SlotNameSourcePatientID, Values: []string{"1111111111^^^&1.2.3&ISO"}},
		},
		Classifications: []xds.Classification{
			{ClassificationScheme: constvars.UUIDXDSDocumentEntryClassCode, NodeRepresentation: "History and Physical"},
		},
		ExternalIdentifiers: []xds.ExternalIdentifier{
			{IdentificationScheme: constvars.UUIDXDSDocumentEntryUniqueID, Value: docUniqueID},
			{IdentificationScheme: constvars.UUIDXDSDocumentEntryPatientID, Value: "1111111111^^^&1.2.3&ISO"},
		},
	}
}

func TestValidateDocumentsMatchMetadata(t *testing.T) {
	validator := NewMetadataValidator()

	t.Run("Matching sets pass", func(t *testing.T) {
		request := &xds.ProvideAndRegisterRequest{
			SubmitObjectsRequest: xds.SubmitObjectsRequest{
				ExtrinsicObjects: []xds.ExtrinsicObject{{ID: "doc1"}},
			},
			Documents: map[string][]byte{"doc1": []byte("payload")},
		}
		assert.Empty(t, validator.ValidateDocumentsMatchMetadata(request))
	})

	t.Run("Both directions reported in one pass", func(t *testing.T) {
		request := &xds.ProvideAndRegisterRequest{
			SubmitObjectsRequest: xds.SubmitObjectsRequest{
				ExtrinsicObjects: []xds.ExtrinsicObject{{ID: "doc1"}, {ID: "doc2"}},
			},
			Documents: map[string][]byte{
				"doc2":   []byte("payload"),
				"orphan": []byte("payload"),
			},
		}

		errs := validator.ValidateDocumentsMatchMetadata(request)
		assert.Len(t, errs, 2)
		assert.Equal(t, constvars.XDSErrMissingDocument, errs[0].XDSCode)
		assert.Contains(t, errs[0].ClientMessage, "doc1")
		assert.Equal(t, constvars.XDSErrMissingDocumentMetadata, errs[1].XDSCode)
		assert.Contains(t, errs[1].ClientMessage, "orphan")
	})
}

func TestValidateMetadata(t *testing.T) {
	validator := NewMetadataValidator()

	t.Run("Complete entry passes", func(t *testing.T) {
		entry := validEntry("doc1", "2.25.1")
		assert.NoError(t, validator.ValidateMetadata(&entry))
	})

	t.Run("Missing unique id", func(t *testing.T) {
		entry := validEntry("doc1", "2.25.1")
		entry.ExternalIdentifiers = entry.ExternalIdentifiers[1:]
		err := validator.ValidateMetadata(&entry)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unique id")
	})

	t.Run("Missing class code", func(t *testing.T) {
		entry := validEntry("doc1", "2.25.1")
		entry.Classifications = nil
		err := validator.ValidateMetadata(&entry)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "class code")
	})

	t.Run("Unparseable patient id", func(t *testing.T) {
		entry := validEntry("doc1", "2.25.1")
		entry.ExternalIdentifiers[1].Value = "12345"
		err := validator.ValidateMetadata(&entry)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "PatientId")
	})

	t.Run("Missing source patient id slot", func(t *testing.T) {
		entry := validEntry("doc1", "2.25.1")
		entry.Slots = nil
		err := validator.ValidateMetadata(&entry)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Source patient id")
	})
}

func TestValidateContent(t *testing.T) {
	validator := NewMetadataValidator()
	document := []byte("My crazy document.")

	t.Run("Matching hash and size pass", func(t *testing.T) {
		entry := validEntry("doc1", "2.25.1")
		entry.AddOrOverwriteSlot(constvars.SlotNameHash, DocumentHash(document))
		entry.AddOrOverwriteSlot(constvars.SlotNameSize, fmt.Sprint(len(document)))
		assert.NoError(t, validator.ValidateContent(&entry, document))
	})

	t.Run("Hash comparison is case insensitive", func(t *testing.T) {
		entry := validEntry("doc1", "2.25.1")
		entry.AddOrOverwriteSlot(constvars.SlotNameHash, strings.ToLower(DocumentHash(document)))
		assert.NoError(t, validator.ValidateContent(&entry, document))
	})

	t.Run("Hash mismatch rejected", func(t *testing.T) {
		entry := validEntry("doc1", "2.25.1")
		entry.AddOrOverwriteSlot(constvars.SlotNameHash, "DEADBEEF")
		err := validator.ValidateContent(&entry, document)
		assert.Error(t, err)
	})

	t.Run("Size mismatch rejected", func(t *testing.T) {
		entry := validEntry("doc1", "2.25.1")
		entry.AddOrOverwriteSlot(constvars.SlotNameSize, "999999")
		err := validator.ValidateContent(&entry, document)
		assert.Error(t, err)
	})

	t.Run("Non numeric size rejected", func(t *testing.T) {
		entry := validEntry("doc1", "2.25.1")
		entry.AddOrOverwriteSlot(constvars.SlotNameSize, "large")
		err := validator.ValidateContent(&entry, document)
		assert.Error(t, err)
	})

	t.Run("Missing slots synthesized", func(t *testing.T) {
		entry := validEntry("doc1", "2.25.1")
		assert.NoError(t, validator.ValidateContent(&entry, document))

		hash, ok := entry.SlotValue(constvars.SlotNameHash)
		assert.True(t, ok)
		assert.Equal(t, DocumentHash(document), hash)

		size, ok := entry.SlotValue(constvars.SlotNameSize)
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprint(len(document)), size)
	})
}

func TestDocumentHash(t *testing.T) {
	// SHA-1 of the empty input, uppercased.
	assert.Equal(t, "DA39A3EE5E6B4B0D3255BFEF95601890AFD80709", DocumentHash(nil))
}
