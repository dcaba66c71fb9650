package repository

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/hl7"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"
)

// MetadataValidator checks a submission's structural consistency before any
// identity resolution or storage happens.
type MetadataValidator struct{}

func NewMetadataValidator() *MetadataValidator {
	return &MetadataValidator{}
}

// ValidateDocumentsMatchMetadata cross-checks the attached documents against
// the extrinsic objects in a single pass and reports both directions of
// mismatch together, so a submitter can fix everything at once.
func (v *MetadataValidator) ValidateDocumentsMatchMetadata(request *xds.ProvideAndRegisterRequest) []*exceptions.CustomError {
	metadataIDs := make(map[string]bool, len(request.SubmitObjectsRequest.ExtrinsicObjects))
	for _, entry := range request.SubmitObjectsRequest.ExtrinsicObjects {
		metadataIDs[entry.ID] = true
	}

	var missingDocuments []string
	for id := range metadataIDs {
		if _, ok := request.Documents[id]; !ok {
			missingDocuments = append(missingDocuments, id)
		}
	}

	var missingMetadata []string
	for id := range request.Documents {
		if !metadataIDs[id] {
			missingMetadata = append(missingMetadata, id)
		}
	}

	sort.Strings(missingDocuments)
	sort.Strings(missingMetadata)

	var errs []*exceptions.CustomError
	if len(missingDocuments) > 0 {
		errs = append(errs, exceptions.ErrMissingDocuments(missingDocuments))
	}
	if len(missingMetadata) > 0 {
		errs = append(errs, exceptions.ErrMissingDocumentMetadata(missingMetadata))
	}
	return errs
}

// ValidateMetadata checks the fields every entry must carry: a unique id, a
// class code, and parseable patient identifiers.
func (v *MetadataValidator) ValidateMetadata(entry *xds.ExtrinsicObject) error {
	if entry.ExternalIdentifierValue(constvars.UUIDXDSDocumentEntryUniqueID) == "" {
		return exceptions.ErrMetadataField(fmt.Sprintf("Document unique id not specified for document %s", entry.ID))
	}

	if entry.Classification(constvars.UUIDXDSDocumentEntryClassCode) == nil {
		return exceptions.ErrMetadataField(fmt.Sprintf("Document class code not specified for document %s", entry.ID))
	}

	patientID := entry.ExternalIdentifierValue(constvars.UUIDXDSDocumentEntryPatientID)
	if _, err := hl7.ParseCX(patientID); err != nil {
		return exceptions.ErrIdentifierParse(err, "PatientId")
	}

	sourcePatientID, ok := entry.SlotValue(constvars.SlotNameSourcePatientID)
	if !ok {
		return exceptions.ErrMetadataField(fmt.Sprintf("Source patient id not specified for document %s", entry.ID))
	}
	if _, err := hl7.ParseCX(sourcePatientID); err != nil {
		return exceptions.ErrIdentifierParse(err, "sourcePatientId")
	}

	return nil
}

// ValidateContent verifies the document bytes against the hash and size
// slots, synthesizing either slot when the submitter left it out.
func (v *MetadataValidator) ValidateContent(entry *xds.ExtrinsicObject, document []byte) error {
	computedHash := DocumentHash(document)

	if declaredHash, ok := entry.SlotValue(constvars.SlotNameHash); ok {
		if !strings.EqualFold(declaredHash, computedHash) {
			return exceptions.ErrDocumentHashMismatch()
		}
	} else {
		entry.AddOrOverwriteSlot(constvars.SlotNameHash, computedHash)
	}

	if declaredSize, ok := entry.SlotValue(constvars.SlotNameSize); ok {
		size, err := strconv.Atoi(declaredSize)
		if err != nil {
			return exceptions.ErrDocumentSizeNotANumber(err)
		}
		if size != len(document) {
			return exceptions.ErrDocumentSizeMismatch()
		}
	} else {
		entry.AddOrOverwriteSlot(constvars.SlotNameSize, strconv.Itoa(len(document)))
	}

	return nil
}

// DocumentHash is the uppercase hex SHA-1 digest carried by the hash slot.
func DocumentHash(document []byte) string {
	digest := sha1.Sum(document)
	return strings.ToUpper(hex.EncodeToString(digest[:]))
}
