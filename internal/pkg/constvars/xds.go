package constvars

// ebRIM object type UUIDs used by the XDS.b metadata model.
const (
	UUIDXDSDocumentEntry            = "urn:uuid:7edca82f-054d-47f2-a032-9b2a5b5186c1"
	UUIDXDSDocumentEntryUniqueID    = "urn:uuid:2e82c1f6-a085-4c72-9da3-8640a32e42ab"
	UUIDXDSDocumentEntryPatientID   = "urn:uuid:58a6f841-87b3-4a3e-92fd-a8ffeff98427"
	UUIDXDSDocumentEntryClassCode   = "urn:uuid:41a5887f-8865-4c09-adf7-e362475b143a"
	UUIDXDSDocumentEntryTypeCode    = "urn:uuid:f0306f51-975f-434e-a61c-c59651d33983"
	UUIDXDSDocumentEntryFormatCode  = "urn:uuid:a09d5840-386c-46f2-b5ad-9c3699a4309d"
	UUIDXDSDocumentEntryAuthor      = "urn:uuid:93606bcf-9494-43ec-9b4e-a7748d1a838d"
	UUIDXDSSubmissionSet            = "urn:uuid:a54d6aa5-d40d-43f9-88c5-b4633d873bdd"
	UUIDXDSSubmissionSetUniqueID    = "urn:uuid:96fdda7c-d067-4183-912e-bf5ee74998a8"
	UUIDXDSSubmissionSetPatientID   = "urn:uuid:6b5aea1a-874d-4603-a4bc-96a0a7b38446"
)

// Slot names defined by the XDS.b profile.
const (
	SlotNameHash               = "hash"
	SlotNameSize               = "size"
	SlotNameSourcePatientID    = "sourcePatientId"
	SlotNameSourcePatientInfo  = "sourcePatientInfo"
	SlotNameServiceStartTime   = "serviceStartTime"
	SlotNameAuthorPerson       = "authorPerson"
	SlotNameAuthorInstitution  = "authorInstitution"
	SlotNameAuthorRole         = "authorRole"
	SlotNameCodingScheme       = "codingScheme"
	SlotNameRepositoryUniqueID = "repositoryUniqueId"
)

// Registry response statuses and error codes from the ebXML registry spec.
const (
	XDSStatusSuccess = "urn:oasis:names:tc:ebxml-regrep:ResponseStatusType:Success"
	XDSStatusFailure = "urn:oasis:names:tc:ebxml-regrep:ResponseStatusType:Failure"

	XDSErrSeverityError = "urn:oasis:names:tc:ebxml-regrep:ErrorSeverityType:Error"

	XDSErrMissingDocument         = "XDSMissingDocument"
	XDSErrMissingDocumentMetadata = "XDSMissingDocumentMetadata"
	XDSErrRepositoryMetadataError = "XDSRepositoryMetadataError"
	XDSErrDocumentUniqueIDError   = "XDSDocumentUniqueIdError"
	XDSErrUnknownPatientID        = "XDSUnknownPatientId"
	XDSErrRegistryNotAvailable    = "XDSRegistryNotAvailable"
	XDSErrRepositoryError         = "XDSRepositoryError"
)

// Audit event types for the transactions this actor participates in.
const (
	AuditEventProvideAndRegister  = "ITI-41"
	AuditEventRegisterDocumentSet = "ITI-42"
	AuditEventRegisterOnDemand    = "ITI-61"
)

const (
	CDAFormatCode = "CDAR2/IHE 1.0"
)
