package contracts

import (
	"context"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/omrs_dto"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"
)

type XDSRepositoryUsecase interface {
	ProvideAndRegisterDocumentSetB(ctx context.Context, request *xds.ProvideAndRegisterRequest) (*xds.RegistryResponse, error)
}

type PatientResolver interface {
	ResolvePatient(ctx context.Context, entry *xds.ExtrinsicObject) (*omrs_dto.Patient, error)
}

type ProviderResolver interface {
	ResolveProvidersByRole(ctx context.Context, entry *xds.ExtrinsicObject) (models.RoleProviderMap, error)
}

type EncounterResolver interface {
	ResolveEncounterType(ctx context.Context, entry *xds.ExtrinsicObject) (*omrs_dto.EncounterType, error)
	ResolveEncounter(ctx context.Context, entry *xds.ExtrinsicObject, payload []byte, patient *omrs_dto.Patient) (*omrs_dto.Encounter, error)
}

// EmbeddedIdentityExtractor pulls an identity assigned by the source system
// out of the document payload itself, one implementation per document family.
// A blank result means the payload carries no usable identity.
type EmbeddedIdentityExtractor interface {
	ExtractIdentity(payload []byte) (string, error)
}

// RegistrySubmissionGateway patches and forwards metadata to the remote
// document registry. The handlers map associates each accepted document
// unique id with the content handler responsible for it; the association is
// persisted locally only when the registry accepts the submission.
type RegistrySubmissionGateway interface {
	RegisterDocuments(ctx context.Context, handlers map[string]string, request *xds.SubmitObjectsRequest) (*xds.RegistryResponse, error)
}

// DocumentRegistryClient is the wire transport to the remote registry.
type DocumentRegistryClient interface {
	RegisterDocumentSet(ctx context.Context, request *xds.SubmitObjectsRequest) (*xds.RegistryResponse, error)
}

type RegisteredDocumentRepository interface {
	Register(ctx context.Context, doc *models.RegisteredDocument) error
	FindByUniqueID(ctx context.Context, docUniqueID string) (*models.RegisteredDocument, error)
}

type AuditService interface {
	LogRepositoryImport(ctx context.Context, submissionSetUID, patientID string, success bool)
	LogExport(ctx context.Context, eventType, submissionSetUID, patientID, registryURL string, success bool)
}
