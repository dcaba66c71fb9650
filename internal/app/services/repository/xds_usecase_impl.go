package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/encounters"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"

	"go.uber.org/zap"
)

var (
	xdsUsecaseInstance contracts.XDSRepositoryUsecase
	onceXDSUsecase     sync.Once
)

type xdsRepositoryUsecase struct {
	Validator         *MetadataValidator
	PatientResolver   contracts.PatientResolver
	ProviderResolver  contracts.ProviderResolver
	EncounterResolver contracts.EncounterResolver
	Handlers          contracts.ContentHandlerRegistry
	CDAImporter       contracts.CDAImporter
	RegisteredDocs    contracts.RegisteredDocumentRepository
	QueueRepo         contracts.QueueRepository
	QueueNotifier     contracts.QueueNotifier
	Gateway           contracts.RegistrySubmissionGateway
	Audit             contracts.AuditService
	Cfg               *config.InternalConfig
	Log               *zap.Logger
}

func NewXDSRepositoryUsecase(
	validator *MetadataValidator,
	patientResolver contracts.PatientResolver,
	providerResolver contracts.ProviderResolver,
	encounterResolver contracts.EncounterResolver,
	handlers contracts.ContentHandlerRegistry,
	cdaImporter contracts.CDAImporter,
	registeredDocs contracts.RegisteredDocumentRepository,
	queueRepo contracts.QueueRepository,
	queueNotifier contracts.QueueNotifier,
	gateway contracts.RegistrySubmissionGateway,
	auditService contracts.AuditService,
	cfg *config.InternalConfig,
	logger *zap.Logger,
) contracts.XDSRepositoryUsecase {
	onceXDSUsecase.Do(func() {
		xdsUsecaseInstance = &xdsRepositoryUsecase{
			Validator:         validator,
			PatientResolver:   patientResolver,
			ProviderResolver:  providerResolver,
			EncounterResolver: encounterResolver,
			Handlers:          handlers,
			CDAImporter:       cdaImporter,
			RegisteredDocs:    registeredDocs,
			QueueRepo:         queueRepo,
			QueueNotifier:     queueNotifier,
			Gateway:           gateway,
			Audit:             auditService,
			Cfg:               cfg,
			Log:               logger,
		}
	})
	return xdsUsecaseInstance
}

// preparedEntry is one verified document entry, carried from the integrity
// pass to the dispatch pass.
type preparedEntry struct {
	entry       *xds.ExtrinsicObject
	document    []byte
	docUniqueID string
	typeCode    xds.CodedValue
	formatCode  xds.CodedValue
	handlerName string
}

// ProvideAndRegisterDocumentSetB runs the ingestion pipeline in two passes:
// every entry is validated first, then the metadata set is registered with
// the document registry, and only after the registry accepted are identities
// resolved and content dispatched. A rejection therefore leaves no stored
// objects, created identities, or queue items behind. Any failure yields a
// failure registry response; the import is audited either way.
func (uc *xdsRepositoryUsecase) ProvideAndRegisterDocumentSetB(ctx context.Context, request *xds.ProvideAndRegisterRequest) (response *xds.RegistryResponse, err error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("xdsRepositoryUsecase.ProvideAndRegisterDocumentSetB called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("document_count", len(request.Documents)),
	)

	submissionSetUID, patientID := submissionIdentity(&request.SubmitObjectsRequest)
	defer func() {
		uc.Audit.LogRepositoryImport(ctx, submissionSetUID, patientID, response != nil && response.Status == constvars.XDSStatusSuccess)
	}()

	if structuralErrs := uc.Validator.ValidateDocumentsMatchMetadata(request); len(structuralErrs) > 0 {
		var registryErrs []xds.RegistryError
		for _, structuralErr := range structuralErrs {
			registryErrs = append(registryErrs, registryErrorFrom(structuralErr))
		}
		return failureResponse(registryErrs...), nil
	}

	prepared := make([]preparedEntry, 0, len(request.SubmitObjectsRequest.ExtrinsicObjects))
	handlers := make(map[string]string, len(request.SubmitObjectsRequest.ExtrinsicObjects))
	for i := range request.SubmitObjectsRequest.ExtrinsicObjects {
		entry := &request.SubmitObjectsRequest.ExtrinsicObjects[i]
		document := request.Documents[entry.ID]

		prep, verifyErr := uc.verifyDocument(ctx, entry, document)
		if verifyErr != nil {
			uc.Log.Error("xdsRepositoryUsecase.ProvideAndRegisterDocumentSetB document rejected",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEntryIDKey, entry.ID),
				zap.Error(verifyErr),
			)
			return failureResponse(registryErrorFrom(verifyErr)), nil
		}
		prepared = append(prepared, prep)
		handlers[prep.docUniqueID] = prep.handlerName
	}

	response, err = uc.Gateway.RegisterDocuments(ctx, handlers, &request.SubmitObjectsRequest)
	if err != nil {
		return failureResponse(registryErrorFrom(err)), nil
	}
	if response.Status != constvars.XDSStatusSuccess {
		return response, nil
	}

	var queuedIDs []string
	for i := range prepared {
		queued, dispatchErr := uc.dispatchDocument(ctx, &prepared[i])
		if dispatchErr != nil {
			uc.Log.Error("xdsRepositoryUsecase.ProvideAndRegisterDocumentSetB dispatch failed after registration",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDocumentIDKey, prepared[i].docUniqueID),
				zap.Error(dispatchErr),
			)
			return failureResponse(registryErrorFrom(dispatchErr)), nil
		}
		if queued {
			queuedIDs = append(queuedIDs, prepared[i].docUniqueID)
		}
	}

	for _, docUniqueID := range queuedIDs {
		if notifyErr := uc.QueueNotifier.NotifyEnqueued(ctx, docUniqueID); notifyErr != nil {
			uc.Log.Warn("xdsRepositoryUsecase.ProvideAndRegisterDocumentSetB wakeup not delivered; worker will poll",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDocumentIDKey, docUniqueID),
				zap.Error(notifyErr),
			)
		}
	}
	return response, nil
}

// verifyDocument runs the integrity checks for one entry and determines the
// handler that will own the content, without touching storage or the
// identity registry.
func (uc *xdsRepositoryUsecase) verifyDocument(ctx context.Context, entry *xds.ExtrinsicObject, document []byte) (preparedEntry, error) {
	if err := uc.Validator.ValidateMetadata(entry); err != nil {
		return preparedEntry{}, err
	}
	if err := uc.Validator.ValidateContent(entry, document); err != nil {
		return preparedEntry{}, err
	}

	docUniqueID := entry.ExternalIdentifierValue(constvars.UUIDXDSDocumentEntryUniqueID)
	existing, err := uc.RegisteredDocs.FindByUniqueID(ctx, docUniqueID)
	if err != nil {
		return preparedEntry{}, err
	}
	if existing != nil {
		return preparedEntry{}, exceptions.ErrDuplicateDocumentUniqueID(docUniqueID)
	}

	typeCode, err := codedValue(entry, constvars.UUIDXDSDocumentEntryTypeCode, "type code")
	if err != nil {
		return preparedEntry{}, err
	}
	formatCode, err := codedValue(entry, constvars.UUIDXDSDocumentEntryFormatCode, "format code")
	if err != nil {
		return preparedEntry{}, err
	}

	handlerName, _ := uc.Handlers.DefaultUnstructuredHandler()
	if discreteName, discreteHandler := uc.Handlers.DiscreteHandler(typeCode, formatCode); discreteHandler != nil {
		handlerName = discreteName
	}

	return preparedEntry{
		entry:       entry,
		document:    document,
		docUniqueID: docUniqueID,
		typeCode:    typeCode,
		formatCode:  formatCode,
		handlerName: handlerName,
	}, nil
}

// dispatchDocument resolves the clinical identities for one registered entry
// and hands the content to the applicable handlers. Every document gets a
// resolved encounter in its context, not only the discrete ones. It reports
// whether discrete processing was deferred to the queue.
func (uc *xdsRepositoryUsecase) dispatchDocument(ctx context.Context, prep *preparedEntry) (bool, error) {
	patient, err := uc.PatientResolver.ResolvePatient(ctx, prep.entry)
	if err != nil {
		return false, err
	}
	providers, err := uc.ProviderResolver.ResolveProvidersByRole(ctx, prep.entry)
	if err != nil {
		return false, err
	}
	encounter, err := uc.EncounterResolver.ResolveEncounter(ctx, prep.entry, prep.document, patient)
	if err != nil {
		return false, err
	}

	content := &models.Content{
		DocUniqueID: prep.docUniqueID,
		Payload:     prep.document,
		TypeCode:    prep.typeCode,
		FormatCode:  prep.formatCode,
		ContentType: prep.entry.MimeType,
	}
	docCtx := &models.DocumentContext{
		PatientUUID:   patient.UUID,
		EncounterUUID: encounter.UUID,
		Providers:     providers,
	}
	if encounter.EncounterType != nil {
		docCtx.EncounterTypeUUID = encounter.EncounterType.UUID
	}
	if encounter.Location != nil {
		docCtx.LocationUUID = encounter.Location.UUID
	}

	// The unstructured handler runs for every document; its failure fails
	// the whole submission.
	_, defaultHandler := uc.Handlers.DefaultUnstructuredHandler()
	if _, err := defaultHandler.SaveContent(ctx, content, docCtx); err != nil {
		return false, err
	}

	queued := false
	if _, discreteHandler := uc.Handlers.DiscreteHandler(prep.typeCode, prep.formatCode); discreteHandler != nil {
		if uc.Cfg.XDS.AsyncDiscreteHandling {
			item := &models.QueueItem{
				DocUniqueID:       prep.docUniqueID,
				PatientUUID:       docCtx.PatientUUID,
				EncounterTypeUUID: docCtx.EncounterTypeUUID,
				Providers:         providers,
			}
			if err := uc.QueueRepo.Enqueue(ctx, item); err != nil {
				return false, err
			}
			queued = true
		} else {
			if _, err := discreteHandler.SaveContent(ctx, content, docCtx); err != nil {
				return false, err
			}
		}
	}

	if encounters.IsStructuredClinicalDocument(prep.entry) {
		if importErr := uc.CDAImporter.ImportDocument(ctx, prep.document); importErr != nil {
			// Import problems do not invalidate the stored document.
			uc.Log.Error("xdsRepositoryUsecase.dispatchDocument clinical document import failed",
				zap.String(constvars.LoggingDocumentIDKey, prep.docUniqueID),
				zap.Error(importErr),
			)
		}
	}

	return queued, nil
}

func codedValue(entry *xds.ExtrinsicObject, scheme, label string) (xds.CodedValue, error) {
	classification := entry.Classification(scheme)
	if classification == nil {
		return xds.CodedValue{}, exceptions.ErrMetadataField(fmt.Sprintf("Document %s not specified for document %s", label, entry.ID))
	}
	codingScheme, _ := classification.SlotValue(constvars.SlotNameCodingScheme)
	return xds.CodedValue{
		Code:         classification.NodeRepresentation,
		CodingScheme: codingScheme,
		DisplayName:  classification.Name,
	}, nil
}

func submissionIdentity(request *xds.SubmitObjectsRequest) (string, string) {
	pkg := request.RegistryPackage(constvars.UUIDXDSSubmissionSet)
	if pkg == nil {
		return "", ""
	}
	return pkg.ExternalIdentifierValue(constvars.UUIDXDSSubmissionSetUniqueID),
		pkg.ExternalIdentifierValue(constvars.UUIDXDSSubmissionSetPatientID)
}

func failureResponse(registryErrs ...xds.RegistryError) *xds.RegistryResponse {
	return &xds.RegistryResponse{
		Status: constvars.XDSStatusFailure,
		Errors: registryErrs,
	}
}

// registryErrorFrom maps an internal error to the registry error vocabulary.
// Errors without an explicit code surface as a generic repository error.
func registryErrorFrom(err error) xds.RegistryError {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code := customErr.XDSCode
		if code == "" {
			code = constvars.XDSErrRepositoryError
		}
		return xds.RegistryError{
			ErrorCode:   code,
			CodeContext: customErr.ClientMessage,
			Severity:    constvars.XDSErrSeverityError,
		}
	}
	return xds.RegistryError{
		ErrorCode:   constvars.XDSErrRepositoryError,
		CodeContext: err.Error(),
		Severity:    constvars.XDSErrSeverityError,
	}
}
