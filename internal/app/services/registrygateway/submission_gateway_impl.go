package registrygateway

import (
	"context"
	"sync"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"

	"go.uber.org/zap"
)

var (
	submissionGatewayInstance contracts.RegistrySubmissionGateway
	onceSubmissionGateway     sync.Once
)

type submissionGatewayUsecase struct {
	RegistryClient contracts.DocumentRegistryClient
	RegisteredDocs contracts.RegisteredDocumentRepository
	Audit          contracts.AuditService
	Cfg            *config.InternalConfig
	Log            *zap.Logger
}

func NewSubmissionGatewayUsecase(
	registryClient contracts.DocumentRegistryClient,
	registeredDocs contracts.RegisteredDocumentRepository,
	auditService contracts.AuditService,
	cfg *config.InternalConfig,
	logger *zap.Logger,
) contracts.RegistrySubmissionGateway {
	onceSubmissionGateway.Do(func() {
		submissionGatewayInstance = &submissionGatewayUsecase{
			RegistryClient: registryClient,
			RegisteredDocs: registeredDocs,
			Audit:          auditService,
			Cfg:            cfg,
			Log:            logger,
		}
	})
	return submissionGatewayInstance
}

// RegisterDocuments stamps every entry with this repository's unique id,
// forwards the metadata, and on acceptance persists the document-to-handler
// associations. The export is audited whether or not it succeeds.
func (uc *submissionGatewayUsecase) RegisterDocuments(ctx context.Context, handlers map[string]string, request *xds.SubmitObjectsRequest) (response *xds.RegistryResponse, err error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("submissionGatewayUsecase.RegisterDocuments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	eventType := constvars.AuditEventRegisterDocumentSet
	for i := range request.ExtrinsicObjects {
		entry := &request.ExtrinsicObjects[i]
		entry.AddOrOverwriteSlot(constvars.SlotNameRepositoryUniqueID, uc.Cfg.XDS.RepositoryUniqueID)
		if entry.ObjectType != "" && entry.ObjectType != constvars.UUIDXDSDocumentEntry {
			eventType = constvars.AuditEventRegisterOnDemand
		}
	}

	submissionSetUID, patientID := submissionSetIdentity(request)
	defer func() {
		uc.Audit.LogExport(ctx, eventType, submissionSetUID, patientID, uc.Cfg.XDS.RegistryURL, err == nil && accepted(response))
	}()

	response, err = uc.RegistryClient.RegisterDocumentSet(ctx, request)
	if err != nil {
		return nil, err
	}

	if accepted(response) {
		for i := range request.ExtrinsicObjects {
			entry := &request.ExtrinsicObjects[i]
			docUniqueID := entry.ExternalIdentifierValue(constvars.UUIDXDSDocumentEntryUniqueID)
			handlerName, ok := handlers[docUniqueID]
			if !ok {
				continue
			}
			if regErr := uc.RegisteredDocs.Register(ctx, &models.RegisteredDocument{
				DocUniqueID: docUniqueID,
				HandlerName: handlerName,
				StorageKey:  docUniqueID,
			}); regErr != nil {
				uc.Log.Error("submissionGatewayUsecase.RegisterDocuments could not persist registered document",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingDocumentIDKey, docUniqueID),
					zap.Error(regErr),
				)
				return nil, regErr
			}
		}
	}
	return response, nil
}

func accepted(response *xds.RegistryResponse) bool {
	return response != nil && response.Status == constvars.XDSStatusSuccess
}

// submissionSetIdentity pulls the submission set unique id and patient id for
// audit correlation. Blank values are audited as-is.
func submissionSetIdentity(request *xds.SubmitObjectsRequest) (string, string) {
	pkg := request.RegistryPackage(constvars.UUIDXDSSubmissionSet)
	if pkg == nil {
		return "", ""
	}
	return pkg.ExternalIdentifierValue(constvars.UUIDXDSSubmissionSetUniqueID),
		pkg.ExternalIdentifierValue(constvars.UUIDXDSSubmissionSetPatientID)
}
