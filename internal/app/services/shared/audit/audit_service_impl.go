package audit

import (
	"context"
	"sync"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"

	"go.uber.org/zap"
)

var (
	auditServiceInstance contracts.AuditService
	onceAuditService     sync.Once
)

// auditService emits one structured record per auditable event. Records go
// through a dedicated logger so they can be routed to their own sink.
type auditService struct {
	Log              *zap.Logger
	RepositoryUID    string
	SourceIdentifier string
}

func NewAuditService(logger *zap.Logger, repositoryUID, sourceIdentifier string) contracts.AuditService {
	onceAuditService.Do(func() {
		auditServiceInstance = &auditService{
			Log:              logger.Named("audit"),
			RepositoryUID:    repositoryUID,
			SourceIdentifier: sourceIdentifier,
		}
	})
	return auditServiceInstance
}

func (s *auditService) LogRepositoryImport(ctx context.Context, submissionSetUID, patientID string, success bool) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("document repository import",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("event_type", constvars.AuditEventProvideAndRegister),
		zap.String("repository_unique_id", s.RepositoryUID),
		zap.String("audit_source", s.SourceIdentifier),
		zap.String(constvars.LoggingSubmissionSetUIDKey, submissionSetUID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Bool(constvars.LoggingSuccessKey, success),
	)
}

func (s *auditService) LogExport(ctx context.Context, eventType, submissionSetUID, patientID, registryURL string, success bool) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("document metadata export",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("event_type", eventType),
		zap.String("repository_unique_id", s.RepositoryUID),
		zap.String("audit_source", s.SourceIdentifier),
		zap.String(constvars.LoggingSubmissionSetUIDKey, submissionSetUID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingRegistryURLKey, registryURL),
		zap.Bool(constvars.LoggingSuccessKey, success),
	)
}
