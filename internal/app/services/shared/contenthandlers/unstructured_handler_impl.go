package contenthandlers

import (
	"context"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"

	"go.uber.org/zap"
)

// unstructuredHandler stores raw document bytes in object storage keyed by
// the document unique id. It is the handler every submission goes through.
type unstructuredHandler struct {
	Storage contracts.ObjectStorage
	Log     *zap.Logger
}

func NewUnstructuredHandler(objectStorage contracts.ObjectStorage, logger *zap.Logger) contracts.ContentHandler {
	return &unstructuredHandler{
		Storage: objectStorage,
		Log:     logger,
	}
}

func (h *unstructuredHandler) SaveContent(ctx context.Context, content *models.Content, _ *models.DocumentContext) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	h.Log.Info("unstructuredHandler.SaveContent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDocumentIDKey, content.DocUniqueID),
	)

	contentType := content.ContentType
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	return h.Storage.PutObject(ctx, content.DocUniqueID, contentType, content.Payload)
}
