package contenthandlers

import (
	"context"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
)

// CDAHandlerName is the registration name of the discrete CDA handler.
const CDAHandlerName = "cda-discrete"

// cdaDiscreteHandler adapts the CDA importer to the content handler shape so
// structured documents can be processed through the discrete path, including
// deferred processing off the ingestion queue.
type cdaDiscreteHandler struct {
	Importer contracts.CDAImporter
}

func NewCDADiscreteHandler(importer contracts.CDAImporter) contracts.ContentHandler {
	return &cdaDiscreteHandler{Importer: importer}
}

func (h *cdaDiscreteHandler) SaveContent(ctx context.Context, content *models.Content, _ *models.DocumentContext) (string, error) {
	if err := h.Importer.ImportDocument(ctx, content.Payload); err != nil {
		return "", err
	}
	return content.DocUniqueID, nil
}
