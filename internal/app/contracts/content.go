package contracts

import (
	"context"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"
)

// ContentHandler persists document content. SaveContent returns a storage
// reference for the stored object.
type ContentHandler interface {
	SaveContent(ctx context.Context, content *models.Content, docCtx *models.DocumentContext) (string, error)
}

// ContentHandlerRegistry resolves the handlers applicable to a document.
// Handlers are registered under a stable name so deferred queue items can
// find the same handler again after a restart.
type ContentHandlerRegistry interface {
	DefaultUnstructuredHandler() (name string, handler ContentHandler)
	// DiscreteHandler returns ("", nil) when no handler is registered for
	// the (type code, format code) pair.
	DiscreteHandler(typeCode, formatCode xds.CodedValue) (name string, handler ContentHandler)
	HandlerByName(name string) ContentHandler
	RegisterDiscreteHandler(name string, typeCode, formatCode xds.CodedValue, handler ContentHandler)
}

// CDAImporter hands structured clinical documents to the CDA processing
// pipeline.
type CDAImporter interface {
	ImportDocument(ctx context.Context, payload []byte) error
}
