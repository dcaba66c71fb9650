package repository

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"

	"go.uber.org/zap"
)

var (
	queueProcessorInstance contracts.QueueItemProcessor
	onceQueueProcessor     sync.Once
)

// discreteQueueProcessor replays deferred discrete imports: it loads the
// stored payload, finds the handler that was associated at registration
// time, and runs it with the identities resolved during ingestion.
type discreteQueueProcessor struct {
	RegisteredDocs contracts.RegisteredDocumentRepository
	Handlers       contracts.ContentHandlerRegistry
	Storage        contracts.ObjectStorage
	Log            *zap.Logger
}

func NewDiscreteQueueProcessor(
	registeredDocs contracts.RegisteredDocumentRepository,
	handlers contracts.ContentHandlerRegistry,
	objectStorage contracts.ObjectStorage,
	logger *zap.Logger,
) contracts.QueueItemProcessor {
	onceQueueProcessor.Do(func() {
		queueProcessorInstance = &discreteQueueProcessor{
			RegisteredDocs: registeredDocs,
			Handlers:       handlers,
			Storage:        objectStorage,
			Log:            logger,
		}
	})
	return queueProcessorInstance
}

func (p *discreteQueueProcessor) ProcessQueueItem(ctx context.Context, item *models.QueueItem) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("discreteQueueProcessor.ProcessQueueItem called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueItemIDKey, item.ID.Hex()),
		zap.String(constvars.LoggingDocumentIDKey, item.DocUniqueID),
	)

	registered, err := p.RegisteredDocs.FindByUniqueID(ctx, item.DocUniqueID)
	if err != nil {
		return err
	}
	if registered == nil {
		return exceptions.ErrRepository(fmt.Errorf("document %s has no registered handler", item.DocUniqueID))
	}

	handler := p.Handlers.HandlerByName(registered.HandlerName)
	if handler == nil {
		return exceptions.ErrRepository(fmt.Errorf("handler %s is not registered", registered.HandlerName))
	}

	object, err := p.Storage.GetObject(ctx, registered.StorageKey)
	if err != nil {
		return err
	}
	defer object.Close()

	payload, err := io.ReadAll(object)
	if err != nil {
		return exceptions.ErrRepository(err)
	}

	content := &models.Content{
		DocUniqueID: item.DocUniqueID,
		Payload:     payload,
	}
	docCtx := &models.DocumentContext{
		PatientUUID:       item.PatientUUID,
		EncounterTypeUUID: item.EncounterTypeUUID,
		Providers:         item.Providers,
	}

	_, err = handler.SaveContent(ctx, content, docCtx)
	return err
}
