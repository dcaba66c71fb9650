package controllers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/utils"

	"go.uber.org/zap"
)

const defaultQueueListLimit = 50

type QueueAdminController struct {
	Log            *zap.Logger
	QueueRepo      contracts.QueueRepository
	Drainer        contracts.QueueDrainer
	InternalConfig *config.InternalConfig
}

var (
	queueAdminControllerInstance *QueueAdminController
	onceQueueAdminController     sync.Once
)

func NewQueueAdminController(logger *zap.Logger, queueRepo contracts.QueueRepository, drainer contracts.QueueDrainer, internalConfig *config.InternalConfig) *QueueAdminController {
	onceQueueAdminController.Do(func() {
		instance := &QueueAdminController{
			Log:            logger,
			QueueRepo:      queueRepo,
			Drainer:        drainer,
			InternalConfig: internalConfig,
		}
		queueAdminControllerInstance = instance
	})
	return queueAdminControllerInstance
}

// ListQueueItems reports discrete-data queue contents filtered by status, for
// operational inspection of stuck or failed items.
func (ctrl *QueueAdminController) ListQueueItems(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("QueueAdminController.ListQueueItems requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("QueueAdminController.ListQueueItems called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	status := models.QueueItemStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.QueueItemStatusFailed
	}
	switch status {
	case models.QueueItemStatusQueued, models.QueueItemStatusProcessing,
		models.QueueItemStatusSuccessful, models.QueueItemStatusFailed:
	default:
		ctrl.Log.Error("QueueAdminController.ListQueueItems unknown status filter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("status", string(status)),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMetadataField("Unknown queue item status "+string(status)))
		return
	}

	limit := int64(defaultQueueListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMetadataField("Limit must be a positive number"))
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := ctrl.QueueRepo.FindByStatus(ctx, status, limit)
	if err != nil {
		ctrl.Log.Error("QueueAdminController.ListQueueItems error from repository",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("QueueAdminController.ListQueueItems succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("item_count", len(items)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, "queue items retrieved", items)
}

// TriggerDrain runs one worker drain pass immediately, so operators can push
// retried or stuck items through without waiting for the ticker.
func (ctrl *QueueAdminController) TriggerDrain(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("QueueAdminController.TriggerDrain requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("QueueAdminController.TriggerDrain called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	processed := ctrl.Drainer.DrainNow(ctx)

	ctrl.Log.Info("QueueAdminController.TriggerDrain succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("processed_count", processed),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, "queue drain completed", map[string]int{"processed": processed})
}
