package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/utils"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type XDSController struct {
	Log            *zap.Logger
	Usecase        contracts.XDSRepositoryUsecase
	InternalConfig *config.InternalConfig
}

var (
	xdsControllerInstance *XDSController
	onceXDSController     sync.Once
)

func NewXDSController(logger *zap.Logger, usecase contracts.XDSRepositoryUsecase, internalConfig *config.InternalConfig) *XDSController {
	onceXDSController.Do(func() {
		instance := &XDSController{
			Log:            logger,
			Usecase:        usecase,
			InternalConfig: internalConfig,
		}
		xdsControllerInstance = instance
	})
	return xdsControllerInstance
}

func (ctrl *XDSController) ProvideAndRegisterDocumentSetB(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("XDSController.ProvideAndRegisterDocumentSetB requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("XDSController.ProvideAndRegisterDocumentSetB called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &xds.ProvideAndRegisterRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("XDSController.ProvideAndRegisterDocumentSetB cannot decode request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("XDSController.ProvideAndRegisterDocumentSetB request validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	timeout := time.Duration(ctrl.InternalConfig.XDS.RegistryTimeoutInSeconds+30) * time.Second
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	response, err := ctrl.Usecase.ProvideAndRegisterDocumentSetB(ctx, request)
	if err != nil {
		ctrl.Log.Error("XDSController.ProvideAndRegisterDocumentSetB error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("XDSController.ProvideAndRegisterDocumentSetB completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingSuccessKey, response.Status == constvars.XDSStatusSuccess),
	)

	// Rejections are carried in the registry response body, not the HTTP status.
	utils.BuildSuccessResponse(w, constvars.StatusOK, "document set processed", response)
}
