package encounters

import (
	"context"
	"sync"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/omrs_dto"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/omrsclient"

	"go.uber.org/zap"
)

var (
	formRegistryInstance contracts.FormRegistry
	onceFormRegistry     sync.Once
)

type formRegistryClient struct {
	Client *omrsclient.Client
	Log    *zap.Logger
}

func NewFormRegistryClient(client *omrsclient.Client, logger *zap.Logger) contracts.FormRegistry {
	onceFormRegistry.Do(func() {
		formRegistryInstance = &formRegistryClient{
			Client: client,
			Log:    logger,
		}
	})
	return formRegistryInstance
}

func (c *formRegistryClient) GetFormByUUID(ctx context.Context, uuid string) (*omrs_dto.Form, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("formRegistryClient.GetFormByUUID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var form omrs_dto.Form
	err := c.Client.Get(ctx, constvars.ResourceForm+"/"+uuid, nil, constvars.ResourceForm, &form)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (c *formRegistryClient) CreateForm(ctx context.Context, form *omrs_dto.Form) (*omrs_dto.Form, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("formRegistryClient.CreateForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var created omrs_dto.Form
	if err := c.Client.Post(ctx, constvars.ResourceForm, constvars.ResourceForm, form, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
