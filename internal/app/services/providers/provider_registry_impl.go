package providers

import (
	"context"
	"net/url"
	"sync"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/omrs_dto"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/omrsclient"

	"go.uber.org/zap"
)

var (
	providerRegistryInstance contracts.ProviderRegistry
	onceProviderRegistry     sync.Once
)

type providerRegistryClient struct {
	Client *omrsclient.Client
	Log    *zap.Logger
}

func NewProviderRegistryClient(client *omrsclient.Client, logger *zap.Logger) contracts.ProviderRegistry {
	onceProviderRegistry.Do(func() {
		providerRegistryInstance = &providerRegistryClient{
			Client: client,
			Log:    logger,
		}
	})
	return providerRegistryInstance
}

func (c *providerRegistryClient) GetProviderByIdentifier(ctx context.Context, identifier string) (*omrs_dto.Provider, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("providerRegistryClient.GetProviderByIdentifier called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderIDKey, identifier),
	)

	query := url.Values{}
	query.Set("q", identifier)
	query.Set("v", "full")

	var result omrs_dto.ProviderListResult
	err := c.Client.Get(ctx, constvars.ResourceProvider, query, constvars.ResourceProvider, &result)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	for i := range result.Results {
		if result.Results[i].Identifier == identifier {
			return &result.Results[i], nil
		}
	}
	return nil, nil
}

func (c *providerRegistryClient) GetAllProviders(ctx context.Context) ([]omrs_dto.Provider, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("providerRegistryClient.GetAllProviders called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	query := url.Values{}
	query.Set("v", "full")

	var result omrs_dto.ProviderListResult
	err := c.Client.Get(ctx, constvars.ResourceProvider, query, constvars.ResourceProvider, &result)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result.Results, nil
}

func (c *providerRegistryClient) CreateProvider(ctx context.Context, provider *omrs_dto.Provider) (*omrs_dto.Provider, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("providerRegistryClient.CreateProvider called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var created omrs_dto.Provider
	if err := c.Client.Post(ctx, constvars.ResourceProvider, constvars.ResourceProvider, provider, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
