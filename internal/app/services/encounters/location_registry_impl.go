package encounters

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
	locationRegistryInstance contracts.LocationRegistry
	onceLocationRegistry     sync.Once
)

type locationRegistryClient struct {
	Client *omrsclient.Client
	Log    *zap.Logger
}

func NewLocationRegistryClient(client *omrsclient.Client, logger *zap.Logger) contracts.LocationRegistry {
	onceLocationRegistry.Do(func() {
		locationRegistryInstance = &locationRegistryClient{
			Client: client,
			Log:    logger,
		}
	})
	return locationRegistryInstance
}

// FindLocationsByAttribute lists all locations and filters on the attribute
// pair locally; the registry's list API cannot search by attribute value.
func (c *locationRegistryClient) FindLocationsByAttribute(ctx context.Context, attributeType, value string) ([]omrs_dto.Location, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("locationRegistryClient.FindLocationsByAttribute called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLocationCodeKey, value),
	)

	query := url.Values{}
	query.Set("v", "full")

	var result omrs_dto.LocationListResult
	err := c.Client.Get(ctx, constvars.ResourceLocation, query, constvars.ResourceLocation, &result)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var matches []omrs_dto.Location
	for _, location := range result.Results {
		if attributeValue, ok := location.Attribute(attributeType); ok && attributeValue == value {
			matches = append(matches, location)
		}
	}
	return matches, nil
}

func (c *locationRegistryClient) GetLocationByName(ctx context.Context, name string) (*omrs_dto.Location, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("locationRegistryClient.GetLocationByName called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	query := url.Values{}
	query.Set("q", name)
	query.Set("v", "full")

	var result omrs_dto.LocationListResult
	err := c.Client.Get(ctx, constvars.ResourceLocation, query, constvars.ResourceLocation, &result)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	for i := range result.Results {
		if result.Results[i].Name == name {
			return &result.Results[i], nil
		}
	}
	return nil, nil
}

func (c *locationRegistryClient) GetDefaultLocation(ctx context.Context) (*omrs_dto.Location, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("locationRegistryClient.GetDefaultLocation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var location omrs_dto.Location
	err := c.Client.Get(ctx, constvars.ResourceLocation+"/"+constvars.DefaultLocationUUID, nil, constvars.ResourceLocation, &location)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (c *locationRegistryClient) CreateLocation(ctx context.Context, location *omrs_dto.Location) (*omrs_dto.Location, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("locationRegistryClient.CreateLocation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var created omrs_dto.Location
	if err := c.Client.Post(ctx, constvars.ResourceLocation, constvars.ResourceLocation, location, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *locationRegistryClient) UpdateLocation(ctx context.Context, location *omrs_dto.Location) (*omrs_dto.Location, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("locationRegistryClient.UpdateLocation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var updated omrs_dto.Location
	if err := c.Client.Post(ctx, constvars.ResourceLocation+"/"+location.UUID, constvars.ResourceLocation, location, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
