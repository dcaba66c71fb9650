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
	encounterRegistryInstance contracts.EncounterRegistry
	onceEncounterRegistry     sync.Once
)

type encounterRegistryClient struct {
	Client *omrsclient.Client
	Log    *zap.Logger
}

func NewEncounterRegistryClient(client *omrsclient.Client, logger *zap.Logger) contracts.EncounterRegistry {
	onceEncounterRegistry.Do(func() {
		encounterRegistryInstance = &encounterRegistryClient{
			Client: client,
			Log:    logger,
		}
	})
	return encounterRegistryInstance
}

func (c *encounterRegistryClient) GetEncounterTypeByUUID(ctx context.Context, uuid string) (*omrs_dto.EncounterType, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("encounterRegistryClient.GetEncounterTypeByUUID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var encounterType omrs_dto.EncounterType
	err := c.Client.Get(ctx, constvars.ResourceEncounterType+"/"+uuid, nil, constvars.ResourceEncounterType, &encounterType)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &encounterType, nil
}

func (c *encounterRegistryClient) GetEncounterTypeByName(ctx context.Context, name string) (*omrs_dto.EncounterType, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("encounterRegistryClient.GetEncounterTypeByName called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	query := url.Values{}
	query.Set("q", name)

	var result omrs_dto.EncounterTypeListResult
	err := c.Client.Get(ctx, constvars.ResourceEncounterType, query, constvars.ResourceEncounterType, &result)
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

func (c *encounterRegistryClient) CreateEncounterType(ctx context.Context, encounterType *omrs_dto.EncounterType) (*omrs_dto.EncounterType, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("encounterRegistryClient.CreateEncounterType called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var created omrs_dto.EncounterType
	if err := c.Client.Post(ctx, constvars.ResourceEncounterType, constvars.ResourceEncounterType, encounterType, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *encounterRegistryClient) GetEncounterRoleByUUID(ctx context.Context, uuid string) (*omrs_dto.EncounterRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("encounterRegistryClient.GetEncounterRoleByUUID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var role omrs_dto.EncounterRole
	err := c.Client.Get(ctx, constvars.ResourceEncounterRole+"/"+uuid, nil, constvars.ResourceEncounterRole, &role)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *encounterRegistryClient) GetAllEncounterRoles(ctx context.Context) ([]omrs_dto.EncounterRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("encounterRegistryClient.GetAllEncounterRoles called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var result omrs_dto.EncounterRoleListResult
	err := c.Client.Get(ctx, constvars.ResourceEncounterRole, nil, constvars.ResourceEncounterRole, &result)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result.Results, nil
}

func (c *encounterRegistryClient) CreateEncounterRole(ctx context.Context, role *omrs_dto.EncounterRole) (*omrs_dto.EncounterRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("encounterRegistryClient.CreateEncounterRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var created omrs_dto.EncounterRole
	if err := c.Client.Post(ctx, constvars.ResourceEncounterRole, constvars.ResourceEncounterRole, role, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *encounterRegistryClient) GetEncounterByUUID(ctx context.Context, uuid string) (*omrs_dto.Encounter, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("encounterRegistryClient.GetEncounterByUUID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterUUIDKey, uuid),
	)

	var encounter omrs_dto.Encounter
	err := c.Client.Get(ctx, constvars.ResourceEncounter+"/"+uuid, nil, constvars.ResourceEncounter, &encounter)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &encounter, nil
}

func (c *encounterRegistryClient) CreateEncounter(ctx context.Context, encounter *omrs_dto.Encounter) (*omrs_dto.Encounter, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("encounterRegistryClient.CreateEncounter called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var created omrs_dto.Encounter
	if err := c.Client.Post(ctx, constvars.ResourceEncounter, constvars.ResourceEncounter, encounter, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
