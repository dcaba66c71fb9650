package patients

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
	patientRegistryInstance contracts.PatientRegistry
	oncePatientRegistry     sync.Once
)

type patientRegistryClient struct {
	Client *omrsclient.Client
	Log    *zap.Logger
}

func NewPatientRegistryClient(client *omrsclient.Client, logger *zap.Logger) contracts.PatientRegistry {
	oncePatientRegistry.Do(func() {
		patientRegistryInstance = &patientRegistryClient{
			Client: client,
			Log:    logger,
		}
	})
	return patientRegistryInstance
}

func (c *patientRegistryClient) FindPatientsByIdentifier(ctx context.Context, identifier, identifierTypeUUID string) ([]omrs_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRegistryClient.FindPatientsByIdentifier called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, identifier),
	)

	query := url.Values{}
	query.Set("identifier", identifier)
	if identifierTypeUUID != "" {
		query.Set("identifierType", identifierTypeUUID)
	}
	query.Set("v", "full")

	var result omrs_dto.PatientListResult
	err := c.Client.Get(ctx, constvars.ResourcePatient, query, constvars.ResourcePatient, &result)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result.Results, nil
}

func (c *patientRegistryClient) GetPatientByUUID(ctx context.Context, uuid string) (*omrs_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRegistryClient.GetPatientByUUID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	query := url.Values{}
	query.Set("v", "full")

	var patient omrs_dto.Patient
	err := c.Client.Get(ctx, constvars.ResourcePatient+"/"+uuid, query, constvars.ResourcePatient, &patient)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (c *patientRegistryClient) CreatePatient(ctx context.Context, patient *omrs_dto.Patient) (*omrs_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRegistryClient.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var created omrs_dto.Patient
	if err := c.Client.Post(ctx, constvars.ResourcePatient, constvars.ResourcePatient, patient, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *patientRegistryClient) AddPatientIdentifier(ctx context.Context, patientUUID string, identifier *omrs_dto.PatientIdentifier) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRegistryClient.AddPatientIdentifier called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	path := constvars.ResourcePatient + "/" + patientUUID + "/identifier"
	return c.Client.Post(ctx, path, constvars.ResourcePatient, identifier, nil)
}

func (c *patientRegistryClient) GetIdentifierTypeByUUID(ctx context.Context, uuid string) (*omrs_dto.IdentifierType, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRegistryClient.GetIdentifierTypeByUUID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var idType omrs_dto.IdentifierType
	err := c.Client.Get(ctx, constvars.ResourcePatientIdentifierType+"/"+uuid, nil, constvars.ResourcePatientIdentifierType, &idType)
	if err == omrsclient.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &idType, nil
}

func (c *patientRegistryClient) GetIdentifierTypeByName(ctx context.Context, name string) (*omrs_dto.IdentifierType, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRegistryClient.GetIdentifierTypeByName called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	query := url.Values{}
	query.Set("q", name)

	var result omrs_dto.IdentifierTypeListResult
	err := c.Client.Get(ctx, constvars.ResourcePatientIdentifierType, query, constvars.ResourcePatientIdentifierType, &result)
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

func (c *patientRegistryClient) CreateIdentifierType(ctx context.Context, idType *omrs_dto.IdentifierType) (*omrs_dto.IdentifierType, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientRegistryClient.CreateIdentifierType called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var created omrs_dto.IdentifierType
	if err := c.Client.Post(ctx, constvars.ResourcePatientIdentifierType, constvars.ResourcePatientIdentifierType, idType, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
