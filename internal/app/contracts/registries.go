package contracts

import (
	"context"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/omrs_dto"
)

// The identity registries expose only the lookup and create operations the
// ingestion pipeline actually uses. Lookups return (nil, nil) when no match
// exists; the pipeline never deletes identity records.

type PatientRegistry interface {
	FindPatientsByIdentifier(ctx context.Context, identifier, identifierTypeUUID string) ([]omrs_dto.Patient, error)
	GetPatientByUUID(ctx context.Context, uuid string) (*omrs_dto.Patient, error)
	CreatePatient(ctx context.Context, patient *omrs_dto.Patient) (*omrs_dto.Patient, error)
	AddPatientIdentifier(ctx context.Context, patientUUID string, identifier *omrs_dto.PatientIdentifier) error

	GetIdentifierTypeByUUID(ctx context.Context, uuid string) (*omrs_dto.IdentifierType, error)
	GetIdentifierTypeByName(ctx context.Context, name string) (*omrs_dto.IdentifierType, error)
	CreateIdentifierType(ctx context.Context, idType *omrs_dto.IdentifierType) (*omrs_dto.IdentifierType, error)
}

type ProviderRegistry interface {
	GetProviderByIdentifier(ctx context.Context, identifier string) (*omrs_dto.Provider, error)
	GetAllProviders(ctx context.Context) ([]omrs_dto.Provider, error)
	CreateProvider(ctx context.Context, provider *omrs_dto.Provider) (*omrs_dto.Provider, error)
}

type EncounterRegistry interface {
	GetEncounterTypeByUUID(ctx context.Context, uuid string) (*omrs_dto.EncounterType, error)
	GetEncounterTypeByName(ctx context.Context, name string) (*omrs_dto.EncounterType, error)
	CreateEncounterType(ctx context.Context, encounterType *omrs_dto.EncounterType) (*omrs_dto.EncounterType, error)

	GetEncounterRoleByUUID(ctx context.Context, uuid string) (*omrs_dto.EncounterRole, error)
	GetAllEncounterRoles(ctx context.Context) ([]omrs_dto.EncounterRole, error)
	CreateEncounterRole(ctx context.Context, role *omrs_dto.EncounterRole) (*omrs_dto.EncounterRole, error)

	GetEncounterByUUID(ctx context.Context, uuid string) (*omrs_dto.Encounter, error)
	CreateEncounter(ctx context.Context, encounter *omrs_dto.Encounter) (*omrs_dto.Encounter, error)
}

type LocationRegistry interface {
	FindLocationsByAttribute(ctx context.Context, attributeType, value string) ([]omrs_dto.Location, error)
	GetLocationByName(ctx context.Context, name string) (*omrs_dto.Location, error)
	GetDefaultLocation(ctx context.Context) (*omrs_dto.Location, error)
	CreateLocation(ctx context.Context, location *omrs_dto.Location) (*omrs_dto.Location, error)
	UpdateLocation(ctx context.Context, location *omrs_dto.Location) (*omrs_dto.Location, error)
}

type FormRegistry interface {
	GetFormByUUID(ctx context.Context, uuid string) (*omrs_dto.Form, error)
	CreateForm(ctx context.Context, form *omrs_dto.Form) (*omrs_dto.Form, error)
}
