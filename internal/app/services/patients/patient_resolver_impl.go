package patients

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/hl7"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/omrs_dto"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"

	"go.uber.org/zap"
)

var (
	patientResolverInstance contracts.PatientResolver
	oncePatientResolver     sync.Once
)

// sentinelName fills name parts the source system left blank.
const sentinelName = "*"

type patientResolverUsecase struct {
	PatientRegistry  contracts.PatientRegistry
	LocationRegistry contracts.LocationRegistry
	Cfg              *config.InternalConfig
	Log              *zap.Logger
}

func NewPatientResolverUsecase(
	patientRegistry contracts.PatientRegistry,
	locationRegistry contracts.LocationRegistry,
	cfg *config.InternalConfig,
	logger *zap.Logger,
) contracts.PatientResolver {
	oncePatientResolver.Do(func() {
		patientResolverInstance = &patientResolverUsecase{
			PatientRegistry:  patientRegistry,
			LocationRegistry: locationRegistry,
			Cfg:              cfg,
			Log:              logger,
		}
	})
	return patientResolverInstance
}

// ResolvePatient maps the document entry's patient identifier to an identity
// registry patient, creating one from the sourcePatientInfo demographics when
// enabled, and appends the source patient identifier when it is new.
func (uc *patientResolverUsecase) ResolvePatient(ctx context.Context, entry *xds.ExtrinsicObject) (*omrs_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientResolverUsecase.ResolvePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entry.ID),
	)

	patCX, err := hl7.ParseCX(entry.ExternalIdentifierValue(constvars.UUIDXDSDocumentEntryPatientID))
	if err != nil {
		return nil, exceptions.ErrIdentifierParse(err, "PatientId")
	}

	idType, err := uc.resolveIdentifierType(ctx, patCX.AssigningAuthority)
	if err != nil {
		return nil, err
	}

	found, err := uc.PatientRegistry.FindPatientsByIdentifier(ctx, patCX.Value, idType.UUID)
	if err != nil {
		return nil, err
	}
	// The registry search matches identifier prefixes; keep exact hits only.
	candidates := found[:0:0]
	for _, candidate := range found {
		for _, identifier := range candidate.Identifiers {
			if identifier.Identifier == patCX.Value {
				candidates = append(candidates, candidate)
				break
			}
		}
	}

	var patient *omrs_dto.Patient
	switch {
	case len(candidates) > 1:
		return nil, exceptions.ErrAmbiguousPatient(patCX.Value, idType.Name)
	case len(candidates) == 1:
		// Re-fetch so downstream callers see the full representation.
		patient, err = uc.PatientRegistry.GetPatientByUUID(ctx, candidates[0].UUID)
		if err != nil {
			return nil, err
		}
	default:
		if !uc.Cfg.XDS.AutocreatePatients {
			return nil, exceptions.ErrUnknownPatientID(patCX.Value)
		}
		patient, err = uc.createPatient(ctx, patCX, idType, entry)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.appendSourcePatientID(ctx, patient, entry); err != nil {
		return nil, err
	}
	return patient, nil
}

// resolveIdentifierType maps an assigning authority to an identifier type:
// the configured mapping first, then a lookup by name, then a newly created
// type named after the authority.
func (uc *patientResolverUsecase) resolveIdentifierType(ctx context.Context, assigningAuthority string) (*omrs_dto.IdentifierType, error) {
	if mappedUUID, ok := uc.Cfg.XDS.PatientIDTypeByAuthority[assigningAuthority]; ok {
		idType, err := uc.PatientRegistry.GetIdentifierTypeByUUID(ctx, mappedUUID)
		if err != nil {
			return nil, err
		}
		if idType != nil {
			return idType, nil
		}
	}

	idType, err := uc.PatientRegistry.GetIdentifierTypeByName(ctx, assigningAuthority)
	if err != nil {
		return nil, err
	}
	if idType != nil {
		return idType, nil
	}

	return uc.PatientRegistry.CreateIdentifierType(ctx, &omrs_dto.IdentifierType{
		Name:        assigningAuthority,
		Description: fmt.Sprintf("ID type for assigning authority '%s'", assigningAuthority),
	})
}

// createPatient synthesizes a patient from the sourcePatientInfo slot. Each
// slot value is a "PID-n|value" pair in HL7v2 field encoding.
func (uc *patientResolverUsecase) createPatient(ctx context.Context, patCX hl7.Identifier, idType *omrs_dto.IdentifierType, entry *xds.ExtrinsicObject) (*omrs_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	patient := &omrs_dto.Patient{
		Person: omrs_dto.Person{Gender: "U"},
	}
	var homeLocationUUID string

	for _, infoValue := range entry.SlotValues(constvars.SlotNameSourcePatientInfo) {
		tagAndValue := strings.SplitN(infoValue, "|", 2)
		if len(tagAndValue) != 2 {
			continue
		}
		tag, value := strings.TrimSpace(tagAndValue[0]), strings.TrimSpace(tagAndValue[1])

		switch tag {
		case "PID-3":
			sourceCX, err := hl7.ParseCX(value)
			if err != nil {
				return nil, exceptions.ErrIdentifierParse(err, "sourcePatientInfo PID-3")
			}
			sourceIDType, err := uc.resolveIdentifierType(ctx, sourceCX.AssigningAuthority)
			if err != nil {
				return nil, err
			}
			patient.Identifiers = append(patient.Identifiers, omrs_dto.PatientIdentifier{
				Identifier:     sourceCX.Value,
				IdentifierType: *sourceIDType,
				Preferred:      sourceIDType.Name == uc.Cfg.XDS.EnterpriseIDTypeName,
			})
		case "PID-5":
			patient.Person.Names = append(patient.Person.Names, parsePersonName(value))
		case "PID-7":
			birthdate, err := time.Parse("20060102", value)
			if err != nil {
				return nil, exceptions.ErrMetadataField(fmt.Sprintf("Could not parse patient date of birth %s", value))
			}
			patient.Person.Birthdate = birthdate.Format("2006-01-02")
		case "PID-8":
			switch value {
			case "M", "F":
				patient.Person.Gender = value
			default:
				return nil, exceptions.ErrUnsupportedGender(value)
			}
		case "PID-11":
			address := parsePersonAddress(value)
			patient.Person.Addresses = append(patient.Person.Addresses, address)
			// The first address component doubles as the code of the
			// patient's home location.
			if homeLocationUUID == "" && address.Address1 != "" {
				location, err := uc.LocationRegistry.GetLocationByName(ctx, address.Address1)
				if err != nil {
					return nil, err
				}
				if location != nil {
					homeLocationUUID = location.UUID
				}
			}
		default:
			uc.Log.Warn("patientResolverUsecase.createPatient unrecognized sourcePatientInfo tag",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("tag", tag),
			)
		}
	}

	// The canonical identifier from the document entry is always preferred.
	patient.Identifiers = append(patient.Identifiers, omrs_dto.PatientIdentifier{
		Identifier:     patCX.Value,
		IdentifierType: *idType,
		Preferred:      true,
		Location:       homeLocationUUID,
	})

	if len(patient.Person.Names) == 0 {
		patient.Person.Names = []omrs_dto.PersonName{{
			GivenName:  sentinelName,
			FamilyName: sentinelName,
		}}
	}

	return uc.PatientRegistry.CreatePatient(ctx, patient)
}

// appendSourcePatientID records the sourcePatientId as a non-preferred
// identifier when the patient does not carry it yet.
func (uc *patientResolverUsecase) appendSourcePatientID(ctx context.Context, patient *omrs_dto.Patient, entry *xds.ExtrinsicObject) error {
	raw, ok := entry.SlotValue(constvars.SlotNameSourcePatientID)
	if !ok || raw == "" {
		return nil
	}
	sourceCX, err := hl7.ParseCX(raw)
	if err != nil {
		return exceptions.ErrIdentifierParse(err, "sourcePatientId")
	}

	sourceIDType, err := uc.resolveIdentifierType(ctx, sourceCX.AssigningAuthority)
	if err != nil {
		return err
	}
	if patient.HasIdentifier(sourceIDType.Name, sourceCX.Value) {
		return nil
	}

	identifier := &omrs_dto.PatientIdentifier{
		Identifier:     sourceCX.Value,
		IdentifierType: *sourceIDType,
		Preferred:      false,
	}
	if err := uc.PatientRegistry.AddPatientIdentifier(ctx, patient.UUID, identifier); err != nil {
		return err
	}
	patient.Identifiers = append(patient.Identifiers, *identifier)
	return nil
}

// parsePersonName decodes an HL7v2 XPN: family^given^middle^suffix^prefix^degree.
// Blank components become the sentinel so the record remains valid.
func parsePersonName(value string) omrs_dto.PersonName {
	components := strings.Split(value, "^")
	part := func(i int) string {
		if i < len(components) && components[i] != "" {
			return components[i]
		}
		return sentinelName
	}
	optional := func(i int) string {
		if i < len(components) {
			return components[i]
		}
		return ""
	}
	return omrs_dto.PersonName{
		FamilyName:       part(0),
		GivenName:        part(1),
		MiddleName:       optional(2),
		FamilyNameSuffix: optional(3),
		Prefix:           optional(4),
		Degree:           optional(5),
	}
}

// parsePersonAddress decodes an HL7v2 XAD: addr1^addr2^city^state^postal^country.
func parsePersonAddress(value string) omrs_dto.PersonAddress {
	components := strings.Split(value, "^")
	component := func(i int) string {
		if i < len(components) {
			return components[i]
		}
		return ""
	}
	return omrs_dto.PersonAddress{
		Address1:      component(0),
		Address2:      component(1),
		CityVillage:   component(2),
		StateProvince: component(3),
		PostalCode:    component(4),
		Country:       component(5),
	}
}
