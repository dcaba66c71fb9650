package encounters

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/omrs_dto"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"

	"go.uber.org/zap"
)

var (
	encounterResolverInstance contracts.EncounterResolver
	onceEncounterResolver     sync.Once
)

const (
	serviceStartTimeLayout = "200601021504"
	encounterTimeLayout    = "2006-01-02T15:04:05-0700"

	// Index of the organization identifier inside an XON encoded institution.
	institutionIDComponent = 9
)

type encounterResolverUsecase struct {
	EncounterRegistry contracts.EncounterRegistry
	LocationRegistry  contracts.LocationRegistry
	FormRegistry      contracts.FormRegistry
	CDAExtractor      contracts.EmbeddedIdentityExtractor
	ORMExtractor      contracts.EmbeddedIdentityExtractor
	Cfg               *config.InternalConfig
	Log               *zap.Logger
	now               func() time.Time
}

func NewEncounterResolverUsecase(
	encounterRegistry contracts.EncounterRegistry,
	locationRegistry contracts.LocationRegistry,
	formRegistry contracts.FormRegistry,
	cdaExtractor contracts.EmbeddedIdentityExtractor,
	ormExtractor contracts.EmbeddedIdentityExtractor,
	cfg *config.InternalConfig,
	logger *zap.Logger,
) contracts.EncounterResolver {
	onceEncounterResolver.Do(func() {
		encounterResolverInstance = &encounterResolverUsecase{
			EncounterRegistry: encounterRegistry,
			LocationRegistry:  locationRegistry,
			FormRegistry:      formRegistry,
			CDAExtractor:      cdaExtractor,
			ORMExtractor:      ormExtractor,
			Cfg:               cfg,
			Log:               logger,
			now:               time.Now,
		}
	})
	return encounterResolverInstance
}

// ResolveEncounterType prefers the uuid embedded in the entry id, then a
// lookup by the class code, and finally creates a new type. A created type
// keeps the embedded uuid so the source system's reference stays valid.
func (uc *encounterResolverUsecase) ResolveEncounterType(ctx context.Context, entry *xds.ExtrinsicObject) (*omrs_dto.EncounterType, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("encounterResolverUsecase.ResolveEncounterType called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entry.ID),
	)

	var embeddedUUID string
	segments := strings.Split(entry.ID, "/")
	if len(segments) > 2 && segments[2] != "" {
		embeddedUUID = segments[2]
		encounterType, err := uc.EncounterRegistry.GetEncounterTypeByUUID(ctx, embeddedUUID)
		if err != nil {
			return nil, err
		}
		if encounterType != nil {
			return encounterType, nil
		}
	}

	classCode := entry.Classification(constvars.UUIDXDSDocumentEntryClassCode)
	if classCode == nil {
		return nil, nil
	}
	name := classCode.NodeRepresentation
	if name == "" {
		name = classCode.Name
	}

	encounterType, err := uc.EncounterRegistry.GetEncounterTypeByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if encounterType != nil {
		return encounterType, nil
	}

	return uc.EncounterRegistry.CreateEncounterType(ctx, &omrs_dto.EncounterType{
		UUID:        embeddedUUID,
		Name:        name,
		Description: "Created by the document repository.",
	})
}

// ResolveEncounter reuses an existing encounter when the document payload
// carries a usable identity, otherwise assembles a new one from the entry's
// slots and the resolved patient.
func (uc *encounterResolverUsecase) ResolveEncounter(ctx context.Context, entry *xds.ExtrinsicObject, payload []byte, patient *omrs_dto.Patient) (*omrs_dto.Encounter, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("encounterResolverUsecase.ResolveEncounter called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entry.ID),
	)

	extractor := uc.ORMExtractor
	if IsStructuredClinicalDocument(entry) {
		extractor = uc.CDAExtractor
	}

	identity, err := extractor.ExtractIdentity(payload)
	if err != nil {
		uc.Log.Warn("encounterResolverUsecase.ResolveEncounter could not extract embedded identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEntryIDKey, entry.ID),
			zap.Error(err),
		)
		identity = ""
	}

	if identity != "" {
		existing, err := uc.EncounterRegistry.GetEncounterByUUID(ctx, identity)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	encounterType, err := uc.ResolveEncounterType(ctx, entry)
	if err != nil {
		return nil, err
	}

	location, err := uc.resolveLocation(ctx, entry)
	if err != nil {
		return nil, err
	}

	form, err := uc.resolveForm(ctx, entry)
	if err != nil {
		return nil, err
	}

	encounter := &omrs_dto.Encounter{
		UUID:              identity,
		EncounterDatetime: uc.encounterTime(entry).Format(encounterTimeLayout),
		EncounterType:     encounterType,
		Location:          location,
		Form:              form,
		Patient:           patient.UUID,
	}
	return uc.EncounterRegistry.CreateEncounter(ctx, encounter)
}

// encounterTime reads the serviceStartTime slot, clamping future values to
// the processing time.
func (uc *encounterResolverUsecase) encounterTime(entry *xds.ExtrinsicObject) time.Time {
	now := uc.now()
	raw, ok := entry.SlotValue(constvars.SlotNameServiceStartTime)
	if !ok || raw == "" {
		return now
	}

	startTime, err := time.ParseInLocation(serviceStartTimeLayout, raw, time.Local)
	if err != nil {
		return now
	}
	if startTime.After(now) {
		return now
	}
	return startTime
}

// resolveLocation maps the author institution to a treatment location using
// the configured lookup code attribute, creating the location when new, and
// keeps the software version attribute current.
func (uc *encounterResolverUsecase) resolveLocation(ctx context.Context, entry *xds.ExtrinsicObject) (*omrs_dto.Location, error) {
	institution := firstAuthorInstitution(entry)
	if institution == "" {
		return uc.LocationRegistry.GetDefaultLocation(ctx)
	}

	code := institution
	if strings.Contains(institution, "^") {
		components := strings.Split(institution, "^")
		if len(components) > institutionIDComponent && components[institutionIDComponent] != "" {
			code = components[institutionIDComponent]
		}
	}

	lookupAttr := uc.Cfg.XDS.LocationLookupCodeAttributeTypeUUID
	matches, err := uc.LocationRegistry.FindLocationsByAttribute(ctx, lookupAttr, code)
	if err != nil {
		return nil, err
	}

	var location *omrs_dto.Location
	if len(matches) > 0 {
		location = &matches[0]
	} else {
		location, err = uc.LocationRegistry.CreateLocation(ctx, &omrs_dto.Location{
			Name: code,
			Attributes: []omrs_dto.LocationAttribute{
				{AttributeType: lookupAttr, Value: code},
			},
		})
		if err != nil {
			return nil, err
		}
	}

	return uc.updateSoftwareVersion(ctx, location, entry.ContentVersionName)
}

// updateSoftwareVersion records the submitting system's version on the
// location, touching the registry only when the value changed.
func (uc *encounterResolverUsecase) updateSoftwareVersion(ctx context.Context, location *omrs_dto.Location, version string) (*omrs_dto.Location, error) {
	if version == "" {
		return location, nil
	}

	versionAttr := uc.Cfg.XDS.LocationSoftwareVersionAttributeTypeUUID
	if current, ok := location.Attribute(versionAttr); ok && current == version {
		return location, nil
	}

	location.SetAttribute(versionAttr, version)
	return uc.LocationRegistry.UpdateLocation(ctx, location)
}

// resolveForm reads the fourth path segment of the entry id as a form uuid.
func (uc *encounterResolverUsecase) resolveForm(ctx context.Context, entry *xds.ExtrinsicObject) (*omrs_dto.Form, error) {
	segments := strings.Split(entry.ID, "/")
	if len(segments) < 4 || segments[3] == "" {
		return nil, nil
	}

	form, err := uc.FormRegistry.GetFormByUUID(ctx, segments[3])
	if err != nil {
		return nil, err
	}
	if form != nil {
		return form, nil
	}

	return uc.FormRegistry.CreateForm(ctx, &omrs_dto.Form{
		UUID:    segments[3],
		Name:    segments[3],
		Version: "1",
	})
}

// firstAuthorInstitution returns the first authorInstitution value across the
// entry's author classifications.
func firstAuthorInstitution(entry *xds.ExtrinsicObject) string {
	for _, author := range entry.ClassificationsByScheme(constvars.UUIDXDSDocumentEntryAuthor) {
		if institution, ok := author.SlotValue(constvars.SlotNameAuthorInstitution); ok && institution != "" {
			return institution
		}
	}
	return ""
}

// IsStructuredClinicalDocument reports whether the entry's format code marks
// the payload as a structured clinical document.
func IsStructuredClinicalDocument(entry *xds.ExtrinsicObject) bool {
	formatCode := entry.Classification(constvars.UUIDXDSDocumentEntryFormatCode)
	if formatCode == nil {
		return false
	}
	return strings.EqualFold(formatCode.NodeRepresentation, constvars.CDAFormatCode)
}
