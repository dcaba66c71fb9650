package providers

import (
	"context"
	"strings"
	"sync"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/hl7"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/omrs_dto"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"

	"go.uber.org/zap"
)

var (
	providerResolverInstance contracts.ProviderResolver
	onceProviderResolver     sync.Once
)

type providerResolverUsecase struct {
	ProviderRegistry  contracts.ProviderRegistry
	EncounterRegistry contracts.EncounterRegistry
	Log               *zap.Logger
}

func NewProviderResolverUsecase(
	providerRegistry contracts.ProviderRegistry,
	encounterRegistry contracts.EncounterRegistry,
	logger *zap.Logger,
) contracts.ProviderResolver {
	onceProviderResolver.Do(func() {
		providerResolverInstance = &providerResolverUsecase{
			ProviderRegistry:  providerRegistry,
			EncounterRegistry: encounterRegistry,
			Log:               logger,
		}
	})
	return providerResolverInstance
}

// ResolveProvidersByRole walks the author classifications and yields every
// author keyed by the encounter roles it fills. Authors without any
// authorRole value land in the well known unknown role.
func (uc *providerResolverUsecase) ResolveProvidersByRole(ctx context.Context, entry *xds.ExtrinsicObject) (models.RoleProviderMap, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("providerResolverUsecase.ResolveProvidersByRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entry.ID),
	)

	var result models.RoleProviderMap
	for _, author := range entry.ClassificationsByScheme(constvars.UUIDXDSDocumentEntryAuthor) {
		authorPerson, ok := author.SlotValue(constvars.SlotNameAuthorPerson)
		if !ok || authorPerson == "" {
			continue
		}
		person := hl7.ParseXCN(authorPerson)

		provider, err := uc.findOrCreateProvider(ctx, person)
		if err != nil {
			return nil, err
		}

		roleNames := author.SlotValues(constvars.SlotNameAuthorRole)
		if len(roleNames) == 0 {
			result = result.Add(constvars.UnknownEncounterRoleUUID, provider.UUID)
			continue
		}
		for _, roleName := range roleNames {
			role, err := uc.findOrCreateRole(ctx, roleName)
			if err != nil {
				return nil, err
			}
			result = result.Add(role.UUID, provider.UUID)
		}
	}
	return result, nil
}

// findOrCreateProvider looks the author up by identifier, falls back to a
// name scan only when no identifier was supplied, and creates the provider as
// a last resort. An identifier that misses never claims a colleague whose
// name happens to match.
func (uc *providerResolverUsecase) findOrCreateProvider(ctx context.Context, person hl7.PersonTuple) (*omrs_dto.Provider, error) {
	if person.Identifier != "" {
		provider, err := uc.ProviderRegistry.GetProviderByIdentifier(ctx, person.Identifier)
		if err != nil {
			return nil, err
		}
		if provider != nil {
			return provider, nil
		}
	} else if provider, err := uc.findProviderByName(ctx, person); err != nil {
		return nil, err
	} else if provider != nil {
		return provider, nil
	}

	familyName, givenName := person.FamilyName, person.GivenName
	if familyName == "" && givenName == "" {
		// No name at all: fall back to the identifier so the record is usable.
		familyName, givenName = person.Identifier, person.Identifier
	}

	return uc.ProviderRegistry.CreateProvider(ctx, &omrs_dto.Provider{
		Identifier: person.Identifier,
		Person: &omrs_dto.Person{
			Names: []omrs_dto.PersonName{{
				FamilyName: familyName,
				GivenName:  givenName,
			}},
		},
	})
}

// findProviderByName scans all providers for one whose family name matches as
// a prefix and whose given name is contained, mirroring how loosely source
// systems fill the authorPerson components.
func (uc *providerResolverUsecase) findProviderByName(ctx context.Context, person hl7.PersonTuple) (*omrs_dto.Provider, error) {
	if person.FamilyName == "" || person.GivenName == "" {
		return nil, nil
	}

	all, err := uc.ProviderRegistry.GetAllProviders(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].Person == nil {
			continue
		}
		for _, name := range all[i].Person.Names {
			if strings.HasPrefix(name.FamilyName, person.FamilyName) &&
				strings.Contains(name.GivenName, person.GivenName) {
				return &all[i], nil
			}
		}
	}
	return nil, nil
}

func (uc *providerResolverUsecase) findOrCreateRole(ctx context.Context, roleName string) (*omrs_dto.EncounterRole, error) {
	roles, err := uc.EncounterRegistry.GetAllEncounterRoles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range roles {
		if roles[i].Name == roleName {
			return &roles[i], nil
		}
	}

	return uc.EncounterRegistry.CreateEncounterRole(ctx, &omrs_dto.EncounterRole{
		Name:        roleName,
		Description: "Created by the document repository.",
	})
}
