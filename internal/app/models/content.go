package models

import (
	"strings"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"
)

// Content is a document payload together with the coded values a handler
// needs to decide how to persist it.
type Content struct {
	DocUniqueID string
	Payload     []byte
	TypeCode    xds.CodedValue
	FormatCode  xds.CodedValue
	ContentType string
}

// DocumentContext carries the resolved clinical identities for a single
// document entry so handlers never re-resolve them.
type DocumentContext struct {
	PatientUUID       string
	EncounterTypeUUID string
	EncounterUUID     string
	LocationUUID      string
	Providers         RoleProviderMap
}

// RoleAssignment maps one encounter role to the providers filling it for a
// document. Order is preserved so the stringified form round-trips.
type RoleAssignment struct {
	RoleUUID      string   `bson:"role_uuid" json:"role_uuid"`
	ProviderUUIDs []string `bson:"provider_uuids" json:"provider_uuids"`
}

type RoleProviderMap []RoleAssignment

// Add appends the provider to the role's assignment, creating the assignment
// when the role is new. Duplicate providers within a role are dropped.
func (m RoleProviderMap) Add(roleUUID, providerUUID string) RoleProviderMap {
	for i := range m {
		if m[i].RoleUUID == roleUUID {
			for _, existing := range m[i].ProviderUUIDs {
				if existing == providerUUID {
					return m
				}
			}
			m[i].ProviderUUIDs = append(m[i].ProviderUUIDs, providerUUID)
			return m
		}
	}
	return append(m, RoleAssignment{RoleUUID: roleUUID, ProviderUUIDs: []string{providerUUID}})
}

// Stringify renders the map as "role:prov,prov|role:prov".
func (m RoleProviderMap) Stringify() string {
	parts := make([]string, 0, len(m))
	for _, assignment := range m {
		parts = append(parts, assignment.RoleUUID+":"+strings.Join(assignment.ProviderUUIDs, ","))
	}
	return strings.Join(parts, "|")
}

// ParseRoleProviderMap is the inverse of Stringify. Empty input yields an
// empty map; malformed segments are skipped rather than failing the item.
func ParseRoleProviderMap(raw string) RoleProviderMap {
	var result RoleProviderMap
	if raw == "" {
		return result
	}
	for _, segment := range strings.Split(raw, "|") {
		roleAndProviders := strings.SplitN(segment, ":", 2)
		if len(roleAndProviders) != 2 || roleAndProviders[0] == "" {
			continue
		}
		assignment := RoleAssignment{RoleUUID: roleAndProviders[0]}
		for _, providerUUID := range strings.Split(roleAndProviders[1], ",") {
			if providerUUID != "" {
				assignment.ProviderUUIDs = append(assignment.ProviderUUIDs, providerUUID)
			}
		}
		result = append(result, assignment)
	}
	return result
}
