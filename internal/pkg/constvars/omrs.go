package constvars

// REST resource paths on the identity registry (OpenMRS web services).
const (
	ResourcePatient               = "/patient"
	ResourcePatientIdentifierType = "/patientidentifiertype"
	ResourceProvider              = "/provider"
	ResourcePerson                = "/person"
	ResourceEncounter             = "/encounter"
	ResourceEncounterType         = "/encountertype"
	ResourceEncounterRole         = "/encounterrole"
	ResourceLocation              = "/location"
	ResourceForm                  = "/form"
)

// Well known UUIDs on the identity registry.
const (
	UnknownEncounterRoleUUID = "a0b03050-c99b-11e0-9572-0800200c9a66"
	DefaultLocationUUID      = "8d6c993e-c2cc-11de-8d13-0010c6dffd0f"
)
