package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"

	LoggingDocumentIDKey       = "document_unique_id"
	LoggingEntryIDKey          = "entry_id"
	LoggingSubmissionSetUIDKey = "submission_set_uid"
	LoggingPatientIDKey        = "patient_id"
	LoggingProviderIDKey       = "provider_id"
	LoggingEncounterUUIDKey    = "encounter_uuid"
	LoggingLocationCodeKey     = "location_code"
	LoggingQueueItemIDKey      = "queue_item_id"
	LoggingRegistryURLKey      = "registry_url"
	LoggingResourceKey         = "resource"
)
