package constvars

// Validation messages for clients, mapped by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientRegistryNotAvailable          = "the document registry is not available"
)

// Error messages for developers
const (
	ErrDevCannotParseJSON       = "cannot parse JSON"
	ErrDevCannotMarshalJSON     = "cannot marshal JSON"
	ErrDevCreateHTTPRequest     = "failed to create HTTP request"
	ErrDevSendHTTPRequest       = "failed to send HTTP request"
	ErrDevValidationFailed      = "validation failed"
	ErrDevInvalidRequestPayload = "invalid request payload"

	// Identity registry messages
	ErrDevRegistryCreateResource = "failed to create resource on identity registry"
	ErrDevRegistryGetResource    = "failed to get resource from identity registry"
	ErrDevRegistryDecodeResponse = "failed to decode identity registry response"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevMissingRequestID          = "request id not found in context"

	// Database messages
	ErrDevDBFailedToInsertDocument = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument = "failed to update document into database"
	ErrDevDBFailedToFindDocument   = "failed when do find document on database"
	ErrDevDBNotObjectID            = "given id is not a valid object id"

	// Messaging messages
	ErrDevRabbitMQPublish = "failed to publish message to queue"

	// Redis messages
	ErrDevRedisGet    = "failed to get value from redis"
	ErrDevRedisSet    = "failed to set value in redis"
	ErrDevRedisDelete = "failed to delete value from redis"
	ErrDevRedisUnlock = "failed to release lock"

	// Object storage messages
	ErrDevMinioCreateObject = "failed to store object in bucket"
	ErrDevMinioGetObject    = "failed to retrieve object from bucket"

	// Server messages
	ErrDevServerDeadlineExceeded = "deadline exceeded"
)

const (
	ErrFileLocationUnknown = "file location unknown"
	ErrLineLocationUnknown = "line location unknown"
	ErrFunctionNameUnknown = "function name unknown"
)
