package exceptions

import (
	"fmt"
	"strings"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
)

// Ambient failures.
var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevSendHTTPRequest)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}

	// Identity registry client
	ErrIdentityRegistryCreateResource = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf("%s: %s", constvars.ErrDevRegistryCreateResource, resource))
	}
	ErrIdentityRegistryGetResource = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf("%s: %s", constvars.ErrDevRegistryGetResource, resource))
	}
	ErrDecodeResponse = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf("%s: %s", constvars.ErrDevRegistryDecodeResponse, resource))
	}

	// Persistence and messaging
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBNotObjectID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevDBNotObjectID)
	}
	ErrRabbitMQPublishMessage = func(err error, queue string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf("%s: %s", constvars.ErrDevRabbitMQPublish, queue))
	}
	ErrMinioCreateObject = func(err error, bucket string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf("%s: %s", constvars.ErrDevMinioCreateObject, bucket))
	}
	ErrMinioGetObject = func(err error, bucket string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf("%s: %s", constvars.ErrDevMinioGetObject, bucket))
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGet)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSet)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDelete)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
)

// XDS failures carried through to the registry response error list.
var (
	ErrMissingDocuments = func(ids []string) *CustomError {
		return BuildXDSError(nil, constvars.StatusBadRequest, constvars.XDSErrMissingDocument,
			"The following documents are referenced by metadata but are missing: "+strings.Join(ids, ", "))
	}
	ErrMissingDocumentMetadata = func(ids []string) *CustomError {
		return BuildXDSError(nil, constvars.StatusBadRequest, constvars.XDSErrMissingDocumentMetadata,
			"The following documents were found but their metadata is missing: "+strings.Join(ids, ", "))
	}
	ErrMetadataField = func(message string) *CustomError {
		return BuildXDSError(nil, constvars.StatusBadRequest, constvars.XDSErrRepositoryMetadataError, message)
	}
	ErrIdentifierParse = func(err error, field string) *CustomError {
		return BuildXDSError(err, constvars.StatusBadRequest, constvars.XDSErrRepositoryMetadataError, "Invalid "+field)
	}
	ErrDocumentHashMismatch = func() *CustomError {
		return BuildXDSError(nil, constvars.StatusBadRequest, constvars.XDSErrRepositoryMetadataError, "The specified document hash is incorrect")
	}
	ErrDocumentSizeMismatch = func() *CustomError {
		return BuildXDSError(nil, constvars.StatusBadRequest, constvars.XDSErrRepositoryMetadataError, "The specified document size is incorrect")
	}
	ErrDocumentSizeNotANumber = func(err error) *CustomError {
		return BuildXDSError(err, constvars.StatusBadRequest, constvars.XDSErrRepositoryMetadataError, "Size slot does not contain a valid number")
	}
	ErrDuplicateDocumentUniqueID = func(docUniqueID string) *CustomError {
		return BuildXDSError(nil, constvars.StatusConflict, constvars.XDSErrDocumentUniqueIDError,
			fmt.Sprintf("Document id %s is duplicate", docUniqueID))
	}
	ErrUnknownPatientID = func(identifier string) *CustomError {
		return BuildXDSError(nil, constvars.StatusBadRequest, constvars.XDSErrUnknownPatientID,
			fmt.Sprintf("Patient ID %s is not known to the repository", identifier))
	}
	ErrAmbiguousPatient = func(identifier, idType string) *CustomError {
		return BuildXDSError(nil, constvars.StatusConflict, constvars.XDSErrRepositoryError,
			fmt.Sprintf("Multiple patients found for this identifier: %s, with id type: %s", identifier, idType))
	}
	ErrUnsupportedGender = func(code string) *CustomError {
		return BuildXDSError(nil, constvars.StatusBadRequest, constvars.XDSErrRepositoryError,
			fmt.Sprintf("Gender code %s is not supported, only male or female genders are accepted", code))
	}
	ErrRegistryNotAvailable = func(err error, registryURL string) *CustomError {
		return BuildXDSError(err, constvars.StatusServiceUnavailable, constvars.XDSErrRegistryNotAvailable,
			"Document Registry not available: "+registryURL)
	}
	ErrRepository = func(err error) *CustomError {
		return BuildXDSError(err, constvars.StatusInternalServerError, constvars.XDSErrRepositoryError, constvars.ErrClientSomethingWrongWithApplication)
	}
)
