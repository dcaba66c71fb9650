package config

import (
	"strings"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "xdsrepository"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "xds-documents"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:             utils.GetEnvString("APP_ENV", "development"),
			Port:            utils.GetEnvString("APP_PORT", ":8080"),
			Version:         utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:        utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:  utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:     utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeout: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		IdentityRegistry: IdentityRegistry{
			BaseURL:          utils.GetEnvString("IDENTITY_REGISTRY_BASE_URL", "http://localhost:8081/ws/rest/v1"),
			TimeoutInSeconds: utils.GetEnvInt("IDENTITY_REGISTRY_TIMEOUT_IN_SECONDS", 30),
		},
		XDS: XDS{
			RepositoryUniqueID:        utils.GetEnvString("XDS_REPOSITORY_UNIQUE_ID", "1.19.6.24.109.42.1.5.1"),
			RegistryURL:               utils.GetEnvString("XDS_REGISTRY_URL", "http://localhost:8082/registry"),
			RegistryTimeoutInSeconds:  utils.GetEnvInt("XDS_REGISTRY_TIMEOUT_IN_SECONDS", 30),
			RegistryRequestsPerSecond: utils.GetEnvFloat("XDS_REGISTRY_REQUESTS_PER_SECOND", 5),

			AutocreatePatients:       utils.GetEnvBool("XDS_AUTOCREATE_PATIENTS", true),
			AsyncDiscreteHandling:    utils.GetEnvBool("XDS_ASYNC_DISCRETE_HANDLING", false),
			EnterpriseIDTypeName:     utils.GetEnvString("XDS_ENTERPRISE_ID_TYPE_NAME", "ECID"),
			PatientIDTypeByAuthority: parseAuthorityMap(utils.GetEnvString("XDS_PATIENT_ID_TYPE_BY_AUTHORITY", "")),

			LocationLookupCodeAttributeTypeUUID:      utils.GetEnvString("XDS_LOCATION_LOOKUP_CODE_ATTRIBUTE_TYPE_UUID", ""),
			LocationSoftwareVersionAttributeTypeUUID: utils.GetEnvString("XDS_LOCATION_SOFTWARE_VERSION_ATTRIBUTE_TYPE_UUID", ""),

			DiscreteWorkerIntervalInSeconds: utils.GetEnvInt("XDS_DISCRETE_WORKER_INTERVAL_IN_SECONDS", 60),
			DiscreteWorkerBatchSize:         utils.GetEnvInt("XDS_DISCRETE_WORKER_BATCH_SIZE", 25),
			QueueConsumerPrefetch:           utils.GetEnvInt("XDS_QUEUE_CONSUMER_PREFETCH", 10),

			CDAImportURL:           utils.GetEnvString("XDS_CDA_IMPORT_URL", ""),
			CDAImportTimeoutInSecs: utils.GetEnvInt("XDS_CDA_IMPORT_TIMEOUT_IN_SECONDS", 30),

			AuditSourceID: utils.GetEnvString("XDS_AUDIT_SOURCE_ID", "openmrs-xds-repository"),
		},
	}
}

// parseAuthorityMap reads "authority=uuid,authority=uuid" pairs.
func parseAuthorityMap(raw string) map[string]string {
	result := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		result[parts[0]] = parts[1]
	}
	return result
}
