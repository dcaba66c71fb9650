package config

type (
	InternalConfig struct {
		App              App
		JWT              JWT
		IdentityRegistry IdentityRegistry
		XDS              XDS
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		Logger   Logger
	}

	App struct {
		Env             string
		Port            string
		Version         string
		Timezone        string
		EndpointPrefix  string
		MaxRequests     int
		ShutdownTimeout int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	JWT struct {
		Secret string
	}

	// IdentityRegistry points at the clinical identity registry holding
	// patients, providers, encounters, locations and forms.
	IdentityRegistry struct {
		BaseURL          string
		TimeoutInSeconds int
	}

	XDS struct {
		RepositoryUniqueID        string
		RegistryURL               string
		RegistryTimeoutInSeconds  int
		RegistryRequestsPerSecond float64

		AutocreatePatients    bool
		AsyncDiscreteHandling bool
		EnterpriseIDTypeName  string
		// PatientIDTypeByAuthority maps an assigning authority to the
		// identifier type UUID it should resolve to.
		PatientIDTypeByAuthority map[string]string

		LocationLookupCodeAttributeTypeUUID      string
		LocationSoftwareVersionAttributeTypeUUID string

		DiscreteWorkerIntervalInSeconds int
		DiscreteWorkerBatchSize         int
		QueueConsumerPrefetch           int

		CDAImportURL           string
		CDAImportTimeoutInSecs int

		AuditSourceID string
	}
)
