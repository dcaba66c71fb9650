package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/delivery/http/controllers"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/delivery/http/middlewares"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/delivery/http/routers"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/drivers/database"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/drivers/logger"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/drivers/messaging"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/drivers/storage"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/encounters"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/patients"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/providers"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/registrygateway"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/repository"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/shared/audit"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/shared/cdaimport"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/shared/contenthandlers"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/shared/discretequeue"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/shared/locker"
	redisrepo "github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/shared/redis"
	objectstorage "github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/services/shared/storage"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/omrsclient"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(&bootstrap, minioClient)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while closing application resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client) {
	internalConfig := bootstrap.InternalConfig

	// Shared infrastructure
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	documentStorage := objectstorage.NewMinioStorage(minioClient, bootstrap.DriverConfig.Minio.BucketName)
	auditService := audit.NewAuditService(bootstrap.Logger, internalConfig.XDS.RepositoryUniqueID, internalConfig.XDS.AuditSourceID)

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, internalConfig)

	// Identity registry clients
	identityClient := omrsclient.NewClient(
		internalConfig.IdentityRegistry.BaseURL,
		time.Duration(internalConfig.IdentityRegistry.TimeoutInSeconds)*time.Second,
		bootstrap.Logger,
	)
	patientRegistry := patients.NewPatientRegistryClient(identityClient, bootstrap.Logger)
	providerRegistry := providers.NewProviderRegistryClient(identityClient, bootstrap.Logger)
	encounterRegistry := encounters.NewEncounterRegistryClient(identityClient, bootstrap.Logger)
	locationRegistry := encounters.NewLocationRegistryClient(identityClient, bootstrap.Logger)
	formRegistry := encounters.NewFormRegistryClient(identityClient, bootstrap.Logger)

	// Resolvers
	patientResolver := patients.NewPatientResolverUsecase(patientRegistry, locationRegistry, internalConfig, bootstrap.Logger)
	providerResolver := providers.NewProviderResolverUsecase(providerRegistry, encounterRegistry, bootstrap.Logger)
	encounterResolver := encounters.NewEncounterResolverUsecase(
		encounterRegistry,
		locationRegistry,
		formRegistry,
		encounters.NewCDAIdentityExtractor(),
		encounters.NewORMIdentityExtractor(),
		internalConfig,
		bootstrap.Logger,
	)

	// Content handlers
	cdaImporter := cdaimport.NewCDAImportService(
		internalConfig.XDS.CDAImportURL,
		time.Duration(internalConfig.XDS.CDAImportTimeoutInSecs)*time.Second,
		bootstrap.Logger,
	)
	unstructuredHandler := contenthandlers.NewUnstructuredHandler(documentStorage, bootstrap.Logger)
	handlerRegistry := contenthandlers.NewHandlerRegistry(unstructuredHandler)
	handlerRegistry.RegisterDiscreteHandler(
		contenthandlers.CDAHandlerName,
		xds.CodedValue{},
		xds.CodedValue{Code: constvars.CDAFormatCode},
		contenthandlers.NewCDADiscreteHandler(cdaImporter),
	)

	// Persistence
	registeredDocs := repository.NewRegisteredDocumentMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	queueRepository := discretequeue.NewQueueMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)

	// Messaging
	queueNotifier, err := discretequeue.NewRabbitMQNotifier(bootstrap.RabbitMQ, bootstrap.Logger, internalConfig.XDS.QueueConsumerPrefetch)
	if err != nil {
		logrus.Fatalf("Failed to initialize queue notifier: %v", err)
	}

	// Registry gateway
	registryClient := registrygateway.NewDocumentRegistryClient(
		internalConfig.XDS.RegistryURL,
		time.Duration(internalConfig.XDS.RegistryTimeoutInSeconds)*time.Second,
		internalConfig.XDS.RegistryRequestsPerSecond,
		bootstrap.Logger,
	)
	submissionGateway := registrygateway.NewSubmissionGatewayUsecase(registryClient, registeredDocs, auditService, internalConfig, bootstrap.Logger)

	// Repository core
	metadataValidator := repository.NewMetadataValidator()
	xdsUsecase := repository.NewXDSRepositoryUsecase(
		metadataValidator,
		patientResolver,
		providerResolver,
		encounterResolver,
		handlerRegistry,
		cdaImporter,
		registeredDocs,
		queueRepository,
		queueNotifier,
		submissionGateway,
		auditService,
		internalConfig,
		bootstrap.Logger,
	)

	// Discrete-data worker
	queueProcessor := repository.NewDiscreteQueueProcessor(registeredDocs, handlerRegistry, documentStorage, bootstrap.Logger)
	worker := discretequeue.NewWorker(bootstrap.Logger, internalConfig, lockerService, queueRepository, queueNotifier, queueProcessor)
	bootstrap.WorkerStop = worker.Start(context.Background())

	// Delivery
	xdsController := controllers.NewXDSController(bootstrap.Logger, xdsUsecase, internalConfig)
	queueAdminController := controllers.NewQueueAdminController(bootstrap.Logger, queueRepository, worker, internalConfig)

	routers.SetupRoutes(bootstrap.Router, internalConfig, appMiddlewares, xdsController, queueAdminController)
}
