package routers

import (
	"fmt"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/delivery/http/controllers"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	xdsController *controllers.XDSController,
	queueAdminController *controllers.QueueAdminController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/xds", func(r chi.Router) {
				attachXDSRoutes(r, middlewares, xdsController)
			})

			r.Route("/queue", func(r chi.Router) {
				attachQueueAdminRoutes(r, middlewares, queueAdminController)
			})
		})
	})
}
