package routers

import (
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/delivery/http/controllers"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachQueueAdminRoutes(router chi.Router, middlewares *middlewares.Middlewares, queueAdminController *controllers.QueueAdminController) {
	router.With(middlewares.Authenticate).Get("/items", queueAdminController.ListQueueItems)
	router.With(middlewares.Authenticate).Post("/drain", queueAdminController.TriggerDrain)
}
