package routers

import (
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/delivery/http/controllers"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachXDSRoutes(router chi.Router, middlewares *middlewares.Middlewares, xdsController *controllers.XDSController) {
	router.Post("/provide-and-register", xdsController.ProvideAndRegisterDocumentSetB)
}
