package middlewares

import (
	"net/http"
	"strings"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/utils"
)

// Authenticate guards the administrative endpoints with a bearer token.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if _, err := utils.ParseJWT(tokenString, m.InternalConfig.JWT.Secret); err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		next.ServeHTTP(w, r)
	})
}
