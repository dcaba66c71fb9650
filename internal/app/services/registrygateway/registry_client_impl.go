package registrygateway

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	registryClientInstance contracts.DocumentRegistryClient
	onceRegistryClient     sync.Once
)

// documentRegistryClient submits metadata to the remote document registry.
// Submissions are throttled so a burst of ingests cannot overwhelm the
// registry endpoint.
type documentRegistryClient struct {
	RegistryURL string
	HTTP        *http.Client
	Limiter     *rate.Limiter
	Log         *zap.Logger
}

func NewDocumentRegistryClient(registryURL string, timeout time.Duration, requestsPerSecond float64, logger *zap.Logger) contracts.DocumentRegistryClient {
	onceRegistryClient.Do(func() {
		if requestsPerSecond <= 0 {
			requestsPerSecond = 5
		}
		registryClientInstance = &documentRegistryClient{
			RegistryURL: registryURL,
			HTTP:        &http.Client{Timeout: timeout},
			Limiter:     rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
			Log:         logger,
		}
	})
	return registryClientInstance
}

func (c *documentRegistryClient) RegisterDocumentSet(ctx context.Context, request *xds.SubmitObjectsRequest) (*xds.RegistryResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("documentRegistryClient.RegisterDocumentSet called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRegistryURLKey, c.RegistryURL),
	)

	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrRegistryNotAvailable(err, c.RegistryURL)
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.RegistryURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Error("documentRegistryClient.RegisterDocumentSet error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRegistryURLKey, c.RegistryURL),
			zap.Error(err),
		)
		return nil, exceptions.ErrRegistryNotAvailable(err, c.RegistryURL)
	}
	defer resp.Body.Close()

	var registryResponse xds.RegistryResponse
	if err := json.NewDecoder(resp.Body).Decode(&registryResponse); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "registry")
	}
	return &registryResponse, nil
}
