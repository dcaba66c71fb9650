package omrsclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the identity registry has no resource at the
// requested path.
var ErrNotFound = errors.New("identity registry resource not found")

// Client is a thin JSON client for the identity registry REST web services.
// Each resource registry wraps it with typed lookup and create operations.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     logger,
	}
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, resource string, out interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Error("omrsclient.Get error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceKey, resource),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != constvars.StatusOK {
		return c.registryError(requestID, resource, resp, false)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return exceptions.ErrDecodeResponse(err, resource)
	}
	return nil
}

func (c *Client) Post(ctx context.Context, path, resource string, in, out interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(in)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Error("omrsclient.Post error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceKey, resource),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		return c.registryError(requestID, resource, resp, true)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return exceptions.ErrDecodeResponse(err, resource)
		}
	}
	return nil
}

func (c *Client) registryError(requestID, resource string, resp *http.Response, create bool) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err == nil {
		var envelope errorEnvelope
		if json.Unmarshal(bodyBytes, &envelope) == nil && envelope.Error.Message != "" {
			err = errors.New(envelope.Error.Message)
		} else {
			err = fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
	}

	c.Log.Error("identity registry returned an error",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceKey, resource),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		zap.Error(err),
	)

	if create {
		return exceptions.ErrIdentityRegistryCreateResource(err, resource)
	}
	return exceptions.ErrIdentityRegistryGetResource(err, resource)
}
