package registrygateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func clientFor(url string) *documentRegistryClient {
	return &documentRegistryClient{
		RegistryURL: url,
		HTTP:        &http.Client{Timeout: 5 * time.Second},
		Limiter:     rate.NewLimiter(rate.Inf, 1),
		Log:         zap.NewNop(),
	}
}

func TestRegisterDocumentSet(t *testing.T) {
	t.Run("Decodes the registry response", func(t *testing.T) {
		var received xds.SubmitObjectsRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, constvars.MIMEApplicationJSON, r.Header.Get(constvars.HeaderContentType))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			json.NewEncoder(w).Encode(xds.RegistryResponse{Status: constvars.XDSStatusSuccess})
		}))
		defer server.Close()

		client := clientFor(server.URL)
		response, err := client.RegisterDocumentSet(context.Background(), &xds.SubmitObjectsRequest{
			ExtrinsicObjects: []xds.ExtrinsicObject{{ID: "doc1"}},
		})
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusSuccess, response.Status)
		assert.Equal(t, "doc1", received.ExtrinsicObjects[0].ID)
	})

	t.Run("Registry errors survive the round trip", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(xds.RegistryResponse{
				Status: constvars.XDSStatusFailure,
				Errors: []xds.RegistryError{{ErrorCode: "XDSRegistryMetadataError", CodeContext: "bad class code"}},
			})
		}))
		defer server.Close()

		response, err := clientFor(server.URL).RegisterDocumentSet(context.Background(), &xds.SubmitObjectsRequest{})
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusFailure, response.Status)
		assert.Equal(t, "XDSRegistryMetadataError", response.Errors[0].ErrorCode)
	})

	t.Run("Unreachable registry maps to a registry availability error", func(t *testing.T) {
		client := clientFor("http://127.0.0.1:1")

		response, err := client.RegisterDocumentSet(context.Background(), &xds.SubmitObjectsRequest{})
		assert.Nil(t, response)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusServiceUnavailable, customErr.StatusCode)
	})

	t.Run("Cancelled context aborts before sending", func(t *testing.T) {
		client := clientFor("http://127.0.0.1:1")
		client.Limiter = rate.NewLimiter(rate.Limit(0.001), 1)
		client.Limiter.Allow()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		response, err := client.RegisterDocumentSet(ctx, &xds.SubmitObjectsRequest{})
		assert.Nil(t, response)
		assert.Error(t, err)
	})

	t.Run("Malformed response maps to a decode error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		response, err := clientFor(server.URL).RegisterDocumentSet(context.Background(), &xds.SubmitObjectsRequest{})
		assert.Nil(t, response)
		assert.Error(t, err)
	})
}
