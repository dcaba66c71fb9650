package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubQueueReader struct {
	items      []models.QueueItem
	lastStatus models.QueueItemStatus
	lastLimit  int64
}

func (s *stubQueueReader) Enqueue(_ context.Context, _ *models.QueueItem) error {
	return nil
}

func (s *stubQueueReader) DequeueOldest(_ context.Context) (*models.QueueItem, error) {
	return nil, nil
}

func (s *stubQueueReader) Complete(_ context.Context, _ string, _ bool) error {
	return nil
}

func (s *stubQueueReader) FindByStatus(_ context.Context, status models.QueueItemStatus, limit int64) ([]models.QueueItem, error) {
	s.lastStatus = status
	s.lastLimit = limit
	return s.items, nil
}

type stubDrainer struct {
	processed int
	calls     int
}

func (s *stubDrainer) DrainNow(_ context.Context) int {
	s.calls++
	return s.processed
}

func queueAdminRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	return req.WithContext(ctx)
}

func TestListQueueItems(t *testing.T) {
	t.Run("Defaults to failed items", func(t *testing.T) {
		repo := &stubQueueReader{items: []models.QueueItem{{DocUniqueID: "2.25.1"}}}
		ctrl := &QueueAdminController{Log: zap.NewNop(), QueueRepo: repo, InternalConfig: &config.InternalConfig{}}

		recorder := httptest.NewRecorder()
		ctrl.ListQueueItems(recorder, queueAdminRequest(http.MethodGet, "/queue/items"))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, models.QueueItemStatusFailed, repo.lastStatus)
		assert.Equal(t, int64(defaultQueueListLimit), repo.lastLimit)
	})

	t.Run("Honors status and limit filters", func(t *testing.T) {
		repo := &stubQueueReader{}
		ctrl := &QueueAdminController{Log: zap.NewNop(), QueueRepo: repo, InternalConfig: &config.InternalConfig{}}

		recorder := httptest.NewRecorder()
		ctrl.ListQueueItems(recorder, queueAdminRequest(http.MethodGet, "/queue/items?status=QUEUED&limit=5"))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, models.QueueItemStatusQueued, repo.lastStatus)
		assert.Equal(t, int64(5), repo.lastLimit)
	})

	t.Run("Rejects unknown status", func(t *testing.T) {
		ctrl := &QueueAdminController{Log: zap.NewNop(), QueueRepo: &stubQueueReader{}, InternalConfig: &config.InternalConfig{}}

		recorder := httptest.NewRecorder()
		ctrl.ListQueueItems(recorder, queueAdminRequest(http.MethodGet, "/queue/items?status=BOGUS"))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Missing request id rejected", func(t *testing.T) {
		ctrl := &QueueAdminController{Log: zap.NewNop(), QueueRepo: &stubQueueReader{}, InternalConfig: &config.InternalConfig{}}

		recorder := httptest.NewRecorder()
		ctrl.ListQueueItems(recorder, httptest.NewRequest(http.MethodGet, "/queue/items", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestTriggerDrain(t *testing.T) {
	t.Run("Runs a drain pass and reports the count", func(t *testing.T) {
		drainer := &stubDrainer{processed: 3}
		ctrl := &QueueAdminController{
			Log:            zap.NewNop(),
			QueueRepo:      &stubQueueReader{},
			Drainer:        drainer,
			InternalConfig: &config.InternalConfig{},
		}

		recorder := httptest.NewRecorder()
		ctrl.TriggerDrain(recorder, queueAdminRequest(http.MethodPost, "/queue/drain"))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 1, drainer.calls)

		var body responses.ResponseDTO
		assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Equal(t, map[string]interface{}{"processed": float64(3)}, body.Data)
	})

	t.Run("Missing request id rejected without draining", func(t *testing.T) {
		drainer := &stubDrainer{}
		ctrl := &QueueAdminController{
			Log:            zap.NewNop(),
			QueueRepo:      &stubQueueReader{},
			Drainer:        drainer,
			InternalConfig: &config.InternalConfig{},
		}

		recorder := httptest.NewRecorder()
		ctrl.TriggerDrain(recorder, httptest.NewRequest(http.MethodPost, "/queue/drain", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, 0, drainer.calls)
	})
}
