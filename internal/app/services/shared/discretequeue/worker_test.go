package discretequeue

import (
	"context"
	"testing"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeLocker struct {
	acquired bool
	unlocked int
}

func (f *fakeLocker) TryLock(_ context.Context, _ string, _ time.Duration) (bool, string, error) {
	return f.acquired, "lock-value", nil
}

func (f *fakeLocker) Unlock(_ context.Context, _, _ string) error {
	f.unlocked++
	return nil
}

type fakeQueue struct {
	pending   []*models.QueueItem
	completed map[string]bool
}

func (f *fakeQueue) Enqueue(_ context.Context, _ *models.QueueItem) error {
	return nil
}

func (f *fakeQueue) DequeueOldest(_ context.Context) (*models.QueueItem, error) {
	if len(f.pending) == 0 {
		return nil, nil
	}
	item := f.pending[0]
	f.pending = f.pending[1:]
	return item, nil
}

func (f *fakeQueue) Complete(_ context.Context, itemID string, successful bool) error {
	f.completed[itemID] = successful
	return nil
}

func (f *fakeQueue) FindByStatus(_ context.Context, _ models.QueueItemStatus, _ int64) ([]models.QueueItem, error) {
	return nil, nil
}

type fakeProcessor struct {
	failDocID string
	processed []string
}

func (f *fakeProcessor) ProcessQueueItem(_ context.Context, item *models.QueueItem) error {
	f.processed = append(f.processed, item.DocUniqueID)
	if item.DocUniqueID == f.failDocID {
		return assert.AnError
	}
	return nil
}

func pendingItem(docUniqueID string) *models.QueueItem {
	return &models.QueueItem{ID: primitive.NewObjectID(), DocUniqueID: docUniqueID}
}

func TestDrainNow(t *testing.T) {
	workerWith := func(locker *fakeLocker, queue *fakeQueue, processor *fakeProcessor, batch int) *Worker {
		return &Worker{
			log:       zap.NewNop(),
			cfg:       &config.InternalConfig{XDS: config.XDS{DiscreteWorkerBatchSize: batch, DiscreteWorkerIntervalInSeconds: 60}},
			locker:    locker,
			queueRepo: queue,
			processor: processor,
			stop:      make(chan struct{}),
		}
	}

	t.Run("Drains pending items oldest first and reports the count", func(t *testing.T) {
		locker := &fakeLocker{acquired: true}
		first, second := pendingItem("2.25.1"), pendingItem("2.25.2")
		queue := &fakeQueue{pending: []*models.QueueItem{first, second}, completed: make(map[string]bool)}
		processor := &fakeProcessor{}
		worker := workerWith(locker, queue, processor, 10)

		processed := worker.DrainNow(context.Background())
		assert.Equal(t, 2, processed)
		assert.Equal(t, []string{"2.25.1", "2.25.2"}, processor.processed)
		assert.True(t, queue.completed[first.ID.Hex()])
		assert.True(t, queue.completed[second.ID.Hex()])
		assert.Equal(t, 1, locker.unlocked)
	})

	t.Run("Failed item finalized as unsuccessful but still counted", func(t *testing.T) {
		locker := &fakeLocker{acquired: true}
		item := pendingItem("2.25.1")
		queue := &fakeQueue{pending: []*models.QueueItem{item}, completed: make(map[string]bool)}
		worker := workerWith(locker, queue, &fakeProcessor{failDocID: "2.25.1"}, 10)

		processed := worker.DrainNow(context.Background())
		assert.Equal(t, 1, processed)
		assert.False(t, queue.completed[item.ID.Hex()])
	})

	t.Run("Stops at the batch size", func(t *testing.T) {
		locker := &fakeLocker{acquired: true}
		queue := &fakeQueue{
			pending:   []*models.QueueItem{pendingItem("2.25.1"), pendingItem("2.25.2"), pendingItem("2.25.3")},
			completed: make(map[string]bool),
		}
		worker := workerWith(locker, queue, &fakeProcessor{}, 2)

		processed := worker.DrainNow(context.Background())
		assert.Equal(t, 2, processed)
		assert.Len(t, queue.pending, 1)
	})

	t.Run("Does nothing while another instance holds the lock", func(t *testing.T) {
		locker := &fakeLocker{acquired: false}
		queue := &fakeQueue{pending: []*models.QueueItem{pendingItem("2.25.1")}, completed: make(map[string]bool)}
		processor := &fakeProcessor{}
		worker := workerWith(locker, queue, processor, 10)

		processed := worker.DrainNow(context.Background())
		assert.Equal(t, 0, processed)
		assert.Empty(t, processor.processed)
		assert.Equal(t, 0, locker.unlocked)
	})
}
