package contracts

import (
	"context"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
)

type QueueRepository interface {
	Enqueue(ctx context.Context, item *models.QueueItem) error
	// DequeueOldest atomically claims the oldest queued item, moving it to
	// PROCESSING. Returns (nil, nil) when the queue is empty.
	DequeueOldest(ctx context.Context) (*models.QueueItem, error)
	Complete(ctx context.Context, itemID string, successful bool) error
	FindByStatus(ctx context.Context, status models.QueueItemStatus, limit int64) ([]models.QueueItem, error)
}

// QueueNotifier wakes the discrete-data worker when new work arrives so the
// polling interval is a ceiling, not a floor.
type QueueNotifier interface {
	NotifyEnqueued(ctx context.Context, docUniqueID string) error
}

type QueueItemProcessor interface {
	ProcessQueueItem(ctx context.Context, item *models.QueueItem) error
}

// QueueDrainer runs a drain pass outside the worker's schedule and reports
// how many items it processed.
type QueueDrainer interface {
	DrainNow(ctx context.Context) int
}
