package discretequeue

import (
	"context"
	"fmt"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"

	"go.uber.org/zap"
)

// Worker drains the discrete-data queue. It wakes on RabbitMQ notifications
// and on a ticker so items survive lost notifications, and takes a
// distributed lock per pass so only one instance drains at a time.
type Worker struct {
	log       *zap.Logger
	cfg       *config.InternalConfig
	locker    contracts.LockerService
	queueRepo contracts.QueueRepository
	notifier  *RabbitMQNotifier
	processor contracts.QueueItemProcessor
	stop      chan struct{}
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	queueRepo contracts.QueueRepository,
	notifier *RabbitMQNotifier,
	processor contracts.QueueItemProcessor,
) *Worker {
	return &Worker{
		log:       log,
		cfg:       cfg,
		locker:    lockerSvc,
		queueRepo: queueRepo,
		notifier:  notifier,
		processor: processor,
		stop:      make(chan struct{}),
	}
}

// Start begins the drain loop. It returns a stop function to halt execution.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	interval := time.Duration(w.cfg.XDS.DiscreteWorkerIntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)

	var wakeups <-chan WakeupSignal
	deliveries, err := w.notifier.Consume()
	if err != nil {
		w.log.Error("discrete worker could not consume wakeup queue; polling only",
			zap.Error(err))
	} else {
		wakeups = adaptDeliveries(deliveries)
	}

	fmt.Println("Discrete data worker started")

	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case <-ticker.C:
				w.runOnce(ctx)
			case _, ok := <-wakeups:
				if !ok {
					wakeups = nil
					continue
				}
				w.runOnce(ctx)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

// DrainNow runs one drain pass on demand and reports how many items it
// processed. The pass competes for the same lock as the scheduled ones.
func (w *Worker) DrainNow(ctx context.Context) int {
	return w.runOnce(ctx)
}

func (w *Worker) runOnce(ctx context.Context) int {
	interval := time.Duration(w.cfg.XDS.DiscreteWorkerIntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	ttl := interval - time.Second
	if ttl < time.Second {
		ttl = time.Second
	}

	acquired, lockVal, err := w.locker.TryLock(ctx, constvars.DiscreteWorkerLockKey, ttl)
	if err != nil {
		w.log.Info("discrete worker lock attempt failed", zap.Error(err))
		return 0
	}
	if !acquired {
		w.log.Warn("discrete worker lock not acquired; another instance is draining")
		return 0
	}
	defer func() {
		if err := w.locker.Unlock(ctx, constvars.DiscreteWorkerLockKey, lockVal); err != nil {
			w.log.Error("discrete worker unlock failed", zap.Error(err))
		}
	}()

	max := w.cfg.XDS.DiscreteWorkerBatchSize
	if max <= 0 {
		max = 1
	}

	processed := 0
	for i := 0; i < max; i++ {
		item, err := w.queueRepo.DequeueOldest(ctx)
		if err != nil {
			w.log.Error("discrete worker dequeue failed", zap.Error(err))
			return processed
		}
		if item == nil {
			return processed
		}

		w.log.Info("discrete worker processing item",
			zap.String(constvars.LoggingQueueItemIDKey, item.ID.Hex()),
			zap.String(constvars.LoggingDocumentIDKey, item.DocUniqueID),
		)

		processErr := w.processor.ProcessQueueItem(ctx, item)
		if completeErr := w.queueRepo.Complete(ctx, item.ID.Hex(), processErr == nil); completeErr != nil {
			w.log.Error("discrete worker could not finalize item",
				zap.String(constvars.LoggingQueueItemIDKey, item.ID.Hex()),
				zap.Error(completeErr),
			)
			return processed
		}
		processed++
		if processErr != nil {
			w.log.Error("discrete worker item failed",
				zap.String(constvars.LoggingQueueItemIDKey, item.ID.Hex()),
				zap.String(constvars.LoggingDocumentIDKey, item.DocUniqueID),
				zap.Error(processErr),
			)
		}
	}
	return processed
}
