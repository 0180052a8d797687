package worker

import (
	"context"

	"go-gin-comedy-tickets/internal/cache"
	"go-gin-comedy-tickets/internal/queue"
	"go-gin-comedy-tickets/pkg/logger"

	"go.uber.org/zap"
)

type AvailabilityWorker interface {
	// 訂閱庫存事件並同步到快取
	Start(ctx context.Context) error
}

type AvailabilityWorkerImpl struct {
	cache cache.AvailabilityCache
	queue queue.InventoryQueue
}

func NewAvailabilityWorker(cache cache.AvailabilityCache, queue queue.InventoryQueue) AvailabilityWorker {
	return &AvailabilityWorkerImpl{
		cache: cache,
		queue: queue,
	}
}

func (w *AvailabilityWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeInventory(ctx)
	if err != nil {
		return err
	}

	log := logger.WithComponent("availability_worker")
	go func() {
		for msg := range msgs {
			event := msg.Data
			applied, err := w.cache.Set(ctx, event.ShowID, event.Available, event.Version)
			if err != nil {
				// Redis 暫時不可用，留給下次重試
				log.Warn("sync availability failed",
					zap.Int("show_id", event.ShowID),
					zap.Int64("version", event.Version),
					zap.Error(err),
				)
				msg.Nack(true)
				continue
			}
			if !applied {
				log.Debug("stale inventory event skipped",
					zap.Int("show_id", event.ShowID),
					zap.Int64("version", event.Version),
				)
			}
			msg.Ack()
		}
	}()
	return nil
}
