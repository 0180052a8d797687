package service

import (
	"context"

	"go-gin-comedy-tickets/internal/cache"
	"go-gin-comedy-tickets/internal/metrics"
	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/queue"
	"go-gin-comedy-tickets/pkg/logger"

	"go.uber.org/zap"
)

// publishInventory 交易 commit 之後才呼叫；資料庫才是權威來源。
// 事件送不出去時把快取清掉，下一次讀取回到資料庫
func publishInventory(ctx context.Context, q queue.InventoryQueue, c cache.AvailabilityCache, inv *model.TicketInventory, reason string) {
	if inv == nil {
		return
	}
	event := model.NewInventoryEvent(inv, reason)
	log := logger.WithComponent("service").With(
		zap.Int("show_id", event.ShowID),
		zap.Int64("version", event.Version),
		zap.String("reason", reason),
	)

	if q != nil {
		err := q.PublishInventory(ctx, event)
		if err == nil {
			return
		}
		metrics.InventoryEventsDropped.Inc()
		log.Warn("publish inventory event failed", zap.Error(err))
	}

	if c == nil {
		return
	}
	if err := c.Delete(ctx, event.ShowID); err != nil {
		log.Warn("invalidate availability cache failed", zap.Error(err))
	}
}
