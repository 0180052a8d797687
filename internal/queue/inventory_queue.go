package queue

import (
	"context"
	"go-gin-comedy-tickets/internal/model"
)

type Delivery struct {
	Data *model.InventoryEvent
	Ack  func()
	Nack func(requeue bool)
}

type InventoryQueue interface {
	// 發送庫存異動事件
	PublishInventory(ctx context.Context, event *model.InventoryEvent) error
	// 訂閱庫存異動事件
	SubscribeInventory(ctx context.Context) (<-chan Delivery, error)
}

type MemoryInventoryQueue struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.InventoryEvent
}

func NewMemoryInventoryQueue(bufferSize int) InventoryQueue {
	return &MemoryInventoryQueue{
		ch: make(chan *model.InventoryEvent, bufferSize),
	}
}

func (q *MemoryInventoryQueue) PublishInventory(ctx context.Context, event *model.InventoryEvent) error {
	select {
	case q.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryInventoryQueue) SubscribeInventory(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: event,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							select {
							case q.ch <- event: // 簡單模擬重回隊列
							default:
							}
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
