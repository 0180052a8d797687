package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey          = "inventory:stream"
	ConsumerGroupName  = "availability-workers"
	ConsumerNamePrefix = "worker"

	payloadField = "event"
)

// RedisStreamConfig 可注入的逾時與重試設定；零值欄位使用預設。
type RedisStreamConfig struct {
	ClaimMinIdleTime   time.Duration // PEL 中超過此時間才被 XAUTOCLAIM 領取
	MaxRetryCount      int           // 超過此次數視為毒藥消息並丟棄
	ReadGroupBlockTime time.Duration // XReadGroup 阻塞時間
	MaxLen             int64         // stream 近似長度上限，0 表示不修剪
}

func (c *RedisStreamConfig) withDefaults() RedisStreamConfig {
	cfg := RedisStreamConfig{
		ClaimMinIdleTime:   5 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
		MaxLen:             100000,
	}
	if c == nil {
		return cfg
	}
	if c.ClaimMinIdleTime > 0 {
		cfg.ClaimMinIdleTime = c.ClaimMinIdleTime
	}
	if c.MaxRetryCount > 0 {
		cfg.MaxRetryCount = c.MaxRetryCount
	}
	if c.ReadGroupBlockTime > 0 {
		cfg.ReadGroupBlockTime = c.ReadGroupBlockTime
	}
	if c.MaxLen > 0 {
		cfg.MaxLen = c.MaxLen
	}
	return cfg
}

type RedisStreamInventoryQueue struct {
	client       *redis.Client
	streamKey    string
	groupName    string
	consumerName string
	cfg          RedisStreamConfig
	log          *zap.Logger
}

// NewRedisStreamInventoryQueue 建立 Redis Stream 版 InventoryQueue。config 可為 nil。
func NewRedisStreamInventoryQueue(ctx context.Context, client *redis.Client, consumerID string, config *RedisStreamConfig) (InventoryQueue, error) {
	if consumerID == "" {
		consumerID = uuid.New().String()
	}
	q := &RedisStreamInventoryQueue{
		client:       client,
		streamKey:    StreamKey,
		groupName:    ConsumerGroupName,
		consumerName: fmt.Sprintf("%s:%s", ConsumerNamePrefix, consumerID),
		cfg:          config.withDefaults(),
		log:          logger.WithComponent("mq"),
	}
	if err := q.ensureConsumerGroup(ctx); err != nil {
		return nil, fmt.Errorf("ensure consumer group: %w", err)
	}
	return q, nil
}

func (q *RedisStreamInventoryQueue) ensureConsumerGroup(ctx context.Context) error {
	err := q.client.XGroupCreateMkStream(ctx, q.streamKey, q.groupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (q *RedisStreamInventoryQueue) PublishInventory(ctx context.Context, event *model.InventoryEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal inventory event: %w", err)
	}
	args := &redis.XAddArgs{
		Stream: q.streamKey,
		ID:     "*",
		Values: map[string]interface{}{payloadField: string(payload)},
	}
	if q.cfg.MaxLen > 0 {
		args.MaxLen = q.cfg.MaxLen
		args.Approx = true
	}
	if err := q.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

func (q *RedisStreamInventoryQueue) SubscribeInventory(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		defer close(out)
		claimDone := make(chan struct{})
		go func() {
			defer close(claimDone)
			q.runAutoClaim(ctx, out)
		}()
		q.runReadLoop(ctx, out)
		<-claimDone
	}()
	return out, nil
}

// runReadLoop 只讀 ">"（新訊息）；未 Ack 的訊息留在 PEL，由 XAUTOCLAIM 逾時後領回重試
func (q *RedisStreamInventoryQueue) runReadLoop(ctx context.Context, out chan<- Delivery) {
	for ctx.Err() == nil {
		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    q.groupName,
			Consumer: q.consumerName,
			Streams:  []string{q.streamKey, ">"},
			Count:    10,
			Block:    q.cfg.ReadGroupBlockTime,
		}).Result()

		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			q.log.Error("XReadGroup failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			if stream.Stream != q.streamKey {
				continue
			}
			if !q.deliverAll(ctx, out, stream.Messages, false) {
				return
			}
		}
	}
}

// runAutoClaim 定時用 XAUTOCLAIM 領取超時未處理的消息
func (q *RedisStreamInventoryQueue) runAutoClaim(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	startID := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			claimed, nextID, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
				Stream:   q.streamKey,
				Group:    q.groupName,
				Consumer: q.consumerName,
				MinIdle:  q.cfg.ClaimMinIdleTime,
				Count:    10,
				Start:    startID,
			}).Result()

			if err != nil && !errors.Is(err, redis.Nil) {
				if ctx.Err() != nil {
					return
				}
				q.log.Error("XAutoClaim failed", zap.Error(err))
				continue
			}
			startID = nextID
			if startID == "" {
				startID = "0-0"
			}

			if !q.deliverAll(ctx, out, claimed, true) {
				return
			}
		}
	}
}

// deliverAll 投遞一批訊息，ctx 結束時回傳 false
func (q *RedisStreamInventoryQueue) deliverAll(ctx context.Context, out chan<- Delivery, msgs []redis.XMessage, pending bool) bool {
	for _, msg := range msgs {
		if pending && q.isPoison(ctx, msg.ID) {
			continue
		}
		d := q.newDelivery(ctx, msg)
		if d == nil {
			continue
		}
		select {
		case out <- *d:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// isPoison 重試次數超過上限的訊息直接 Ack 丟棄
func (q *RedisStreamInventoryQueue) isPoison(ctx context.Context, messageID string) bool {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: q.streamKey,
		Group:  q.groupName,
		Start:  messageID,
		End:    messageID,
		Count:  1,
	}).Result()
	if err != nil || len(pending) == 0 {
		if err != nil && !errors.Is(err, redis.Nil) {
			q.log.Warn("XPendingExt failed", zap.String("message_id", messageID), zap.Error(err))
		}
		return false
	}

	retries := int(pending[0].RetryCount)
	if retries < q.cfg.MaxRetryCount {
		return false
	}
	q.log.Warn("discard poison message",
		zap.String("message_id", messageID),
		zap.Int("retries", retries),
		zap.Int("max_retries", q.cfg.MaxRetryCount),
	)
	q.ack(ctx, messageID)
	return true
}

func (q *RedisStreamInventoryQueue) ack(ctx context.Context, messageID string) {
	if err := q.client.XAck(ctx, q.streamKey, q.groupName, messageID).Err(); err != nil {
		q.log.Error("XAck failed", zap.String("message_id", messageID), zap.Error(err))
	}
}

// newDelivery 從 Redis 消息組裝 Delivery；格式錯誤的訊息直接 Ack 丟棄
func (q *RedisStreamInventoryQueue) newDelivery(ctx context.Context, msg redis.XMessage) *Delivery {
	raw, ok := msg.Values[payloadField].(string)
	if !ok {
		q.log.Warn("invalid message: missing event field", zap.String("message_id", msg.ID))
		q.ack(ctx, msg.ID)
		return nil
	}
	var event model.InventoryEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		q.log.Warn("unmarshal inventory event failed", zap.String("message_id", msg.ID), zap.Error(err))
		q.ack(ctx, msg.ID)
		return nil
	}

	msgID := msg.ID
	return &Delivery{
		Data: &event,
		Ack:  func() { q.ack(ctx, msgID) },
		Nack: func(requeue bool) {
			if requeue {
				// 消息留在 PEL，等 ClaimMinIdleTime 後由 XAUTOCLAIM 領取，形成延遲重試
				q.log.Info("message nack(requeue), will retry", zap.String("message_id", msgID), zap.Duration("claim_min_idle", q.cfg.ClaimMinIdleTime))
				return
			}
			q.ack(ctx, msgID)
		},
	}
}
