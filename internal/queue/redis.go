package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"polaris/components/internal/config"
	"polaris/components/internal/domain"
)

// StreamClient is the subset of *redis.Client used by RedisStream.
type StreamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XAutoClaim(ctx context.Context, a *redis.XAutoClaimArgs) *redis.XAutoClaimCmd
}

// Handler processes one consumed event. A returned error leaves the message
// pending so it is claimed again later.
type Handler func(ctx context.Context, event *domain.ActionEvent) error

// RedisStream publishes action events to a redis stream and reads them back
// through a consumer group.
type RedisStream struct {
	redisClient StreamClient
	stream      string
	groupName   string
	minIdleTime time.Duration
	block       time.Duration
}

func NewRedisStream(redisClient StreamClient, cfg config.RedisConfig) *RedisStream {
	return &RedisStream{
		redisClient: redisClient,
		stream:      cfg.Stream,
		groupName:   cfg.ConsumerGroup,
		minIdleTime: time.Duration(cfg.MinIdleTime) * time.Second,
		block:       5 * time.Second,
	}
}

// Emit adds the event to the stream.
func (q *RedisStream) Emit(ctx context.Context, event *domain.ActionEvent) error {
	value, err := event.EventValue()
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	messageID, err := q.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]interface{}{
			"event_type": event.EventType(),
			"event_data": string(value),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to add event to Redis stream %s: %w", q.stream, err)
	}

	log.Debugf("Added event %s to stream %s with message ID: %s", event.ID, q.stream, messageID)
	return nil
}

// EnsureGroup creates the stream and its consumer group when missing.
func (q *RedisStream) EnsureGroup(ctx context.Context) error {
	err := q.redisClient.XGroupCreateMkStream(ctx, q.stream, q.groupName, "0").Err()
	if err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP") {
		log.Infof("Group %s already exists for stream %s", q.groupName, q.stream)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create consumer group %s: %w", q.groupName, err)
	}
	log.Infof("✅ Stream %s and consumer group %s ready", q.stream, q.groupName)
	return nil
}

// Consume reads events as consumer until ctx is done. Messages idle longer
// than the configured min idle time are claimed from other consumers.
func (q *RedisStream) Consume(ctx context.Context, consumer string, handle Handler) error {
	if err := q.EnsureGroup(ctx); err != nil {
		return err
	}

	claimEvery := q.minIdleTime
	if claimEvery <= 0 {
		claimEvery = time.Minute
	}
	ticker := time.NewTicker(claimEvery)
	defer ticker.Stop()

	log.Infof("🚀 Starting consumer %s on stream %s", consumer, q.stream)

	for {
		select {
		case <-ctx.Done():
			log.Infof("🛑 Consumer %s stopping", consumer)
			return nil
		case <-ticker.C:
			claimed, err := q.autoClaim(ctx, consumer)
			if err != nil {
				log.Errorf("❌ Failed to auto-claim messages for %s: %v", q.stream, err)
				continue
			}
			for _, msg := range claimed {
				if err := q.process(ctx, msg, handle); err != nil {
					log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
				}
			}
		default:
			msg, err := q.read(ctx, consumer)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Errorf("❌ Failed to read from %s: %v", q.stream, err)
				continue
			}
			if msg == nil {
				continue
			}
			if err := q.process(ctx, *msg, handle); err != nil {
				log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
			}
		}
	}
}

func (q *RedisStream) read(ctx context.Context, consumer string) (*redis.XMessage, error) {
	result, err := q.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.groupName,
		Consumer: consumer,
		Streams:  []string{q.stream, ">"},
		Count:    1,
		Block:    q.block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // No new messages
		}
		return nil, fmt.Errorf("failed to read from Redis stream %s: %w", q.stream, err)
	}

	if len(result) == 0 || len(result[0].Messages) == 0 {
		return nil, nil
	}
	return &result[0].Messages[0], nil
}

func (q *RedisStream) autoClaim(ctx context.Context, consumer string) ([]redis.XMessage, error) {
	result, _, err := q.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   q.stream,
		Group:    q.groupName,
		Consumer: consumer,
		MinIdle:  q.minIdleTime,
		Start:    "0-0",
		Count:    10,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to claim messages from Redis stream %s: %w", q.stream, err)
	}
	if len(result) > 0 {
		log.Infof("🔄 Auto-claimed %d messages from %s", len(result), q.stream)
	}
	return result, nil
}

func (q *RedisStream) process(ctx context.Context, msg redis.XMessage, handle Handler) error {
	data, ok := msg.Values["event_data"].(string)
	if !ok {
		q.ack(ctx, msg.ID)
		return fmt.Errorf("invalid event data in message %s", msg.ID)
	}

	event, err := domain.UnmarshalEvent([]byte(data))
	if err != nil {
		q.ack(ctx, msg.ID)
		return fmt.Errorf("failed to unmarshal event in message %s: %w", msg.ID, err)
	}

	if err := handle(ctx, event); err != nil {
		return fmt.Errorf("handler failed for event %s: %w", event.ID, err)
	}

	q.ack(ctx, msg.ID)
	return nil
}

// ack drops undecodable messages as well as handled ones; redelivering them
// would fail the same way.
func (q *RedisStream) ack(ctx context.Context, msgID string) {
	if err := q.redisClient.XAck(ctx, q.stream, q.groupName, msgID).Err(); err != nil {
		log.Errorf("❌ Failed to ack message %s: %v", msgID, err)
	}
}
