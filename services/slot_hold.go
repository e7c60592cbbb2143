package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SlotHolder takes a short-lived exclusive hold on a staff/start-time
// pair while the conflict check and insert run. It narrows the window
// between two concurrent creates racing for the same slot; the SQL
// overlap check inside the transaction remains the source of truth.
type SlotHolder interface {
	AcquireSlotHold(ctx context.Context, staffID uuid.UUID, start time.Time, ttl time.Duration) (bool, error)
	ReleaseSlotHold(ctx context.Context, staffID uuid.UUID, start time.Time) error
}

type RedisSlotHolder struct {
	client *redis.Client
}

func NewRedisSlotHolder(client *redis.Client) *RedisSlotHolder {
	return &RedisSlotHolder{client: client}
}

func (h *RedisSlotHolder) AcquireSlotHold(ctx context.Context, staffID uuid.UUID, start time.Time, ttl time.Duration) (bool, error) {
	return h.client.SetNX(ctx, slotHoldKey(staffID, start), "held", ttl).Result()
}

func (h *RedisSlotHolder) ReleaseSlotHold(ctx context.Context, staffID uuid.UUID, start time.Time) error {
	return h.client.Del(ctx, slotHoldKey(staffID, start)).Err()
}

func slotHoldKey(staffID uuid.UUID, start time.Time) string {
	return fmt.Sprintf("hold:staff:%s:%d", staffID, start.Unix())
}
