package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/gatherhub/event-catalog-service/internal/config"
)

// TicketCache caches per-event registered-ticket totals so the capacity
// check on the registration path does not hit the system of record on every
// request. Entries expire after a short TTL and are invalidated on every
// successful registration; stale reads only make the capacity check
// slightly conservative or optimistic within the TTL window.
type TicketCache struct {
	client *Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewTicketCache creates a ticket-total cache.
func NewTicketCache(client *Client, cfg *config.Redis, log *zap.Logger) *TicketCache {
	return &TicketCache{
		client: client,
		ttl:    time.Duration(cfg.TicketCacheTTLSec) * time.Second,
		log:    log,
	}
}

func ticketKey(eventID string) string {
	return fmt.Sprintf("event:%s:tickets", eventID)
}

// GetTotal returns the cached total for the event. The second result is
// false on a miss or any redis error; callers fall back to the store.
func (c *TicketCache) GetTotal(ctx context.Context, eventID string) (int, bool) {
	value, err := c.client.Get(ctx, ticketKey(eventID)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		c.log.Warn("Ticket cache read failed, falling back to store",
			zap.String("event_id", eventID),
			zap.Error(err))
		return 0, false
	}

	total, err := strconv.Atoi(value)
	if err != nil {
		c.log.Warn("Ticket cache holds malformed value",
			zap.String("event_id", eventID),
			zap.String("value", value))
		return 0, false
	}
	return total, true
}

// SetTotal stores the total for the event. Errors are logged and swallowed;
// the cache is fail-open.
func (c *TicketCache) SetTotal(ctx context.Context, eventID string, total int) {
	if err := c.client.Set(ctx, ticketKey(eventID), total, c.ttl).Err(); err != nil {
		c.log.Warn("Ticket cache write failed",
			zap.String("event_id", eventID),
			zap.Error(err))
	}
}

// Invalidate drops the cached total after a registration is written.
func (c *TicketCache) Invalidate(ctx context.Context, eventID string) {
	if err := c.client.Del(ctx, ticketKey(eventID)).Err(); err != nil {
		c.log.Warn("Ticket cache invalidation failed",
			zap.String("event_id", eventID),
			zap.Error(err))
	}
}
