package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultClickTTL = time.Hour

// ClickDedup suppresses repeat clicks from the same visitor, backed by Redis.
// Key format: click:<link_code>:<visitor_key>
type ClickDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClickDedup creates a ClickDedup wrapping the given Redis client.
// If ttl <= 0, defaultClickTTL is used.
func NewClickDedup(client *redis.Client, ttl time.Duration) *ClickDedup {
	if ttl <= 0 {
		ttl = defaultClickTTL
	}
	return &ClickDedup{client: client, ttl: ttl}
}

// IsDuplicate reports whether this visitor already clicked this link within the TTL.
func (d *ClickDedup) IsDuplicate(ctx context.Context, linkCode, visitorKey string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(linkCode, visitorKey)).Result()
	if err != nil {
		return false, fmt.Errorf("click dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the click so repeats within the TTL are not counted again.
func (d *ClickDedup) Mark(ctx context.Context, linkCode, visitorKey string) error {
	return d.client.Set(ctx, d.key(linkCode, visitorKey), "1", d.ttl).Err()
}

func (d *ClickDedup) key(linkCode, visitorKey string) string {
	return fmt.Sprintf("click:%s:%s", linkCode, visitorKey)
}
