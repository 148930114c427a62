package icon

import (
	"context"
	"errors"
	"html/template"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// CacheClient is the subset of *redis.Client used by the icon cache.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type cachedProvider struct {
	next      Provider
	client    CacheClient
	set       string
	keyPrefix string
	ttl       time.Duration
}

// NewCached keeps decorated icons in redis. Cache errors never fail a lookup;
// they fall through to the wrapped provider.
func NewCached(next Provider, client CacheClient, set string, ttl time.Duration) Provider {
	return &cachedProvider{
		next:      next,
		client:    client,
		set:       set,
		keyPrefix: "polaris:icon:",
		ttl:       ttl,
	}
}

func (c *cachedProvider) Icon(ctx context.Context, name string) (template.HTML, error) {
	key := c.keyPrefix + Source(c.set, name)

	val, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return template.HTML(val), nil
	case !errors.Is(err, redis.Nil):
		log.Warnf("⚠️ Failed to read icon %s from cache: %v", key, err)
	}

	html, err := c.next.Icon(ctx, name)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, string(html), c.ttl).Err(); err != nil {
		log.Warnf("⚠️ Failed to cache icon %s: %v", key, err)
	}

	return html, nil
}
