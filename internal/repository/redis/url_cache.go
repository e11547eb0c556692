package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/snaplink/snaplink/internal/domain"
)

const keyPrefix = "url-info:"

// DefaultTTL bounds staleness between the cache and the store. It
// counts from insertion, not from the record's own expiry.
const DefaultTTL = time.Hour

// Key derives the cache key for a short code or alias. Both forms
// share one namespace so a lookup by either lands on the same entry.
func Key(codeOrAlias string) string {
	return keyPrefix + strings.ToLower(codeOrAlias)
}

// URLCache is the read-through accelerator in front of the record
// store. It is never authoritative: existence and uniqueness decisions
// always go to the store.
type URLCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewURLCache(client *redis.Client, ttl time.Duration) *URLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &URLCache{client: client, ttl: ttl}
}

// Get returns the cached record for a code or alias, (nil, nil) on a
// miss, and an error only on a cache fault.
func (c *URLCache) Get(ctx context.Context, codeOrAlias string) (*domain.ShortURL, error) {
	data, err := c.client.Get(ctx, Key(codeOrAlias)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var url domain.ShortURL
	if err := json.Unmarshal([]byte(data), &url); err != nil {
		return nil, err
	}

	return &url, nil
}

// Set stores the serialized record under the code-or-alias key.
func (c *URLCache) Set(ctx context.Context, codeOrAlias string, url *domain.ShortURL) error {
	data, err := json.Marshal(url)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, Key(codeOrAlias), data, c.ttl).Err()
}

// Invalidate removes the entries for every given code or alias. Empty
// values are skipped; deleting an absent key is a no-op, so callers
// may invalidate liberally.
func (c *URLCache) Invalidate(ctx context.Context, codesOrAliases ...string) error {
	keys := make([]string, 0, len(codesOrAliases))
	for _, v := range codesOrAliases {
		if v == "" {
			continue
		}
		keys = append(keys, Key(v))
	}
	if len(keys) == 0 {
		return nil
	}

	return c.client.Del(ctx, keys...).Err()
}
