package topic

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"
)

// Cache is the byte-level key/value store used to memoize topic lookups.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedLookup serves topic lookups from Cache and falls back to the wrapped
// Lookup. Only found topics are cached, so a topic created after a miss is
// visible on the next lookup.
type CachedLookup struct {
	base  Lookup
	cache Cache
	ttl   time.Duration
}

func NewCachedLookup(base Lookup, cache Cache, ttl time.Duration) Lookup {
	if cache == nil {
		return base
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedLookup{base: base, cache: cache, ttl: ttl}
}

func (c *CachedLookup) GetTopic(ctx context.Context, id int64) (*Topic, error) {
	key := cacheKey(id)
	if raw, err := c.cache.Get(ctx, key); err == nil {
		var t Topic
		if err := json.Unmarshal(raw, &t); err == nil && t.ID == id {
			return &t, nil
		}
	}

	t, err := c.base.GetTopic(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(t); err == nil {
		if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			slog.Debug("topic cache set failed", "topic_id", id, "error", err)
		}
	}
	return t, nil
}

func cacheKey(id int64) string {
	return "quizgym:topic:" + strconv.FormatInt(id, 10)
}
