// post.go provides a Valkey-backed cache for public post responses.
// The serialized JSON for a published post is stored by slug so repeat
// reads skip the database. Caching is best-effort: every cache failure is
// logged and treated as a miss.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// postKeyPrefix namespaces cached post responses in Valkey.
	postKeyPrefix = "post:"

	// DefaultPostTTL is how long a cached post response stays valid.
	DefaultPostTTL = 5 * time.Minute
)

// PostCache caches serialized public post responses by slug.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPostCache creates a post cache backed by the given Valkey client.
func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if ttl == 0 {
		ttl = DefaultPostTTL
	}
	return &PostCache{client: client, ttl: ttl}
}

// Get retrieves the cached response for a slug. The second return value
// reports a hit.
func (pc *PostCache) Get(ctx context.Context, slug string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, postKeyPrefix+slug).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("post cache get error", "slug", slug, "error", err)
		return nil, false
	}
	slog.Debug("post cache hit", "slug", slug)
	return val, true
}

// Set stores a serialized response for a slug with the configured TTL.
func (pc *PostCache) Set(ctx context.Context, slug string, payload []byte) {
	if err := pc.client.Set(ctx, postKeyPrefix+slug, payload, pc.ttl).Err(); err != nil {
		slog.Warn("post cache set error", "slug", slug, "error", err)
	}
}

// Invalidate removes a single cached post by slug. Called after any write
// that changes the post.
func (pc *PostCache) Invalidate(ctx context.Context, slug string) {
	if err := pc.client.Del(ctx, postKeyPrefix+slug).Err(); err != nil {
		slog.Warn("post cache invalidate error", "slug", slug, "error", err)
	}
	slog.Debug("post cache invalidated", "slug", slug)
}
