package question

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	catalogCacheKey = "trivia:categories"
	defaultCacheTTL = 5 * time.Minute
)

// Cache provides Redis-backed category catalog caching. Categories are seeded
// at store initialization and never mutated in this service, so a short TTL is
// only a guard against out-of-band reseeds.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CatalogCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached catalog, or nil on a miss.
func (c *Cache) Get(ctx context.Context) ([]Category, error) {
	data, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Cache) Set(ctx context.Context, categories []Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogCacheKey, data, c.ttl).Err()
}
