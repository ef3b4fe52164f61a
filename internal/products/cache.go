package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	productKeyPrefix = "product:"
	catalogKey       = "products:all"
)

// Cache is a Redis cache-aside layer in front of the products table. A nil
// *Cache is a valid no-op so deployments without Redis just read through.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps a redis client with the given entry TTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetProduct returns the cached product or (nil, nil) on a miss.
func (c *Cache) GetProduct(ctx context.Context, productID string) (*Product, error) {
	if c == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, productKeyPrefix+productID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var p Product
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &p, nil
}

// SetProduct stores a product for the cache TTL.
func (c *Cache) SetProduct(ctx context.Context, p *Product) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKeyPrefix+p.ProductID, data, c.ttl).Err()
}

// GetCatalog returns the cached product list or (nil, nil) on a miss.
func (c *Cache) GetCatalog(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, catalogKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var list []Product
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return list, nil
}

// SetCatalog stores the full list for the cache TTL.
func (c *Cache) SetCatalog(ctx context.Context, list []Product) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey, data, c.ttl).Err()
}

// Invalidate drops a product entry and the catalog list after an upsert.
func (c *Cache) Invalidate(ctx context.Context, productID string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, productKeyPrefix+productID, catalogKey).Err()
}
