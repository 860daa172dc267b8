package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"library-lending/loggers"
	"library-lending/models"
)

// CatalogCache keeps short-lived copies of the heaviest read paths (full
// book list, overdue report) in Redis. Misses and Redis errors both fall
// through to the database; writes invalidate.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalogCache(rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{rdb: rdb, ttl: ttl}
}

func booksKey() string   { return "catalog:books" }
func overdueKey() string { return "catalog:overdue" }

func (c *CatalogCache) GetBooks(ctx context.Context) ([]models.Book, bool) {
	var books []models.Book
	if !c.get(ctx, booksKey(), &books) {
		return nil, false
	}
	return books, true
}

func (c *CatalogCache) SetBooks(ctx context.Context, books []models.Book) {
	c.set(ctx, booksKey(), books)
}

func (c *CatalogCache) GetOverdue(ctx context.Context) ([]models.Transaction, bool) {
	var txns []models.Transaction
	if !c.get(ctx, overdueKey(), &txns) {
		return nil, false
	}
	return txns, true
}

func (c *CatalogCache) SetOverdue(ctx context.Context, txns []models.Transaction) {
	c.set(ctx, overdueKey(), txns)
}

// InvalidateBooks drops the cached book list. Call on any book mutation.
func (c *CatalogCache) InvalidateBooks(ctx context.Context) {
	c.del(ctx, booksKey())
}

// InvalidateLending drops everything a borrow or return can change.
func (c *CatalogCache) InvalidateLending(ctx context.Context) {
	c.del(ctx, booksKey(), overdueKey())
}

func (c *CatalogCache) get(ctx context.Context, key string, dst interface{}) bool {
	if c == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			loggers.Logger.Debug("cache get failed: ", err)
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		loggers.Logger.Debug("cache decode failed: ", err)
		return false
	}
	return true
}

func (c *CatalogCache) set(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		loggers.Logger.Debug("cache set failed: ", err)
	}
}

func (c *CatalogCache) del(ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		loggers.Logger.Debug("cache invalidate failed: ", err)
	}
}
