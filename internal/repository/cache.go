package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cogworks/invoice-service/internal/config"
	"github.com/cogworks/invoice-service/internal/models"
)

const (
	invoiceKeyPrefix = "invoice:"
	defaultCacheTTL  = 5 * time.Minute
)

// RedisInvoiceCache implements InvoiceCache using Redis. Cache errors
// are reported to callers, who treat them as best-effort.
type RedisInvoiceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisInvoiceCache creates a new Redis-based invoice cache.
func NewRedisInvoiceCache(cfg config.RedisConfig, logger *zap.Logger) *RedisInvoiceCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisInvoiceCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves an invoice record from cache. A miss returns (nil, nil).
func (c *RedisInvoiceCache) Get(ctx context.Context, invoiceNo string) (*models.InvoiceRecord, error) {
	key := invoiceKeyPrefix + invoiceNo

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", zap.String("invoice_no", invoiceNo))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Cache get error",
			zap.String("invoice_no", invoiceNo),
			zap.Error(err),
		)
		return nil, err
	}

	var rec models.InvoiceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	c.logger.Debug("Cache hit", zap.String("invoice_no", invoiceNo))
	return &rec, nil
}

// Set stores an invoice record in cache.
func (c *RedisInvoiceCache) Set(ctx context.Context, rec *models.InvoiceRecord) error {
	key := invoiceKeyPrefix + rec.InvoiceNo

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error",
			zap.String("invoice_no", rec.InvoiceNo),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// Delete removes an invoice record from cache.
func (c *RedisInvoiceCache) Delete(ctx context.Context, invoiceNo string) error {
	key := invoiceKeyPrefix + invoiceNo

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Cache delete error",
			zap.String("invoice_no", invoiceNo),
			zap.Error(err),
		)
		return err
	}

	return nil
}
