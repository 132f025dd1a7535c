package controllers

import (
	"context"
	"encoding/json"
	"time"

	"shopkart/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productCachePrefix = "product:detail:"
	productListKey     = "products:list"
	defaultCacheTTL    = 5 * time.Minute
)

// CacheManager handles the Redis read-through cache in front of the
// product table.
type CacheManager struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCacheManager(client *redis.Client, logger *zap.Logger) *CacheManager {
	return &CacheManager{redis: client, ttl: defaultCacheTTL, logger: logger}
}

// GetProduct returns a cached product, or nil on a miss.
func (cm *CacheManager) GetProduct(ctx context.Context, productID string) *models.Product {
	data, err := cm.redis.Get(ctx, productCachePrefix+productID).Result()
	if err != nil {
		return nil
	}

	var product models.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		cm.logger.Warn("failed to unmarshal cached product", zap.Error(err))
		return nil
	}
	return &product
}

// SetProduct caches a single product.
func (cm *CacheManager) SetProduct(ctx context.Context, product *models.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		cm.logger.Warn("failed to marshal product for cache", zap.Error(err))
		return
	}
	if err := cm.redis.Set(ctx, productCachePrefix+product.ID.String(), data, cm.ttl).Err(); err != nil {
		cm.logger.Warn("failed to cache product", zap.Error(err))
	}
}

// GetProductList returns the cached product listing, or nil on a miss.
func (cm *CacheManager) GetProductList(ctx context.Context) []models.Product {
	data, err := cm.redis.Get(ctx, productListKey).Result()
	if err != nil {
		return nil
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil
	}
	return products
}

// SetProductList caches the product listing.
func (cm *CacheManager) SetProductList(ctx context.Context, products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := cm.redis.Set(ctx, productListKey, data, cm.ttl).Err(); err != nil {
		cm.logger.Warn("failed to cache product list", zap.Error(err))
	}
}

// Invalidate drops cache entries after a product write.
func (cm *CacheManager) Invalidate(ctx context.Context, productID string) {
	if err := cm.redis.Del(ctx, productCachePrefix+productID, productListKey).Err(); err != nil {
		cm.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}
