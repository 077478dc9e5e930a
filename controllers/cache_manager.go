package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/yashrajoria/storefront-service/models"
	awspkg "github.com/yashrajoria/storefront-service/pkg/aws"
	"github.com/yashrajoria/storefront-service/services"
	"go.uber.org/zap"
)

const (
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"
)

// CacheManager caches product list pages in Redis. Keys embed a version that
// Invalidate bumps, so stale pages simply stop being read. A nil CacheManager
// or one without a client is a no-op.
type CacheManager struct {
	redis   *redis.Client
	ttl     time.Duration
	metrics services.MetricsRecorder
}

func NewCacheManager(client *redis.Client, ttl time.Duration, metrics services.MetricsRecorder) *CacheManager {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheManager{
		redis:   client,
		ttl:     ttl,
		metrics: metrics,
	}
}

func (cm *CacheManager) enabled() bool {
	return cm != nil && cm.redis != nil
}

// GetProductList returns a cached page and the cache version it looked under.
// Any Redis failure is reported as a miss with version 0.
func (cm *CacheManager) GetProductList(ctx context.Context, q ListProductsQuery) (*models.ProductPage, int64, bool) {
	if !cm.enabled() {
		return nil, 0, false
	}

	version, err := cm.getCacheVersion(ctx)
	if err != nil {
		cm.record(awspkg.MetricCacheMisses)
		return nil, 0, false
	}

	cached, err := cm.redis.Get(ctx, listCacheKey(version, q)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("Failed to read product list cache", zap.Error(err))
		}
		cm.record(awspkg.MetricCacheMisses)
		return nil, version, false
	}

	var page models.ProductPage
	if err := json.Unmarshal(cached, &page); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		cm.record(awspkg.MetricCacheMisses)
		return nil, version, false
	}

	cm.record(awspkg.MetricCacheHits)
	return &page, version, true
}

// SetProductListAsync caches a page in the background under version, which
// must be the version read before the page was queried. A page queried across
// an Invalidate then lands under a version nobody reads any more.
func (cm *CacheManager) SetProductListAsync(version int64, q ListProductsQuery, page *models.ProductPage) {
	if !cm.enabled() || page == nil || version <= 0 {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(page)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, listCacheKey(version, q), data, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate bumps the cache version so every cached list page is bypassed.
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	if !cm.enabled() {
		return nil
	}

	newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	zap.L().Debug("Product cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

// getCacheVersion reads the current version, initialising it to 1 when the
// key does not exist yet.
func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil && ver > 0 {
		return ver, nil
	}
	if errors.Is(err, redis.Nil) {
		if ok, setErr := cm.redis.SetNX(ctx, CacheVersionKey, 1, 0).Result(); setErr == nil {
			if ok {
				return 1, nil
			}
			return cm.redis.Get(ctx, CacheVersionKey).Int64()
		}
	}
	if err == nil {
		err = fmt.Errorf("invalid cache version %d", ver)
	}
	return 0, err
}

func (cm *CacheManager) record(metric string) {
	if cm.metrics == nil || !cm.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cm.metrics.RecordCount(ctx, metric, map[string]string{"Cache": "product_list"})
	}()
}

// listCacheKey escapes the free-text filters so they cannot collide with the
// key separators.
func listCacheKey(version int64, q ListProductsQuery) string {
	return fmt.Sprintf("%s%d:n:%s:s:%s:l:%d:o:%d",
		ProductListCachePrefix,
		version,
		url.QueryEscape(q.Name),
		url.QueryEscape(q.Size),
		q.Limit,
		q.Offset,
	)
}
