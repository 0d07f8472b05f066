package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/spirecart/internal/cache"
	"github.com/spirecart/internal/logger"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/repository"
	"github.com/spirecart/internal/store"
)

const catalogCachePrefix = "catalog:"

// CatalogService 商品目录服务
type CatalogService struct {
	repo     repository.ProductRepository
	cacheTTL time.Duration

	mu      sync.RWMutex
	catalog *store.Catalog
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(repo repository.ProductRepository, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{repo: repo, cacheTTL: cacheTTL}
}

// Catalog 获取只读目录，首次调用时从仓库构建
func (s *CatalogService) Catalog() (*store.Catalog, error) {
	s.mu.RLock()
	catalog := s.catalog
	s.mu.RUnlock()
	if catalog != nil {
		return catalog, nil
	}
	return s.rebuild()
}

// Reload 重新构建目录并清理搜索缓存
func (s *CatalogService) Reload(ctx context.Context) error {
	if _, err := s.rebuild(); err != nil {
		return err
	}
	if _, err := cache.DelByPrefix(ctx, catalogCachePrefix); err != nil {
		logger.Ctx(ctx).Warnw("catalog_cache_purge_failed", "error", err)
	}
	return nil
}

func (s *CatalogService) rebuild() (*store.Catalog, error) {
	products, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}
	catalog := store.NewCatalog(products)

	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()
	logger.Infow("catalog_built", "products", catalog.Len())
	return catalog, nil
}

// Get 获取商品
func (s *CatalogService) Get(id string) (models.Product, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return models.Product{}, err
	}
	product, ok := catalog.Get(id)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return product, nil
}

// Search 搜索商品，结果按筛选条件缓存
func (s *CatalogService) Search(ctx context.Context, filter store.CatalogFilter) ([]models.Product, error) {
	cacheKey := catalogSearchCacheKey(filter)
	var cached []models.Product
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	catalog, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	products := catalog.Search(filter)
	if s.cacheTTL > 0 {
		if err := cache.SetJSON(ctx, cacheKey, products, s.cacheTTL); err != nil {
			logger.Ctx(ctx).Warnw("catalog_cache_write_failed", "key", cacheKey, "error", err)
		}
	}
	return products, nil
}

func catalogSearchCacheKey(filter store.CatalogFilter) string {
	raw := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(filter.Query)),
		strings.ToLower(strings.TrimSpace(filter.Category)),
		strings.ToLower(strings.TrimSpace(filter.Seller)),
	}, "|")
	sum := sha1.Sum([]byte(raw))
	return catalogCachePrefix + "search:" + hex.EncodeToString(sum[:])
}
