package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"quote-service/internal/cache"
	"quote-service/internal/metrics"
	"quote-service/internal/models"
)

const productTypeSearchLimit = 5

// ProductTypeService serves the tractor type catalog through a read-through cache.
type ProductTypeService struct {
	repo    ProductTypeStore
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewProductTypeService(repo ProductTypeStore, c cache.Cache, ttl time.Duration, m *metrics.Metrics) *ProductTypeService {
	return &ProductTypeService{repo: repo, cache: c, ttl: ttl, metrics: m}
}

func (s *ProductTypeService) List(ctx context.Context) ([]models.ProductType, error) {
	key := cache.Key("product-types", "all")
	var types []models.ProductType
	if s.cached(ctx, key, &types) {
		return types, nil
	}

	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, types)
	return types, nil
}

// FindByName resolves a product type by exact name first and substring second.
func (s *ProductTypeService) FindByName(ctx context.Context, name string) (*models.ProductType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product type name is required", models.ErrValidation)
	}

	key := cache.Key("product-types", "name", strings.ToLower(name))
	var pt models.ProductType
	if s.cached(ctx, key, &pt) {
		return &pt, nil
	}

	found, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, found)
	return found, nil
}

func (s *ProductTypeService) GetByID(ctx context.Context, id int64) (*models.ProductType, error) {
	key := cache.Key("product-types", "id", strconv.FormatInt(id, 10))
	var pt models.ProductType
	if s.cached(ctx, key, &pt) {
		return &pt, nil
	}

	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, found)
	return found, nil
}

func (s *ProductTypeService) Search(ctx context.Context, query string) ([]models.ProductType, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query), productTypeSearchLimit)
}

func (s *ProductTypeService) cached(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := cache.GetJSON(ctx, s.cache, key, dest)
	if err != nil {
		slog.Warn("catalog cache read failed", "key", key, "backend", s.cache.Name(), "error", err)
	}
	s.metrics.RecordCacheLookup(s.cache.Name(), hit)
	return hit
}

func (s *ProductTypeService) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := cache.SetJSON(ctx, s.cache, key, value, s.ttl); err != nil {
		slog.Warn("catalog cache write failed", "key", key, "backend", s.cache.Name(), "error", err)
	}
}
