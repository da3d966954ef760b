package services

import (
	"context"
	"log"
	"time"

	"ultimedia/internal/caching"
	"ultimedia/internal/common"
	"ultimedia/internal/models"
	"ultimedia/internal/repositories"
)

const catalogCacheTTL = 10 * time.Minute

// CatalogServiceInterface serves the public catalog listings, cache-aside.
// Cache failures are logged and fall through to the database.
type CatalogServiceInterface interface {
	ListServices(ctx context.Context) ([]*models.Service, error)
	ListEquipment(ctx context.Context) ([]*models.EquipmentOption, error)
	WarmCache(ctx context.Context) error
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
	cacheSvc    caching.CacheService
}

func NewCatalogService(catalogRepo repositories.CatalogRepository, cacheSvc caching.CacheService) CatalogServiceInterface {
	return &catalogService{catalogRepo: catalogRepo, cacheSvc: cacheSvc}
}

func (s *catalogService) ListServices(ctx context.Context) ([]*models.Service, error) {
	services, err := s.cacheSvc.GetServices(ctx)
	if err != nil {
		log.Printf("services cache read failed, falling back to database: %v", err)
	}
	if services != nil {
		return services, nil
	}

	services, err = s.catalogRepo.ListActiveServices(ctx)
	if err != nil {
		return nil, common.PersistenceError("failed to load services", err)
	}
	if cacheErr := s.cacheSvc.SetServices(ctx, services, catalogCacheTTL); cacheErr != nil {
		log.Printf("services cache write failed: %v", cacheErr)
	}
	return services, nil
}

func (s *catalogService) ListEquipment(ctx context.Context) ([]*models.EquipmentOption, error) {
	equipment, err := s.cacheSvc.GetEquipment(ctx)
	if err != nil {
		log.Printf("equipment cache read failed, falling back to database: %v", err)
	}
	if equipment != nil {
		return equipment, nil
	}

	equipment, err = s.catalogRepo.ListActiveEquipment(ctx)
	if err != nil {
		return nil, common.PersistenceError("failed to load equipment options", err)
	}
	if cacheErr := s.cacheSvc.SetEquipment(ctx, equipment, catalogCacheTTL); cacheErr != nil {
		log.Printf("equipment cache write failed: %v", cacheErr)
	}
	return equipment, nil
}

// WarmCache refreshes both catalog cache entries from the database.
func (s *catalogService) WarmCache(ctx context.Context) error {
	services, err := s.catalogRepo.ListActiveServices(ctx)
	if err != nil {
		return common.PersistenceError("failed to load services", err)
	}
	if err := s.cacheSvc.SetServices(ctx, services, catalogCacheTTL); err != nil {
		return err
	}

	equipment, err := s.catalogRepo.ListActiveEquipment(ctx)
	if err != nil {
		return common.PersistenceError("failed to load equipment options", err)
	}
	return s.cacheSvc.SetEquipment(ctx, equipment, catalogCacheTTL)
}
