package caching

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"ultimedia/internal/models"
)

const (
	servicesKey  = "ultimedia:catalog:services"
	equipmentKey = "ultimedia:catalog:equipment"
)

// CacheService caches the catalog listings. A nil, nil return is a cache
// miss; callers fall back to the repository.
type CacheService interface {
	GetServices(ctx context.Context) ([]*models.Service, error)
	SetServices(ctx context.Context, services []*models.Service, ttl time.Duration) error
	GetEquipment(ctx context.Context) ([]*models.EquipmentOption, error)
	SetEquipment(ctx context.Context, equipment []*models.EquipmentOption, ttl time.Duration) error
	InvalidateCatalog(ctx context.Context) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, addr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetServices(ctx context.Context) ([]*models.Service, error) {
	data, err := r.client.Get(ctx, servicesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var services []*models.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *redisCacheService) SetServices(ctx context.Context, services []*models.Service, ttl time.Duration) error {
	data, err := json.Marshal(services)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, servicesKey, data, ttl).Err()
}

func (r *redisCacheService) GetEquipment(ctx context.Context) ([]*models.EquipmentOption, error) {
	data, err := r.client.Get(ctx, equipmentKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var equipment []*models.EquipmentOption
	if err := json.Unmarshal(data, &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (r *redisCacheService) SetEquipment(ctx context.Context, equipment []*models.EquipmentOption, ttl time.Duration) error {
	data, err := json.Marshal(equipment)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, equipmentKey, data, ttl).Err()
}

func (r *redisCacheService) InvalidateCatalog(ctx context.Context) error {
	return r.client.Del(ctx, servicesKey, equipmentKey).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
