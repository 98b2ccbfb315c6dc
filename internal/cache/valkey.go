package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hallbook/internal/models"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
}

// ValkeyClient caches tenant and resource records in front of Postgres.
// Both record types are read-only for the engine, so a short TTL is the
// only invalidation needed.
type ValkeyClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &ValkeyClient{client: rdb, ttl: ttl}, nil
}

func tenantKey(id string) string   { return "tenant:" + id }
func resourceKey(id string) string { return "resource:" + id }

// GetTenant returns the cached tenant, or nil on a miss
func (v *ValkeyClient) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	return get[models.Tenant](ctx, v, tenantKey(id))
}

func (v *ValkeyClient) SetTenant(ctx context.Context, tenant *models.Tenant) error {
	return set(ctx, v, tenantKey(tenant.ID), tenant)
}

// GetResource returns the cached resource, or nil on a miss
func (v *ValkeyClient) GetResource(ctx context.Context, id string) (*models.Resource, error) {
	return get[models.Resource](ctx, v, resourceKey(id))
}

func (v *ValkeyClient) SetResource(ctx context.Context, resource *models.Resource) error {
	return set(ctx, v, resourceKey(resource.ID), resource)
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}

func get[T any](ctx context.Context, v *ValkeyClient, key string) (*T, error) {
	raw, err := v.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}

	value := new(T)
	if err := json.Unmarshal([]byte(raw), value); err != nil {
		return nil, fmt.Errorf("invalid cache entry for %s: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, v *ValkeyClient, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	return v.client.Set(ctx, key, raw, v.ttl).Err()
}
