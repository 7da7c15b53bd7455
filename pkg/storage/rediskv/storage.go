// Package rediskv keeps local-storage values in Redis under namespaced keys.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/organics-storefront/pkg/redis"
	"github.com/angelmondragon/organics-storefront/pkg/storage"
)

type kv interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	StorageKey(name string) string
	Ping(ctx context.Context) error
}

var _ kv = (*redis.Client)(nil)

// Storage is a storage.Storage backed by Redis. Values never expire.
type Storage struct {
	client kv
}

// New wraps a connected redis client.
func New(client kv) (*Storage, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &Storage{client: client}, nil
}

func (s *Storage) GetItem(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.client.StorageKey(key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.client.StorageKey(key), value, 0); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.client.StorageKey(key)); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
