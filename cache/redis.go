package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis, sonuçları bir Redis sunucusunda saklayan Store'dur.
// Anahtarlar Prefix ile ad alanına alınır.
type Redis struct {
	client redis.Cmdable
	Prefix string
}

// NewRedis, verilen istemciyi kullanan bir Redis store oluşturur.
// *redis.Client, *redis.ClusterClient ve *redis.Ring kabul edilir.
func NewRedis(client redis.Cmdable, prefix string) *Redis {
	if prefix == "" {
		prefix = "fluentdb:"
	}
	return &Redis{client: client, Prefix: prefix}
}

// Get, Store arayüzünü uygular. redis.Nil bir cache miss'tir.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set, Store arayüzünü uygular.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, r.Prefix+key, value, ttl).Err()
}

// Delete, Store arayüzünü uygular.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.Prefix+key).Err()
}
