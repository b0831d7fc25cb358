package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/relabs-tech/imu_fetch/internal/imu"
)

const (
	DefaultRedisKey = "imu:latest"
	DefaultRedisTTL = 30 * time.Second
)

// setter is the slice of redis.Cmdable the sink needs.
type setter interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Redis keeps the most recent burst under one key with a TTL, so readers can
// poll the current state without tailing the files.
type Redis struct {
	client setter
	closer func() error
	key    string
	ttl    time.Duration
}

// DialRedis connects to addr and checks the server answers.
func DialRedis(ctx context.Context, addr string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       0,
		Protocol: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	r := NewRedis(client, DefaultRedisKey, DefaultRedisTTL)
	r.closer = client.Close
	return r, nil
}

// NewRedis wraps an existing client.
func NewRedis(client setter, key string, ttl time.Duration) *Redis {
	return &Redis{client: client, key: key, ttl: ttl}
}

func (r *Redis) Write(ctx context.Context, fr imu.Frame) error {
	data, err := json.Marshal(fr.Message())
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}
