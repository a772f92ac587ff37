package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nickmwangemi/Flight-Management-API/config"
	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
	reportsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL, reportsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
		reportsTTL: reportsTTL,
	}
}

// GetFlights returns the cached unfiltered flight list, or nil on a miss.
func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

// GetReport returns a cached statistics report payload, or nil on a miss.
// The stats service owns the encoding; the cache stores opaque JSON.
func (c *RedisCache) GetReport(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, reportKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (c *RedisCache) SetReport(ctx context.Context, key string, payload []byte) error {
	return c.client.Set(ctx, reportKey(key), payload, c.reportsTTL).Err()
}

// InvalidateFlights drops the flight list and every cached report. Called
// after any flight mutation so stale aggregates are never served past a
// write.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	if err := c.client.Del(ctx, flightsKey()).Err(); err != nil {
		return err
	}

	iter := c.client.Scan(ctx, 0, reportKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func flightsKey() string {
	return "cache:flights"
}

func reportKey(key string) string {
	return "cache:report:" + key
}
