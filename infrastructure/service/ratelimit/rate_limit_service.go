package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/taskana/taskana/application/port/outbound"
)

// Config holds the login-throttle knobs.
type Config struct {
	Enabled       bool
	RedisURL      string
	Attempts      int
	Window        time.Duration
	BlockDuration time.Duration
}

type rateLimitService struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRateLimitService returns a Redis-backed limiter, or a noop one when
// rate limiting is disabled.
func NewRateLimitService(config Config, logger *logrus.Logger) (outbound.RateLimitService, error) {
	if !config.Enabled {
		logger.Info("rate limiting disabled")
		return &noopRateLimitService{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"attempts":       config.Attempts,
		"window":         config.Window,
		"block_duration": config.BlockDuration,
	}).Info("rate limiting service initialized")

	return &rateLimitService{client: client, logger: logger}, nil
}

func (s *rateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := s.client.Get(ctx, attemptsKey(key)).Int()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return false, fmt.Errorf("failed to read attempt counter: %w", err)
	}
	return count < limit, nil
}

func (s *rateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	pipeline := s.client.Pipeline()
	pipeline.Incr(ctx, attemptsKey(key))
	pipeline.Expire(ctx, attemptsKey(key), window)
	if _, err := pipeline.Exec(ctx); err != nil {
		s.logger.WithError(err).Error("failed to increment attempt counter")
		return fmt.Errorf("failed to increment attempt counter: %w", err)
	}
	return nil
}

func (s *rateLimitService) Block(ctx context.Context, key string, duration time.Duration) error {
	if err := s.client.Set(ctx, blockKey(key), "1", duration).Err(); err != nil {
		return fmt.Errorf("failed to block %s: %w", key, err)
	}
	s.logger.WithFields(logrus.Fields{"key": key, "duration": duration}).Warn("key blocked")
	return nil
}

func (s *rateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	_, err := s.client.Get(ctx, blockKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to read block state: %w", err)
	}
	return true, nil
}

func attemptsKey(key string) string { return "ratelimit:attempts:" + key }
func blockKey(key string) string    { return "ratelimit:block:" + key }

// noopRateLimitService is used when throttling is disabled (tests included).
type noopRateLimitService struct{}

func (n *noopRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (n *noopRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	return nil
}

func (n *noopRateLimitService) Block(ctx context.Context, key string, duration time.Duration) error {
	return nil
}

func (n *noopRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	return false, nil
}

// NewNoopRateLimitService exposes the noop limiter for wiring in tests.
func NewNoopRateLimitService() outbound.RateLimitService {
	return &noopRateLimitService{}
}
