package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/models"
)

// ChannelProfileCacheRepository caches channel profile aggregates in Redis.
// The cached value is requester-independent (IsSubscribed is resolved per
// request), so one key per channel username is enough.
type ChannelProfileCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached profiles
}

// NewChannelProfileCacheRepository creates a new repository instance with TTL.
func NewChannelProfileCacheRepository(client *redis.Client, expiration time.Duration) *ChannelProfileCacheRepository {
	return &ChannelProfileCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func profileKey(username string) string {
	return fmt.Sprintf("channel_profile:%s", username)
}

// Get fetches a cached channel profile. Returns nil without error on a
// cache miss.
func (r *ChannelProfileCacheRepository) Get(ctx context.Context, username string) (*models.ChannelProfile, error) {
	key := profileKey(username)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var profile models.ChannelProfile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		logger.Log.Infow(
			"key", key,
			"value", val,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"result", profile,
		"error", nil,
	)

	return &profile, nil
}

// Set caches a channel profile with expiration.
func (r *ChannelProfileCacheRepository) Set(ctx context.Context, username string, profile *models.ChannelProfile) error {
	key := profileKey(username)

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}

// Invalidate drops the cached profile for a username. Called after profile
// updates and subscription toggles so counts never go stale past the TTL.
func (r *ChannelProfileCacheRepository) Invalidate(ctx context.Context, username string) error {
	key := profileKey(username)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "deleted",
		"error", err,
	)

	return err
}
