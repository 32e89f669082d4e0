package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clientbook/clientbook/internal/model"
)

// profileCachePrefix is the Redis key prefix for cached user profiles.
const profileCachePrefix = "profile:"

// CachedProfile is the user projection stored in Redis. It never holds the password hash.
type CachedProfile struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
}

func profileKey(userID string) string {
	return profileCachePrefix + userID
}

// GetProfile retrieves a cached profile by user ID.
// Returns nil if not found (cache miss).
func (c *Cache) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	data, err := c.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var cached CachedProfile
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.User{
		ID:             cached.ID,
		FullName:       cached.FullName,
		Email:          cached.Email,
		Phone:          cached.Phone,
		ProfilePicture: cached.ProfilePicture,
		CreatedAt:      cached.CreatedAt,
	}, nil
}

// SetProfile caches a user profile, replacing any existing entry.
// Writers call it after changing the stored profile.
func (c *Cache) SetProfile(ctx context.Context, user *model.User) error {
	data, err := encodeProfile(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileKey(user.ID), data, c.profileTTL).Err()
}

// AddProfile caches a user profile only if no entry exists.
// Read-through fills use it so a slow read never overwrites a newer entry.
func (c *Cache) AddProfile(ctx context.Context, user *model.User) error {
	data, err := encodeProfile(user)
	if err != nil {
		return err
	}
	return c.client.SetNX(ctx, profileKey(user.ID), data, c.profileTTL).Err()
}

func encodeProfile(user *model.User) ([]byte, error) {
	cached := CachedProfile{
		ID:             user.ID,
		FullName:       user.FullName,
		Email:          user.Email,
		Phone:          user.Phone,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return data, nil
}

// DeleteProfile removes a cached profile.
// Called when credentials change.
func (c *Cache) DeleteProfile(ctx context.Context, userID string) error {
	return c.client.Del(ctx, profileKey(userID)).Err()
}
