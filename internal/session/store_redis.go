// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/kiji/internal/platform/constants"
)

// RedisTokenStore implements [TokenStore] on Redis, for deployments where
// several client replicas share one session.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a Redis-backed token slot.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

// slotKey is the single Redis key holding the access token.
func slotKey() string {
	return fmt.Sprintf("session:%s", constants.TokenSlotKey)
}

/*
Load retrieves the token from the Redis slot.

Description: Returns an empty string without error when the slot is absent.

Parameters:
  - ctx: context.Context

Returns:
  - string: The held token, or "" if absent
  - error: Connectivity errors
*/
func (store *RedisTokenStore) Load(ctx context.Context) (string, error) {

	// Get the token from Redis
	token, err := store.client.Get(ctx, slotKey()).Result()

	// An absent slot is an anonymous session, not a failure
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis_token_load_failed: %w", err)
	}

	return token, nil
}

/*
Save writes the token into the Redis slot.

Parameters:
  - ctx: context.Context
  - token: The raw access token

Returns:
  - error: Storage failures
*/
func (store *RedisTokenStore) Save(ctx context.Context, token string) error {

	// The slot has no TTL: it lives until explicit logout or a 401 clears it
	if err := store.client.Set(ctx, slotKey(), token, 0).Err(); err != nil {
		return fmt.Errorf("redis_token_save_failed: %w", err)
	}

	return nil
}

/*
Clear removes the Redis slot.

Parameters:
  - ctx: context.Context

Returns:
  - error: Deletion failures
*/
func (store *RedisTokenStore) Clear(ctx context.Context) error {

	// Delete the slot; deleting an absent key is a no-op in Redis
	if err := store.client.Del(ctx, slotKey()).Err(); err != nil {
		return fmt.Errorf("redis_token_clear_failed: %w", err)
	}

	return nil
}
