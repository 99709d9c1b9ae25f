// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carefinder-au/carefinder/internal/platform/apperr"
	"github.com/carefinder-au/carefinder/internal/platform/constants"
)

// RedisTokenStore implements [TokenStore] using Redis.
//
// Expiry is delegated to the key TTL, so abandoned links clean themselves up
// without any sweeper process.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a Redis-backed magic-link token store.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

/*
Save stores a token digest with its profile id and TTL.

Parameters:
  - context: context.Context
  - digest: string (BLAKE2b digest of the raw token)
  - profileID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisTokenStore) Save(context context.Context, digest, profileID string, ttl time.Duration) error {
	key := constants.RedisPrefixMagicLink + digest

	if err := store.client.Set(context, key, profileID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_magic_link_set_failed: %w", err)
	}

	return nil
}

/*
Consume atomically retrieves and deletes the profile id for a digest.

Description: GETDEL makes redemption single-use even under concurrent
requests — exactly one caller receives the profile id.

Parameters:
  - context: context.Context
  - digest: string

Returns:
  - string: Profile id
  - error: apperr NOT_FOUND for absent/expired digests, or connectivity errors
*/
func (store *RedisTokenStore) Consume(context context.Context, digest string) (string, error) {
	key := constants.RedisPrefixMagicLink + digest

	profileID, err := store.client.GetDel(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Sign-in link is invalid or expired")
		}
		return "", fmt.Errorf("redis_magic_link_consume_failed: %w", err)
	}

	return profileID, nil
}
