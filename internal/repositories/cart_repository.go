package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alamlaptops/storefront/internal/cart"
	"github.com/redis/go-redis/v9"
)

// CartRepository persists a session's full cart as one JSON blob under a
// fixed key prefix. It implements cart.Persister.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

const cartKeyPrefix = "cart:"

func NewCartRepo(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

func (r *CartRepository) key(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// Load returns (nil, nil) when no cart is persisted for the session. An
// undecodable blob is reported as an error; the store treats that as an
// empty cart.
func (r *CartRepository) Load(ctx context.Context, sessionID string) ([]cart.Line, error) {

	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err != nil {

		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get cart %s from redis: %w", sessionID, err)
	}

	var lines []cart.Line

	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart %s: %w", sessionID, err)
	}

	return lines, nil
}

func (r *CartRepository) Save(ctx context.Context, sessionID string, lines []cart.Line) error {

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart %s: %w", sessionID, err)
	}

	if err := r.client.Set(ctx, r.key(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cart %s in redis: %w", sessionID, err)
	}

	return nil
}

func (r *CartRepository) Drop(ctx context.Context, sessionID string) error {

	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s from redis: %w", sessionID, err)
	}

	return nil
}
