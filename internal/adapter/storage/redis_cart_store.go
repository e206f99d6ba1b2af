package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/storefront/internal/core/domain"
)

const (
	cartKeyPrefix     = "cart:"
	cartSchemaVersion = 1
)

// cartEnvelope is the persisted shape of a cart: a versioned JSON
// document replaced whole on every write.
type cartEnvelope struct {
	Version int               `json:"version"`
	Items   []domain.LineItem `json:"items"`
}

// RedisCartStore keeps one cart per user under a single key. Reads of
// a missing key or of a payload that fails to decode return an empty
// cart — corrupt data means "no cart", never a fatal error.
type RedisCartStore struct {
	client *redis.Client
}

func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{client: client}
}

func (s *RedisCartStore) Load(ctx context.Context, userID string) (domain.Cart, error) {
	raw, err := s.client.Get(ctx, cartKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("get cart slot: %w", err)
	}

	var env cartEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version != cartSchemaVersion {
		return domain.Cart{}, nil
	}
	return domain.Cart{Items: env.Items}, nil
}

func (s *RedisCartStore) Save(ctx context.Context, userID string, cart domain.Cart) error {
	env := cartEnvelope{Version: cartSchemaVersion, Items: cart.Items}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKeyPrefix+userID, raw, 0).Err(); err != nil {
		return fmt.Errorf("set cart slot: %w", err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("del cart slot: %w", err)
	}
	return nil
}
