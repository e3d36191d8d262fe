package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisPersistence stores the snapshot under StorageKey with no expiry.
type RedisPersistence struct {
	client redis.Cmdable
	key    string
}

func NewRedisPersistence(client redis.Cmdable) *RedisPersistence {
	return &RedisPersistence{client: client, key: StorageKey}
}

func (r *RedisPersistence) Load(ctx context.Context) (State, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return State{CartItems: []LineItem{}}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}
	return Decode([]byte(val))
}

func (r *RedisPersistence) Save(ctx context.Context, state State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, string(data), 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	return nil
}
