package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPersistence(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	p := NewRedisPersistence(client)

	raw, err := Encode(sampleState())
	require.NoError(t, err)

	t.Run("MissingKeyLoadsEmpty", func(t *testing.T) {
		mock.ExpectGet(StorageKey).RedisNil()

		got, err := p.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, got.CartItems)
	})

	t.Run("Save", func(t *testing.T) {
		mock.ExpectSet(StorageKey, string(raw), 0).SetVal("OK")

		assert.NoError(t, p.Save(ctx, sampleState()))
	})

	t.Run("Load", func(t *testing.T) {
		mock.ExpectGet(StorageKey).SetVal(string(raw))

		got, err := p.Load(ctx)
		assert.NoError(t, err)
		assert.True(t, sampleState().Equal(got))
	})

	t.Run("LoadError", func(t *testing.T) {
		mock.ExpectGet(StorageKey).SetErr(errors.New("connection refused"))

		_, err := p.Load(ctx)
		assert.ErrorIs(t, err, ErrFailedLoadCart)
	})

	t.Run("SaveError", func(t *testing.T) {
		mock.ExpectSet(StorageKey, string(raw), 0).SetErr(errors.New("OOM"))

		assert.ErrorIs(t, p.Save(ctx, sampleState()), ErrFailedSaveCart)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
