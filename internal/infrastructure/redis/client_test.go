package redis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amhellmund/redo/internal/infrastructure/redis"
)

func TestNewClient_EmptyAddress(t *testing.T) {
	t.Parallel()

	client, err := redis.NewClient(context.Background(), redis.Config{})

	assert.True(t, errors.Is(err, redis.ErrEmptyAddress))
	assert.Nil(t, client)
}

func TestNewClient_PingsServer(t *testing.T) {
	t.Parallel()

	srv := miniredis.RunT(t)

	client, err := redis.NewClient(context.Background(), redis.Config{Address: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ping := redis.Pinger(client)
	require.NoError(t, ping(context.Background()))

	srv.Close()
	assert.Error(t, ping(context.Background()))
}

func TestNewClient_Unreachable(t *testing.T) {
	t.Parallel()

	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	client, err := redis.NewClient(context.Background(), redis.Config{Address: addr})
	require.Error(t, err)
	assert.Nil(t, client)
}
