package config

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisConfig_NewClient(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := RedisConfig{URL: "redis://" + srv.Addr() + "/0", ReadTimeout: 1, WriteTimeout: 1, DialTimeout: 1}
	client, err := cfg.NewClient(context.Background())
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "PONG", client.Ping(context.Background()).Val())
}

func TestRedisConfig_NewClientBadURL(t *testing.T) {
	_, err := RedisConfig{URL: "not-a-url"}.NewClient(context.Background())
	assert.Error(t, err)
}
