package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts-server/internal/shared/config"
)

func TestOptionsFromURL(t *testing.T) {
	opts, err := Options(config.RedisConfig{URL: "redis://:secret@cache.internal:6380/2"})
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestOptionsFromHostPort(t *testing.T) {
	opts, err := Options(config.RedisConfig{Host: "localhost", Port: "6379", DB: 1})
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 1, opts.DB)
}

func TestOptionsRejectsBadURL(t *testing.T) {
	_, err := Options(config.RedisConfig{URL: "http://not-redis"})
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(config.RedisConfig{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	assert.NotNil(t, client.Client)
}

func TestCloseNilClient(t *testing.T) {
	var c *Client
	assert.NoError(t, c.Close())
}
