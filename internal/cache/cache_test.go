package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/splitledger/internal/balance"
)

func TestEncodeDecode(t *testing.T) {
	b := balance.Balances{uuid.New(): 1250, uuid.New(): -1250, uuid.New(): 0}

	raw, err := encode(b)
	require.NoError(t, err)

	got, err := decode(raw)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestDecodeRejectsBadIDs(t *testing.T) {
	_, err := decode([]byte(`{"not-a-uuid": 5}`))
	assert.Error(t, err)

	_, err = decode([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var c Nop
	require.NoError(t, c.Set(context.Background(), "k", balance.Balances{uuid.New(): 1}))

	b, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, b)
}

func TestBalancesSurfacesConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	c := NewBalances(client, time.Minute)

	_, ok, err := c.Get(context.Background(), "balances:x")
	assert.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, c.Set(context.Background(), "balances:x", balance.Balances{}))
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "http://not-redis")
	assert.Error(t, err)
}
