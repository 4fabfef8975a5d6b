package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachable returns a client that fails fast: nothing listens on port 1.
func unreachable(t *testing.T) *goredis.Client {
	t.Helper()
	return goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestNewRequiresClient(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrNilClient)
}

func TestTransportErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{Client: unreachable(t), Prefix: "app:", CloseClient: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(ctx) })

	_, ok, err := p.Get(ctx, "doc:user:1")
	require.Error(t, err, "a dial failure is not a miss")
	assert.False(t, ok)

	ok, err = p.Set(ctx, "doc:user:1", []byte("frame"), 1, time.Minute)
	require.Error(t, err)
	assert.False(t, ok)

	require.Error(t, p.Del(ctx, "doc:user:1"))
}

func TestRejectAboveSkipsRoundTrip(t *testing.T) {
	p, err := New(Config{Client: unreachable(t), RejectAbove: 4, CloseClient: true})
	require.NoError(t, err)

	// rejected before the client is used, so the dead address never surfaces
	ok, err := p.Set(context.Background(), "doc:user:1", []byte("too large"), 1, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Close(context.Background()))
}

func TestKeyPrefix(t *testing.T) {
	p, err := New(Config{Client: unreachable(t), Prefix: "app:"})
	require.NoError(t, err)
	assert.Equal(t, "app:doc:user:1", p.key("doc:user:1"))
}

func TestCloseOwnership(t *testing.T) {
	ctx := context.Background()

	shared := unreachable(t)
	p, err := New(Config{Client: shared})
	require.NoError(t, err)
	require.NoError(t, p.Close(ctx))
	require.NoError(t, shared.Close(), "a borrowed client stays open")

	owned, err := New(Config{Client: unreachable(t), CloseClient: true})
	require.NoError(t, err)
	require.NoError(t, owned.Close(ctx))
	require.NoError(t, owned.Close(ctx), "repeated Close is a no-op")
}
