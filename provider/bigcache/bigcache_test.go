package bigcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, cfg Config) *Provider {
	t.Helper()
	p, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t, Config{LifeWindow: time.Minute})

	ok, err := p.Set(ctx, "doc:user:1", []byte("frame"), 1, 0)
	require.NoError(t, err)
	require.True(t, ok)

	b, ok, err := p.Get(ctx, "doc:user:1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("frame"), b)

	require.NoError(t, p.Del(ctx, "doc:user:1"))
	require.NoError(t, p.Del(ctx, "doc:user:1"), "deleting a missing key is not an error")

	_, ok, err = p.Get(ctx, "doc:user:1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRejectAbove(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t, Config{LifeWindow: time.Minute, RejectAbove: 4})

	ok, err := p.Set(ctx, "big", []byte("12345"), 1, 0)
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, _ = p.Get(ctx, "big")
	require.False(t, ok)
}
