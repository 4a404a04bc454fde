package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testarCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	_, ok := c.Get(ctx, "dashboard:1")
	assert.False(t, ok)

	c.Set(ctx, "dashboard:1", `{"saldo":"10"}`, time.Minute)
	v, ok := c.Get(ctx, "dashboard:1")
	require.True(t, ok)
	assert.Equal(t, `{"saldo":"10"}`, v)

	c.Delete(ctx, "dashboard:1")
	_, ok = c.Get(ctx, "dashboard:1")
	assert.False(t, ok)

	c.Set(ctx, "contas:1:pagar", "a", time.Minute)
	c.Set(ctx, "contas:1:receber", "b", time.Minute)
	c.Set(ctx, "contas:2:pagar", "c", time.Minute)
	c.DeleteByPrefix(ctx, "contas:1:")

	_, ok = c.Get(ctx, "contas:1:pagar")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "contas:1:receber")
	assert.False(t, ok)
	// Outra organização não é afetada.
	v, ok = c.Get(ctx, "contas:2:pagar")
	require.True(t, ok)
	assert.Equal(t, "c", v)
}

func TestMemoria(t *testing.T) {
	testarCache(t, NewMemoria())
}

func TestMemoria_TTL(t *testing.T) {
	c := NewMemoria()
	ctx := context.Background()
	c.Set(ctx, "chave", "valor", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get(ctx, "chave")
	assert.False(t, ok)
}

func TestRedis(t *testing.T) {
	srv := miniredis.RunT(t)
	testarCache(t, NewRedis(srv.Addr(), ""))
}

func TestRedis_TTL(t *testing.T) {
	srv := miniredis.RunT(t)
	c := NewRedis(srv.Addr(), "")
	ctx := context.Background()

	c.Set(ctx, "chave", "valor", time.Minute)
	srv.FastForward(2 * time.Minute)
	_, ok := c.Get(ctx, "chave")
	assert.False(t, ok)
}
