package redisstate_test

import (
	"context"
	"sort"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstate "github.com/fanatic84/TilesPlanner/internal/infra/state/redis"
	"github.com/fanatic84/TilesPlanner/internal/repository"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisKVStore_GetSetDelete(t *testing.T) {
	mr, client := newTestClient(t)
	store := redisstate.NewRedisKVStore(client, "test:")
	ctx := context.Background()

	_, err := store.Get(ctx, "workspace-a")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Set(ctx, "workspace-a", `{"gridTiles":[]}`))
	assert.True(t, mr.Exists("test:kv:workspace-a"), "应写入带前缀的 Redis key")

	value, err := store.Get(ctx, "workspace-a")
	require.NoError(t, err)
	assert.Equal(t, `{"gridTiles":[]}`, value)

	require.NoError(t, store.Delete(ctx, "workspace-a"))
	require.NoError(t, store.Delete(ctx, "workspace-a"), "删除不存在的 key 不应报错")
	_, err = store.Get(ctx, "workspace-a")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRedisKVStore_KeysOnlyInNamespace(t *testing.T) {
	mr, client := newTestClient(t)
	store := redisstate.NewRedisKVStore(client, "test:")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "workspace-a", "1"))
	require.NoError(t, store.Set(ctx, "workspace-b", "2"))
	require.NoError(t, mr.Set("other:kv:workspace-c", "3"))
	require.NoError(t, mr.Set("test:address", "#a"))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"workspace-a", "workspace-b"}, keys)
}

func TestRedisKVStore_ErrorWhenServerDown(t *testing.T) {
	mr, client := newTestClient(t)
	store := redisstate.NewRedisKVStore(client, "test:")
	mr.Close()

	_, err := store.Get(context.Background(), "workspace-a")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound, "连接错误不应被当作未找到")
}

func TestRedisAddressStore(t *testing.T) {
	mr, client := newTestClient(t)
	addr := redisstate.NewRedisAddressStore(client, "test:")
	ctx := context.Background()

	current, err := addr.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, current, "未设置地址时应为空")

	require.NoError(t, addr.Navigate(ctx, "#abc"))
	got, err := mr.Get("test:address")
	require.NoError(t, err)
	assert.Equal(t, "#abc", got)

	require.NoError(t, addr.Navigate(ctx, ""))
	assert.False(t, mr.Exists("test:address"), "空地址应删除 key")
}
