package memory_test

import (
	"context"
	"testing"

	"github.com/fanatic84/TilesPlanner/internal/infra/memory"
	"github.com/fanatic84/TilesPlanner/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()

	_, err := store.Get(ctx, "workspace-a")
	assert.ErrorIs(t, err, repository.ErrNotFound, "未写入的 key 应返回 ErrNotFound")

	require.NoError(t, store.Set(ctx, "workspace-a", "1"))
	require.NoError(t, store.Set(ctx, "workspace-a", "2"))
	value, err := store.Get(ctx, "workspace-a")
	require.NoError(t, err)
	assert.Equal(t, "2", value, "后写入的值应覆盖")

	require.NoError(t, store.Delete(ctx, "workspace-a"))
	require.NoError(t, store.Delete(ctx, "workspace-a"), "重复删除不应报错")
	_, err = store.Get(ctx, "workspace-a")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestKVStore_KeysKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	for _, k := range []string{"c", "a", "b"} {
		require.NoError(t, store.Set(ctx, k, "v"))
	}
	require.NoError(t, store.Set(ctx, "c", "v2")) // 覆盖不改变顺序
	require.NoError(t, store.Delete(ctx, "a"))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, keys)
}

func TestAddressStore(t *testing.T) {
	ctx := context.Background()
	addr := memory.NewAddressStore("#abc")

	current, err := addr.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#abc", current)

	require.NoError(t, addr.Navigate(ctx, ""))
	current, _ = addr.Current(ctx)
	assert.Empty(t, current)
}
