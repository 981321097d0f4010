package repository

import "context"

// KVStore 定义了持久化键值存储的操作 (字符串 key -> 字符串 value)。
// 工作区以 "workspace-<id>" 为 key 保存在这里。
type KVStore interface {
	// Get 读取 key 对应的值。
	// key 不存在时返回 ErrNotFound。
	Get(ctx context.Context, key string) (string, error)

	// Set 写入 key 的值，已存在则覆盖 (最后写入者生效)。
	Set(ctx context.Context, key, value string) error

	// Delete 删除 key，key 不存在不视为错误。
	Delete(ctx context.Context, key string) error

	// Keys 枚举存储中的全部 key，顺序由具体实现决定。
	Keys(ctx context.Context) ([]string, error)
}
