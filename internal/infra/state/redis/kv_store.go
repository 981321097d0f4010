package redisstate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	// 导入 Redis 客户端库
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/fanatic84/TilesPlanner/internal/repository"
)

var (
	_ repository.KVStore      = (*RedisKVStore)(nil)
	_ repository.AddressStore = (*RedisAddressStore)(nil)
)

// scanBatch 是 SCAN 每次迭代建议返回的 key 数量
const scanBatch = 100

// RedisKVStore 是 KVStore 接口的 Redis 实现。
// 每个逻辑 key 保存为一个 Redis String: <prefix>kv:<key>
type RedisKVStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisKVStore 创建 RedisKVStore 实例
func NewRedisKVStore(client *redis.Client, keyPrefix string) *RedisKVStore {
	if client == nil {
		panic("redis client cannot be nil for RedisKVStore")
	}
	if keyPrefix == "" {
		keyPrefix = "tb:" // 默认前缀 "tb:" (tile board)
	}
	return &RedisKVStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// --- Key Generation Helpers ---
func (r *RedisKVStore) namespace() string {
	return r.keyPrefix + "kv:"
}

func (r *RedisKVStore) redisKey(key string) string {
	return r.namespace() + key
}

// Get 读取 key，Redis 返回 Nil 时映射为 repository.ErrNotFound
func (r *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	redisKey := r.redisKey(key)
	value, err := r.client.Get(ctx, redisKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("redis: failed to get %s: %w", redisKey, err)
	}
	return value, nil
}

// Set 写入 key，不过期
func (r *RedisKVStore) Set(ctx context.Context, key, value string) error {
	redisKey := r.redisKey(key)
	if err := r.client.Set(ctx, redisKey, value, 0).Err(); err != nil {
		return fmt.Errorf("redis: failed to set %s (size %d): %w", redisKey, len(value), err)
	}
	return nil
}

// Delete 删除 key，key 不存在时 DEL 返回 0，不视为错误
func (r *RedisKVStore) Delete(ctx context.Context, key string) error {
	redisKey := r.redisKey(key)
	if err := r.client.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("redis: failed to delete %s: %w", redisKey, err)
	}
	return nil
}

// Keys 使用 SCAN 枚举命名空间下的全部 key (去掉前缀)。
// 顺序为 Redis 的迭代顺序，不做保证。
func (r *RedisKVStore) Keys(ctx context.Context) ([]string, error) {
	ns := r.namespace()
	var keys []string
	iter := r.client.Scan(ctx, 0, escapeGlob(ns)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), ns))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis: failed to scan keys under %s: %w", ns, err)
	}
	logrus.WithFields(logrus.Fields{"namespace": ns, "count": len(keys)}).Debug("redis: keys enumerated")
	return keys, nil
}

// escapeGlob 转义 SCAN MATCH 模式中的特殊字符，前缀按字面匹配
func escapeGlob(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch ch {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// RedisAddressStore 把可导航地址保存在 <prefix>address，重启后仍能恢复上次选中的工作区
type RedisAddressStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisAddressStore 创建 RedisAddressStore 实例
func NewRedisAddressStore(client *redis.Client, keyPrefix string) *RedisAddressStore {
	if client == nil {
		panic("redis client cannot be nil for RedisAddressStore")
	}
	if keyPrefix == "" {
		keyPrefix = "tb:"
	}
	return &RedisAddressStore{client: client, keyPrefix: keyPrefix}
}

func (r *RedisAddressStore) addressKey() string {
	return r.keyPrefix + "address"
}

// Current 返回当前地址，key 不存在视为空地址
func (r *RedisAddressStore) Current(ctx context.Context) (string, error) {
	key := r.addressKey()
	address, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis: failed to get address from %s: %w", key, err)
	}
	return address, nil
}

// Navigate 写入地址，空地址直接删除 key
func (r *RedisAddressStore) Navigate(ctx context.Context, address string) error {
	key := r.addressKey()
	var err error
	if address == "" {
		err = r.client.Del(ctx, key).Err()
	} else {
		err = r.client.Set(ctx, key, address, 0).Err()
	}
	if err != nil {
		return fmt.Errorf("redis: failed to set address on %s: %w", key, err)
	}
	return nil
}
