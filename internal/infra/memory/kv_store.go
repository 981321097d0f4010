// Package memory 提供进程内的 KVStore / AddressStore 实现，用于测试和临时运行。
package memory

import (
	"context"
	"sync"

	"github.com/fanatic84/TilesPlanner/internal/repository"
)

var (
	_ repository.KVStore      = (*KVStore)(nil)
	_ repository.AddressStore = (*AddressStore)(nil)
)

// KVStore 是保持插入顺序的内存键值存储
type KVStore struct {
	mu     sync.RWMutex
	values map[string]string
	order  []string // key 的插入顺序，Keys 按此顺序返回
}

// NewKVStore 创建一个空的内存存储
func NewKVStore() *KVStore {
	return &KVStore{values: make(map[string]string)}
}

// Get 读取 key，不存在时返回 repository.ErrNotFound
func (s *KVStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return value, nil
}

// Set 写入 key，新 key 追加到枚举顺序末尾
func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
	return nil
}

// Delete 删除 key
func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Keys 按插入顺序返回全部 key
func (s *KVStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys, nil
}

// AddressStore 是内存中的可导航地址
type AddressStore struct {
	mu      sync.RWMutex
	address string
}

// NewAddressStore 创建地址存储，initial 为启动时的地址 (可为空)
func NewAddressStore(initial string) *AddressStore {
	return &AddressStore{address: initial}
}

// Current 返回当前地址
func (a *AddressStore) Current(_ context.Context) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.address, nil
}

// Navigate 设置当前地址
func (a *AddressStore) Navigate(_ context.Context, address string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.address = address
	return nil
}
