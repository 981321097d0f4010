// Package mocks 提供基于 testify/mock 的 repository 接口模拟实现
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fanatic84/TilesPlanner/internal/repository"
)

var (
	_ repository.KVStore      = (*KVStore)(nil)
	_ repository.AddressStore = (*AddressStore)(nil)
)

// KVStore 是 repository.KVStore 的 Mock
type KVStore struct {
	mock.Mock
}

func (m *KVStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *KVStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *KVStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *KVStore) Keys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

// AddressStore 是 repository.AddressStore 的 Mock
type AddressStore struct {
	mock.Mock
}

func (m *AddressStore) Current(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *AddressStore) Navigate(ctx context.Context, address string) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}
