package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fanatic84/TilesPlanner/internal/repository"
)

var _ repository.KVStore = (*GormKVRepository)(nil)

// GormKVRepository 是 KVStore 接口的 GORM 实现
type GormKVRepository struct {
	db *gorm.DB
}

// NewGormKVRepository 创建 GormKVRepository 实例
func NewGormKVRepository(db *gorm.DB) *GormKVRepository {
	if db == nil {
		panic("database connection cannot be nil for GormKVRepository")
	}
	return &GormKVRepository{db: db}
}

// Get 实现按 key 读取
func (r *GormKVRepository) Get(ctx context.Context, key string) (string, error) {
	var entry KVEntry
	err := r.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("gorm: get kv entry '%s': %w", key, err)
	}
	return entry.Value, nil
}

// Set 实现写入 (upsert)，冲突时只更新值和更新时间，ID 保持不变
func (r *GormKVRepository) Set(ctx context.Context, key, value string) error {
	entry := KVEntry{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("gorm: set kv entry '%s' (size %d): %w", key, len(value), err)
	}
	return nil
}

// Delete 实现按 key 删除 (硬删除)
func (r *GormKVRepository) Delete(ctx context.Context, key string) error {
	err := r.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&KVEntry{}).Error
	if err != nil {
		return fmt.Errorf("gorm: delete kv entry '%s': %w", key, err)
	}
	return nil
}

// Keys 按首次写入顺序返回全部 key
func (r *GormKVRepository) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&KVEntry{}).Order("id ASC").Pluck("entry_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list kv keys: %w", err)
	}
	return keys, nil
}
