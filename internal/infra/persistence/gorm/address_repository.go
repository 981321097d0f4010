package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fanatic84/TilesPlanner/internal/repository"
)

var _ repository.AddressStore = (*GormAddressRepository)(nil)

// addressRowID 是地址表中唯一一行的主键
const addressRowID = 1

// GormAddressRepository 是 AddressStore 接口的 GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository 创建 GormAddressRepository 实例
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	if db == nil {
		panic("database connection cannot be nil for GormAddressRepository")
	}
	return &GormAddressRepository{db: db}
}

// Current 返回保存的地址，尚无记录时为空地址
func (r *GormAddressRepository) Current(ctx context.Context) (string, error) {
	var entry AddressEntry
	err := r.db.WithContext(ctx).First(&entry, addressRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("gorm: get address: %w", err)
	}
	return entry.Address, nil
}

// Navigate 写入地址
func (r *GormAddressRepository) Navigate(ctx context.Context, address string) error {
	entry := AddressEntry{ID: addressRowID, Address: address}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"address", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("gorm: set address '%s': %w", address, err)
	}
	return nil
}
