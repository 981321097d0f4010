package setup // 确认包名是 setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // 导入 gorm

	gormpersistence "github.com/fanatic84/TilesPlanner/internal/infra/persistence/gorm"
)

// MigrateDB handles all database migrations using the provided GORM DB instance.
// 返回错误以便调用者知道迁移是否成功。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	// kv_entries 的 entry_key 使用 varchar(191)，utf8mb4 下唯一索引不会超长
	err := db.AutoMigrate(
		&gormpersistence.KVEntry{},
		&gormpersistence.AddressEntry{},
	)
	if err != nil {
		logrus.Errorf("Failed to auto-migrate tables: %v", err)
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}
