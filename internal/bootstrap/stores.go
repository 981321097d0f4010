package bootstrap

import (
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fanatic84/TilesPlanner/internal/domain"
	"github.com/fanatic84/TilesPlanner/internal/infra/memory"
	gormpersistence "github.com/fanatic84/TilesPlanner/internal/infra/persistence/gorm"
	"github.com/fanatic84/TilesPlanner/internal/infra/setup"
	redisstate "github.com/fanatic84/TilesPlanner/internal/infra/state/redis"
	"github.com/fanatic84/TilesPlanner/internal/repository"
)

// Stores 是按配置选出的持久化实现及其底层连接
type Stores struct {
	KV      repository.KVStore
	Address repository.AddressStore

	RedisClient *redis.Client // 仅 redis 驱动
	DB          *gorm.DB      // 仅 mysql / sqlite 驱动
}

// OpenStores 根据 STORE_DRIVER 初始化存储
func OpenStores(cfg *Config) (*Stores, error) {
	log := logrus.WithField("driver", cfg.StoreDriver)

	switch cfg.StoreDriver {
	case StoreMemory:
		log.Warn("Using in-memory store, workspaces will not survive a restart")
		return &Stores{
			KV:      memory.NewKVStore(),
			Address: memory.NewAddressStore(""),
		}, nil

	case StoreRedis:
		client, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		return &Stores{
			KV:          redisstate.NewRedisKVStore(client, cfg.KeyPrefix),
			Address:     redisstate.NewRedisAddressStore(client, cfg.KeyPrefix),
			RedisClient: client,
		}, nil

	case StoreMySQL, StoreSQLite:
		dsn := cfg.SQLitePath
		if cfg.StoreDriver == StoreMySQL {
			var err error
			dsn, err = setup.MySQLDSN(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
			if err != nil {
				return nil, err
			}
		}
		db, err := setup.InitDB(cfg.StoreDriver, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to init DB: %w", err)
		}
		if err := setup.MigrateDB(db); err != nil {
			return nil, fmt.Errorf("failed to migrate DB: %w", err)
		}
		log.Info("Database migrated")
		return &Stores{
			KV:      gormpersistence.NewGormKVRepository(db),
			Address: gormpersistence.NewGormAddressRepository(db),
			DB:      db,
		}, nil
	}
	return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
}

// Close 关闭底层连接
func (s *Stores) Close() {
	if s.RedisClient != nil {
		if err := s.RedisClient.Close(); err != nil {
			logrus.WithError(err).Error("Error closing Redis connection")
		} else {
			logrus.Info("Redis connection closed.")
		}
	}
	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logrus.WithError(err).Error("Error closing database connection")
			} else {
				logrus.Info("Database connection closed.")
			}
		}
	}
}

// LoadPalette 读取 YAML 工具箱文件，path 为空时使用内置工具箱
func LoadPalette(path string) (domain.Palette, error) {
	if path == "" {
		return domain.DefaultPalette(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Palette{}, fmt.Errorf("failed to read palette file %s: %w", path, err)
	}
	palette, err := domain.ParsePalette(data)
	if err != nil {
		return domain.Palette{}, fmt.Errorf("invalid palette file %s: %w", path, err)
	}
	return palette, nil
}
