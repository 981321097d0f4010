package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/fanatic84/TilesPlanner/internal/service"
)

// 支持的存储驱动
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMySQL  = "mysql"
	StoreSQLite = "sqlite"
)

// Config 结构体用于存储从环境变量或 .env 文件加载的配置
type Config struct {
	AppEnv     string
	LogLevel   string
	ServerPort string

	StoreDriver string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	SQLitePath string

	GridRows    int
	GridColumns int
	PaletteFile string

	RateLimitMax      int
	RateLimitWindow   time.Duration
	CORSAllowedOrigin string
}

// LoadConfig 从环境变量加载配置
func LoadConfig() (*Config, error) {
	// 优先加载 .env 文件 (如果存在)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:            os.Getenv("APP_ENV"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		ServerPort:        os.Getenv("SERVER_PORT"),
		StoreDriver:       os.Getenv("STORE_DRIVER"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:         os.Getenv("REDIS_KEY_PREFIX"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBName:            os.Getenv("DB_NAME"),
		SQLitePath:        os.Getenv("SQLITE_PATH"),
		PaletteFile:       os.Getenv("PALETTE_FILE"),
		CORSAllowedOrigin: os.Getenv("CORS_ALLOWED_ORIGIN"),
		// --- 默认值 ---
		GridRows:        service.DefaultRows,
		GridColumns:     service.DefaultColumns,
		RateLimitMax:    100,
		RateLimitWindow: 1 * time.Second,
	}

	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.GridRows, err = intEnv("GRID_ROWS", cfg.GridRows); err != nil {
		return nil, err
	}
	if cfg.GridColumns, err = intEnv("GRID_COLUMNS", cfg.GridColumns); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = intEnv("RATE_LIMIT_MAX", cfg.RateLimitMax); err != nil {
		return nil, err
	}
	if raw := os.Getenv("RATE_LIMIT_WINDOW"); raw != "" {
		if cfg.RateLimitWindow, err = time.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q: %w", raw, err)
		}
	}

	// --- 其他默认值 ---
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "tb:"
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = StoreSQLite
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "tiles_planner.db"
	}

	// --- 检查 ---
	switch cfg.StoreDriver {
	case StoreMemory, StoreSQLite, StoreMySQL:
	case StoreRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("environment variable REDIS_ADDR must be set when STORE_DRIVER=redis")
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.GridRows <= 0 || cfg.GridColumns <= 0 {
		return nil, fmt.Errorf("GRID_ROWS and GRID_COLUMNS must be positive, got %dx%d", cfg.GridRows, cfg.GridColumns)
	}
	if cfg.RateLimitMax <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func intEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v, nil
}
