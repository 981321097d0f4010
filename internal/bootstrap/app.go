package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	httpHandler "github.com/fanatic84/TilesPlanner/internal/handler/http"
	wsHandler "github.com/fanatic84/TilesPlanner/internal/handler/websocket"
	"github.com/fanatic84/TilesPlanner/internal/hub"
	"github.com/fanatic84/TilesPlanner/internal/middleware"
	"github.com/fanatic84/TilesPlanner/internal/service"
)

// App 结构体包含应用的所有组件和配置
type App struct {
	Config     *Config
	Log        *logrus.Logger
	Stores     *Stores
	Editor     *service.Editor
	Hub        *hub.Hub
	HttpServer *http.Server
}

// ConfigureLogger 按配置设置全局 logrus 并返回它
func ConfigureLogger(cfg *Config) *logrus.Logger {
	log := logrus.StandardLogger()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel) // cfg.LogLevel 已被 LoadConfig 验证
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	return log
}

// NewEditor 打开存储、加载工具箱并完成 Editor 的启动加载
func NewEditor(ctx context.Context, cfg *Config) (*service.Editor, *Stores, error) {
	stores, err := OpenStores(cfg)
	if err != nil {
		return nil, nil, err
	}
	palette, err := LoadPalette(cfg.PaletteFile)
	if err != nil {
		stores.Close()
		return nil, nil, err
	}
	editor := service.NewEditor(stores.KV, stores.Address, service.EditorOptions{
		Rows:    cfg.GridRows,
		Columns: cfg.GridColumns,
		Palette: palette,
	})
	if err := editor.Start(ctx); err != nil {
		stores.Close()
		return nil, nil, fmt.Errorf("failed to start editor: %w", err)
	}
	return editor, stores, nil
}

// NewRouter 组装 Gin Engine、中间件和路由。
// redisClient 为 nil 时不启用限流。
func NewRouter(cfg *Config, log *logrus.Logger, editor *service.Editor, hubInstance *hub.Hub, redisClient *redis.Client) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	if redisClient != nil {
		router.Use(middleware.RateLimit(redisClient, cfg.KeyPrefix, cfg.RateLimitMax, cfg.RateLimitWindow))
	}

	httpHandler.NewEditorHandler(editor).RegisterRoutes(router.Group("/api"))
	router.GET("/ws/editor", wsHandler.NewWebSocketHandler(hubInstance, cfg.CORSAllowedOrigin).HandleConnection)
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	return router
}

// NewApp 创建并初始化应用的所有组件
func NewApp() (*App, error) {
	// 1. 加载配置
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	// 2. 初始化 Logger
	log := ConfigureLogger(cfg)
	log.Infof("Logger initialized (Level: %s, Format: %T)", log.GetLevel().String(), log.Formatter)
	log.WithField("store_driver", cfg.StoreDriver).Info("Configuration loaded successfully")

	// 3. 初始化存储和 Editor
	editor, stores, err := NewEditor(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	log.WithField("workspace_id", editor.SelectedWorkspace()).Info("Editor initialized")

	// 4. 初始化 Hub 和路由
	hubInstance := hub.NewHub(editor)
	router := NewRouter(cfg, log, editor, hubInstance, stores.RedisClient)
	log.Info("Router setup complete")

	// 5. 初始化 HTTP Server
	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		Config:     cfg,
		Log:        log,
		Stores:     stores,
		Editor:     editor,
		Hub:        hubInstance,
		HttpServer: httpServer,
	}, nil
}

// Start 启动 Hub 和 HTTP 服务器
func (a *App) Start() {
	go a.Hub.Run()
	a.Log.Info("Hub routine started")

	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown 优雅地关闭应用
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	// 1. 先关闭 HTTP 服务器，不再接收新请求
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	// 2. 停止 Hub，断开所有 WebSocket 客户端
	if a.Hub != nil {
		a.Hub.Stop()
	}

	// 3. 关闭存储连接
	if a.Stores != nil {
		a.Stores.Close()
	}

	a.Log.Info("Application shutdown complete.")
}

// LoggerMiddleware 创建一个 Gin 中间件用于记录请求日志
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		switch {
		case errorMessage != "":
			entry.Error(errorMessage)
		case statusCode >= 500:
			entry.Error("Server error")
		case statusCode >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request handled")
		}
	}
}
