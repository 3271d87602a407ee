package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-service/internal/api"
	"user-service/internal/cache"
	"user-service/internal/config"
	"user-service/internal/database"
	"user-service/internal/logger"
	"user-service/internal/middleware"
	"user-service/internal/router"
	"user-service/internal/store"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "user-service/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	notifyContext   = signal.NotifyContext
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("Logger 建立失敗: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	var users store.UserStore = store.NewUsers(db)

	// 快取為選用；未設定時 cch 保持 nil，就緒檢查會略過
	var cch cache.Cache
	if cfg.CacheEnabled() {
		cch, err = newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer func() {
			if err := cch.Close(); err != nil {
				log.Warn("close redis", zap.Error(err))
			}
		}()
		users = store.NewCachedUsers(users, cch, cfg.UserCacheTTL, log)
	}

	if cfg.RunMigrations {
		if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 執行失敗: %w", err)
		}
	}

	e := newServer(cfg, log, db, users, cch)
	return serve(e, cfg.Addr, cfg.ShutdownTimeout, log)
}

// newServer 組裝 echo：驗證器、錯誤轉換、中介層與所有路由
func newServer(cfg *config.Config, log *zap.Logger, db database.DB, users store.UserStore, cch cache.Cache) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(log)

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(middleware.Observe(log))
	e.Use(echomw.Recover())

	router.Setup(e, db, users, cch)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

// serve 啟動伺服器，收到 SIGINT/SIGTERM 後在 timeout 內優雅關閉
func serve(e *echo.Echo, addr string, timeout time.Duration, log *zap.Logger) error {
	ctx, stop := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, addr) }()
	log.Info("server started", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("Server 啟動失敗: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", timeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdownServer(shutdownCtx, e); err != nil {
		return fmt.Errorf("Server 關閉失敗: %w", err)
	}
	return nil
}
