package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/signal"
	"strings"
	"testing"
	"time"

	"user-service/internal/cache"
	"user-service/internal/config"
	"user-service/internal/database"
	"user-service/internal/logger"
	"user-service/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func restoreGlobals() {
	loadConfig = config.Load
	newLogger = logger.New
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	notifyContext = signal.NotifyContext
	exitFunc = func(code int) {}
}

func stubDeps(t *testing.T, called map[string]bool) {
	t.Helper()
	newLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "postgres://db", url)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127.0.0.1:6379", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":3000", addr)
		return nil
	}
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := map[string]bool{}
	stubDeps(t, called)

	t.Setenv("DATABASE_URL", "postgres://db")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REDIS_DB", "1")
	t.Setenv("REDIS_PASSWORD", "pw")

	require.NoError(t, run())
	for _, k := range []string{"pgx", "redis", "migrate", "start", "dbClose", "redisClose"} {
		require.True(t, called[k], k)
	}
}

func TestRunWithoutCache(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := map[string]bool{}
	stubDeps(t, called)

	t.Setenv("DATABASE_URL", "postgres://db")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("RUN_MIGRATIONS", "false")

	require.NoError(t, run())
	require.True(t, called["pgx"])
	require.True(t, called["start"])
	require.True(t, called["dbClose"])
	require.False(t, called["redis"])
	require.False(t, called["migrate"])
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := map[string]bool{}
	stubDeps(t, called)
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REDIS_DB", "1")
	t.Setenv("REDIS_PASSWORD", "pw")

	t.Setenv("DATABASE_URL", "")
	require.Error(t, run())
	t.Setenv("DATABASE_URL", "postgres://db")

	newLogger = func(bool) (*zap.Logger, error) { return nil, errors.New("logger") }
	require.ErrorContains(t, run(), "logger")
	newLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }

	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.ErrorContains(t, run(), "DB 連線失敗")

	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.ErrorContains(t, run(), "Redis 連線失敗")

	newRedisClient = func(string, string, int) (cache.Cache, error) {
		return &cache.FakeCache{CloseFn: func() error { return errors.New("close") }}, nil
	}
	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.ErrorContains(t, run(), "Migration 執行失敗")

	runMigrationsFn = func(string) error { return nil }
	startServer = func(*echo.Echo, string) error { return errors.New("bind") }
	require.ErrorContains(t, run(), "Server 啟動失敗")

	startServer = func(*echo.Echo, string) error { return http.ErrServerClosed }
	require.NoError(t, run())
}

func TestServeGracefulShutdown(t *testing.T) {
	t.Cleanup(restoreGlobals)

	notifyContext = func(parent context.Context, _ ...os.Signal) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(parent)
		cancel()
		return ctx, func() {}
	}
	released := make(chan struct{})
	startServer = func(*echo.Echo, string) error {
		<-released
		return http.ErrServerClosed
	}
	var deadline time.Time
	shutdownServer = func(ctx context.Context, _ *echo.Echo) error {
		deadline, _ = ctx.Deadline()
		close(released)
		return nil
	}

	start := time.Now()
	require.NoError(t, serve(echo.New(), ":0", 2*time.Second, zap.NewNop()))
	require.WithinDuration(t, start.Add(2*time.Second), deadline, time.Second)

	shutdownServer = func(context.Context, *echo.Echo) error { return errors.New("timeout") }
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	startServer = func(*echo.Echo, string) error { <-block; return http.ErrServerClosed }
	require.ErrorContains(t, serve(echo.New(), ":0", time.Second, zap.NewNop()), "Server 關閉失敗")
}

func TestMainFunction(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubDeps(t, map[string]bool{})
	t.Setenv("DATABASE_URL", "postgres://db")
	t.Setenv("REDIS_ADDR", "")
	main()
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	loadConfig = func() (*config.Config, error) { return nil, errors.New("config") }
	main()
	require.Equal(t, 1, exitCode)
}

func call(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNewServerEndToEnd(t *testing.T) {
	db := &database.FakeDB{PingFn: func(context.Context) error { return nil }}
	e := newServer(&config.Config{}, zap.NewNop(), db, store.NewMemoryUsers(nil), nil)

	rec := call(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = call(e, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(e, http.MethodPost, "/api/users", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, float64(1), created["id"])
	require.Nil(t, created["name"])
	require.NotContains(t, created, "password")

	rec = call(e, http.MethodPost, "/api/users/", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Unique constraint failed")

	rec = call(e, http.MethodGet, "/api/users/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, http.StatusNoContent, call(e, http.MethodDelete, "/api/users/1", "").Code)

	rec = call(e, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Record not found")

	rec = call(e, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestNewServerReadyFailure(t *testing.T) {
	db := &database.FakeDB{PingFn: func(context.Context) error { return errors.New("down") }}
	e := newServer(&config.Config{}, zap.NewNop(), db, store.NewMemoryUsers(nil), nil)

	rec := call(e, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.JSONEq(t, `{"error":"database unhealthy"}`, rec.Body.String())
}

func TestNewServerRecoversPanics(t *testing.T) {
	e := newServer(&config.Config{}, zap.NewNop(), &database.FakeDB{}, store.NewMemoryUsers(nil), nil)
	e.GET("/boom", func(echo.Context) error { panic("boom") })

	rec := call(e, http.MethodGet, "/boom", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
