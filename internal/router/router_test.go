package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"user-service/internal/cache"
	"user-service/internal/database"
	"user-service/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{}, store.NewMemoryUsers(nil), &cache.FakeCache{})

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /health",
		http.MethodGet + " /health/ready",
		http.MethodGet + " /metrics",
		http.MethodPost + " /api/users",
		http.MethodGet + " /api/users",
		http.MethodGet + " /api/users/active-users",
		http.MethodGet + " /api/users/:id",
		http.MethodPut + " /api/users/:id",
		http.MethodDelete + " /api/users/:id",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestActiveUsersNotShadowedByID(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{}, store.NewMemoryUsers(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/active-users", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestMetricsRoute(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{}, store.NewMemoryUsers(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}
