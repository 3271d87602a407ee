package middleware

import (
	"errors"
	"net/http"

	"user-service/internal/api"
	"user-service/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler 集中處理 handler 回傳的錯誤
// 儲存層錯誤依類型對應狀態碼，其餘一律 500；所有錯誤都會寫 log
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := Translate(err)
		fields := []zap.Field{
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Int("status", status),
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Warn("request rejected", fields...)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			log.Error("write error response", zap.Error(werr))
		}
	}
}

// Translate 將錯誤對應為狀態碼與回應內容
func Translate(err error) (int, api.ErrorResponse) {
	var meta any
	var se *store.Error
	if errors.As(err, &se) {
		meta = se.Meta
	}

	switch {
	case errors.Is(err, store.ErrUniqueViolation):
		return http.StatusConflict, api.ErrorResponse{Error: "Unique constraint failed", Meta: meta}
	case errors.Is(err, store.ErrRecordNotFound):
		return http.StatusNotFound, api.ErrorResponse{Error: "Record not found", Meta: meta}
	case errors.Is(err, store.ErrValidation):
		return http.StatusBadRequest, api.ErrorResponse{Error: "Validation error", Meta: meta}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, api.ErrorResponse{Error: msg}
	}

	return http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error", Meta: err.Error()}
}
